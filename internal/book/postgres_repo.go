package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `id, title, author, isbn, published_date, thumbnail_url`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedDate, &b.ThumbnailURL)
	return b, err
}

func (r *PostgresRepo) GetOrCreate(ctx context.Context, b Book) (Book, bool, error) {
	if b.ISBN == "" {
		return Book{}, false, ErrEmptyISBN
	}

	const insertSQL = `
		INSERT INTO books (title, author, isbn, published_date, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (isbn) DO NOTHING
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	created, err := scanBook(r.db.QueryRow(timeoutCtx, insertSQL,
		b.Title, b.Author, b.ISBN, b.PublishedDate, b.ThumbnailURL,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Book{}, false, fmt.Errorf("insert book %s: %w", b.ISBN, err)
	}

	// Conflict: another writer owns the row.
	existing, err := r.GetByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, false, err
	}
	return existing, false, nil
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
