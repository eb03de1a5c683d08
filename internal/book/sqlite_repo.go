package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// SQLiteRepo stores books in a local SQLite database.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBook(row rowScanner) (Book, error) {
	var (
		b         Book
		published sql.NullString
		thumbnail sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &published, &thumbnail); err != nil {
		return Book{}, err
	}
	if published.Valid && published.String != "" {
		t, err := time.Parse(dateLayout, published.String)
		if err != nil {
			return Book{}, fmt.Errorf("parse published_date %q: %w", published.String, err)
		}
		b.PublishedDate = &t
	}
	if thumbnail.Valid {
		b.ThumbnailURL = &thumbnail.String
	}
	return b, nil
}

func (r *SQLiteRepo) GetOrCreate(ctx context.Context, b Book) (Book, bool, error) {
	if b.ISBN == "" {
		return Book{}, false, ErrEmptyISBN
	}

	var published any
	if b.PublishedDate != nil {
		published = b.PublishedDate.Format(dateLayout)
	}

	const insertSQL = `
		INSERT INTO books (title, author, isbn, published_date, thumbnail_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (isbn) DO NOTHING
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	created, err := scanSQLiteBook(r.db.QueryRowContext(timeoutCtx, insertSQL,
		b.Title, b.Author, b.ISBN, published, b.ThumbnailURL,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Book{}, false, fmt.Errorf("insert book %s: %w", b.ISBN, err)
	}

	existing, err := r.GetByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, false, err
	}
	return existing, false, nil
}

func (r *SQLiteRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = ? LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanSQLiteBook(r.db.QueryRowContext(timeoutCtx, query, isbn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
