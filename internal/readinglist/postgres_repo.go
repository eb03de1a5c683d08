package readinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"

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

const joinedSelect = `
	SELECT ub.id, ub.user_id, ub.book_id, ub.status, ub.added_date,
	       b.id, b.title, b.author, b.isbn, b.published_date, b.thumbnail_url
	FROM user_books ub
	JOIN books b ON b.id = ub.book_id`

func orderClause(sort Sort) string {
	switch sort {
	case SortTitle:
		return "b.title ASC, ub.id ASC"
	case SortAuthor:
		return "b.author ASC, ub.id ASC"
	default:
		return "ub.added_date DESC, ub.id DESC"
	}
}

func scanJoined(row pgx.Row) (Item, error) {
	var (
		it     Item
		b      book.Book
		status string
	)
	if err := row.Scan(
		&it.ID, &it.UserID, &it.BookID, &status, &it.AddedDate,
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedDate, &b.ThumbnailURL,
	); err != nil {
		return Item{}, err
	}
	it.Status = Status(status)
	it.Book = &b
	return it, nil
}

func (r *PostgresRepo) GetOrCreate(ctx context.Context, userID string, bookID int64, status Status) (Item, bool, error) {
	const insertSQL = `
		INSERT INTO user_books (user_id, book_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id, status) DO NOTHING
		RETURNING id, user_id, book_id, status, added_date`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		it  Item
		raw string
	)
	err := r.db.QueryRow(timeoutCtx, insertSQL, userID, bookID, string(status)).
		Scan(&it.ID, &it.UserID, &it.BookID, &raw, &it.AddedDate)
	if err == nil {
		it.Status = Status(raw)
		return it, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Item{}, false, fmt.Errorf("insert user book: %w", err)
	}

	const selectSQL = `
		SELECT id, user_id, book_id, status, added_date
		FROM user_books
		WHERE user_id = $1 AND book_id = $2 AND status = $3`
	err = r.db.QueryRow(timeoutCtx, selectSQL, userID, bookID, string(status)).
		Scan(&it.ID, &it.UserID, &it.BookID, &raw, &it.AddedDate)
	if err != nil {
		return Item{}, false, fmt.Errorf("select user book: %w", err)
	}
	it.Status = Status(raw)
	return it, false, nil
}

func (r *PostgresRepo) ListByStatus(ctx context.Context, userID string, status Status, sort Sort) ([]Item, error) {
	query := joinedSelect + `
	WHERE ub.user_id = $1 AND ub.status = $2
	ORDER BY ` + orderClause(sort)
	return r.list(ctx, query, userID, string(status))
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	query := joinedSelect + `
	WHERE ub.user_id = $1
	ORDER BY ub.id ASC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepo) list(ctx context.Context, query string, args ...any) ([]Item, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		it, err := scanJoined(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, userID string, id int64) (Item, error) {
	query := joinedSelect + `
	WHERE ub.id = $1 AND ub.user_id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	it, err := scanJoined(r.db.QueryRow(timeoutCtx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, userID string, id int64) error {
	const deleteSQL = `DELETE FROM user_books WHERE id = $1 AND user_id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	commandTag, err := r.db.Exec(timeoutCtx, deleteSQL, id, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
