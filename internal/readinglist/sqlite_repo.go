package readinglist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/book"
)

// SQLiteRepo stores memberships in SQLite. added_date is kept as unix nanoseconds.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout, now: time.Now}
}

// WithClock replaces the clock used to stamp added_date.
func (r *SQLiteRepo) WithClock(now func() time.Time) *SQLiteRepo {
	r.now = now
	return r
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteItem(row rowScanner) (Item, error) {
	var (
		it     Item
		status string
		added  int64
	)
	if err := row.Scan(&it.ID, &it.UserID, &it.BookID, &status, &added); err != nil {
		return Item{}, err
	}
	it.Status = Status(status)
	it.AddedDate = time.Unix(0, added).UTC()
	return it, nil
}

func scanSQLiteJoined(row rowScanner) (Item, error) {
	var (
		it        Item
		b         book.Book
		status    string
		added     int64
		published sql.NullString
		thumbnail sql.NullString
	)
	if err := row.Scan(
		&it.ID, &it.UserID, &it.BookID, &status, &added,
		&b.ID, &b.Title, &b.Author, &b.ISBN, &published, &thumbnail,
	); err != nil {
		return Item{}, err
	}
	it.Status = Status(status)
	it.AddedDate = time.Unix(0, added).UTC()
	if published.Valid && published.String != "" {
		t, err := time.Parse("2006-01-02", published.String)
		if err != nil {
			return Item{}, fmt.Errorf("parse published_date %q: %w", published.String, err)
		}
		b.PublishedDate = &t
	}
	if thumbnail.Valid {
		b.ThumbnailURL = &thumbnail.String
	}
	it.Book = &b
	return it, nil
}

func (r *SQLiteRepo) GetOrCreate(ctx context.Context, userID string, bookID int64, status Status) (Item, bool, error) {
	const insertSQL = `
		INSERT INTO user_books (user_id, book_id, status, added_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, book_id, status) DO NOTHING
		RETURNING id, user_id, book_id, status, added_date`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	it, err := scanSQLiteItem(r.db.QueryRowContext(timeoutCtx, insertSQL,
		userID, bookID, string(status), r.now().UnixNano(),
	))
	if err == nil {
		return it, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Item{}, false, fmt.Errorf("insert user book: %w", err)
	}

	const selectSQL = `
		SELECT id, user_id, book_id, status, added_date
		FROM user_books
		WHERE user_id = ? AND book_id = ? AND status = ?`
	it, err = scanSQLiteItem(r.db.QueryRowContext(timeoutCtx, selectSQL, userID, bookID, string(status)))
	if err != nil {
		return Item{}, false, fmt.Errorf("select user book: %w", err)
	}
	return it, false, nil
}

func (r *SQLiteRepo) ListByStatus(ctx context.Context, userID string, status Status, sort Sort) ([]Item, error) {
	query := joinedSelect + `
	WHERE ub.user_id = ? AND ub.status = ?
	ORDER BY ` + orderClause(sort)
	return r.list(ctx, query, userID, string(status))
}

func (r *SQLiteRepo) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	query := joinedSelect + `
	WHERE ub.user_id = ?
	ORDER BY ub.id ASC`
	return r.list(ctx, query, userID)
}

func (r *SQLiteRepo) list(ctx context.Context, query string, args ...any) ([]Item, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		it, err := scanSQLiteJoined(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, userID string, id int64) (Item, error) {
	query := joinedSelect + `
	WHERE ub.id = ? AND ub.user_id = ?`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	it, err := scanSQLiteJoined(r.db.QueryRowContext(timeoutCtx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, userID string, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, `DELETE FROM user_books WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
