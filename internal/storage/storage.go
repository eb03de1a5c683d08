// Package storage selects and opens the shelf store backend.
package storage

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/platform/sqlite"
	"bookshelf/internal/readinglist"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver     string
	DSN        string
	SQLitePath string
	Timeout    time.Duration
}

// Store bundles the repositories of one backend.
type Store struct {
	Books book.Repository
	Items readinglist.Repository

	ping  func(ctx context.Context) error
	close func()
}

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close() { s.close() }

// Open connects to the configured backend. The SQLite backend migrates its
// schema on open; Postgres expects cmd/migrate to have run.
func Open(ctx context.Context, opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverPostgres:
		pool, err := postgres.Open(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{
			Books: book.NewPostgresRepo(pool, opts.Timeout),
			Items: readinglist.NewPostgresRepo(pool, opts.Timeout),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil
	case DriverSQLite:
		db, err := sqlite.Open(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Books: book.NewSQLiteRepo(db, opts.Timeout),
			Items: readinglist.NewSQLiteRepo(db, opts.Timeout),
			ping:  db.PingContext,
			close: func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", opts.Driver)
	}
}
