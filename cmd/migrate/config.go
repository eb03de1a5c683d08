package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"bookshelf/db/migrations"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/platform/sqlite"

	"github.com/jackc/pgx/v5/stdlib"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// dialectDir is where new migrations for driver are written.
func dialectDir(driver string) string {
	return filepath.Join(migrationsDir(), driver)
}

// openDB returns a database/sql handle for goose and a func releasing it.
func openDB(ctx context.Context, g *Globals) (*sql.DB, func(), error) {
	switch g.Driver {
	case migrations.DialectPostgres:
		pool, err := postgres.Open(ctx, g.DSN)
		if err != nil {
			return nil, nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, func() {
			_ = db.Close()
			pool.Close()
		}, nil
	case migrations.DialectSQLite:
		db, err := sqlite.Connect(ctx, g.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver %q", g.Driver)
	}
}
