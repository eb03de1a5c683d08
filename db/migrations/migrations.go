// Package migrations embeds the goose migrations for every supported store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Dir returns the embedded directory holding the migrations for dialect.
func Dir(dialect string) (fs.FS, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(FS, dialect)
	default:
		return nil, fmt.Errorf("unsupported migration dialect: %s", dialect)
	}
}

func NewProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	dir, err := Dir(dialect)
	if err != nil {
		return nil, err
	}
	gooseDialect := goose.DialectPostgres
	if dialect == DialectSQLite {
		gooseDialect = goose.DialectSQLite3
	}
	return goose.NewProvider(gooseDialect, db, dir)
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dialect, err)
	}
	return nil
}
