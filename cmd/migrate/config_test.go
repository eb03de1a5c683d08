package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectDir(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		driver string
		want   string
	}{
		{"postgres default", "", "postgres", filepath.Join("db", "migrations", "postgres")},
		{"sqlite default", "", "sqlite", filepath.Join("db", "migrations", "sqlite")},
		{"sqlite override", "/srv/migrations", "sqlite", filepath.Join("/srv/migrations", "sqlite")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MIGRATIONS_DIR", tt.env)
			assert.Equal(t, tt.want, dialectDir(tt.driver))
		})
	}
}

func TestOpenDB_SQLiteLeavesSchemaAlone(t *testing.T) {
	g, _ := sqliteGlobals(t)

	db, release, err := openDB(context.Background(), g)
	require.NoError(t, err)
	t.Cleanup(release)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'books'`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	g, _ := sqliteGlobals(t)
	g.Driver = "mysql"

	_, _, err := openDB(context.Background(), g)
	assert.ErrorContains(t, err, `unsupported driver "mysql"`)
}

func TestCreateCmd_WritesIntoDialectDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)
	g, out := sqliteGlobals(t)

	require.NoError(t, (&CreateCmd{Name: "add_notes"}).Run(g))

	matches, err := filepath.Glob(filepath.Join(dir, "sqlite", "*_add_notes.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Contains(t, out.String(), filepath.Join(dir, "sqlite"))
}
