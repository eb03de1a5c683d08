package main

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectMigrations_ParsesDialectDirs(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// this file lives in cmd/migrate/, so repo root is ../..
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))

	for _, dialect := range []string{"postgres", "sqlite"} {
		dir := filepath.Join(repoRoot, "db", "migrations", dialect)
		migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
		require.NoError(t, err, dialect)
		assert.NotEmpty(t, migrations, dialect)
	}
}

func sqliteGlobals(t *testing.T) (*Globals, *bytes.Buffer) {
	var out bytes.Buffer
	return &Globals{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "migrate.db"),
		out:        &out,
	}, &out
}

func TestCommands_SQLiteRoundTrip(t *testing.T) {
	g, out := sqliteGlobals(t)

	require.NoError(t, (&StatusCmd{}).Run(g))
	assert.Contains(t, out.String(), "pending")

	out.Reset()
	require.NoError(t, (&UpCmd{}).Run(g))
	assert.Contains(t, out.String(), "00001_create_shelf.sql")
	assert.Contains(t, out.String(), "(1 new)")

	out.Reset()
	require.NoError(t, (&UpCmd{}).Run(g))
	assert.Contains(t, out.String(), "(0 new)")

	out.Reset()
	require.NoError(t, (&StatusCmd{}).Run(g))
	assert.Contains(t, out.String(), "applied")

	out.Reset()
	require.NoError(t, (&DownCmd{}).Run(g))
	assert.Contains(t, out.String(), "Rolled back")
}

func TestCommands_UnknownDriver(t *testing.T) {
	g, _ := sqliteGlobals(t)
	g.Driver = "mysql"
	assert.Error(t, (&UpCmd{}).Run(g))
}

func TestCLI_ParsesCommands(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("migrate"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--driver", "sqlite", "--sqlite-path", "x.db", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", kctx.Command())
	assert.Equal(t, "sqlite", cli.Driver)
	assert.Equal(t, "x.db", cli.SQLitePath)

	_, err = parser.Parse([]string{"--driver", "oracle", "up"})
	assert.Error(t, err)
}
