package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 3*time.Second, cfg.DBTimeout)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.GoogleBooksBaseURL)
	assert.Equal(t, float64(10), cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/shelf.db")
	t.Setenv("CATALOG_TIMEOUT", "2s")
	t.Setenv("CATALOG_RPS", "1.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ENABLE_HSTS", "true")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/shelf.db", cfg.SQLitePath)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 1.5, cfg.CatalogRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
}

func TestFromViper_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromViper(viper.New())
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestFromViper_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mysql")

	_, err := FromViper(viper.New())
	assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
}

func TestFromViper_ExplicitValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	v := viper.New()
	v.Set("JWT_SECRET", "from-file")
	v.Set("DB_TIMEOUT", "750ms")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 750*time.Millisecond, cfg.DBTimeout)
}

func TestLoadEnvFiles_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BOOKSHELF_T_A=env\nBOOKSHELF_T_B=env\nBOOKSHELF_T_C=env\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("BOOKSHELF_T_A=local\nBOOKSHELF_T_B=local\n"), 0o644))

	t.Chdir(dir)
	t.Setenv("BOOKSHELF_T_A", "process")
	for _, k := range []string{"BOOKSHELF_T_B", "BOOKSHELF_T_C"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	LoadEnvFiles()

	assert.Equal(t, "process", os.Getenv("BOOKSHELF_T_A"))
	assert.Equal(t, "local", os.Getenv("BOOKSHELF_T_B"))
	assert.Equal(t, "env", os.Getenv("BOOKSHELF_T_C"))
}
