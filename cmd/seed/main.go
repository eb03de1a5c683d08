package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/crypto"
	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/readinglist"
	"bookshelf/internal/storage"

	"github.com/alecthomas/kong"
)

const userAgent = "bookshelf-seed/1.0"

type CLI struct {
	User        string        `help:"Subject (user id) whose shelf is seeded" required:"" short:"u"`
	TokenTTL    time.Duration `help:"Lifetime of the printed development token" default:"24h"`
	FromCatalog string        `help:"Also add catalog search results for this query to the wishlist" placeholder:"QUERY"`
	NoSamples   bool          `help:"Skip the built-in sample books"`
}

func (c *CLI) Run(cfg config.Config, out io.Writer) error {
	ctx := context.Background()

	store, err := storage.Open(ctx, storage.Options{
		Driver:     cfg.StoreDriver,
		DSN:        cfg.DatabaseDSN,
		SQLitePath: cfg.SQLitePath,
		Timeout:    cfg.DBTimeout,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	svc := readinglist.NewService(store.Books, store.Items)

	var entries []readinglist.AddInput
	if !c.NoSamples {
		entries = append(entries, samples...)
	}
	if c.FromCatalog != "" {
		client := googlebooks.NewClient(userAgent, cfg.CatalogTimeout,
			googlebooks.WithBaseURL(cfg.GoogleBooksBaseURL),
			googlebooks.WithAPIKey(cfg.GoogleBooksAPIKey),
			googlebooks.WithRateLimit(cfg.CatalogRPS),
		)
		results := catalog.NewService(client).Search(ctx, c.FromCatalog)
		slog.Info("catalog results", "query", c.FromCatalog, "count", len(results))
		entries = append(entries, wishlistEntries(results)...)
	}

	created, err := seedShelf(ctx, svc, c.User, entries)
	if err != nil {
		return err
	}
	slog.Info("shelf seeded", "user", c.User, "entries", len(entries), "created", created)

	token, _, err := crypto.GenerateToken(cfg.JWTSecret, c.User, c.TokenTTL)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	fmt.Fprintf(out, "Authorization: Bearer %s\n", token)
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("seed"),
		kong.Description("Seed a user's bookshelf and print a development bearer token."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	if err := kctx.Run(cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
