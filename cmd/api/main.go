package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/readinglist"
	"bookshelf/internal/shelf"
	"bookshelf/internal/storage"
)

const userAgent = "bookshelf/1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)

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

	client := googlebooks.NewClient(userAgent, cfg.CatalogTimeout,
		googlebooks.WithBaseURL(cfg.GoogleBooksBaseURL),
		googlebooks.WithAPIKey(cfg.GoogleBooksAPIKey),
		googlebooks.WithRateLimit(cfg.CatalogRPS),
	)
	handler := shelf.NewHTTPHandler(
		readinglist.NewService(store.Books, store.Items),
		catalog.NewService(client),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(ctx, cfg, handler, store),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
