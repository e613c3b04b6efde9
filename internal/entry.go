// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/clipboard"
	"github.com/starford/ansuz/internal/devstore"
	"github.com/starford/ansuz/internal/dialog"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/merge"
	"github.com/starford/ansuz/internal/refindex"
	"github.com/starford/ansuz/internal/resolver"
	"github.com/starford/ansuz/internal/scan"
	"github.com/starford/ansuz/internal/store"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.clipboard == nil {
		app.clipboard = clipboard.System{}
	}
	if app.dialog == nil {
		app.dialog = dialog.NewTerminal(os.Stdin, os.Stdout)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	return app, nil
}

// buildCore wires the store client, reference index, and processor shared by
// the scan and mcp commands. The returned cleanup closes the journal.
func buildCore(cfg *Config) (*scan.Processor, *refindex.Index, *journal.DB, func(), error) {
	client := store.NewClient(cfg.Store.BaseURL, cfg.Store.Token)
	refs := refindex.New(client, cfg.Scan.FolderName)

	var jdb *journal.DB
	cleanup := func() {}
	if cfg.Journal.Path != "" {
		var err error
		jdb, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("open journal: %w", err)
		}
		cleanup = func() { jdb.Close() }
	}

	proc := &scan.Processor{
		Store:    client,
		Resolver: resolver.New(client),
		Engine:   merge.NewEngine(refs, cfg.Scan.Uninfluenced()),
	}
	if jdb != nil {
		proc.Journal = jdb
	}
	return proc, refs, jdb, cleanup, nil
}

// RunScan executes one interactive scan session against the configured store.
func RunScan(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	slog.Info("Configuration loaded",
		slog.String("store_url", cfg.Store.BaseURL),
		slog.String("folder", cfg.Scan.FolderName),
		slog.Int("delay_ms", cfg.Scan.DelayMS),
		slog.String("log_level", cfg.App.LogLevel.String()))

	proc, refs, _, cleanup, err := buildCore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	loop := &scan.Loop{
		Processor: *proc,
		Clipboard: app.clipboard,
		Dialog:    app.dialog,
		Refs:      refs,
		Delay:     cfg.Scan.Delay(),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scan session: %w", err)
	}
	return nil
}

// RunMCP serves the MCP tool surface on stdin/stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	proc, refs, jdb, cleanup, err := buildCore(app.config)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpserver.New(proc, refs, jdb)
	return srv.ServeStdio()
}

// RunDevStore serves the in-memory development note store over HTTP.
func RunDevStore(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	router := devstore.NewRouter(devstore.New(), cfg.Store.Token)
	httpServer := &http.Server{
		Addr:    cfg.DevStore.Address(),
		Handler: router,
	}

	slog.Info("Dev store starting...", slog.String("address", cfg.DevStore.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			slog.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Dev store error", slog.String("error", err.Error()))
		return err
	}

	slog.Info("Dev store stopped")
	return nil
}
