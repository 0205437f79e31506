package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tool-portal/api"
	"tool-portal/config"
	"tool-portal/dashboard"
	"tool-portal/notes"
	"tool-portal/registry"
	"tool-portal/session"
	"tool-portal/storage"
	"tool-portal/tui"
)

func main() {
	if err := run(os.Stdout, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	configPath := os.Getenv("PORTAL_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tuiMode := len(args) > 1 && args[1] == "tui"

	// The terminal UI owns stdout, so its logs go nowhere.
	logOut := w
	if tuiMode {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.Level()}))

	store, err := storage.Open(logger, cfg.Storage.Driver, cfg.Storage.Path, cfg.Storage.CacheTTL)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	reg := registry.Load(store, logger)
	page := dashboard.New(reg, notes.NewBook(store, logger), cfg.Categories, logger)
	logger.Info("dashboard loaded", "tools", reg.Len(), "categories", len(cfg.Categories))

	if tuiMode {
		return tui.Run(ctx, page)
	}
	return serve(ctx, cfg, page, logger)
}

func serve(ctx context.Context, cfg *config.Config, page *dashboard.Page, logger *slog.Logger) error {
	viewers := session.NewManager()
	defer viewers.CloseAll()

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      api.RegisterRoutes(page, viewers, staticFiles, logger),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")

		// Viewers hold open WebSockets, which Shutdown does not wait for.
		viewers.CloseAll()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	}
}
