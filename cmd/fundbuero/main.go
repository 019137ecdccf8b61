package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/fundbuero/internal/api"
	"github.com/erazemk/fundbuero/internal/config"
	"github.com/erazemk/fundbuero/internal/db"
	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/internal/store"
)

func main() {
	cfg, err := config.Load(os.Args[1:], nil, os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Auto-generated on first run and kept in the database.
		if jwtSecret, err = store.GetJWTSecret(ctx, database); err != nil {
			return fmt.Errorf("getting JWT secret: %w", err)
		}
	}

	backend, err := openMedia(ctx, cfg)
	if err != nil {
		return err
	}

	go purgeRevocations(ctx, database, revocationPurgeInterval)

	router := api.NewRouter(database, api.NewSessions(database, jwtSecret, cfg.SessionTTL), media.NewLibrary(backend))

	mux := http.NewServeMux()
	mux.Handle("/api/", router)
	mux.Handle("/uploads/", router)
	mux.Handle("/static/", router)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "media", cfg.Media.Backend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

// openDatabase opens the database, creating the schema and the default
// vocabularies if they are missing.
func openDatabase(path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	if err := db.Seed(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding vocabularies: %w", err)
	}
	slog.Info("database ready", "path", path)
	return database, nil
}

func openMedia(ctx context.Context, cfg *config.Config) (media.Backend, error) {
	switch cfg.Media.Backend {
	case config.MediaS3:
		b, err := media.NewBucket(ctx, media.BucketOptions{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("opening media bucket: %w", err)
		}
		slog.Info("media store ready", "backend", "s3", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)
		return b, nil
	default:
		d, err := media.NewDir(cfg.Media.Root)
		if err != nil {
			return nil, err
		}
		slog.Info("media store ready", "backend", "fs", "root", cfg.Media.Root)
		return d, nil
	}
}
