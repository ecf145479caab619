// Package main is the entry point for the BlogBuddy API server.
// It loads configuration, wires the backing stores, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/config"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/database"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/handlers"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/router"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/session"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	// Select the backing store. The in-memory store is the default;
	// Postgres is opted into per deployment.
	var storage store.Storage
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		storage = store.NewPostgresStore(db)
	default:
		storage = store.NewMemoryStore()
	}

	// Seed the admin user, categories, and sample posts (no-op if the
	// admin user already exists).
	if err := store.Seed(storage, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	// Sessions live in Valkey when configured, in-process otherwise.
	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	var sessions session.Store
	if cfg.UseValkey() {
		valkeyClient, err := session.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		sessions = session.NewValkeyStore(valkeyClient, secureCookies)
	} else {
		sessions = session.NewMemoryStore(secureCookies)
	}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessions, storage)
	publicHandlers := handlers.NewPublic(storage)
	adminHandlers := handlers.NewAdmin(storage)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessions, authHandlers, publicHandlers, adminHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
