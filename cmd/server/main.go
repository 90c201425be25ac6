/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the shift engine server.
	Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
 1. Load configuration from the environment, then command-line flags
 2. Initialize SQLite store
 3. Seed the template catalog from the TOML file, if configured
 4. Create API handler with dependencies
 5. Start the catalog sync job
 6. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-port    HTTP server port (overrides SERVER_PORT)
	-db      SQLite database path (overrides DATABASE_PATH)
	         Use ":memory:" for in-memory database
	-catalog TOML template catalog (overrides ROSTER_CATALOG_FILE)

ENVIRONMENT:

	See config/config.go. The ROSTER_* working-hours variables override the
	stored settings on every request without touching the database.

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop the catalog sync job
	2. Stop accepting new connections
	3. Wait for active requests to complete (SERVER_SHUTDOWN_TIMEOUT)
	4. Close database connection

EXAMPLES:

	# Run with file database and catalog
	./server -db="./data/roster.db" -catalog=turnos.toml

	# Run with in-memory database, English messages
	ROSTER_LOCALE=en ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Catalog sync job
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/i18n"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags win over the environment
	flag.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "HTTP server port")
	flag.StringVar(&cfg.Database.Path, "db", cfg.Database.Path, "SQLite database path")
	flag.StringVar(&cfg.Roster.CatalogFile, "catalog", cfg.Roster.CatalogFile, "TOML template catalog")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	if cfg.Roster.CatalogFile != "" {
		cat, err := factory.LoadCatalog(cfg.Roster.CatalogFile)
		if err != nil {
			return err
		}
		added, err := store.SeedCatalog(context.Background(), cat)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog loaded", "path", cfg.Roster.CatalogFile, "turnos", len(cat.Turnos), "added", added)
	}

	// Initialize handler
	tr, err := i18n.New(cfg.Roster.Locale)
	if err != nil {
		return err
	}
	handler, err := api.NewHandler(store, tr)
	if err != nil {
		return err
	}
	handler.Logger = logger
	if cfg.Roster.HasOverrides() {
		handler.Overrides = cfg.Roster.Apply
		if stored, err := store.WorkingHours(context.Background()); err == nil {
			logger.Info("working-hours overrides active", "effective", cfg.Roster.Apply(stored))
		}
	}

	// Keep the catalog in sync with the file
	if cfg.Roster.CatalogFile != "" && cfg.Roster.CatalogSyncInterval > 0 {
		catalogSync := api.NewCatalogSync(store, cfg.Roster.CatalogFile, logger)
		catalogSync.CheckInterval = cfg.Roster.CatalogSyncInterval
		catalogSync.Start()
		defer catalogSync.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg.Server.CORSOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "env", cfg.Environment, "db", cfg.Database.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
