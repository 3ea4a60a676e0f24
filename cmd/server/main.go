package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/meur/dexview/internal/api"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/logging"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/pokeapi"
	"github.com/meur/dexview/internal/storage"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to dexview.yaml")
	port := flag.String("port", "", "Server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	// Initialize storage
	store, err := storage.New(cfg.Server.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Data source and view models
	client := pokeapi.New(cfg.Source, logger)
	library := catalog.NewLibrary(catalog.NewLoader(client, cfg.Source, logger), logger)
	library.OnLoaded(func(coll models.Collection) {
		logger.Info("collection ready", "entries", len(coll))
	})
	details := detail.NewLoader(client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load runs in the background; list requests answer 503 until it finishes
	go func() {
		if err := library.Reload(ctx); err != nil {
			logger.Error("initial load failed", "error", err)
		}
	}()

	// Create router
	srv := api.New(store, library, details, cfg, logger)

	// Serve frontend static files (for production deployment)
	staticDir := cfg.Server.StaticDir
	if !filepath.IsAbs(staticDir) {
		workDir, _ := os.Getwd()
		staticDir = filepath.Join(workDir, staticDir)
	}
	srv.MountShell(staticDir)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("dexview API starting", "addr", "http://localhost:"+cfg.Server.Port, "db", cfg.Server.DBPath, "source", cfg.Source.BaseURL)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
