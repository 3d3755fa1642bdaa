package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardcompass/internal/amqp"
	"cardcompass/internal/catalog"
	"cardcompass/internal/catalog/sheets"
	"cardcompass/internal/config"
	apphttp "cardcompass/internal/http"
	"cardcompass/internal/services"
	"cardcompass/internal/store"
	"cardcompass/internal/store/memory"
	"cardcompass/internal/storage"
	"cardcompass/internal/worker"
)

type backendStore interface {
	store.CardCatalog
	store.UserCardStore
	store.PreferenceStore
}

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var backend backendStore
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		backend = repo
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		backend = memory.New()
		logger.Info("Initialized memory backend")
	}

	var source catalog.Source
	switch cfg.CatalogSource {
	case "sheets":
		src, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Sheets catalog source", "error", err)
			os.Exit(1)
		}
		source = src
		logger.Info("Initialized Sheets catalog source", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		source = catalog.NewStaticSource()
		logger.Info("Initialized static catalog source")
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRefreshQueue, cfg.AMQPUpdatedQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	var notifier worker.Notifier
	if amqpClient != nil {
		notifier = amqpClient
	}
	refresher := worker.NewRefreshWorker(backend, source, notifier, logger)
	if err := refresher.SeedIfEmpty(context.Background()); err != nil {
		logger.Error("Failed to seed card catalog", "error", err)
		os.Exit(1)
	}

	optimizer := services.NewOptimizeService(backend, backend, nil)
	catalogSvc := services.NewCatalogService(backend, amqpClient, refresher)

	srv := apphttp.NewServer(":"+cfg.Port, optimizer, catalogSvc, backend)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting cardcompass server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
