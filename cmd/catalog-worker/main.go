package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cardcompass/internal/amqp"
	"cardcompass/internal/catalog"
	"cardcompass/internal/catalog/sheets"
	"cardcompass/internal/config"
	"cardcompass/internal/store"
	"cardcompass/internal/store/memory"
	"cardcompass/internal/storage"
	"cardcompass/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting catalog-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var cat store.CardCatalog
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		cat = repo
	default:
		// A memory-backed worker only makes sense for local smoke tests.
		cat = memory.New()
		logger.Warn("Using memory backend, refreshed catalog will not be shared")
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
		logger.Info("Sheets catalog source initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		source = catalog.NewStaticSource()
		logger.Info("Static catalog source initialized")
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
	} else {
		logger.Info("AMQP disabled - running on the periodic schedule only")
	}

	var notifier worker.Notifier
	if amqpClient != nil {
		notifier = amqpClient
	}
	refresher := worker.NewRefreshWorker(cat, source, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := refresher.SeedIfEmpty(ctx); err != nil {
		logger.Error("Failed to seed card catalog", "error", err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)

	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.ConsumeCatalogRefresh(ctx, func(msg *amqp.CatalogRefreshMessage) error {
				return refresher.HandleRefreshMessage(ctx, msg)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if _, err := refresher.RefreshOnce(ctx); err != nil {
					logger.Error("Scheduled refresh failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
