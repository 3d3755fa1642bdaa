package services

import (
	"context"
	"fmt"
	"log/slog"

	"cardcompass/internal/amqp"
	"cardcompass/internal/core"
	"cardcompass/internal/store"
	"cardcompass/internal/worker"
)

// CatalogService exposes catalog reads and refresh requests to the API.
type CatalogService struct {
	catalog    store.CardCatalog
	amqpClient *amqp.Client
	refresher  *worker.RefreshWorker
}

// NewCatalogService wires the catalog store with optional messaging. With an
// AMQP client, refresh requests go to the worker queue; otherwise refresher
// runs them inline.
func NewCatalogService(catalog store.CardCatalog, amqpClient *amqp.Client, refresher *worker.RefreshWorker) *CatalogService {
	return &CatalogService{
		catalog:    catalog,
		amqpClient: amqpClient,
		refresher:  refresher,
	}
}

func (s *CatalogService) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.catalog.ListCards(ctx)
}

func (s *CatalogService) GetCard(ctx context.Context, id string) (*core.Card, error) {
	return s.catalog.GetCard(ctx, id)
}

// RequestRefresh asks for a catalog refresh. Queued when messaging is up,
// otherwise executed synchronously.
func (s *CatalogService) RequestRefresh(ctx context.Context, reason string) (queued bool, err error) {
	if s.amqpClient != nil {
		if err := s.amqpClient.PublishCatalogRefresh(ctx, reason); err != nil {
			return false, fmt.Errorf("queue refresh: %w", err)
		}
		return true, nil
	}

	if s.refresher == nil {
		return false, fmt.Errorf("no refresh path configured")
	}

	slog.InfoContext(ctx, "AMQP not configured, refreshing catalog inline", "reason", reason)
	if _, err := s.refresher.RefreshOnce(ctx); err != nil {
		return false, fmt.Errorf("refresh catalog: %w", err)
	}
	return false, nil
}
