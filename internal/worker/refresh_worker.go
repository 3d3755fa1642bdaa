// Package worker runs catalog refreshes in the background, off the request
// path.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"cardcompass/internal/amqp"
	"cardcompass/internal/catalog"
	"cardcompass/internal/store"
)

// Notifier publishes catalog change notices. Satisfied by *amqp.Client; nil
// means run without notifications.
type Notifier interface {
	PublishCatalogUpdated(ctx context.Context, cards int) error
}

type RefreshWorker struct {
	catalog  store.CardCatalog
	source   catalog.Source
	notifier Notifier
	logger   *slog.Logger
}

func NewRefreshWorker(cat store.CardCatalog, source catalog.Source, notifier Notifier, logger *slog.Logger) *RefreshWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshWorker{
		catalog:  cat,
		source:   source,
		notifier: notifier,
		logger:   logger,
	}
}

// SeedIfEmpty loads the built-in catalog when the store has no cards yet, so
// a fresh deployment can serve optimizations before the first refresh.
func (w *RefreshWorker) SeedIfEmpty(ctx context.Context) error {
	cards, err := w.catalog.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	if len(cards) > 0 {
		return nil
	}

	seed := catalog.SeedCards()
	if err := w.catalog.UpsertCards(ctx, seed); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	w.logger.InfoContext(ctx, "Seeded empty card catalog", "cards", len(seed))
	return nil
}

// RefreshOnce fetches the current card set from the source and upserts it.
func (w *RefreshWorker) RefreshOnce(ctx context.Context) (int, error) {
	cards, err := w.source.FetchCards(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch cards: %w", err)
	}
	if len(cards) == 0 {
		w.logger.WarnContext(ctx, "Card source returned no cards, keeping current catalog")
		return 0, nil
	}

	if err := w.catalog.UpsertCards(ctx, cards); err != nil {
		return 0, fmt.Errorf("store cards: %w", err)
	}

	w.logger.InfoContext(ctx, "Card catalog refreshed", "cards", len(cards))

	if w.notifier != nil {
		if err := w.notifier.PublishCatalogUpdated(ctx, len(cards)); err != nil {
			w.logger.WarnContext(ctx, "Failed to publish catalog updated notice", "error", err)
		}
	}

	return len(cards), nil
}

// HandleRefreshMessage is the AMQP consumer callback. Errors propagate so the
// delivery gets requeued.
func (w *RefreshWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.CatalogRefreshMessage) error {
	w.logger.InfoContext(ctx, "Handling catalog refresh request", "reason", msg.Reason)
	_, err := w.RefreshOnce(ctx)
	return err
}
