// Package store defines the ports for card and user persistence.
package store

import (
	"context"
	"errors"

	"cardcompass/internal/core"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrCardHeld     = errors.New("card already held")
)

type (
	// CardCatalog holds the full set of known cards, keyed by card id.
	CardCatalog interface {
		ListCards(ctx context.Context) ([]core.Card, error)
		GetCard(ctx context.Context, id string) (*core.Card, error)
		// UpsertCards inserts or replaces cards by id.
		UpsertCards(ctx context.Context, cards []core.Card) error
	}

	// UserCardStore tracks which catalog cards a user holds, in the order
	// they were added. Ordering matters: best-card tie-breaking is stable in
	// held-card order.
	UserCardStore interface {
		ListUserCards(ctx context.Context, userID string) ([]core.Card, error)
		AddUserCard(ctx context.Context, userID, cardID string) error
		RemoveUserCard(ctx context.Context, userID, cardID string) error
	}

	// PreferenceStore persists a user's reward-type preference.
	PreferenceStore interface {
		GetPreference(ctx context.Context, userID string) (core.Preference, error)
		SetPreference(ctx context.Context, userID string, pref core.Preference) error
	}
)
