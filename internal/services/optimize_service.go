// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"

	"cardcompass/internal/core"
	"cardcompass/internal/store"
)

// OptimizeService runs spending optimizations against stored wallets or
// inline card sets.
type OptimizeService struct {
	userCards store.UserCardStore
	prefs     store.PreferenceStore
	optimizer *core.Optimizer
}

func NewOptimizeService(userCards store.UserCardStore, prefs store.PreferenceStore, optimizer *core.Optimizer) *OptimizeService {
	if optimizer == nil {
		optimizer = core.NewOptimizer(nil, nil)
	}
	return &OptimizeService{
		userCards: userCards,
		prefs:     prefs,
		optimizer: optimizer,
	}
}

// OptimizeForUser loads the user's wallet and preference and runs the
// optimizer over the given monthly spending plan.
func (s *OptimizeService) OptimizeForUser(ctx context.Context, userID string, spending core.SpendingPlan) (core.OptimizationResult, error) {
	cards, err := s.userCards.ListUserCards(ctx, userID)
	if err != nil {
		return core.OptimizationResult{}, fmt.Errorf("load user cards: %w", err)
	}

	pref, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		return core.OptimizationResult{}, fmt.Errorf("load preference: %w", err)
	}

	return s.optimizer.Optimize(cards, spending, pref), nil
}

// OptimizeCards runs the optimizer over an explicit card set, for callers
// that manage their wallet outside the service.
func (s *OptimizeService) OptimizeCards(cards []core.Card, spending core.SpendingPlan, pref core.Preference) core.OptimizationResult {
	normalized := make([]core.Card, len(cards))
	for i, card := range cards {
		normalized[i] = card.Normalized()
	}
	return s.optimizer.Optimize(normalized, spending, pref)
}
