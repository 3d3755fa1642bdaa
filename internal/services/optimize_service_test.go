package services

import (
	"context"
	"testing"

	"cardcompass/internal/catalog"
	"cardcompass/internal/core"
	"cardcompass/internal/store/memory"
)

func TestOptimizeForUser(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded(catalog.SeedCards())
	if err := s.AddUserCard(ctx, "u1", "chase_freedom_unlimited"); err != nil {
		t.Fatalf("add card: %v", err)
	}

	svc := NewOptimizeService(s, s, nil)

	res, err := svc.OptimizeForUser(ctx, "u1", core.SpendingPlan{"groceries": 100})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if res.Error != "" {
		t.Fatalf("unexpected error result: %q", res.Error)
	}
	if res.Currency != "USD" {
		t.Fatalf("currency = %q, want USD for default cashback preference", res.Currency)
	}
	if res.TotalMonthlyRewards != 1.5 {
		t.Fatalf("monthly rewards = %v, want 1.5", res.TotalMonthlyRewards)
	}
}

func TestOptimizeForUserEmptyWallet(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded(catalog.SeedCards())
	svc := NewOptimizeService(s, s, nil)

	res, err := svc.OptimizeForUser(ctx, "nobody", core.SpendingPlan{"gas": 50})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if !res.NoCards() {
		t.Fatalf("expected no-cards result, got %+v", res)
	}
}

func TestOptimizeForUserHonorsPreference(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded(catalog.SeedCards())
	if err := s.AddUserCard(ctx, "u1", "amex_gold"); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if err := s.SetPreference(ctx, "u1", core.PreferPoints); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	svc := NewOptimizeService(s, s, nil)
	res, err := svc.OptimizeForUser(ctx, "u1", core.SpendingPlan{"groceries": 500})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if res.Currency != "points" {
		t.Fatalf("currency = %q, want points", res.Currency)
	}
	if res.TotalMonthlyRewards != 2000 {
		t.Fatalf("monthly rewards = %v, want 2000 points", res.TotalMonthlyRewards)
	}
}

func TestOptimizeCardsNormalizesInput(t *testing.T) {
	svc := NewOptimizeService(nil, nil, nil)

	// Zero base rate falls back to 1x on unmatched categories.
	cards := []core.Card{{ID: "bare", Name: "Bare", Type: core.TypeCashback}}
	res := svc.OptimizeCards(cards, core.SpendingPlan{"anything": 100}, core.PreferCashback)
	if res.TotalMonthlyRewards != 1 {
		t.Fatalf("monthly rewards = %v, want 1.0 at the default base rate", res.TotalMonthlyRewards)
	}
}
