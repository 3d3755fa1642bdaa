package memory

import (
	"context"
	"errors"
	"testing"

	"cardcompass/internal/core"
	"cardcompass/internal/store"
)

func testCard(id string) core.Card {
	return core.Card{ID: id, Name: "Card " + id, Type: core.TypeCashback}
}

func TestUpsertAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.UpsertCards(ctx, []core.Card{testCard("a"), testCard("b")}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cards, err := s.ListCards(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "a" || cards[1].ID != "b" {
		t.Fatalf("unexpected catalog order: %v", cards)
	}

	// Upsert replaces by id without duplicating.
	updated := testCard("a")
	updated.Name = "Renamed"
	if err := s.UpsertCards(ctx, []core.Card{updated}); err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	cards, _ = s.ListCards(ctx)
	if len(cards) != 2 || cards[0].Name != "Renamed" {
		t.Fatalf("upsert should replace in place, got %v", cards)
	}

	// Normalization applies on the way in.
	if cards[0].Rewards.BaseRate != 1 {
		t.Fatalf("stored card not normalized, base rate = %v", cards[0].Rewards.BaseRate)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	s := New()
	err := s.UpsertCards(context.Background(), []core.Card{{ID: "", Name: "x", Type: core.TypeCashback}})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUserCardsOrderAndErrors(t *testing.T) {
	s := NewSeeded([]core.Card{testCard("a"), testCard("b"), testCard("c")})
	ctx := context.Background()

	if err := s.AddUserCard(ctx, "u1", "b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddUserCard(ctx, "u1", "a"); err != nil {
		t.Fatalf("add: %v", err)
	}

	held, _ := s.ListUserCards(ctx, "u1")
	if len(held) != 2 || held[0].ID != "b" || held[1].ID != "a" {
		t.Fatalf("held order should follow insertion, got %v", held)
	}

	if err := s.AddUserCard(ctx, "u1", "b"); !errors.Is(err, store.ErrCardHeld) {
		t.Fatalf("duplicate add = %v, want ErrCardHeld", err)
	}
	if err := s.AddUserCard(ctx, "u1", "nope"); !errors.Is(err, store.ErrCardNotFound) {
		t.Fatalf("unknown add = %v, want ErrCardNotFound", err)
	}

	if err := s.RemoveUserCard(ctx, "u1", "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	held, _ = s.ListUserCards(ctx, "u1")
	if len(held) != 1 || held[0].ID != "a" {
		t.Fatalf("after remove got %v", held)
	}
	if err := s.RemoveUserCard(ctx, "u1", "b"); !errors.Is(err, store.ErrCardNotFound) {
		t.Fatalf("remove missing = %v, want ErrCardNotFound", err)
	}
}

func TestPreferenceDefaultsToCashback(t *testing.T) {
	s := New()
	ctx := context.Background()

	pref, err := s.GetPreference(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pref != core.PreferCashback {
		t.Fatalf("default preference = %q, want cashback", pref)
	}

	if err := s.SetPreference(ctx, "u1", core.PreferPoints); err != nil {
		t.Fatalf("set: %v", err)
	}
	pref, _ = s.GetPreference(ctx, "u1")
	if pref != core.PreferPoints {
		t.Fatalf("preference = %q, want points", pref)
	}
}
