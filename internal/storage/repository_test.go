package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cardcompass/internal/core"
	"cardcompass/internal/store"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "cards.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testCard(id string) core.Card {
	return core.Card{
		ID:   id,
		Name: "Card " + id,
		Type: core.TypeCashback,
		Rewards: core.Rewards{
			BaseRate:   1.5,
			Categories: map[string]float64{"groceries": 3},
		},
	}
}

func TestUpsertAndListCards(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.UpsertCards(ctx, []core.Card{testCard("a"), testCard("b")}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cards, err := repo.ListCards(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "a" || cards[1].ID != "b" {
		t.Fatalf("unexpected catalog: %+v", cards)
	}
	if cards[0].Rewards.Categories["groceries"] != 3 {
		t.Fatalf("payload round trip lost categories: %+v", cards[0].Rewards)
	}

	// Updating keeps the original position.
	updated := testCard("a")
	updated.Name = "Renamed"
	if err := repo.UpsertCards(ctx, []core.Card{updated}); err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	cards, _ = repo.ListCards(ctx)
	if len(cards) != 2 || cards[0].Name != "Renamed" {
		t.Fatalf("update should replace in place, got %+v", cards)
	}

	got, err := repo.GetCard(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "b" {
		t.Fatalf("get returned %q", got.ID)
	}
	if _, err := repo.GetCard(ctx, "missing"); !errors.Is(err, store.ErrCardNotFound) {
		t.Fatalf("get missing = %v, want ErrCardNotFound", err)
	}
}

func TestUserCards(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.UpsertCards(ctx, []core.Card{testCard("a"), testCard("b")}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.AddUserCard(ctx, "u1", "b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddUserCard(ctx, "u1", "a"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddUserCard(ctx, "u1", "b"); !errors.Is(err, store.ErrCardHeld) {
		t.Fatalf("duplicate add = %v, want ErrCardHeld", err)
	}
	if err := repo.AddUserCard(ctx, "u1", "nope"); !errors.Is(err, store.ErrCardNotFound) {
		t.Fatalf("unknown add = %v, want ErrCardNotFound", err)
	}

	held, err := repo.ListUserCards(ctx, "u1")
	if err != nil {
		t.Fatalf("list user cards: %v", err)
	}
	if len(held) != 2 || held[0].ID != "b" || held[1].ID != "a" {
		t.Fatalf("held order should follow insertion, got %+v", held)
	}

	if err := repo.RemoveUserCard(ctx, "u1", "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.RemoveUserCard(ctx, "u1", "b"); !errors.Is(err, store.ErrCardNotFound) {
		t.Fatalf("remove missing = %v, want ErrCardNotFound", err)
	}
}

func TestPreferences(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	pref, err := repo.GetPreference(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pref != core.PreferCashback {
		t.Fatalf("default preference = %q, want cashback", pref)
	}

	if err := repo.SetPreference(ctx, "u1", core.PreferPoints); err != nil {
		t.Fatalf("set: %v", err)
	}
	pref, _ = repo.GetPreference(ctx, "u1")
	if pref != core.PreferPoints {
		t.Fatalf("preference = %q, want points", pref)
	}
}
