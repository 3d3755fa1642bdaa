// Package memory provides an in-process store backend, used as the default
// and in tests.
package memory

import (
	"context"
	"sync"

	"cardcompass/internal/core"
	"cardcompass/internal/store"
)

type Store struct {
	mu    sync.Mutex
	cards map[string]core.Card
	order []string            // catalog insertion order
	held  map[string][]string // user id -> ordered card ids
	prefs map[string]core.Preference
}

func New() *Store {
	return &Store{
		cards: map[string]core.Card{},
		held:  map[string][]string{},
		prefs: map[string]core.Preference{},
	}
}

// NewSeeded returns a store pre-loaded with the given catalog.
func NewSeeded(cards []core.Card) *Store {
	s := New()
	_ = s.UpsertCards(context.Background(), cards)
	return s
}

func (s *Store) ListCards(_ context.Context) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Card, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cards[id])
	}
	return out, nil
}

func (s *Store) GetCard(_ context.Context, id string) (*core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return &card, nil
}

func (s *Store) UpsertCards(_ context.Context, cards []core.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}
		card = card.Normalized()
		if _, exists := s.cards[card.ID]; !exists {
			s.order = append(s.order, card.ID)
		}
		s.cards[card.ID] = card
	}
	return nil
}

func (s *Store) ListUserCards(_ context.Context, userID string) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.held[userID]
	out := make([]core.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := s.cards[id]; ok {
			out = append(out, card)
		}
	}
	return out, nil
}

func (s *Store) AddUserCard(_ context.Context, userID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[cardID]; !ok {
		return store.ErrCardNotFound
	}
	for _, id := range s.held[userID] {
		if id == cardID {
			return store.ErrCardHeld
		}
	}
	s.held[userID] = append(s.held[userID], cardID)
	return nil
}

func (s *Store) RemoveUserCard(_ context.Context, userID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.held[userID]
	for i, id := range ids {
		if id == cardID {
			s.held[userID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return store.ErrCardNotFound
}

func (s *Store) GetPreference(_ context.Context, userID string) (core.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pref, ok := s.prefs[userID]; ok {
		return pref, nil
	}
	return core.PreferCashback, nil
}

func (s *Store) SetPreference(_ context.Context, userID string, pref core.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = pref
	return nil
}
