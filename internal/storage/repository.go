// Package storage provides the SQLite-backed store, for deployments that
// need the catalog and user holdings to survive restarts.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cardcompass/internal/core"
	"cardcompass/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListCards implements store.CardCatalog. Cards come back in catalog order,
// which is the order they were first inserted.
func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM cards ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		var card core.Card
		if err := json.Unmarshal([]byte(payload), &card); err != nil {
			return nil, fmt.Errorf("decode card payload: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id string) (*core.Card, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM cards WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card %s: %w", id, err)
	}

	var card core.Card
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		return nil, fmt.Errorf("decode card payload: %w", err)
	}
	return &card, nil
}

// UpsertCards inserts or replaces catalog entries in a single transaction.
// New cards go to the end of the catalog; existing cards keep their position.
func (r *SQLiteRepository) UpsertCards(ctx context.Context, cards []core.Card) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	for _, card := range cards {
		card = card.Normalized()
		card.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("encode card %s: %w", card.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cards (id, payload, position, updated_at)
			VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM cards), CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
				payload = excluded.payload,
				updated_at = CURRENT_TIMESTAMP`,
			card.ID, string(payload))
		if err != nil {
			return fmt.Errorf("upsert card %s: %w", card.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	slog.InfoContext(ctx, "Card catalog updated", "cards", len(cards))
	return nil
}

// ListUserCards implements store.UserCardStore, in the order the user added
// the cards.
func (r *SQLiteRepository) ListUserCards(ctx context.Context, userID string) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.payload
		FROM user_cards uc
		JOIN cards c ON c.id = uc.card_id
		WHERE uc.user_id = ?
		ORDER BY uc.position`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan user card row: %w", err)
		}
		var card core.Card
		if err := json.Unmarshal([]byte(payload), &card); err != nil {
			return nil, fmt.Errorf("decode card payload: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) AddUserCard(ctx context.Context, userID, cardID string) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM cards WHERE id = ?`, cardID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrCardNotFound
	}
	if err != nil {
		return fmt.Errorf("check card %s: %w", cardID, err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT 1 FROM user_cards WHERE user_id = ? AND card_id = ?`,
		userID, cardID).Scan(&exists)
	if err == nil {
		return store.ErrCardHeld
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check held card: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_cards (user_id, card_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM user_cards WHERE user_id = ?))`,
		userID, cardID, userID)
	if err != nil {
		return fmt.Errorf("add user card: %w", err)
	}

	slog.InfoContext(ctx, "Card added to wallet", "user_id", userID, "card_id", cardID)
	return nil
}

func (r *SQLiteRepository) RemoveUserCard(ctx context.Context, userID, cardID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_cards WHERE user_id = ? AND card_id = ?`,
		userID, cardID)
	if err != nil {
		return fmt.Errorf("remove user card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove user card: %w", err)
	}
	if affected == 0 {
		return store.ErrCardNotFound
	}

	slog.InfoContext(ctx, "Card removed from wallet", "user_id", userID, "card_id", cardID)
	return nil
}

// GetPreference implements store.PreferenceStore. Users without a stored
// preference default to cashback.
func (r *SQLiteRepository) GetPreference(ctx context.Context, userID string) (core.Preference, error) {
	var pref string
	err := r.db.QueryRowContext(ctx,
		`SELECT preference FROM user_preferences WHERE user_id = ?`, userID).Scan(&pref)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PreferCashback, nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	return core.ParsePreference(pref), nil
}

func (r *SQLiteRepository) SetPreference(ctx context.Context, userID string, pref core.Preference) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, preference, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			preference = excluded.preference,
			updated_at = CURRENT_TIMESTAMP`,
		userID, string(pref))
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}
