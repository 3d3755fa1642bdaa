package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cardcompass/internal/core"
)

// OptimizeRequest is the body of POST /api/v1/optimize. Callers either name a
// stored user or pass their cards inline.
type OptimizeRequest struct {
	UserID     string            `json:"user_id,omitempty"`
	Cards      []core.Card       `json:"cards,omitempty"`
	Categories core.SpendingPlan `json:"categories"`
	Preference string            `json:"preference,omitempty"`
}

const maxRequestBody = 1 << 20 // 1 MiB

func parseOptimizeRequest(r *http.Request) (*OptimizeRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxRequestBody {
		return nil, errors.New("request body too large")
	}

	var req OptimizeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	if req.UserID == "" && len(req.Cards) == 0 {
		return nil, errors.New("either user_id or cards is required")
	}
	if req.UserID != "" && len(req.Cards) > 0 {
		return nil, errors.New("user_id and cards are mutually exclusive")
	}
	if req.Categories == nil {
		req.Categories = core.SpendingPlan{}
	}
	for category, amount := range req.Categories {
		if amount < 0 {
			return nil, fmt.Errorf("negative spending for category %q", category)
		}
	}
	for _, card := range req.Cards {
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("card %q: %w", card.ID, err)
		}
	}

	return &req, nil
}

// AddCardRequest is the body of POST /api/v1/users/{id}/cards.
type AddCardRequest struct {
	CardID string `json:"card_id"`
}

func parseAddCardRequest(r *http.Request) (*AddCardRequest, error) {
	var req AddCardRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if req.CardID == "" {
		return nil, errors.New("card_id is required")
	}
	return &req, nil
}

// PreferenceRequest is the body of PUT /api/v1/users/{id}/preference.
type PreferenceRequest struct {
	Preference string `json:"preference"`
}

func parsePreferenceRequest(r *http.Request) (*PreferenceRequest, error) {
	var req PreferenceRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if req.Preference == "" {
		return nil, errors.New("preference is required")
	}
	switch core.Preference(req.Preference) {
	case core.PreferCashback, core.PreferPoints, core.PreferAny:
	default:
		return nil, fmt.Errorf("unknown preference %q", req.Preference)
	}
	return &req, nil
}
