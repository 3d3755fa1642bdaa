package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	TypeCashback CardType = "cashback"
	TypePoints   CardType = "points"
)

const (
	PreferCashback Preference = "cashback"
	PreferPoints   Preference = "points"
	PreferAny      Preference = "any"
)

// rotatingKey marks a card whose bonus category changes each quarter.
const rotatingKey = "rotating_5x"

type (
	CardType string

	// Preference controls which held cards are eligible for optimization.
	Preference string

	// Rewards describes how a card earns. BaseRate is a percentage for
	// cashback cards and a points-per-dollar multiplier for points cards;
	// category rates use the same unit as BaseRate.
	Rewards struct {
		BaseRate         float64            `json:"base_rate"`
		Categories       map[string]float64 `json:"categories"`
		RotatingSchedule map[string]string  `json:"rotating_schedule,omitempty"`
	}

	SignUpBonus struct {
		Amount      string `json:"amount"`
		Requirement string `json:"requirement"`
	}

	// Card is immutable reference data once loaded for a calculation.
	Card struct {
		ID            string             `json:"id"`
		Name          string             `json:"name"`
		Issuer        string             `json:"issuer"`
		Type          CardType           `json:"type"`
		Rewards       Rewards            `json:"rewards"`
		AnnualFee     float64            `json:"annual_fee"`
		SignUpBonus   *SignUpBonus       `json:"sign_up_bonus,omitempty"`
		AnnualCredits map[string]float64 `json:"annual_credits,omitempty"`
		UpdatedAt     time.Time          `json:"updated_at,omitempty"`
	}

	// SpendingPlan maps a canonical category name to a monthly dollar amount.
	SpendingPlan map[string]float64
)

var (
	ErrEmptyCardID   = errors.New("empty card id")
	ErrEmptyCardName = errors.New("empty card name")
	ErrBadCardType   = errors.New("card type must be cashback or points")
)

// ParsePreference maps a request string onto a Preference. Absent or
// unrecognized values default to cashback; the filter step treats anything
// outside {cashback, points} as "no filtering".
func ParsePreference(s string) Preference {
	switch Preference(strings.TrimSpace(strings.ToLower(s))) {
	case PreferPoints:
		return PreferPoints
	case PreferAny:
		return PreferAny
	case PreferCashback, "":
		return PreferCashback
	default:
		return PreferCashback
	}
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCardID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCardName
	}
	switch c.Type {
	case TypeCashback, TypePoints:
		return nil
	default:
		return ErrBadCardType
	}
}

// Normalized fills the soft defaults the engine relies on: base rate 1,
// non-nil category map, non-negative annual fee. Defaulting lives here, at the
// data-model boundary, so the resolver never has to null-check.
func (c Card) Normalized() Card {
	if c.Rewards.BaseRate == 0 {
		c.Rewards.BaseRate = 1
	}
	if c.Rewards.Categories == nil {
		c.Rewards.Categories = map[string]float64{}
	}
	if c.AnnualFee < 0 {
		c.AnnualFee = 0
	}
	return c
}

// UnmarshalJSON accepts both numeric bonuses (60000) and textual ones
// ("Double cash back first year"), as the catalog carries both.
func (b *SignUpBonus) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount      json.RawMessage `json:"amount"`
		Requirement string          `json:"requirement"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Requirement = raw.Requirement
	if len(raw.Amount) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Amount, &s); err == nil {
		b.Amount = s
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw.Amount, &n); err != nil {
		return err
	}
	b.Amount = strconv.FormatFloat(n, 'f', -1, 64)
	return nil
}
