package sheets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cardcompass/internal/core"
)

// Sheet layout, one card per row:
//
//	A: id  B: name  C: issuer  D: type  E: base rate  F: annual fee
//	G: category rates as JSON  H: rotating schedule as JSON
func parseCardRow(row []interface{}) (core.Card, error) {
	if len(row) < 4 {
		return core.Card{}, errors.New("row too short")
	}

	card := core.Card{
		ID:     cellString(row, 0),
		Name:   cellString(row, 1),
		Issuer: cellString(row, 2),
		Type:   core.CardType(strings.ToLower(cellString(row, 3))),
	}

	baseRate, err := cellFloat(row, 4)
	if err != nil {
		return core.Card{}, fmt.Errorf("base rate: %w", err)
	}
	card.Rewards.BaseRate = baseRate

	fee, err := cellFloat(row, 5)
	if err != nil {
		return core.Card{}, fmt.Errorf("annual fee: %w", err)
	}
	card.AnnualFee = fee

	if raw := cellString(row, 6); raw != "" {
		if err := json.Unmarshal([]byte(raw), &card.Rewards.Categories); err != nil {
			return core.Card{}, fmt.Errorf("categories: %w", err)
		}
	}
	if raw := cellString(row, 7); raw != "" {
		if err := json.Unmarshal([]byte(raw), &card.Rewards.RotatingSchedule); err != nil {
			return core.Card{}, fmt.Errorf("rotating schedule: %w", err)
		}
	}

	if err := card.Validate(); err != nil {
		return core.Card{}, err
	}
	return card, nil
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

func cellFloat(row []interface{}, i int) (float64, error) {
	s := cellString(row, i)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
