// Package catalog provides card-catalog ingestion sources.
package catalog

import (
	"context"

	"cardcompass/internal/core"
)

// Source yields the current set of known card records. Implementations may
// read fixed data, a spreadsheet, or a remote feed; the optimizer never sees
// this interface, only its output.
type Source interface {
	FetchCards(ctx context.Context) ([]core.Card, error)
}

// StaticSource returns a fixed set of records, standing in for a real issuer
// feed. Refreshes through it are deterministic.
type StaticSource struct {
	cards []core.Card
}

func NewStaticSource() *StaticSource {
	return &StaticSource{cards: refreshedCards()}
}

func (s *StaticSource) FetchCards(_ context.Context) ([]core.Card, error) {
	out := make([]core.Card, len(s.cards))
	copy(out, s.cards)
	return out, nil
}

// SeedCards is the catalog loaded into an empty store on first start.
func SeedCards() []core.Card {
	return []core.Card{
		{
			ID:     "chase_freedom_unlimited",
			Name:   "Chase Freedom Unlimited",
			Issuer: "Chase",
			Type:   core.TypeCashback,
			Rewards: core.Rewards{
				BaseRate:   1.5,
				Categories: map[string]float64{"all_purchases": 1.5},
			},
			AnnualFee: 0,
			SignUpBonus: &core.SignUpBonus{
				Amount:      "200",
				Requirement: "Spend $500 in first 3 months",
			},
		},
		{
			ID:     "chase_sapphire_preferred",
			Name:   "Chase Sapphire Preferred",
			Issuer: "Chase",
			Type:   core.TypePoints,
			Rewards: core.Rewards{
				BaseRate: 1,
				Categories: map[string]float64{
					"travel":        2,
					"dining":        2,
					"all_purchases": 1,
				},
			},
			AnnualFee: 95,
			SignUpBonus: &core.SignUpBonus{
				Amount:      "60000",
				Requirement: "Spend $4,000 in first 3 months",
			},
		},
		{
			ID:     "discover_it_cash_back",
			Name:   "Discover it Cash Back",
			Issuer: "Discover",
			Type:   core.TypeCashback,
			Rewards: core.Rewards{
				BaseRate: 1,
				Categories: map[string]float64{
					"rotating_5x":   5,
					"all_purchases": 1,
				},
				RotatingSchedule: map[string]string{
					"Q1": "gas_stations_grocery_stores",
					"Q2": "restaurants_paypal_gas_stations",
					"Q3": "walmart_drugstores",
					"Q4": "amazon_target",
				},
			},
			AnnualFee: 0,
			SignUpBonus: &core.SignUpBonus{
				Amount:      "Double cash back first year",
				Requirement: "No minimum spend",
			},
		},
		{
			ID:     "amex_gold",
			Name:   "American Express Gold Card",
			Issuer: "American Express",
			Type:   core.TypePoints,
			Rewards: core.Rewards{
				BaseRate: 1,
				Categories: map[string]float64{
					"dining":        4,
					"groceries":     4,
					"all_purchases": 1,
				},
			},
			AnnualFee: 250,
			SignUpBonus: &core.SignUpBonus{
				Amount:      "60000",
				Requirement: "Spend $4,000 in first 6 months",
			},
		},
	}
}

// refreshedCards mirrors what an issuer-feed refresh currently yields: the
// seed cards with updated category tables plus Amex Platinum.
func refreshedCards() []core.Card {
	cards := SeedCards()

	for i := range cards {
		switch cards[i].ID {
		case "chase_freedom_unlimited":
			cards[i].Rewards.Categories = map[string]float64{
				"all_purchases":       1.5,
				"travel_through_chase": 5.0,
				"dining":              3.0,
				"drugstores":          3.0,
			}
		case "chase_sapphire_preferred":
			cards[i].Rewards.Categories = map[string]float64{
				"travel":         2,
				"dining":         2,
				"online_grocery": 2,
				"streaming":      2,
				"all_purchases":  1,
			}
		case "amex_gold":
			cards[i].Rewards.Categories = map[string]float64{
				"dining":        4,
				"groceries":     4,
				"gas_stations":  3,
				"all_purchases": 1,
			}
			cards[i].AnnualCredits = map[string]float64{
				"dining": 120,
				"uber":   120,
			}
		}
	}

	return append(cards, core.Card{
		ID:     "amex_platinum",
		Name:   "The Platinum Card from American Express",
		Issuer: "American Express",
		Type:   core.TypePoints,
		Rewards: core.Rewards{
			BaseRate: 1,
			Categories: map[string]float64{
				"airlines":      5,
				"hotels":        5,
				"all_purchases": 1,
			},
		},
		AnnualFee: 695,
		AnnualCredits: map[string]float64{
			"airline":   200,
			"hotel":     200,
			"uber":      200,
			"saks":      100,
			"streaming": 240,
		},
		SignUpBonus: &core.SignUpBonus{
			Amount:      "100000",
			Requirement: "Spend $6,000 in first 6 months",
		},
	})
}
