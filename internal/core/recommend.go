package core

import (
	"fmt"
	"sort"
	"strings"
)

const (
	RecMissingCategories = "missing_categories"
	RecAnnualFee         = "annual_fee"
	RecRotating          = "rotating"
	RecSignupBonus       = "signup_bonus"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is an advisory entry attached to an optimization result.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// recommendations evaluates the advisory heuristics independently, in fixed
// order. allCards is the full held set, not the preference-filtered one.
func (o *Optimizer) recommendations(breakdown map[string]CategoryResult, allCards []Card) []Recommendation {
	recs := []Recommendation{}

	if missing := o.missingHighRewardCategories(breakdown, allCards); len(missing) > 0 {
		recs = append(recs, Recommendation{
			Type:        RecMissingCategories,
			Title:       "Consider cards for high-spend categories",
			Description: "You could earn more rewards in: " + strings.Join(missing, ", "),
			Priority:    PriorityHigh,
		})
	}

	if rec := o.annualFeeAdvice(breakdown, allCards); rec != nil {
		recs = append(recs, *rec)
	}

	quarter := QuarterOf(o.clock.Now())
	recs = append(recs, Recommendation{
		Type:        RecRotating,
		Title:       fmt.Sprintf("Check %s rotating categories", quarter),
		Description: "Make sure you're maximizing quarterly bonus categories",
		Priority:    PriorityLow,
	})

	recs = append(recs, Recommendation{
		Type:        RecSignupBonus,
		Title:       "New card opportunities",
		Description: "Consider new cards with sign-up bonuses if you can meet spending requirements",
		Priority:    PriorityLow,
	})

	return recs
}

// missingHighRewardCategories flags breakdown categories where some card in
// the full set would beat the achieved rate by more than 50%. Categories are
// checked in sorted order so the flagged list is deterministic.
func (o *Optimizer) missingHighRewardCategories(breakdown map[string]CategoryResult, allCards []Card) []string {
	var missing []string
	for _, category := range sortedKeys(breakdown) {
		data := breakdown[category]
		if data.Amount <= 0 {
			continue
		}
		for _, card := range allCards {
			potential := o.Reward(card, category, data.Amount) / data.Amount
			if potential > data.RewardRate*1.5 {
				missing = append(missing, category)
				break
			}
		}
	}
	return missing
}

// annualFeeAdvice finds the first fee-bearing card whose projected annual
// rewards across the breakdown beat the current total by more than 100
// currency units after the fee.
func (o *Optimizer) annualFeeAdvice(breakdown map[string]CategoryResult, allCards []Card) *Recommendation {
	var totalAnnual float64
	for _, data := range breakdown {
		totalAnnual += data.RewardAmount * 12
	}

	for _, card := range allCards {
		if card.AnnualFee <= 0 {
			continue
		}
		var potential float64
		for _, category := range sortedKeys(breakdown) {
			potential += o.Reward(card, category, breakdown[category].Amount)
		}
		netBenefit := potential*12 - totalAnnual - card.AnnualFee
		if netBenefit > 100 {
			return &Recommendation{
				Type:        RecAnnualFee,
				Title:       "Consider " + card.Name,
				Description: fmt.Sprintf("Could earn $%.0f more annually after $%.0f fee", netBenefit, card.AnnualFee),
				Priority:    PriorityMedium,
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]CategoryResult) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
