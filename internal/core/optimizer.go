package core

import (
	"math"
	"strings"
	"time"
)

// NoCardsError is returned inside the result shape, not as a Go error, so the
// caller can render it directly.
const NoCardsError = "No credit cards found. Please add your cards first."

type (
	// CategoryResult is the per-category line of an optimization.
	CategoryResult struct {
		Amount       float64 `json:"amount"`
		BestCard     *Card   `json:"best_card"`
		RewardAmount float64 `json:"reward_amount"`
		RewardRate   float64 `json:"reward_rate"`
	}

	OptimizationResult struct {
		Error               string                    `json:"error,omitempty"`
		TotalMonthlyRewards float64                   `json:"total_monthly_rewards"`
		TotalAnnualRewards  float64                   `json:"total_annual_rewards"`
		Currency            string                    `json:"currency"`
		CategoryBreakdown   map[string]CategoryResult `json:"category_breakdown"`
		Recommendations     []Recommendation          `json:"recommendations"`
		OptimizationDate    time.Time                 `json:"optimization_date"`
	}
)

// NoCards reports whether the result is the degenerate no-cards shape.
func (r OptimizationResult) NoCards() bool { return r.Error != "" }

// Optimizer computes the best card per spending category. It is a pure,
// synchronous computation over its inputs plus the injected synonym table and
// clock; concurrent invocations need no coordination.
type Optimizer struct {
	synonyms SynonymTable
	clock    Clock
}

func NewOptimizer(synonyms SynonymTable, clock Clock) *Optimizer {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Optimizer{synonyms: synonyms, clock: clock}
}

// Optimize produces the full optimization result for a user's cards and
// spending plan. Categories with non-positive amounts are skipped. The
// recommendation pass deliberately sees the full, unfiltered card set so it
// can surface opportunities outside the current preference.
func (o *Optimizer) Optimize(cards []Card, plan SpendingPlan, pref Preference) OptimizationResult {
	if len(cards) == 0 {
		return OptimizationResult{
			Error:            NoCardsError,
			Recommendations:  []Recommendation{},
			OptimizationDate: o.clock.Now(),
		}
	}

	eligible := o.EligibleCards(cards, pref)

	breakdown := make(map[string]CategoryResult)
	var totalMonthly float64
	for category, amount := range plan {
		if amount <= 0 {
			continue
		}
		best, reward := o.BestCard(eligible, category, amount)
		rate := 0.0
		if amount > 0 {
			rate = reward / amount
		}
		breakdown[category] = CategoryResult{
			Amount:       amount,
			BestCard:     best,
			RewardAmount: reward,
			RewardRate:   rate,
		}
		totalMonthly += reward
	}

	currency := "points"
	if pref == PreferCashback {
		currency = "USD"
	}

	// Monthly and annual totals are rounded independently for display; the
	// annual figure is computed from the unrounded monthly value.
	return OptimizationResult{
		TotalMonthlyRewards: round2(totalMonthly),
		TotalAnnualRewards:  round2(totalMonthly * 12),
		Currency:            currency,
		CategoryBreakdown:   breakdown,
		Recommendations:     o.recommendations(breakdown, cards),
		OptimizationDate:    o.clock.Now(),
	}
}

// EligibleCards filters the held set by reward-type preference. Anything
// outside {cashback, points} returns the full set unfiltered. An empty result
// is not an error; selection handles it downstream.
func (o *Optimizer) EligibleCards(cards []Card, pref Preference) []Card {
	switch pref {
	case PreferCashback, PreferPoints:
	default:
		return cards
	}
	var out []Card
	for _, c := range cards {
		if c.Type == CardType(pref) {
			out = append(out, c)
		}
	}
	return out
}

// BestCard evaluates every eligible card for one category and returns the one
// with the strictly greatest reward. Ties keep the first card encountered, so
// selection is stable in the eligible-card ordering. With no eligible cards it
// returns (nil, 0); if no card beats zero, the first card's base rate applies.
func (o *Optimizer) BestCard(cards []Card, category string, amount float64) (*Card, float64) {
	var best *Card
	var maxReward float64
	for i := range cards {
		if reward := o.Reward(cards[i], category, amount); reward > maxReward {
			maxReward = reward
			best = &cards[i]
		}
	}
	if best == nil && len(cards) > 0 {
		best = &cards[0]
		maxReward = o.baseReward(cards[0], amount)
	}
	return best, maxReward
}

// Reward computes what one card earns for a category and spend amount.
// Resolution order, first match wins: direct category key, synonym match in
// table order, rotating quarterly bonus, base rate.
func (o *Optimizer) Reward(card Card, category string, amount float64) float64 {
	card = card.Normalized()
	categories := card.Rewards.Categories

	if rate, ok := categories[category]; ok {
		return o.toReward(card, rate, amount)
	}

	aliases := o.synonyms.Aliases(category)
	for _, alias := range aliases {
		if rate, ok := categories[alias]; ok {
			return o.toReward(card, rate, amount)
		}
	}

	if rate, ok := categories[rotatingKey]; ok {
		quarter := QuarterOf(o.clock.Now())
		if schedule, ok := card.Rewards.RotatingSchedule[quarter]; ok {
			lower := strings.ToLower(schedule)
			for _, alias := range aliases {
				if strings.Contains(lower, alias) {
					return o.toReward(card, rate, amount)
				}
			}
		}
	}

	return o.baseReward(card, amount)
}

func (o *Optimizer) baseReward(card Card, amount float64) float64 {
	card = card.Normalized()
	return o.toReward(card, card.Rewards.BaseRate, amount)
}

// toReward converts a rate to earned value: cashback rates are percentages,
// points rates are per-dollar multipliers (the result is a point count).
func (o *Optimizer) toReward(card Card, rate, amount float64) float64 {
	if card.Type == TypeCashback {
		return amount * (rate / 100)
	}
	return amount * rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
