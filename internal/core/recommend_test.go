package core

import (
	"strings"
	"testing"
)

func countByType(recs []Recommendation) map[string]int {
	counts := map[string]int{}
	for _, r := range recs {
		counts[r.Type]++
	}
	return counts
}

func TestRotatingAndSignupAlwaysPresent(t *testing.T) {
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{freedomUnlimited()}, SpendingPlan{"other": 100}, PreferCashback)

	counts := countByType(res.Recommendations)
	if counts[RecRotating] != 1 {
		t.Fatalf("rotating recommendations = %d, want exactly 1", counts[RecRotating])
	}
	if counts[RecSignupBonus] != 1 {
		t.Fatalf("signup_bonus recommendations = %d, want exactly 1", counts[RecSignupBonus])
	}

	// The rotating reminder names the current quarter.
	for _, r := range res.Recommendations {
		if r.Type == RecRotating && !strings.Contains(r.Title, "Q1") {
			t.Fatalf("rotating title %q should name Q1", r.Title)
		}
	}
}

func TestMissingCategoriesTriggered(t *testing.T) {
	// Held preference is cashback, so the weak 1.5% card is selected; the
	// points card in the full set pays 4x on groceries, well beyond the 50%
	// threshold. The heuristic deliberately scans the whole set.
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{freedomUnlimited(), amexGold()}, SpendingPlan{"groceries": 500}, PreferCashback)

	counts := countByType(res.Recommendations)
	if counts[RecMissingCategories] != 1 {
		t.Fatalf("missing_categories recommendations = %d, want 1", counts[RecMissingCategories])
	}
	for _, r := range res.Recommendations {
		if r.Type == RecMissingCategories {
			if r.Priority != PriorityHigh {
				t.Errorf("priority = %q, want high", r.Priority)
			}
			if !strings.Contains(r.Description, "groceries") {
				t.Errorf("description %q should list groceries", r.Description)
			}
		}
	}
}

func TestMissingCategoriesAbsentWhenOptimal(t *testing.T) {
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{amexGold()}, SpendingPlan{"groceries": 500}, PreferPoints)

	if counts := countByType(res.Recommendations); counts[RecMissingCategories] != 0 {
		t.Fatalf("missing_categories should not fire when the best card is held and eligible")
	}
}

func TestAnnualFeeAdviceTriggered(t *testing.T) {
	// Achieved: 1.5% cashback on 1000/mo dining = $180/yr. The fee card pays
	// 4 points/dollar on dining, projecting far past fee + 100.
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{freedomUnlimited(), amexGold()}, SpendingPlan{"restaurants": 1000}, PreferCashback)

	var rec *Recommendation
	for i := range res.Recommendations {
		if res.Recommendations[i].Type == RecAnnualFee {
			rec = &res.Recommendations[i]
			break
		}
	}
	if rec == nil {
		t.Fatal("expected an annual_fee recommendation")
	}
	if rec.Priority != PriorityMedium {
		t.Errorf("priority = %q, want medium", rec.Priority)
	}
	if !strings.Contains(rec.Title, "American Express Gold Card") {
		t.Errorf("title %q should name the fee card", rec.Title)
	}
}

func TestAnnualFeeAdviceAbsentWithoutBenefit(t *testing.T) {
	// Only fee-free cards held: nothing to advise.
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{freedomUnlimited(), discoverIt()}, SpendingPlan{"other": 200}, PreferCashback)

	if counts := countByType(res.Recommendations); counts[RecAnnualFee] != 0 {
		t.Fatal("annual_fee should not fire without a fee-bearing card worth it")
	}
}

func TestRecommendationOrder(t *testing.T) {
	o := NewOptimizer(nil, q1Clock())
	res := o.Optimize([]Card{freedomUnlimited(), amexGold()}, SpendingPlan{"restaurants": 1000}, PreferCashback)

	// Fixed order: missing_categories, annual_fee, rotating, signup_bonus.
	var seen []string
	for _, r := range res.Recommendations {
		seen = append(seen, r.Type)
	}
	want := []string{RecMissingCategories, RecAnnualFee, RecRotating, RecSignupBonus}
	if len(seen) != len(want) {
		t.Fatalf("got %d recommendations (%v), want %d", len(seen), seen, len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("recommendation %d = %s, want %s", i, seen[i], want[i])
		}
	}
}
