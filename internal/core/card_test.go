package core

import (
	"encoding/json"
	"testing"
)

func TestCardValidate(t *testing.T) {
	good := Card{ID: "amex_gold", Name: "American Express Gold Card", Type: TypePoints}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Card{
		{ID: "", Name: "a", Type: TypeCashback},
		{ID: "x", Name: "", Type: TypeCashback},
		{ID: "x", Name: "a", Type: "miles"},
		{ID: "x", Name: "a"},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCardNormalizedDefaults(t *testing.T) {
	c := Card{ID: "x", Name: "a", Type: TypeCashback, AnnualFee: -5}.Normalized()
	if c.Rewards.BaseRate != 1 {
		t.Fatalf("base rate = %v, want 1", c.Rewards.BaseRate)
	}
	if c.Rewards.Categories == nil {
		t.Fatal("categories should be non-nil after normalization")
	}
	if c.AnnualFee != 0 {
		t.Fatalf("annual fee = %v, want 0", c.AnnualFee)
	}

	// Explicit values survive.
	c = Card{ID: "x", Name: "a", Type: TypeCashback, Rewards: Rewards{BaseRate: 1.5}}.Normalized()
	if c.Rewards.BaseRate != 1.5 {
		t.Fatalf("base rate = %v, want 1.5", c.Rewards.BaseRate)
	}
}

func TestSignUpBonusUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want SignUpBonus
	}{
		{
			name: "numeric amount",
			in:   `{"amount": 60000, "requirement": "Spend $4,000 in first 3 months"}`,
			want: SignUpBonus{Amount: "60000", Requirement: "Spend $4,000 in first 3 months"},
		},
		{
			name: "textual amount",
			in:   `{"amount": "Double cash back first year", "requirement": "No minimum spend"}`,
			want: SignUpBonus{Amount: "Double cash back first year", Requirement: "No minimum spend"},
		},
		{
			name: "missing amount",
			in:   `{"requirement": "none"}`,
			want: SignUpBonus{Requirement: "none"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got SignUpBonus
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParsePreference(t *testing.T) {
	cases := []struct {
		in   string
		want Preference
	}{
		{"cashback", PreferCashback},
		{"points", PreferPoints},
		{"any", PreferAny},
		{"", PreferCashback},
		{"  Points ", PreferPoints},
		{"miles", PreferCashback},
	}
	for _, tc := range cases {
		if got := ParsePreference(tc.in); got != tc.want {
			t.Errorf("ParsePreference(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
