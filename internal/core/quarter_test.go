package core

import (
	"testing"
	"time"
)

func TestQuarterOf(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Q1"},
		{time.March, "Q1"},
		{time.April, "Q2"},
		{time.June, "Q2"},
		{time.July, "Q3"},
		{time.September, "Q3"},
		{time.October, "Q4"},
		{time.December, "Q4"},
	}
	for _, tc := range cases {
		d := time.Date(2025, tc.month, 15, 0, 0, 0, 0, time.UTC)
		if got := QuarterOf(d); got != tc.want {
			t.Errorf("QuarterOf(%s) = %s, want %s", tc.month, got, tc.want)
		}
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	c := FixedClock{T: at}
	if !c.Now().Equal(at) {
		t.Fatalf("FixedClock.Now() = %v, want %v", c.Now(), at)
	}
}
