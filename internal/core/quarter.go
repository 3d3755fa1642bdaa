package core

import "time"

// Clock abstracts "now" so quarter-boundary behavior is testable without
// waiting for real dates.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real calendar.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// QuarterOf maps a date onto the rotating-schedule labels: months 1-3 are Q1,
// 4-6 Q2, 7-9 Q3, 10-12 Q4.
func QuarterOf(t time.Time) string {
	switch m := t.Month(); {
	case m <= 3:
		return "Q1"
	case m <= 6:
		return "Q2"
	case m <= 9:
		return "Q3"
	default:
		return "Q4"
	}
}
