// Package srs implements the spaced-repetition scheduling engine: due-set
// selection, next-review-date calculation and adaptive interval
// recommendation. All functions are pure; callers supply the reference time.
package srs

import (
	"time"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// NextReviewDate computes the concrete next review date for a chosen
// interval. Short intervals are added as whole days; intervals between one
// and two weeks as whole weeks; anything longer as whole months. The stepped
// policy keeps longer horizons calendar-aware: "two weeks" lands on the same
// weekday two weeks later, "one month" on the same day of the next month.
// The thresholds branch on the day count, not the interval name, so new
// table entries inherit the same behaviour.
func NextReviewDate(interval models.Interval, now time.Time) time.Time {
	days := interval.Days()
	if days <= 0 {
		// Unknown interval: fail-safe to the shortest delay.
		days = models.IntervalTomorrow.Days()
	}

	switch {
	case days <= 7:
		return now.AddDate(0, 0, days)
	case days <= 14:
		return now.AddDate(0, 0, 7*(days/7))
	default:
		return now.AddDate(0, days/30, 0)
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
