package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
}

func TestNextReviewDateSteppedPolicy(t *testing.T) {
	// 2024-01-01 is a Monday.
	now := date(2024, time.January, 1)

	tests := []struct {
		name     string
		interval models.Interval
		want     time.Time
	}{
		{"tomorrow adds one day", models.IntervalTomorrow, date(2024, time.January, 2)},
		{"three days add whole days", models.IntervalThreeDays, date(2024, time.January, 4)},
		{"one week adds whole days", models.IntervalOneWeek, date(2024, time.January, 8)},
		{"two weeks add whole weeks", models.IntervalTwoWeeks, date(2024, time.January, 15)},
		{"one month adds a calendar month", models.IntervalOneMonth, date(2024, time.February, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextReviewDate(tt.interval, now))
		})
	}
}

func TestNextReviewDateKeepsWeekday(t *testing.T) {
	now := date(2024, time.March, 6) // Wednesday
	next := NextReviewDate(models.IntervalTwoWeeks, now)
	assert.Equal(t, time.Wednesday, next.Weekday())
	assert.Equal(t, date(2024, time.March, 20), next)
}

func TestNextReviewDateMonthArithmetic(t *testing.T) {
	now := date(2024, time.January, 15)
	assert.Equal(t, date(2024, time.February, 15), NextReviewDate(models.IntervalOneMonth, now))
}

func TestNextReviewDateMonotonic(t *testing.T) {
	now := date(2024, time.May, 20)
	previous := now
	for _, interval := range models.IntervalOrder {
		next := NextReviewDate(interval, now)
		assert.False(t, next.Before(previous), "interval %s scheduled before the shorter one", interval)
		previous = next
	}
}

func TestNextReviewDateUnknownInterval(t *testing.T) {
	now := date(2024, time.January, 1)
	assert.Equal(t, date(2024, time.January, 2), NextReviewDate(models.Interval("someday"), now))
}

func TestEndOfDay(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 15, 0, 0, time.UTC)
	end := EndOfDay(now)
	assert.True(t, SameDay(now, end))
	assert.False(t, SameDay(now, end.Add(time.Nanosecond)))
	assert.Equal(t, 23, end.Hour())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.June, 3, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, time.June, 3, 23, 59, 59, 0, time.UTC)
	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, night.Add(time.Second)))
}
