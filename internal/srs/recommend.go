package srs

import "github.com/Yusuke0018/Phrase-Forge/pkg/models"

// Success-rate thresholds for moving along the interval ladder.
const (
	promoteThreshold = 0.9
	holdThreshold    = 0.7
)

// recentWindow is how many of the latest reviews feed the success rate.
const recentWindow = 5

// RecommendInterval suggests the next review interval from a phrase's
// history. With no history it always recommends tomorrow. Otherwise the
// success rate over the most recent reviews decides whether to promote,
// hold or demote relative to the interval chosen at the last review:
//
//	rate >= 0.9  promote one step (caps at one_month)
//	rate >= 0.7  hold
//	rate <  0.7  demote one step (floors at tomorrow)
//
// This is a deliberately simple monotonic ladder, not SM-2; the caller may
// override the recommendation with any interval from the table.
func RecommendInterval(history []models.ReviewRecord) models.Interval {
	if len(history) == 0 {
		return models.IntervalTomorrow
	}

	recent := history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	var total float64
	for _, r := range recent {
		total += r.Difficulty
	}
	successRate := 1 - total/float64(len(recent))

	last := history[len(history)-1].Interval
	step := ladderIndex(last)
	if step < 0 {
		// Interval not in the table: fail-safe demotion to the shortest delay.
		return models.IntervalTomorrow
	}

	switch {
	case successRate >= promoteThreshold:
		if step < len(models.IntervalOrder)-1 {
			step++
		}
	case successRate >= holdThreshold:
		// Hold at the last interval.
	default:
		if step > 0 {
			step--
		}
	}

	return models.IntervalOrder[step]
}

func ladderIndex(interval models.Interval) int {
	for i, candidate := range models.IntervalOrder {
		if candidate == interval {
			return i
		}
	}
	return -1
}
