package srs

import (
	"sort"
	"time"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// DueSet returns every phrase whose next review date falls on or before the
// end of asOf's calendar day. A phrase due "today" counts regardless of the
// time of day. The result is ordered by ascending next review date (input
// order breaks ties), so re-querying an unchanged collection yields the same
// sequence.
func DueSet(phrases []models.Phrase, asOf time.Time) []models.Phrase {
	cutoff := EndOfDay(asOf)

	var due []models.Phrase
	for _, p := range phrases {
		if !p.NextReviewDate.After(cutoff) {
			due = append(due, p)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewDate.Before(due[j].NextReviewDate)
	})

	return due
}
