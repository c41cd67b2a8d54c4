package models

import "time"

// DefaultDifficulty is the neutral difficulty used when the caller has no
// opinion about how hard a review was.
const DefaultDifficulty = 0.5

// ReviewRecord is an immutable record of one completed review
type ReviewRecord struct {
	ID         int64     `json:"id" db:"id"`
	PhraseID   string    `json:"phrase_id" db:"phrase_id"`
	Date       time.Time `json:"date" db:"review_date"`
	Interval   Interval  `json:"interval" db:"interval"`     // Interval chosen at that review
	Difficulty float64   `json:"difficulty" db:"difficulty"` // 0 = trivial, 1 = very hard
}
