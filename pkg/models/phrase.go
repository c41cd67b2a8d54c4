package models

import "time"

// Phrase represents a single bilingual flashcard with its scheduling state
type Phrase struct {
	ID             string         `json:"id" db:"id"`
	English        string         `json:"english" db:"english"`
	Japanese       string         `json:"japanese" db:"japanese"`
	Pronunciation  string         `json:"pronunciation" db:"pronunciation"` // Optional reading annotation
	Tags           []string       `json:"tags" db:"tags"`
	CategoryID     string         `json:"category_id" db:"category_id"` // Weak reference, may dangle
	NextReviewDate time.Time      `json:"next_review_date" db:"next_review_date"`
	ReviewHistory  []ReviewRecord `json:"review_history" db:"-"` // Ascending by date, append-only
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}
