package models

import "time"

// UserStats is the single persisted counter record. TotalReviews and the
// streak fields are maintained incrementally as reviews are recorded; the
// remaining fields are recomputable from the phrase collection.
type UserStats struct {
	TotalPhrases   int        `json:"total_phrases" db:"total_phrases"`
	PhrasesLearned int        `json:"phrases_learned" db:"phrases_learned"`
	CurrentStreak  int        `json:"current_streak" db:"current_streak"`
	LongestStreak  int        `json:"longest_streak" db:"longest_streak"`
	TotalReviews   int        `json:"total_reviews" db:"total_reviews"`
	LastReviewDate *time.Time `json:"last_review_date" db:"last_review_date"`
}

// DailyCount is one entry of the trailing daily review series
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// MasteryLevels partitions phrases by how many times they have been reviewed
type MasteryLevels struct {
	Beginner     int `json:"beginner"`     // 0-2 reviews
	Intermediate int `json:"intermediate"` // 3-5 reviews
	Advanced     int `json:"advanced"`     // 6+ reviews
}

// StatsSnapshot is the full derived statistics payload returned to callers.
// Everything except the carried-forward counters is recomputed from the
// phrase collection on every (uncached) aggregation.
type StatsSnapshot struct {
	UserStats

	CategoryStats  map[string]int `json:"category_stats"` // Phrase count per category ID
	TagStats       map[string]int `json:"tag_stats"`      // Phrase count per tag
	DailyStats     []DailyCount   `json:"daily_stats"`    // Trailing 30 days, oldest first
	MasteryLevels  MasteryLevels  `json:"mastery_levels"`
	MonthlyReviews int            `json:"monthly_reviews"` // Reviews in the current calendar month
	AverageMastery int            `json:"average_mastery"` // 0-100
	GeneratedAt    time.Time      `json:"generated_at"`
}
