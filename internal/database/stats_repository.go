package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// StatsRepository handles the single persisted counter record
type StatsRepository struct{}

// NewStatsRepository creates a new repository instance
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// Get returns the persisted counters, creating the row on first use.
func (r *StatsRepository) Get(ctx context.Context) (*models.UserStats, error) {
	query := `
		SELECT total_phrases, phrases_learned, current_streak, longest_streak,
		       total_reviews, last_review_date
		FROM user_stats
		WHERE id = 1
	`
	var stats models.UserStats
	err := DB.GetContext(ctx, &stats, query)
	if errors.Is(err, sql.ErrNoRows) {
		// No counters yet, start from zero
		stats = models.UserStats{}
		if err := r.create(ctx); err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %v", err)
	}
	return &stats, nil
}

// Save persists the counter record
func (r *StatsRepository) Save(ctx context.Context, stats *models.UserStats) error {
	query := DB.Rebind(`
		UPDATE user_stats SET
			total_phrases = ?,
			phrases_learned = ?,
			current_streak = ?,
			longest_streak = ?,
			total_reviews = ?,
			last_review_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`)
	result, err := DB.ExecContext(ctx, query,
		stats.TotalPhrases,
		stats.PhrasesLearned,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalReviews,
		stats.LastReviewDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save user stats: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		if err := r.create(ctx); err != nil {
			return err
		}
		return r.Save(ctx, stats)
	}
	return nil
}

func (r *StatsRepository) create(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, "INSERT INTO user_stats (id) VALUES (1)")
	if err != nil {
		return fmt.Errorf("failed to create user stats row: %v", err)
	}
	return nil
}
