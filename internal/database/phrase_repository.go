package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// PhraseRepository handles database operations for phrases and their
// review history.
type PhraseRepository struct{}

// NewPhraseRepository creates a new repository instance
func NewPhraseRepository() *PhraseRepository {
	return &PhraseRepository{}
}

type phraseRow struct {
	ID             string      `db:"id"`
	English        string      `db:"english"`
	Japanese       string      `db:"japanese"`
	Pronunciation  string      `db:"pronunciation"`
	Tags           StringSlice `db:"tags"`
	CategoryID     string      `db:"category_id"`
	NextReviewDate time.Time   `db:"next_review_date"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (row phraseRow) toModel() models.Phrase {
	return models.Phrase{
		ID:             row.ID,
		English:        row.English,
		Japanese:       row.Japanese,
		Pronunciation:  row.Pronunciation,
		Tags:           []string(row.Tags),
		CategoryID:     row.CategoryID,
		NextReviewDate: row.NextReviewDate,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// GetAll returns all phrases with their review history, in creation order.
func (r *PhraseRepository) GetAll(ctx context.Context) ([]models.Phrase, error) {
	var rows []phraseRow
	err := DB.SelectContext(ctx, &rows, "SELECT * FROM phrases ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get phrases: %v", err)
	}

	history, err := r.loadAllHistory(ctx)
	if err != nil {
		return nil, err
	}

	phrases := make([]models.Phrase, 0, len(rows))
	for _, row := range rows {
		phrase := row.toModel()
		phrase.ReviewHistory = history[row.ID]
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}

// GetByID returns a single phrase with its review history.
func (r *PhraseRepository) GetByID(ctx context.Context, id string) (*models.Phrase, error) {
	var row phraseRow
	query := DB.Rebind("SELECT * FROM phrases WHERE id = ?")
	err := DB.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrPhraseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phrase by ID: %v", err)
	}

	phrase := row.toModel()
	query = DB.Rebind("SELECT * FROM review_records WHERE phrase_id = ? ORDER BY review_date, id")
	if err := DB.SelectContext(ctx, &phrase.ReviewHistory, query, id); err != nil {
		return nil, fmt.Errorf("failed to get review history: %v", err)
	}
	return &phrase, nil
}

// Create inserts a new phrase
func (r *PhraseRepository) Create(ctx context.Context, phrase *models.Phrase) error {
	query := DB.Rebind(`
		INSERT INTO phrases (id, english, japanese, pronunciation, tags, category_id, next_review_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.ExecContext(ctx, query,
		phrase.ID,
		phrase.English,
		phrase.Japanese,
		phrase.Pronunciation,
		StringSlice(phrase.Tags),
		phrase.CategoryID,
		phrase.NextReviewDate,
		phrase.CreatedAt,
		phrase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create phrase: %v", err)
	}
	return nil
}

// Update modifies a phrase's display fields. Scheduling state is owned by
// AppendReview and is deliberately not touched here.
func (r *PhraseRepository) Update(ctx context.Context, phrase *models.Phrase) error {
	query := DB.Rebind(`
		UPDATE phrases SET
			english = ?,
			japanese = ?,
			pronunciation = ?,
			tags = ?,
			category_id = ?,
			updated_at = ?
		WHERE id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		phrase.English,
		phrase.Japanese,
		phrase.Pronunciation,
		StringSlice(phrase.Tags),
		phrase.CategoryID,
		phrase.UpdatedAt,
		phrase.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update phrase: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return models.ErrPhraseNotFound
	}
	return nil
}

// Delete removes a phrase and, via the foreign key, its review history.
func (r *PhraseRepository) Delete(ctx context.Context, id string) error {
	query := DB.Rebind("DELETE FROM phrases WHERE id = ?")
	result, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete phrase: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return models.ErrPhraseNotFound
	}
	return nil
}

// AppendReview records one completed review in a single transaction: the
// review record insert and the phrase's next-review-date update commit
// together or not at all.
func (r *PhraseRepository) AppendReview(ctx context.Context, phraseID string, record models.ReviewRecord, nextReview time.Time) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := tx.Rebind("UPDATE phrases SET next_review_date = ?, updated_at = ? WHERE id = ?")
	result, err := tx.ExecContext(ctx, query, nextReview, record.Date, phraseID)
	if err != nil {
		return fmt.Errorf("failed to update next review date: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return models.ErrPhraseNotFound
	}

	// "interval" is quoted because it is a reserved word in postgres.
	query = tx.Rebind(`INSERT INTO review_records (phrase_id, review_date, "interval", difficulty) VALUES (?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, query, phraseID, record.Date, record.Interval, record.Difficulty); err != nil {
		return fmt.Errorf("failed to insert review record: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %v", err)
	}
	return nil
}

func (r *PhraseRepository) loadAllHistory(ctx context.Context) (map[string][]models.ReviewRecord, error) {
	var records []models.ReviewRecord
	err := DB.SelectContext(ctx, &records, "SELECT * FROM review_records ORDER BY review_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get review history: %v", err)
	}

	history := make(map[string][]models.ReviewRecord, len(records))
	for _, record := range records {
		history[record.PhraseID] = append(history[record.PhraseID], record)
	}
	return history, nil
}
