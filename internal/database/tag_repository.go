package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// TagRepository handles database operations for tags
type TagRepository struct{}

// NewTagRepository creates a new repository instance
func NewTagRepository() *TagRepository {
	return &TagRepository{}
}

// GetAll returns all tags
func (r *TagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := DB.SelectContext(ctx, &tags, "SELECT * FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %v", err)
	}
	return tags, nil
}

// GetByName returns a tag by its name
func (r *TagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	query := DB.Rebind("SELECT * FROM tags WHERE name = ?")
	err := DB.GetContext(ctx, &tag, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag by name: %v", err)
	}
	return &tag, nil
}

// Create inserts a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now()
	}
	query := DB.Rebind("INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)")
	_, err := DB.ExecContext(ctx, query, tag.ID, tag.Name, tag.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tag: %v", err)
	}
	return nil
}

// Delete removes a tag. Phrases keep the tag string in their own tag list;
// orphaned references are valid.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	query := DB.Rebind("DELETE FROM tags WHERE id = ?")
	result, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return models.ErrTagNotFound
	}
	return nil
}
