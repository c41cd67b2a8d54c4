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

// defaultCategories are seeded on first run so a fresh database has
// somewhere to file phrases.
var defaultCategories = []string{"General", "Daily Life", "Travel", "Business"}

// CategoryRepository handles database operations for categories
type CategoryRepository struct{}

// NewCategoryRepository creates a new repository instance
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// GetAll returns all categories
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := DB.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %v", err)
	}
	return categories, nil
}

// GetByID returns a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	query := DB.Rebind("SELECT * FROM categories WHERE id = ?")
	err := DB.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by ID: %v", err)
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	query := DB.Rebind("INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)")
	_, err := DB.ExecContext(ctx, query, category.ID, category.Name, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %v", err)
	}
	return nil
}

// Delete removes a category. Phrases referencing it keep their dangling
// category ID; orphaned references are valid.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := DB.Rebind("DELETE FROM categories WHERE id = ?")
	result, err := DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}

// EnsureDefaults seeds the default category set on an empty table.
// Safe to call on every startup.
func (r *CategoryRepository) EnsureDefaults(ctx context.Context) error {
	var count int
	if err := DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM categories"); err != nil {
		return fmt.Errorf("failed to count categories: %v", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultCategories {
		if err := r.Create(ctx, &models.Category{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
