package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

func TestStatsRowAutoCreate(t *testing.T) {
	setupTestDB(t)
	repo := NewStatsRepository()
	ctx := context.Background()

	stats, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalReviews)
	assert.Nil(t, stats.LastReviewDate)

	lastReview := time.Date(2024, time.March, 3, 21, 0, 0, 0, time.UTC)
	stats.TotalPhrases = 12
	stats.TotalReviews = 40
	stats.CurrentStreak = 3
	stats.LongestStreak = 8
	stats.LastReviewDate = &lastReview
	require.NoError(t, repo.Save(ctx, stats))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, got.TotalPhrases)
	assert.Equal(t, 40, got.TotalReviews)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 8, got.LongestStreak)
	require.NotNil(t, got.LastReviewDate)
	assert.WithinDuration(t, lastReview, *got.LastReviewDate, time.Second)
}

func TestCategorySeedIdempotent(t *testing.T) {
	setupTestDB(t)
	repo := NewCategoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefaults(ctx))
	first, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, repo.EnsureDefaults(ctx))
	second, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}

func TestCategoryLifecycle(t *testing.T) {
	setupTestDB(t)
	repo := NewCategoryRepository()
	ctx := context.Background()

	category := &models.Category{Name: "Idioms"}
	require.NoError(t, repo.Create(ctx, category))
	require.NotEmpty(t, category.ID)

	got, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Idioms", got.Name)

	require.NoError(t, repo.Delete(ctx, category.ID))
	_, err = repo.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, category.ID), models.ErrCategoryNotFound)
}

func TestTagLifecycle(t *testing.T) {
	setupTestDB(t)
	repo := NewTagRepository()
	ctx := context.Background()

	tag := &models.Tag{Name: "keigo"}
	require.NoError(t, repo.Create(ctx, tag))

	got, err := repo.GetByName(ctx, "keigo")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrTagNotFound)

	require.NoError(t, repo.Delete(ctx, tag.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tag.ID), models.ErrTagNotFound)
}
