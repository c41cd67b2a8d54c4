// Package study owns every mutation of the phrase collection: creating,
// editing and deleting phrases, and recording completed reviews. Keeping one
// mutation path makes the counter updates and cache invalidation that must
// accompany each change impossible to skip.
package study

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Yusuke0018/Phrase-Forge/internal/srs"
	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// PhraseStore abstracts phrase persistence so the service stays storage
// agnostic.
type PhraseStore interface {
	GetAll(ctx context.Context) ([]models.Phrase, error)
	GetByID(ctx context.Context, id string) (*models.Phrase, error)
	Create(ctx context.Context, phrase *models.Phrase) error
	Update(ctx context.Context, phrase *models.Phrase) error
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, phraseID string, record models.ReviewRecord, nextReview time.Time) error
}

// StatsStore abstracts the persisted counter record.
type StatsStore interface {
	Get(ctx context.Context) (*models.UserStats, error)
	Save(ctx context.Context, stats *models.UserStats) error
}

// StatsCache is invalidated after every mutation.
type StatsCache interface {
	Invalidate()
}

// Service coordinates the scheduling engine, the stores and the stats cache
// for one session.
type Service struct {
	phrases PhraseStore
	stats   StatsStore
	cache   StatsCache
	clock   func() time.Time
	log     *logrus.Entry
}

// New wires a service with the default clock.
func New(phrases PhraseStore, stats StatsStore, cache StatsCache, logger *logrus.Logger) *Service {
	return &Service{
		phrases: phrases,
		stats:   stats,
		cache:   cache,
		clock:   time.Now,
		log:     logger.WithField("component", "study"),
	}
}

// Now exposes the service clock so callers schedule against the same time
// source the service records with.
func (s *Service) Now() time.Time {
	return s.clock()
}

// AddPhrase validates and stores a new phrase. New phrases are due
// immediately so they enter today's queue.
func (s *Service) AddPhrase(ctx context.Context, phrase *models.Phrase) error {
	if strings.TrimSpace(phrase.English) == "" || strings.TrimSpace(phrase.Japanese) == "" {
		return models.ErrMissingText
	}

	now := s.clock()
	if phrase.ID == "" {
		phrase.ID = uuid.NewString()
	}
	phrase.CreatedAt = now
	phrase.UpdatedAt = now
	if phrase.NextReviewDate.IsZero() {
		phrase.NextReviewDate = now
	}

	if err := s.phrases.Create(ctx, phrase); err != nil {
		return err
	}
	// The phrase is committed; the cached snapshot is stale from here on,
	// whether or not the counter save below succeeds.
	s.cache.Invalidate()

	if err := s.adjustCounters(ctx, func(us *models.UserStats) {
		us.TotalPhrases++
	}); err != nil {
		return err
	}

	s.log.WithField("phrase_id", phrase.ID).Debug("phrase added")
	return nil
}

// UpdatePhrase validates and stores edits to a phrase's display fields.
func (s *Service) UpdatePhrase(ctx context.Context, phrase *models.Phrase) error {
	if strings.TrimSpace(phrase.English) == "" || strings.TrimSpace(phrase.Japanese) == "" {
		return models.ErrMissingText
	}

	phrase.UpdatedAt = s.clock()
	if err := s.phrases.Update(ctx, phrase); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// DeletePhrase removes a phrase and its history.
func (s *Service) DeletePhrase(ctx context.Context, id string) error {
	if err := s.phrases.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()

	if err := s.adjustCounters(ctx, func(us *models.UserStats) {
		if us.TotalPhrases > 0 {
			us.TotalPhrases--
		}
	}); err != nil {
		return err
	}

	s.log.WithField("phrase_id", id).Debug("phrase deleted")
	return nil
}

// DueSet returns the phrases due for review as of the given time.
func (s *Service) DueSet(ctx context.Context, asOf time.Time) ([]models.Phrase, error) {
	phrases, err := s.phrases.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return srs.DueSet(phrases, asOf), nil
}

// Recommend suggests the next interval for a phrase based on its history.
// The caller may override it with any interval from the table.
func (s *Service) Recommend(ctx context.Context, phraseID string) (models.Interval, error) {
	phrase, err := s.phrases.GetByID(ctx, phraseID)
	if err != nil {
		return "", err
	}
	return srs.RecommendInterval(phrase.ReviewHistory), nil
}

// RecordReview records one completed review: it appends an immutable
// ReviewRecord, moves the next review date, bumps the persisted counters
// and invalidates the stats cache. The history append and the next-date
// update are atomic; on any failure the phrase keeps its prior state.
func (s *Service) RecordReview(ctx context.Context, phraseID string, interval models.Interval, difficulty float64) (*models.Phrase, error) {
	if !interval.Valid() {
		return nil, models.ErrInvalidInterval
	}
	// Out-of-range difficulty is rejected rather than clamped so caller
	// bugs surface early.
	if math.IsNaN(difficulty) || difficulty < 0 || difficulty > 1 {
		return nil, models.ErrInvalidDifficulty
	}

	phrase, err := s.phrases.GetByID(ctx, phraseID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	record := models.ReviewRecord{
		PhraseID:   phraseID,
		Date:       now,
		Interval:   interval,
		Difficulty: difficulty,
	}
	nextReview := srs.NextReviewDate(interval, now)

	if err := s.phrases.AppendReview(ctx, phraseID, record, nextReview); err != nil {
		return nil, err
	}
	// The review is committed; invalidate before the counter save so a save
	// failure cannot leave the cache serving the pre-review snapshot.
	s.cache.Invalidate()

	if err := s.adjustCounters(ctx, func(us *models.UserStats) {
		advanceStreak(us, now)
		us.TotalReviews++
		reviewedAt := now
		us.LastReviewDate = &reviewedAt
	}); err != nil {
		return nil, err
	}

	phrase.ReviewHistory = append(phrase.ReviewHistory, record)
	phrase.NextReviewDate = nextReview
	phrase.UpdatedAt = now

	s.log.WithFields(logrus.Fields{
		"phrase_id":   phraseID,
		"interval":    interval,
		"difficulty":  difficulty,
		"next_review": nextReview.Format("2006-01-02"),
	}).Info("review recorded")

	return phrase, nil
}

// Stats returns the persisted counters as they stand.
func (s *Service) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.stats.Get(ctx)
}

func (s *Service) adjustCounters(ctx context.Context, apply func(*models.UserStats)) error {
	counters, err := s.stats.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load counters: %w", err)
	}
	apply(counters)
	if err := s.stats.Save(ctx, counters); err != nil {
		return fmt.Errorf("failed to save counters: %w", err)
	}
	return nil
}

// advanceStreak applies the streak policy: consecutive calendar days with at
// least one review. A second review on the same day keeps the streak, a
// review on the day after the last one extends it, anything else restarts it.
func advanceStreak(us *models.UserStats, now time.Time) {
	switch {
	case us.LastReviewDate == nil:
		us.CurrentStreak = 1
	case srs.SameDay(*us.LastReviewDate, now):
		if us.CurrentStreak == 0 {
			us.CurrentStreak = 1
		}
	case srs.SameDay(us.LastReviewDate.AddDate(0, 0, 1), now):
		us.CurrentStreak++
	default:
		us.CurrentStreak = 1
	}
	if us.CurrentStreak > us.LongestStreak {
		us.LongestStreak = us.CurrentStreak
	}
}
