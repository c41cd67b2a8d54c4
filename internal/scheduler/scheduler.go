// Package scheduler runs the daily maintenance job: the streak counter is
// incrementally maintained by review recording, so something has to notice
// the day boundary when no review happens at all.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Yusuke0018/Phrase-Forge/internal/srs"
	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// StatsStore is the persisted counter record the rollover adjusts.
type StatsStore interface {
	Get(ctx context.Context) (*models.UserStats, error)
	Save(ctx context.Context, stats *models.UserStats) error
}

// StatsCache is invalidated whenever the rollover changes counters.
type StatsCache interface {
	Invalidate()
}

// Scheduler manages scheduled maintenance tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	stats     StatsStore
	cache     StatsCache
	hour      int
	clock     func() time.Time
	log       *logrus.Entry
}

// New creates a new scheduler instance running its job at the given hour.
func New(stats StatsStore, cache StatsCache, hour int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		stats:     stats,
		cache:     cache,
		hour:      hour,
		clock:     time.Now,
		log:       logger.WithField("component", "scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	at := fmt.Sprintf("%02d:00", s.hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runRollover); err != nil {
		return fmt.Errorf("failed to schedule streak rollover: %v", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runRollover() {
	if err := s.RolloverStreak(context.Background()); err != nil {
		s.log.WithError(err).Error("streak rollover failed")
	}
}

// RolloverStreak zeroes the current streak once a full calendar day has
// passed without a review. Reviews recorded today or yesterday keep the
// streak alive; yesterday's still counts because today's review may extend it.
func (s *Scheduler) RolloverStreak(ctx context.Context) error {
	counters, err := s.stats.Get(ctx)
	if err != nil {
		return err
	}
	if counters.LastReviewDate == nil || counters.CurrentStreak == 0 {
		return nil
	}

	now := s.clock()
	yesterday := srs.StartOfDay(now).AddDate(0, 0, -1)
	if !counters.LastReviewDate.Before(yesterday) {
		return nil
	}

	s.log.WithField("last_review", counters.LastReviewDate.Format("2006-01-02")).
		Info("streak broken, resetting")
	counters.CurrentStreak = 0
	if err := s.stats.Save(ctx, counters); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}
