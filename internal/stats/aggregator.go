// Package stats derives aggregate study statistics from the phrase
// collection. Everything here is recomputable from scratch; the persisted
// counter record only seeds the fields that need cross-session tracking
// (streaks, total reviews).
package stats

import (
	"context"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Yusuke0018/Phrase-Forge/internal/srs"
	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

// dailyWindowDays is the span of the daily review series, today included.
const dailyWindowDays = 30

// Mastery bucket boundaries on review count.
const (
	intermediateMinReviews = 3
	advancedMinReviews     = 6
)

// PhraseSource supplies the phrase collection to aggregate over.
type PhraseSource interface {
	GetAll(ctx context.Context) ([]models.Phrase, error)
}

// CounterSource supplies the persisted monotonic counters.
type CounterSource interface {
	Get(ctx context.Context) (*models.UserStats, error)
}

// Aggregator computes statistics snapshots and caches the result for a
// freshness window. Any mutation to phrases must call Invalidate; the TTL
// only bounds staleness in the absence of known mutations.
type Aggregator struct {
	phrases  PhraseSource
	counters CounterSource
	ttl      time.Duration
	clock    func() time.Time

	mu         sync.Mutex
	cached     *models.StatsSnapshot
	computedAt time.Time
}

// NewAggregator creates an aggregator over the given sources.
func NewAggregator(phrases PhraseSource, counters CounterSource, ttl time.Duration) *Aggregator {
	return &Aggregator{
		phrases:  phrases,
		counters: counters,
		ttl:      ttl,
		clock:    time.Now,
	}
}

// Snapshot returns the current statistics, computing them fresh when the
// cache is empty or older than the freshness window.
func (a *Aggregator) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	now := a.clock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && now.Sub(a.computedAt) < a.ttl {
		return cloneSnapshot(a.cached), nil
	}

	snapshot, err := a.compute(ctx, now)
	if err != nil {
		return nil, err
	}
	a.cached = snapshot
	a.computedAt = now
	return cloneSnapshot(snapshot), nil
}

// Invalidate drops the cached snapshot. Called synchronously by every
// mutation path.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	a.cached = nil
	a.mu.Unlock()
}

func (a *Aggregator) compute(ctx context.Context, now time.Time) (*models.StatsSnapshot, error) {
	phrases, err := a.phrases.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counters, err := a.counters.Get(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.StatsSnapshot{
		UserStats:      *counters,
		CategoryStats:  categoryStats(phrases),
		TagStats:       tagStats(phrases),
		DailyStats:     dailyStats(phrases, now),
		MasteryLevels:  masteryLevels(phrases),
		MonthlyReviews: monthlyReviews(phrases, now),
		AverageMastery: averageMastery(phrases),
		GeneratedAt:    now,
	}
	snapshot.TotalPhrases = len(phrases)
	snapshot.PhrasesLearned = snapshot.MasteryLevels.Advanced
	return snapshot, nil
}

func categoryStats(phrases []models.Phrase) map[string]int {
	categorized := lo.Filter(phrases, func(p models.Phrase, _ int) bool {
		return p.CategoryID != ""
	})
	return lo.CountValuesBy(categorized, func(p models.Phrase) string {
		return p.CategoryID
	})
}

func tagStats(phrases []models.Phrase) map[string]int {
	// A phrase with N tags contributes to N buckets.
	return lo.CountValues(lo.FlatMap(phrases, func(p models.Phrase, _ int) []string {
		return p.Tags
	}))
}

// dailyStats counts, for each of the trailing 30 calendar days, the phrases
// reviewed at least once that day. A phrase reviewed twice in one day still
// counts once.
func dailyStats(phrases []models.Phrase, now time.Time) []models.DailyCount {
	windowStart := srs.StartOfDay(now).AddDate(0, 0, -(dailyWindowDays - 1))

	series := make([]models.DailyCount, dailyWindowDays)
	index := make(map[string]int, dailyWindowDays)
	for i := range series {
		day := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = models.DailyCount{Date: day}
		index[day] = i
	}

	for _, phrase := range phrases {
		seen := make(map[string]bool)
		for _, record := range phrase.ReviewHistory {
			day := record.Date.Format("2006-01-02")
			if seen[day] {
				continue
			}
			seen[day] = true
			if i, ok := index[day]; ok {
				series[i].Count++
			}
		}
	}
	return series
}

func masteryLevels(phrases []models.Phrase) models.MasteryLevels {
	var levels models.MasteryLevels
	for _, phrase := range phrases {
		switch reviews := len(phrase.ReviewHistory); {
		case reviews >= advancedMinReviews:
			levels.Advanced++
		case reviews >= intermediateMinReviews:
			levels.Intermediate++
		default:
			levels.Beginner++
		}
	}
	return levels
}

func monthlyReviews(phrases []models.Phrase, now time.Time) int {
	year, month, _ := now.Date()
	return lo.SumBy(phrases, func(p models.Phrase) int {
		return lo.CountBy(p.ReviewHistory, func(r models.ReviewRecord) bool {
			ry, rm, _ := r.Date.Date()
			return ry == year && rm == month
		})
	})
}

// averageMastery is the mean of each phrase's most recent recorded
// difficulty (neutral 0.5 with no history), as a rounded percentage.
func averageMastery(phrases []models.Phrase) int {
	if len(phrases) == 0 {
		return 0
	}
	total := lo.SumBy(phrases, func(p models.Phrase) float64 {
		if len(p.ReviewHistory) == 0 {
			return models.DefaultDifficulty
		}
		return p.ReviewHistory[len(p.ReviewHistory)-1].Difficulty
	})
	return int(math.Round(total / float64(len(phrases)) * 100))
}

func cloneSnapshot(s *models.StatsSnapshot) *models.StatsSnapshot {
	clone := *s
	clone.CategoryStats = maps.Clone(s.CategoryStats)
	clone.TagStats = maps.Clone(s.TagStats)
	clone.DailyStats = slices.Clone(s.DailyStats)
	return &clone
}
