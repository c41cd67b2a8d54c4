package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusuke0018/Phrase-Forge/pkg/models"
)

type fakePhraseSource struct {
	phrases []models.Phrase
	calls   int
}

func (s *fakePhraseSource) GetAll(ctx context.Context) ([]models.Phrase, error) {
	s.calls++
	return append([]models.Phrase(nil), s.phrases...), nil
}

type fakeCounterSource struct {
	stats models.UserStats
}

func (s *fakeCounterSource) Get(ctx context.Context) (*models.UserStats, error) {
	clone := s.stats
	return &clone, nil
}

func reviews(phraseID string, dates ...time.Time) []models.ReviewRecord {
	records := make([]models.ReviewRecord, 0, len(dates))
	for _, d := range dates {
		records = append(records, models.ReviewRecord{
			PhraseID:   phraseID,
			Date:       d,
			Interval:   models.IntervalTomorrow,
			Difficulty: 0.5,
		})
	}
	return records
}

func newTestAggregator(now time.Time, phrases []models.Phrase, counters models.UserStats) (*Aggregator, *fakePhraseSource) {
	source := &fakePhraseSource{phrases: phrases}
	agg := NewAggregator(source, &fakeCounterSource{stats: counters}, 5*time.Minute)
	agg.clock = func() time.Time { return now }
	return agg, source
}

func TestSnapshotDerivations(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour)
	yesterday := now.AddDate(0, 0, -1)
	lastMonth := now.AddDate(0, -1, 0)

	beginner := models.Phrase{
		ID: "b", CategoryID: "cat-1", Tags: []string{"greeting", "casual"},
		ReviewHistory: reviews("b", yesterday),
	}
	advanced := models.Phrase{
		ID: "a", CategoryID: "cat-1", Tags: []string{"greeting"},
		ReviewHistory: reviews("a", lastMonth, lastMonth, yesterday, yesterday, today, today),
	}
	untouched := models.Phrase{ID: "u", CategoryID: "cat-2"}

	agg, _ := newTestAggregator(now, []models.Phrase{beginner, advanced, untouched}, models.UserStats{
		CurrentStreak: 2, LongestStreak: 4, TotalReviews: 7,
	})

	snapshot, err := agg.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.TotalPhrases)
	assert.Equal(t, map[string]int{"cat-1": 2, "cat-2": 1}, snapshot.CategoryStats)
	assert.Equal(t, map[string]int{"greeting": 2, "casual": 1}, snapshot.TagStats)
	assert.Equal(t, models.MasteryLevels{Beginner: 2, Advanced: 1}, snapshot.MasteryLevels)
	assert.Equal(t, 1, snapshot.PhrasesLearned)

	// Carried-forward counters pass through untouched.
	assert.Equal(t, 2, snapshot.CurrentStreak)
	assert.Equal(t, 4, snapshot.LongestStreak)
	assert.Equal(t, 7, snapshot.TotalReviews)

	// 4 reviews this month for "a" plus 1 for "b"; last month's excluded.
	assert.Equal(t, 5, snapshot.MonthlyReviews)

	// Most recent difficulties: 0.5, 0.5 and the neutral 0.5 default.
	assert.Equal(t, 50, snapshot.AverageMastery)

	require.Len(t, snapshot.DailyStats, 30)
	assert.Equal(t, now.AddDate(0, 0, -29).Format("2006-01-02"), snapshot.DailyStats[0].Date)
	assert.Equal(t, now.Format("2006-01-02"), snapshot.DailyStats[29].Date)
	// Two phrases reviewed yesterday, one today; repeats within a day count once.
	assert.Equal(t, 2, snapshot.DailyStats[28].Count)
	assert.Equal(t, 1, snapshot.DailyStats[29].Count)
}

func TestAverageMasteryUsesMostRecentDifficulty(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	phrase := models.Phrase{
		ID: "p",
		ReviewHistory: []models.ReviewRecord{
			{Date: now.AddDate(0, 0, -2), Difficulty: 0.9},
			{Date: now.AddDate(0, 0, -1), Difficulty: 0.2},
		},
	}

	agg, _ := newTestAggregator(now, []models.Phrase{phrase}, models.UserStats{})
	snapshot, err := agg.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, snapshot.AverageMastery)
}

func TestSnapshotEmptyCollection(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(now, nil, models.UserStats{})

	snapshot, err := agg.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snapshot.TotalPhrases)
	assert.Empty(t, snapshot.CategoryStats)
	assert.Zero(t, snapshot.AverageMastery)
	assert.Len(t, snapshot.DailyStats, 30)
}

func TestSnapshotCachingAndInvalidation(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	agg, source := newTestAggregator(now, []models.Phrase{{ID: "p1"}}, models.UserStats{})
	ctx := context.Background()

	first, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	// Mutate the underlying data without telling the aggregator: the cached
	// snapshot keeps being served inside the freshness window.
	source.phrases = append(source.phrases, models.Phrase{ID: "p2"})
	cached, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first.TotalPhrases, cached.TotalPhrases)

	// Invalidation forces a recomputation that matches a from-scratch run.
	agg.Invalidate()
	fresh, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 2, fresh.TotalPhrases)
}

func TestSnapshotTTLExpiry(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	agg, source := newTestAggregator(now, []models.Phrase{{ID: "p1"}}, models.UserStats{})
	ctx := context.Background()

	_, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	agg.clock = func() time.Time { return now.Add(6 * time.Minute) }
	_, err = agg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "stale cache recomputes after the freshness window")
}

func TestSnapshotReturnsIndependentCopies(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(now, []models.Phrase{{ID: "p1", CategoryID: "c"}}, models.UserStats{})
	ctx := context.Background()

	first, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	first.CategoryStats["c"] = 99

	second, err := agg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.CategoryStats["c"], "caller mutations must not leak into the cache")
}
