package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
)

func eventAt(t time.Time, quality int) review.Event {
	return review.Event{ItemID: "note-1", SubmittedAt: t, Quality: quality, TimeSpentSeconds: 20}
}

func TestComputeStatistics_EmptyInput(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stats := ComputeStatistics(nil, nil, 30, now)

	assert.Nil(t, stats.SuccessRate)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, [QualityBuckets]float64{}, stats.QualityDistribution)
	assert.Empty(t, stats.DailyStats)
	assert.Equal(t, 0, stats.CurrentStreakDays)
	assert.Equal(t, 0, stats.ItemsInSystemCount)
}

func TestComputeStatistics_SuccessRateAndDistribution(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []review.Event{
		eventAt(now.Add(-1*time.Hour), 5),
		eventAt(now.Add(-2*time.Hour), 4),
		eventAt(now.Add(-3*time.Hour), 3),
		eventAt(now.Add(-4*time.Hour), 1),
	}

	stats := ComputeStatistics(events, nil, 7, now)

	require.NotNil(t, stats.SuccessRate)
	assert.InDelta(t, 0.75, *stats.SuccessRate, 0.0001)
	assert.Equal(t, 4, stats.TotalReviews)

	assert.InDelta(t, 25.0, stats.QualityDistribution[1], 0.0001)
	assert.InDelta(t, 25.0, stats.QualityDistribution[3], 0.0001)
	assert.InDelta(t, 25.0, stats.QualityDistribution[4], 0.0001)
	assert.InDelta(t, 25.0, stats.QualityDistribution[5], 0.0001)

	total := 0.0
	for _, pct := range stats.QualityDistribution {
		total += pct
	}
	assert.InDelta(t, 100.0, total, 0.0001)
}

func TestComputeStatistics_WindowFiltering(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	events := []review.Event{
		eventAt(now.AddDate(0, 0, -1), 5),
		eventAt(now.AddDate(0, 0, -10), 5), // outside 7-day window
	}

	stats := ComputeStatistics(events, nil, 7, now)
	assert.Equal(t, 1, stats.TotalReviews)
}

func TestComputeStatistics_CurrentStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		events []review.Event
		want   int
	}{
		{
			name: "three consecutive successful days",
			events: []review.Event{
				eventAt(now.Add(-2*time.Hour), 4),
				eventAt(now.AddDate(0, 0, -1), 5),
				eventAt(now.AddDate(0, 0, -2), 3),
			},
			want: 3,
		},
		{
			name: "missed day breaks the streak",
			events: []review.Event{
				eventAt(now.Add(-2*time.Hour), 4),
				eventAt(now.AddDate(0, 0, -2), 5),
			},
			want: 1,
		},
		{
			name: "day with only failures breaks the streak",
			events: []review.Event{
				eventAt(now.Add(-2*time.Hour), 4),
				eventAt(now.AddDate(0, 0, -1), 1),
				eventAt(now.AddDate(0, 0, -2), 5),
			},
			want: 1,
		},
		{
			name: "no review today means no streak",
			events: []review.Event{
				eventAt(now.AddDate(0, 0, -1), 5),
				eventAt(now.AddDate(0, 0, -2), 5),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStatistics(tt.events, nil, 30, now)
			assert.Equal(t, tt.want, stats.CurrentStreakDays)
		})
	}
}

func TestComputeStatistics_DailyStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	events := []review.Event{
		eventAt(now.Add(-1*time.Hour), 4),
		eventAt(now.Add(-2*time.Hour), 1),
		eventAt(now.AddDate(0, 0, -1), 5),
	}

	stats := ComputeStatistics(events, nil, 7, now)

	require.Len(t, stats.DailyStats, 2)
	assert.Equal(t, "2025-06-14", stats.DailyStats[0].Date)
	assert.Equal(t, 1, stats.DailyStats[0].ReviewsCount)
	require.NotNil(t, stats.DailyStats[0].SuccessRate)
	assert.InDelta(t, 1.0, *stats.DailyStats[0].SuccessRate, 0.0001)

	assert.Equal(t, "2025-06-15", stats.DailyStats[1].Date)
	assert.Equal(t, 2, stats.DailyStats[1].ReviewsCount)
	require.NotNil(t, stats.DailyStats[1].SuccessRate)
	assert.InDelta(t, 0.5, *stats.DailyStats[1].SuccessRate, 0.0001)
}

func TestComputeStatistics_ItemCounts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -5)
	items := []item.Item{
		{ID: "a", IntervalDays: 30, LastReviewAt: &last},
		{ID: "b", IntervalDays: 21, LastReviewAt: &last},
		{ID: "c", IntervalDays: 6, LastReviewAt: &last},
		{ID: "d"},
	}

	stats := ComputeStatistics(nil, items, 30, now)
	assert.Equal(t, 4, stats.ItemsInSystemCount)
	assert.Equal(t, 2, stats.MatureItemsCount)
}
