// Package analytics computes derived reporting over the review event log and
// the item population. Everything here is a read-only snapshot computation;
// nothing mutates scheduling state, and empty input always yields a
// well-defined zero result instead of an error.
package analytics

import (
	"sort"
	"time"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
)

// QualityBuckets is the number of recall grades (0 through 5).
const QualityBuckets = 6

// DailyStat summarizes one calendar day of reviews.
type DailyStat struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	ReviewsCount int      `json:"reviews_count"`
	SuccessRate  *float64 `json:"success_rate"`
}

// Statistics holds aggregate review performance over a time window.
// SuccessRate is nil, not zero, when the window contains no reviews.
type Statistics struct {
	WindowDays          int                     `json:"window_days"`
	TotalReviews        int                     `json:"total_reviews"`
	SuccessRate         *float64                `json:"success_rate"`
	QualityDistribution [QualityBuckets]float64 `json:"quality_distribution"` // percentages summing to 100
	CurrentStreakDays   int                     `json:"current_streak_days"`
	DailyStats          []DailyStat             `json:"daily_stats"`
	MatureItemsCount    int                     `json:"mature_items_count"`
	ItemsInSystemCount  int                     `json:"items_in_system_count"`
}

// ComputeStatistics aggregates the events submitted within the last
// windowDays into success rate, quality distribution, streak, and per-day
// stats. Item-population counts come from items, not from events.
func ComputeStatistics(events []review.Event, items []item.Item, windowDays int, now time.Time) Statistics {
	stats := Statistics{
		WindowDays:         windowDays,
		ItemsInSystemCount: len(items),
	}
	for _, it := range items {
		if it.MasteryLevel() == item.MasteryMature {
			stats.MatureItemsCount++
		}
	}

	windowStart := now.AddDate(0, 0, -windowDays)
	var windowed []review.Event
	for _, event := range events {
		if event.SubmittedAt.Before(windowStart) || event.SubmittedAt.After(now) {
			continue
		}
		windowed = append(windowed, event)
	}

	stats.TotalReviews = len(windowed)
	stats.CurrentStreakDays = currentStreak(events, now)
	if len(windowed) == 0 {
		return stats
	}

	successes := 0
	var counts [QualityBuckets]int
	byDay := make(map[string]*dayData)
	for _, event := range windowed {
		if event.Quality >= 0 && event.Quality < QualityBuckets {
			counts[event.Quality]++
		}
		success := isSuccess(event)
		if success {
			successes++
		}

		day := dateKey(event.SubmittedAt, now.Location())
		data := byDay[day]
		if data == nil {
			data = &dayData{}
			byDay[day] = data
		}
		data.total++
		if success {
			data.successes++
		}
	}

	rate := float64(successes) / float64(len(windowed))
	stats.SuccessRate = &rate
	for quality, count := range counts {
		stats.QualityDistribution[quality] = float64(count) / float64(len(windowed)) * 100
	}

	for day, data := range byDay {
		dayRate := float64(data.successes) / float64(data.total)
		stats.DailyStats = append(stats.DailyStats, DailyStat{
			Date:         day,
			ReviewsCount: data.total,
			SuccessRate:  &dayRate,
		})
	}
	sort.Slice(stats.DailyStats, func(i, j int) bool {
		return stats.DailyStats[i].Date < stats.DailyStats[j].Date
	})

	return stats
}

type dayData struct {
	total     int
	successes int
}

func isSuccess(event review.Event) bool {
	return event.Quality >= 3
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// currentStreak counts consecutive calendar days, walking backward from
// today, on which at least one review succeeded. A day without events, or
// with only failed reviews, breaks the streak.
func currentStreak(events []review.Event, now time.Time) int {
	successDays := make(map[string]bool)
	for _, event := range events {
		if isSuccess(event) {
			successDays[dateKey(event.SubmittedAt, now.Location())] = true
		}
	}

	streak := 0
	day := now
	for successDays[dateKey(day, now.Location())] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
