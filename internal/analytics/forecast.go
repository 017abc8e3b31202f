package analytics

import (
	"time"

	"github.com/mfukuda/recall/internal/item"
)

// DueForecast is the projected review load for one future calendar day.
type DueForecast struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Forecast projects per-day due-item counts for the next horizonDays days,
// today included. Overdue items all land on today rather than being spread
// backward; items due past the horizon are ignored. Every day in the horizon
// appears in the result, zero counts included, so the output charts directly.
func Forecast(items []item.Item, horizonDays int, now time.Time) []DueForecast {
	if horizonDays <= 0 {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counts := make([]int, horizonDays)
	for _, it := range items {
		if it.NextReviewAt == nil {
			continue
		}
		due := it.NextReviewAt.In(now.Location())
		dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())

		offset := int(dueDay.Sub(today).Hours() / 24)
		if offset < 0 {
			offset = 0
		}
		if offset >= horizonDays {
			continue
		}
		counts[offset]++
	}

	forecast := make([]DueForecast, horizonDays)
	for day := 0; day < horizonDays; day++ {
		forecast[day] = DueForecast{
			Date:  today.AddDate(0, 0, day).Format("2006-01-02"),
			Count: counts[day],
		}
	}
	return forecast
}
