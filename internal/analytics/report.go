package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mfukuda/recall/internal/assets"
)

type reportQualityRow struct {
	Quality int
	Share   string
}

type reportDailyRow struct {
	Date    string
	Reviews int
	Rate    string
}

type reportData struct {
	Generated          string
	WindowDays         int
	TotalReviews       int
	SuccessRate        string
	CurrentStreakDays  int
	ItemsInSystemCount int
	MatureItemsCount   int
	Quality            []reportQualityRow
	Daily              []reportDailyRow
}

// RenderMarkdown formats the statistics as a markdown performance report,
// suitable for terminal display or PDF conversion. An empty templatePath
// uses the embedded template.
func RenderMarkdown(stats Statistics, now time.Time, templatePath string) (string, error) {
	tmpl, err := assets.ParseReportTemplate(templatePath)
	if err != nil {
		return "", fmt.Errorf("assets.ParseReportTemplate() > %w", err)
	}

	data := reportData{
		Generated:          now.Format("2006-01-02"),
		WindowDays:         stats.WindowDays,
		TotalReviews:       stats.TotalReviews,
		SuccessRate:        formatRate(stats.SuccessRate),
		CurrentStreakDays:  stats.CurrentStreakDays,
		ItemsInSystemCount: stats.ItemsInSystemCount,
		MatureItemsCount:   stats.MatureItemsCount,
	}
	if stats.TotalReviews > 0 {
		for quality, pct := range stats.QualityDistribution {
			data.Quality = append(data.Quality, reportQualityRow{
				Quality: quality,
				Share:   fmt.Sprintf("%.1f%%", pct),
			})
		}
	}
	for _, day := range stats.DailyStats {
		data.Daily = append(data.Daily, reportDailyRow{
			Date:    day.Date,
			Reviews: day.ReviewsCount,
			Rate:    formatRate(day.SuccessRate),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return buf.String(), nil
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *rate*100)
}
