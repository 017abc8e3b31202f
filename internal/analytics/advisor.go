package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/mfukuda/recall/internal/review"
)

const (
	// minBucketSamples is the sample count below which an hour or weekday
	// bucket is not statistically meaningful and is excluded.
	minBucketSamples = 3
	// poorQualityThreshold marks an hour bucket as worth avoiding.
	poorQualityThreshold = 2.5
	// topBuckets is how many best/worst hour buckets to report.
	topBuckets = 3
)

// HourStat is the mean recall quality observed within one hour of the day.
type HourStat struct {
	Hour        int     `json:"hour"` // 0-23
	MeanQuality float64 `json:"mean_quality"`
	Samples     int     `json:"samples"`
}

// DaySuggestion is the recommended review slot for one day of the week.
type DaySuggestion struct {
	Weekday         string `json:"weekday"`
	Hour            int    `json:"hour"`
	DurationMinutes int    `json:"duration_minutes"`
	// Fallback is true when the day had too few samples and the global
	// best hour was used instead.
	Fallback bool `json:"fallback,omitempty"`
}

// Recommendations is the schedule advice mined from the review history.
// Empty history produces empty lists and a zero consistency score.
type Recommendations struct {
	BestReviewTimes             []HourStat      `json:"best_review_times"`
	AvoidTimes                  []HourStat      `json:"avoid_times"`
	OptimalSessionLengthMinutes int             `json:"optimal_session_length_minutes"`
	SuggestedSchedule           []DaySuggestion `json:"suggested_schedule"`
	ConsistencyScore            float64         `json:"consistency_score"` // 0-100
}

// RecommendSchedule buckets historical reviews by hour of day and day of
// week and derives when, and for how long, the learner performs best.
func RecommendSchedule(events []review.Event) Recommendations {
	var rec Recommendations
	if len(events) == 0 {
		return rec
	}

	hourStats := bucketByHour(events)
	rec.BestReviewTimes = topByQuality(hourStats, topBuckets, true)
	rec.AvoidTimes = filterPoor(topByQuality(hourStats, topBuckets, false))
	rec.OptimalSessionLengthMinutes = optimalSessionLength(events)
	rec.SuggestedSchedule = suggestSchedule(events, rec.BestReviewTimes, rec.OptimalSessionLengthMinutes)
	rec.ConsistencyScore = consistencyScore(events)
	return rec
}

func bucketByHour(events []review.Event) []HourStat {
	var sums [24]float64
	var counts [24]int
	for _, event := range events {
		hour := event.SubmittedAt.Hour()
		sums[hour] += float64(event.Quality)
		counts[hour]++
	}

	var stats []HourStat
	for hour := 0; hour < 24; hour++ {
		if counts[hour] < minBucketSamples {
			continue
		}
		stats = append(stats, HourStat{
			Hour:        hour,
			MeanQuality: sums[hour] / float64(counts[hour]),
			Samples:     counts[hour],
		})
	}
	return stats
}

func topByQuality(stats []HourStat, n int, best bool) []HourStat {
	sorted := make([]HourStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if best {
			return sorted[i].MeanQuality > sorted[j].MeanQuality
		}
		return sorted[i].MeanQuality < sorted[j].MeanQuality
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func filterPoor(stats []HourStat) []HourStat {
	var poor []HourStat
	for _, stat := range stats {
		if stat.MeanQuality < poorQualityThreshold {
			poor = append(poor, stat)
		}
	}
	return poor
}

// sessionLengthBuckets are upper bounds in minutes for daily review time.
var sessionLengthBuckets = []int{5, 10, 20, 30, 60}

// optimalSessionLength groups reviews into daily sessions, buckets the
// sessions by total duration, and picks the duration bucket with the best
// success rate. Ties go to the shorter bucket: more time that does not
// improve recall is time wasted.
func optimalSessionLength(events []review.Event) int {
	type session struct {
		seconds   int
		total     int
		successes int
	}
	sessions := make(map[string]*session)
	for _, event := range events {
		day := event.SubmittedAt.Format("2006-01-02")
		s := sessions[day]
		if s == nil {
			s = &session{}
			sessions[day] = s
		}
		s.seconds += event.TimeSpentSeconds
		s.total++
		if isSuccess(event) {
			s.successes++
		}
	}

	type bucket struct {
		sessions  int
		total     int
		successes int
	}
	buckets := make([]bucket, len(sessionLengthBuckets)+1)
	for _, s := range sessions {
		idx := len(sessionLengthBuckets)
		for i, bound := range sessionLengthBuckets {
			if s.seconds <= bound*60 {
				idx = i
				break
			}
		}
		buckets[idx].sessions++
		buckets[idx].total += s.total
		buckets[idx].successes += s.successes
	}

	bestIdx := -1
	bestRate := -1.0
	for i, b := range buckets {
		if b.sessions < minBucketSamples || b.total == 0 {
			continue
		}
		rate := float64(b.successes) / float64(b.total)
		if rate > bestRate {
			bestRate = rate
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0
	}
	if bestIdx == len(sessionLengthBuckets) {
		return sessionLengthBuckets[len(sessionLengthBuckets)-1]
	}
	return sessionLengthBuckets[bestIdx]
}

func suggestSchedule(events []review.Event, best []HourStat, duration int) []DaySuggestion {
	if duration == 0 {
		duration = 20
	}

	type daySums struct {
		sums   [24]float64
		counts [24]int
	}
	byWeekday := make(map[time.Weekday]*daySums)
	for _, event := range events {
		weekday := event.SubmittedAt.Weekday()
		d := byWeekday[weekday]
		if d == nil {
			d = &daySums{}
			byWeekday[weekday] = d
		}
		hour := event.SubmittedAt.Hour()
		d.sums[hour] += float64(event.Quality)
		d.counts[hour]++
	}

	globalBestHour := -1
	if len(best) > 0 {
		globalBestHour = best[0].Hour
	}

	var suggestions []DaySuggestion
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		bestHour := -1
		bestQuality := -1.0
		if d := byWeekday[weekday]; d != nil {
			for hour := 0; hour < 24; hour++ {
				if d.counts[hour] < minBucketSamples {
					continue
				}
				quality := d.sums[hour] / float64(d.counts[hour])
				if quality > bestQuality {
					bestQuality = quality
					bestHour = hour
				}
			}
		}

		fallback := false
		if bestHour < 0 {
			if globalBestHour < 0 {
				continue
			}
			bestHour = globalBestHour
			fallback = true
		}
		suggestions = append(suggestions, DaySuggestion{
			Weekday:         weekday.String(),
			Hour:            bestHour,
			DurationMinutes: duration,
			Fallback:        fallback,
		})
	}
	return suggestions
}

// consistencyScore is the inverse coefficient of variation of the
// time-of-day at which reviews are submitted, scaled to 0-100. Reviewing at
// the same time every day scores 100.
func consistencyScore(events []review.Event) float64 {
	if len(events) < 2 {
		return 0
	}

	var seconds []float64
	for _, event := range events {
		t := event.SubmittedAt
		seconds = append(seconds, float64(t.Hour()*3600+t.Minute()*60+t.Second()))
	}

	mean := 0.0
	for _, s := range seconds {
		mean += s
	}
	mean /= float64(len(seconds))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, s := range seconds {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(seconds))

	cv := math.Sqrt(variance) / mean
	score := (1 - cv) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
