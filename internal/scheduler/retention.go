package scheduler

import (
	"math"
	"time"
)

// EstimateRetention returns the estimated probability, in [0, 1], that the
// learner still remembers an item. Items that have never been reviewed are
// not "forgotten", so a nil lastReviewAt returns 1.0.
//
// The curve is exponential in elapsed days over a stability horizon derived
// from the current interval and ease factor. A higher ease factor models a
// more durable memory, so retention grows with it for fixed elapsed time.
func EstimateRetention(params Params, intervalDays int, easeFactor float64, lastReviewAt *time.Time, now time.Time) float64 {
	if lastReviewAt == nil {
		return 1.0
	}

	if easeFactor == 0 {
		easeFactor = DefaultEaseFactor
	}
	decay := params.RetentionDecay
	if decay <= 0 {
		decay = 1.0
	}

	stability := math.Max(float64(intervalDays), 1) * (easeFactor / DefaultEaseFactor) * decay

	daysElapsed := now.Sub(*lastReviewAt).Hours() / 24.0
	if daysElapsed < 0 {
		daysElapsed = 0
	}

	retention := math.Exp(-daysElapsed / stability)
	if retention > 1 {
		return 1
	}
	if retention < 0 {
		return 0
	}
	return retention
}
