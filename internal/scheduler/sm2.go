// Package scheduler implements the SM-2 derived scheduling model and the
// retention estimator. All functions are pure; persistence belongs to callers.
package scheduler

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// MaxQuality is the highest recall grade a learner can report.
	MaxQuality = 5
	// SuccessThreshold is the lowest quality counted as a successful recall.
	SuccessThreshold = 3
)

// ErrInvalidQuality is returned when a review quality is outside [0, 5].
// Use errors.Is to check: errors.Is(err, scheduler.ErrInvalidQuality)
var ErrInvalidQuality = errors.New("scheduler: quality out of range")

// Params holds the tunable scheduling parameters for one learner.
type Params struct {
	MinimumEaseFactor float64
	// InitialIntervals are the intervals in days after the first and second
	// consecutive successful reviews.
	InitialIntervals [2]int
	// RetentionDecay scales the memory stability used by EstimateRetention.
	// Values above 1 model a slower forgetting curve.
	RetentionDecay float64
}

// DefaultParams returns the standard SM-2 parameters.
func DefaultParams() Params {
	return Params{
		MinimumEaseFactor: MinEaseFactor,
		InitialIntervals:  [2]int{1, 6},
		RetentionDecay:    1.0,
	}
}

// Result is the scheduling state produced by applying one review.
type Result struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

// ApplyReview computes the next scheduling state for an item given the
// learner's recall quality. A quality below SuccessThreshold resets the
// repetition streak and schedules an early re-review; the ease factor is
// recomputed in both branches so a failure always lowers it.
func ApplyReview(params Params, easeFactor float64, intervalDays, repetitions, quality int) (Result, error) {
	if quality < 0 || quality > MaxQuality {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	if easeFactor == 0 {
		easeFactor = DefaultEaseFactor
	}

	newEF := updateEaseFactor(params, easeFactor, quality)

	if quality < SuccessThreshold {
		return Result{
			EaseFactor:   newEF,
			IntervalDays: params.InitialIntervals[0],
			Repetitions:  0,
		}, nil
	}

	newRepetitions := repetitions + 1
	var newInterval int
	switch newRepetitions {
	case 1:
		newInterval = params.InitialIntervals[0]
	case 2:
		newInterval = params.InitialIntervals[1]
	default:
		newInterval = int(math.Round(float64(intervalDays) * newEF))
		if newInterval < 1 {
			newInterval = 1
		}
	}

	return Result{
		EaseFactor:   newEF,
		IntervalDays: newInterval,
		Repetitions:  newRepetitions,
	}, nil
}

// updateEaseFactor applies the standard SM-2 delta and clamps the result
// at the configured minimum. There is no upper clamp: the delta is negative
// for any quality below 5, so the factor has a natural ceiling.
func updateEaseFactor(params Params, ef float64, quality int) float64 {
	q := float64(quality)
	newEF := ef + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	minEF := params.MinimumEaseFactor
	if minEF == 0 {
		minEF = MinEaseFactor
	}
	return math.Max(newEF, minEF)
}
