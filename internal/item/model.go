// Package item provides the scheduling-state record for a piece of knowledge
// under spaced review, and the persistence contract for it.
package item

import "time"

// MasteryLevel is a coarse label derived from the review interval.
type MasteryLevel string

const (
	MasteryNew      MasteryLevel = "new"
	MasteryLearning MasteryLevel = "learning"
	MasteryYoung    MasteryLevel = "young"
	MasteryMature   MasteryLevel = "mature"

	// MatureIntervalDays is the interval at which an item counts as mature.
	MatureIntervalDays = 21
)

// Item holds the per-item scheduling state. The engine never sees content
// bodies; ItemType exists for reporting only.
type Item struct {
	ID           string     `db:"id" yaml:"id" json:"id"`
	ItemType     string     `db:"item_type" yaml:"item_type,omitempty" json:"item_type,omitempty"`
	EaseFactor   float64    `db:"ease_factor" yaml:"ease_factor" json:"ease_factor"`
	IntervalDays int        `db:"interval_days" yaml:"interval_days" json:"interval_days"`
	Repetitions  int        `db:"repetitions" yaml:"repetitions" json:"repetitions"`
	LastReviewAt *time.Time `db:"last_review_at" yaml:"last_review_at,omitempty" json:"last_review_at,omitempty"`
	NextReviewAt *time.Time `db:"next_review_at" yaml:"next_review_at,omitempty" json:"next_review_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" yaml:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" yaml:"updated_at" json:"updated_at"`
}

// New creates an item that has never been reviewed. It enters the session
// queue through the new-item quota rather than a pre-assigned due date.
func New(id, itemType string, now time.Time) Item {
	return Item{
		ID:         id,
		ItemType:   itemType,
		EaseFactor: 2.5,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MasteryLevel derives the coarse learning stage from the interval length.
func (i Item) MasteryLevel() MasteryLevel {
	switch {
	case i.LastReviewAt == nil:
		return MasteryNew
	case i.IntervalDays >= MatureIntervalDays:
		return MasteryMature
	case i.IntervalDays >= 7:
		return MasteryYoung
	default:
		return MasteryLearning
	}
}

// IsDue reports whether the item's scheduled review time has arrived.
// Never-reviewed items are not due; they are admitted as new items.
func (i Item) IsDue(now time.Time) bool {
	return i.NextReviewAt != nil && !i.NextReviewAt.After(now)
}

// Version is the optimistic-concurrency marker for compare-and-swap writes.
// Two concurrent reviews of the same item cannot both match it.
type Version struct {
	Repetitions  int
	NextReviewAt *time.Time
}

// Version returns the item's current CAS marker.
func (i Item) Version() Version {
	return Version{Repetitions: i.Repetitions, NextReviewAt: i.NextReviewAt}
}

// Matches reports whether the other version refers to the same scheduling state.
func (v Version) Matches(other Version) bool {
	if v.Repetitions != other.Repetitions {
		return false
	}
	if (v.NextReviewAt == nil) != (other.NextReviewAt == nil) {
		return false
	}
	if v.NextReviewAt == nil {
		return true
	}
	return v.NextReviewAt.Equal(*other.NextReviewAt)
}
