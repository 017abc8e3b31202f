// Package review provides review submission processing, the session queue
// builder, and the append-only review event log.
package review

import (
	"context"
	"time"
)

// Event is one submitted review. Events are immutable once written; they are
// the sole input to the analytics and schedule-advisor computations.
type Event struct {
	ID                    string    `db:"id" yaml:"id" json:"id"`
	ItemID                string    `db:"item_id" yaml:"item_id" json:"item_id"`
	SubmittedAt           time.Time `db:"submitted_at" yaml:"submitted_at" json:"submitted_at"`
	Quality               int       `db:"quality" yaml:"quality" json:"quality"`
	TimeSpentSeconds      int       `db:"time_spent_seconds" yaml:"time_spent_seconds" json:"time_spent_seconds"`
	ResultingIntervalDays int       `db:"resulting_interval_days" yaml:"resulting_interval_days" json:"resulting_interval_days"`
	ResultingEaseFactor   float64   `db:"resulting_ease_factor" yaml:"resulting_ease_factor" json:"resulting_ease_factor"`
	CreatedAt             time.Time `db:"created_at" yaml:"created_at" json:"created_at"`
}

//go:generate mockgen -source=event.go -destination=../mocks/review/mock_event_store.go -package=mock_review

// EventStore is the persistence contract for the append-only review log.
type EventStore interface {
	Append(ctx context.Context, event *Event) error
	// Query returns events with from <= submitted_at < to, oldest first.
	// A zero from or to leaves that bound open.
	Query(ctx context.Context, from, to time.Time) ([]Event, error)
	// FindByItemAndSubmittedAt returns the event for a logical submission,
	// or nil when the submission has not been applied yet. This is the
	// duplicate-detection hook for retried review calls.
	FindByItemAndSubmittedAt(ctx context.Context, itemID string, submittedAt time.Time) (*Event, error)
}
