package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/scheduler"
)

// Processor applies submitted reviews to item scheduling state and appends
// one review event per applied submission.
type Processor struct {
	items  item.Store
	events EventStore
	params scheduler.Params
}

// NewProcessor creates a new Processor.
func NewProcessor(items item.Store, events EventStore, params scheduler.Params) *Processor {
	return &Processor{items: items, events: events, params: params}
}

// SubmitRequest is one review submission. SubmittedAt doubles as the logical
// submission id: a retried call carries the same value, which makes the
// submission detectable as a duplicate.
type SubmitRequest struct {
	ItemID           string
	Quality          int
	TimeSpentSeconds int
	SubmittedAt      time.Time
}

// SubmitResult reports the outcome of a processed review. MasteryChanged is
// the explicit post-condition hook for callers that act on mastery
// transitions; the engine itself triggers nothing.
type SubmitResult struct {
	Item            item.Item
	Event           *Event
	PreviousMastery item.MasteryLevel
	NewMastery      item.MasteryLevel
	MasteryChanged  bool
	// AlreadyApplied is true when the submission was a retry of a review
	// that has already been recorded; the item state is returned unchanged.
	AlreadyApplied bool
}

// SubmitReview validates and applies one review. It returns
// scheduler.ErrInvalidQuality for an out-of-range quality, item.ErrNotFound
// for an unknown item, and item.ErrConflict when a concurrent review of the
// same item won the compare-and-swap; conflicts are the caller's to retry
// after re-reading, never merged silently.
func (p *Processor) SubmitReview(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.Quality < 0 || req.Quality > scheduler.MaxQuality {
		return nil, fmt.Errorf("%w: %d", scheduler.ErrInvalidQuality, req.Quality)
	}
	if req.TimeSpentSeconds < 0 {
		return nil, fmt.Errorf("%w: negative time spent %d", scheduler.ErrInvalidQuality, req.TimeSpentSeconds)
	}

	current, err := p.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("items.Get(%s) > %w", req.ItemID, err)
	}

	// A retried submission must not double-apply the ease factor update.
	existing, err := p.events.FindByItemAndSubmittedAt(ctx, req.ItemID, req.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("events.FindByItemAndSubmittedAt(%s) > %w", req.ItemID, err)
	}
	if existing != nil {
		mastery := current.MasteryLevel()
		return &SubmitResult{
			Item:            *current,
			Event:           existing,
			PreviousMastery: mastery,
			NewMastery:      mastery,
			AlreadyApplied:  true,
		}, nil
	}

	result, err := scheduler.ApplyReview(p.params, current.EaseFactor, current.IntervalDays, current.Repetitions, req.Quality)
	if err != nil {
		return nil, err
	}

	previousMastery := current.MasteryLevel()
	submittedAt := req.SubmittedAt
	nextReview := submittedAt.AddDate(0, 0, result.IntervalDays)

	updated := *current
	updated.EaseFactor = result.EaseFactor
	updated.IntervalDays = result.IntervalDays
	updated.Repetitions = result.Repetitions
	updated.LastReviewAt = &submittedAt
	updated.NextReviewAt = &nextReview
	updated.UpdatedAt = submittedAt

	if err := p.items.CompareAndSwap(ctx, current.Version(), &updated); err != nil {
		return nil, fmt.Errorf("items.CompareAndSwap(%s) > %w", req.ItemID, err)
	}

	event := Event{
		ID:                    uuid.NewString(),
		ItemID:                req.ItemID,
		SubmittedAt:           req.SubmittedAt,
		Quality:               req.Quality,
		TimeSpentSeconds:      req.TimeSpentSeconds,
		ResultingIntervalDays: result.IntervalDays,
		ResultingEaseFactor:   result.EaseFactor,
		CreatedAt:             req.SubmittedAt,
	}
	if err := p.events.Append(ctx, &event); err != nil {
		return nil, fmt.Errorf("events.Append(%s) > %w", req.ItemID, err)
	}

	newMastery := updated.MasteryLevel()
	return &SubmitResult{
		Item:            updated,
		Event:           &event,
		PreviousMastery: previousMastery,
		NewMastery:      newMastery,
		MasteryChanged:  previousMastery != newMastery,
	}, nil
}
