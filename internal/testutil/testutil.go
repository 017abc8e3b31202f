// Package testutil provides shared test helpers for creating config files and store fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
)

// SetupTestConfig creates a config file with a YAML storage backend rooted in
// tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`storage:
  backend: yaml
  items_file: %s
  events_file: %s
scheduler:
  daily_review_limit: 25
  new_items_per_day: 10
  review_order: urgency
`,
		filepath.Join(tmpDir, "items.yml"),
		filepath.Join(tmpDir, "review_events.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// ItemOption configures optional fields when creating an item fixture.
type ItemOption func(*item.Item)

// WithReviewHistory marks the item as reviewed, due again at nextReviewAt.
func WithReviewHistory(easeFactor float64, intervalDays, repetitions int, lastReviewAt, nextReviewAt time.Time) ItemOption {
	return func(it *item.Item) {
		it.EaseFactor = easeFactor
		it.IntervalDays = intervalDays
		it.Repetitions = repetitions
		it.LastReviewAt = &lastReviewAt
		it.NextReviewAt = &nextReviewAt
	}
}

// WithCreatedAt overrides the item's creation time.
func WithCreatedAt(createdAt time.Time) ItemOption {
	return func(it *item.Item) {
		it.CreatedAt = createdAt
		it.UpdatedAt = createdAt
	}
}

// CreateItem writes an item fixture into the store. By default the item is
// brand new and never reviewed.
func CreateItem(t *testing.T, store item.Store, id, itemType string, opts ...ItemOption) item.Item {
	t.Helper()

	it := item.New(id, itemType, time.Now().UTC())
	for _, opt := range opts {
		opt(&it)
	}
	require.NoError(t, store.Create(context.Background(), &it))
	return it
}

// CreateReviewEvent writes a review event fixture into the store.
func CreateReviewEvent(t *testing.T, store review.EventStore, itemID string, submittedAt time.Time, quality int) review.Event {
	t.Helper()

	event := review.Event{
		ID:          fmt.Sprintf("%s-%d", itemID, submittedAt.Unix()),
		ItemID:      itemID,
		SubmittedAt: submittedAt,
		Quality:     quality,
		CreatedAt:   submittedAt,
	}
	require.NoError(t, store.Append(context.Background(), &event))
	return event
}

// OpenFileStores creates file-backed item and event stores under tmpDir.
func OpenFileStores(t *testing.T, tmpDir string) (*item.FileStore, *review.FileEventStore) {
	t.Helper()

	items, err := item.NewFileStore(filepath.Join(tmpDir, "items.yml"))
	require.NoError(t, err)
	events, err := review.NewFileEventStore(filepath.Join(tmpDir, "review_events.yml"))
	require.NoError(t, err)
	return items, events
}
