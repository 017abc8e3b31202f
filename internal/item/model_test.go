package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItem_MasteryLevel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastReviewAt *time.Time
		intervalDays int
		want         MasteryLevel
	}{
		{name: "never reviewed", lastReviewAt: nil, intervalDays: 0, want: MasteryNew},
		{name: "short interval", lastReviewAt: &now, intervalDays: 1, want: MasteryLearning},
		{name: "six days is still learning", lastReviewAt: &now, intervalDays: 6, want: MasteryLearning},
		{name: "week-long interval", lastReviewAt: &now, intervalDays: 7, want: MasteryYoung},
		{name: "twenty days", lastReviewAt: &now, intervalDays: 20, want: MasteryYoung},
		{name: "mature at twenty-one days", lastReviewAt: &now, intervalDays: 21, want: MasteryMature},
		{name: "long interval", lastReviewAt: &now, intervalDays: 90, want: MasteryMature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{LastReviewAt: tt.lastReviewAt, IntervalDays: tt.intervalDays}
			assert.Equal(t, tt.want, it.MasteryLevel())
		})
	}
}

func TestItem_IsDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, Item{}.IsDue(now), "never-reviewed item is not due")
	assert.True(t, Item{NextReviewAt: &past}.IsDue(now))
	assert.True(t, Item{NextReviewAt: &now}.IsDue(now))
	assert.False(t, Item{NextReviewAt: &future}.IsDue(now))
}

func TestVersion_Matches(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		a, b Version
		want bool
	}{
		{name: "equal with nil times", a: Version{Repetitions: 0}, b: Version{Repetitions: 0}, want: true},
		{name: "equal with same time", a: Version{Repetitions: 2, NextReviewAt: &now}, b: Version{Repetitions: 2, NextReviewAt: &now}, want: true},
		{name: "different repetitions", a: Version{Repetitions: 2, NextReviewAt: &now}, b: Version{Repetitions: 3, NextReviewAt: &now}, want: false},
		{name: "different times", a: Version{Repetitions: 2, NextReviewAt: &now}, b: Version{Repetitions: 2, NextReviewAt: &later}, want: false},
		{name: "nil against non-nil", a: Version{Repetitions: 2}, b: Version{Repetitions: 2, NextReviewAt: &now}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Matches(tt.b))
			assert.Equal(t, tt.want, tt.b.Matches(tt.a))
		})
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	it := New("note-1", "flashcard", now)

	assert.Equal(t, "note-1", it.ID)
	assert.Equal(t, "flashcard", it.ItemType)
	assert.Equal(t, 2.5, it.EaseFactor)
	assert.Equal(t, 0, it.IntervalDays)
	assert.Equal(t, 0, it.Repetitions)
	assert.Nil(t, it.LastReviewAt)
	assert.Nil(t, it.NextReviewAt)
	assert.Equal(t, MasteryNew, it.MasteryLevel())
}
