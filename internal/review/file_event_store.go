package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileEventStore implements EventStore on top of a single YAML file, matching
// the file-backed item store for local database-free use.
type FileEventStore struct {
	path string

	mu     sync.Mutex
	events []Event
}

// NewFileEventStore loads the YAML file at path, creating an empty store
// when the file does not exist yet.
func NewFileEventStore(path string) (*FileEventStore, error) {
	s := &FileEventStore{path: path}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if err := yaml.Unmarshal(content, &s.events); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return s, nil
}

// Append stores a new event and persists the file.
func (s *FileEventStore) Append(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, *event)
	return s.save()
}

// Query returns events in [from, to), oldest first. Zero bounds are open.
func (s *FileEventStore) Query(_ context.Context, from, to time.Time) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []Event
	for _, event := range s.events {
		if !from.IsZero() && event.SubmittedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !event.SubmittedAt.Before(to) {
			continue
		}
		matched = append(matched, event)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.Before(matched[j].SubmittedAt)
	})
	return matched, nil
}

// FindByItemAndSubmittedAt returns the event for a logical submission, or nil.
func (s *FileEventStore) FindByItemAndSubmittedAt(_ context.Context, itemID string, submittedAt time.Time) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if event.ItemID == itemID && event.SubmittedAt.Equal(submittedAt) {
			found := event
			return &found, nil
		}
	}
	return nil, nil
}

func (s *FileEventStore) save() error {
	content, err := yaml.Marshal(s.events)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(events) > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", s.path, err)
	}
	return nil
}
