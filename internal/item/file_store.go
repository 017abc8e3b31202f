package item

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore implements Store on top of a single YAML file, for local
// database-free use. The whole file is rewritten on every mutation; a
// personal review queue is small enough that this never matters.
type FileStore struct {
	path string

	mu    sync.Mutex
	items []Item
}

// NewFileStore loads the YAML file at path, creating an empty store when the
// file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if err := yaml.Unmarshal(content, &s.items); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return s, nil
}

// Get returns the item with the given id, or ErrNotFound.
func (s *FileStore) Get(_ context.Context, id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create appends a new item and persists the file.
func (s *FileStore) Create(_ context.Context, it *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == it.ID {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, it.ID)
		}
	}
	s.items = append(s.items, *it)
	return s.save()
}

// CompareAndSwap replaces the stored item when its version still matches.
func (s *FileStore) CompareAndSwap(_ context.Context, expected Version, updated *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID != updated.ID {
			continue
		}
		if !existing.Version().Matches(expected) {
			return fmt.Errorf("%w: %s", ErrConflict, updated.ID)
		}
		s.items[i] = *updated
		return s.save()
	}
	return fmt.Errorf("%w: %s", ErrNotFound, updated.ID)
}

// ListAll returns a copy of every stored item.
func (s *FileStore) ListAll(_ context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items, nil
}

func (s *FileStore) save() error {
	content, err := yaml.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(items) > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", s.path, err)
	}
	return nil
}
