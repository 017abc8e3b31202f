package item

import (
	"context"
	"errors"
)

// Sentinel errors for item persistence.
// Use errors.Is to check: errors.Is(err, item.ErrConflict)
var (
	// ErrNotFound means the item id is unknown to the store. The content
	// owner may delete items at any time, so callers must tolerate this
	// on stale references.
	ErrNotFound = errors.New("item: not found")
	// ErrConflict means a compare-and-swap write lost a race with a
	// concurrent review of the same item. The caller re-reads and retries;
	// the engine never merges silently.
	ErrConflict = errors.New("item: concurrent update conflict")
	// ErrAlreadyExists means an item with the same id is already registered.
	ErrAlreadyExists = errors.New("item: already exists")
)

//go:generate mockgen -source=store.go -destination=../mocks/item/mock_store.go -package=mock_item

// Store is the persistence contract for per-item scheduling state.
// The engine is storage-agnostic; implementations may block on I/O.
type Store interface {
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it *Item) error
	// CompareAndSwap persists updated only if the stored item still matches
	// expected. It returns ErrConflict when another writer got there first.
	CompareAndSwap(ctx context.Context, expected Version, updated *Item) error
	ListAll(ctx context.Context) ([]Item, error)
}
