package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// DBStore implements Store using MySQL.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore creates a new DBStore.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

// Get returns the item with the given id, or ErrNotFound.
func (s *DBStore) Get(ctx context.Context, id string) (*Item, error) {
	var it Item
	err := s.db.GetContext(ctx, &it, "SELECT * FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(item) > %w", err)
	}
	return &it, nil
}

// Create inserts a new item.
func (s *DBStore) Create(ctx context.Context, it *Item) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, item_type, ease_factor, interval_days, repetitions, last_review_at, next_review_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.ItemType, it.EaseFactor, it.IntervalDays, it.Repetitions,
		it.LastReviewAt, it.NextReviewAt, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, it.ID)
		}
		return fmt.Errorf("db.ExecContext(insert item) > %w", err)
	}
	return nil
}

// CompareAndSwap updates the item only when its stored repetitions and
// next_review_at still match the expected version. Zero affected rows means
// either the item vanished or another review won the race; a follow-up read
// disambiguates the two.
func (s *DBStore) CompareAndSwap(ctx context.Context, expected Version, updated *Item) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE items
		SET ease_factor = ?, interval_days = ?, repetitions = ?, last_review_at = ?, next_review_at = ?, updated_at = ?
		WHERE id = ? AND repetitions = ?
		AND ((next_review_at IS NULL AND ? IS NULL) OR next_review_at = ?)`,
		updated.EaseFactor, updated.IntervalDays, updated.Repetitions,
		updated.LastReviewAt, updated.NextReviewAt, updated.UpdatedAt,
		updated.ID, expected.Repetitions, expected.NextReviewAt, expected.NextReviewAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update item) > %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.Get(ctx, updated.ID); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrConflict, updated.ID)
}

// ListAll returns every item ordered by creation time.
func (s *DBStore) ListAll(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.db.SelectContext(ctx, &items, "SELECT * FROM items ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items) > %w", err)
	}
	return items, nil
}

func isDuplicateEntry(err error) bool {
	// MySQL error 1062: duplicate entry for a unique key.
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
