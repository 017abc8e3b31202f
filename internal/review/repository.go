package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DBEventStore implements EventStore using MySQL.
type DBEventStore struct {
	db *sqlx.DB
}

// NewDBEventStore creates a new DBEventStore.
func NewDBEventStore(db *sqlx.DB) *DBEventStore {
	return &DBEventStore{db: db}
}

// Append inserts a new review event.
func (s *DBEventStore) Append(ctx context.Context, event *Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_events (id, item_id, submitted_at, quality, time_spent_seconds, resulting_interval_days, resulting_ease_factor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.ItemID, event.SubmittedAt, event.Quality, event.TimeSpentSeconds,
		event.ResultingIntervalDays, event.ResultingEaseFactor, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_event) > %w", err)
	}
	return nil
}

// Query returns events in [from, to), oldest first. Zero bounds are open.
func (s *DBEventStore) Query(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := "SELECT * FROM review_events"
	var conditions []string
	var args []interface{}
	if !from.IsZero() {
		conditions = append(conditions, "submitted_at >= ?")
		args = append(args, from)
	}
	if !to.IsZero() {
		conditions = append(conditions, "submitted_at < ?")
		args = append(args, to)
	}
	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}
	query += " ORDER BY submitted_at, id"

	var events []Event
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_events) > %w", err)
	}
	return events, nil
}

// FindByItemAndSubmittedAt returns the event for a logical submission, or nil.
func (s *DBEventStore) FindByItemAndSubmittedAt(ctx context.Context, itemID string, submittedAt time.Time) (*Event, error) {
	var event Event
	err := s.db.GetContext(ctx, &event,
		"SELECT * FROM review_events WHERE item_id = ? AND submitted_at = ?",
		itemID, submittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_event) > %w", err)
	}
	return &event, nil
}
