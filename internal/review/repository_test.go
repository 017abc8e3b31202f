package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventColumns() []string {
	return []string{
		"id", "item_id", "submitted_at", "quality", "time_spent_seconds",
		"resulting_interval_days", "resulting_ease_factor", "created_at",
	}
}

func TestDBEventStore_Append(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewDBEventStore(sqlx.NewDb(db, "mysql"))
	mock.ExpectExec("INSERT INTO review_events").
		WithArgs("event-1", "note-1", now, 4, 30, 6, 2.5, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := Event{
		ID: "event-1", ItemID: "note-1", SubmittedAt: now,
		Quality: 4, TimeSpentSeconds: 30,
		ResultingIntervalDays: 6, ResultingEaseFactor: 2.5,
		CreatedAt: now,
	}
	require.NoError(t, store.Append(context.Background(), &event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBEventStore_Query(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	from := now.AddDate(0, 0, -7)

	tests := []struct {
		name      string
		from, to  time.Time
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "bounded range",
			from: from, to: now,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventColumns()).
					AddRow("event-1", "note-1", from.AddDate(0, 0, 1), 4, 30, 1, 2.5, now).
					AddRow("event-2", "note-2", from.AddDate(0, 0, 2), 2, 45, 1, 2.18, now)
				mock.ExpectQuery("SELECT \\* FROM review_events WHERE submitted_at >= \\? AND submitted_at < \\? ORDER BY submitted_at, id").
					WithArgs(from, now).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "open bounds query everything",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM review_events ORDER BY submitted_at, id").
					WillReturnRows(sqlmock.NewRows(eventColumns()))
			},
			wantLen: 0,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM review_events ORDER BY submitted_at, id").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			store := NewDBEventStore(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := store.Query(context.Background(), tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBEventStore_FindByItemAndSubmittedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := NewDBEventStore(sqlx.NewDb(db, "mysql"))
		rows := sqlmock.NewRows(eventColumns()).
			AddRow("event-1", "note-1", now, 4, 30, 1, 2.5, now)
		mock.ExpectQuery("SELECT \\* FROM review_events WHERE item_id = \\? AND submitted_at = \\?").
			WithArgs("note-1", now).
			WillReturnRows(rows)

		got, err := store.FindByItemAndSubmittedAt(context.Background(), "note-1", now)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "event-1", got.ID)
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := NewDBEventStore(sqlx.NewDb(db, "mysql"))
		mock.ExpectQuery("SELECT \\* FROM review_events WHERE item_id = \\? AND submitted_at = \\?").
			WithArgs("note-1", now).
			WillReturnRows(sqlmock.NewRows(eventColumns()))

		got, err := store.FindByItemAndSubmittedAt(context.Background(), "note-1", now)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
