package item

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

func itemColumns() []string {
	return []string{
		"id", "item_type", "ease_factor", "interval_days", "repetitions",
		"last_review_at", "next_review_at", "created_at", "updated_at",
	}
}

func TestDBStore_Get(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "returns item",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(itemColumns()).
					AddRow("note-1", "flashcard", 2.5, 6, 2, now, now.AddDate(0, 0, 6), now, now)
				mock.ExpectQuery("SELECT \\* FROM items WHERE id = \\?").
					WithArgs("note-1").
					WillReturnRows(rows)
			},
		},
		{
			name: "unknown id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM items WHERE id = \\?").
					WithArgs("note-1").
					WillReturnRows(sqlmock.NewRows(itemColumns()))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			store := NewDBStore(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := store.Get(context.Background(), "note-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "note-1", got.ID)
			assert.Equal(t, 2.5, got.EaseFactor)
			assert.Equal(t, 2, got.Repetitions)
			require.NotNil(t, got.NextReviewAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStore_Create(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewDBStore(sqlx.NewDb(db, "mysql"))
	mock.ExpectExec("INSERT INTO items").
		WithArgs("note-1", "flashcard", 2.5, 0, 0, nil, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	it := New("note-1", "flashcard", now)
	require.NoError(t, store.Create(context.Background(), &it))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStore_CompareAndSwap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 6)

	tests := []struct {
		name       string
		setupMock  func(mock sqlmock.Sqlmock)
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "successful swap",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE items").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "lost race returns conflict",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE items").
					WillReturnResult(sqlmock.NewResult(0, 0))
				rows := sqlmock.NewRows(itemColumns()).
					AddRow("note-1", "flashcard", 2.6, 16, 3, now, next, now, now)
				mock.ExpectQuery("SELECT \\* FROM items WHERE id = \\?").
					WithArgs("note-1").
					WillReturnRows(rows)
			},
			wantErr: ErrConflict,
		},
		{
			name: "deleted item returns not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE items").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT \\* FROM items WHERE id = \\?").
					WithArgs("note-1").
					WillReturnRows(sqlmock.NewRows(itemColumns()))
			},
			wantErr: ErrNotFound,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE items").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			store := NewDBStore(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			updated := Item{
				ID: "note-1", ItemType: "flashcard",
				EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2,
				LastReviewAt: &now, NextReviewAt: &next,
				CreatedAt: now, UpdatedAt: now,
			}
			err = store.CompareAndSwap(context.Background(), Version{Repetitions: 1, NextReviewAt: &now}, &updated)
			switch {
			case tt.wantAnyErr:
				assert.Error(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStore_ListAll(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewDBStore(sqlx.NewDb(db, "mysql"))
	rows := sqlmock.NewRows(itemColumns()).
		AddRow("note-1", "flashcard", 2.5, 6, 2, now, now.AddDate(0, 0, 6), now, now).
		AddRow("note-2", "", 2.5, 0, 0, nil, nil, now, now)
	mock.ExpectQuery("SELECT \\* FROM items ORDER BY created_at, id").WillReturnRows(rows)

	items, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "note-1", items[0].ID)
	assert.Nil(t, items[1].NextReviewAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
