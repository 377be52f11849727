package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

var eventColumnList = []string{
	"id", "title", "slug", "description", "category_id", "start_date", "start_time", "end_time",
	"venue", "city", "address", "poster_image", "images", "media", "ticketing", "capacity",
	"organizer_name", "organizer_email", "organizer_phone", "published", "featured",
	"promotion_tier", "promotion_start_date", "promotion_expiry_date", "priority",
	"owner_id", "created_at", "updated_at",
}

func eventRow(id, title, slug string) *sqlmock.Rows {
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(eventColumnList).AddRow(
		id, title, slug, "desc", nil, ts, "18:00", "23:00",
		"Main Hall", "Haifa", "1 Port St", "poster.jpg", []byte("{a.jpg}"), []byte("[]"), []byte("[]"), 200,
		"Dana", "dana@example.com", "050-0000000", true, false,
		"free", ts, nil, 0,
		"user-1", ts, ts,
	)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	event := func() *domain.Event {
		return &domain.Event{
			Title:              "Summer Jazz",
			Slug:               "summer-jazz",
			StartDate:          ts,
			StartTime:          "18:00",
			EndTime:            "23:00",
			Location:           domain.Location{Venue: "Main Hall", City: "Haifa", Address: "1 Port St"},
			Images:             []string{"a.jpg"},
			PromotionTier:      domain.TierFree,
			PromotionStartDate: &ts,
			Published:          true,
			OwnerID:            "user-1",
			CreatedAt:          ts,
			UpdatedAt:          ts,
		}
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "duplicate slug maps to conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			e := event()
			err = repo.Create(ctx, e)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, e.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(eventRow("ev-1", "Summer Jazz", "summer-jazz"))
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "slug-shaped id maps uuid cast error to not found",
			id:   "summer-jazz",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).
					WithArgs("summer-jazz").
					WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.id, got.ID)
			require.Equal(t, "summer-jazz", got.Slug)
			require.Equal(t, []string{"a.jpg"}, got.Images)
			require.Equal(t, domain.TierFree, got.PromotionTier)
			require.Nil(t, got.PromotionExpiry)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_SlugExists(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM events WHERE slug = \$1\)`).
		WithArgs("summer-jazz").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewEventRepository(db)
	exists, err := repo.SlugExists(ctx, "summer-jazz")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListPublished(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE published = TRUE AND city = \$1`).
		WithArgs("Haifa").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM events\s+WHERE published = TRUE AND city = \$1\s+ORDER BY featured DESC, priority DESC, start_date ASC`).
		WithArgs("Haifa", 20, 0).
		WillReturnRows(eventRow("ev-1", "Summer Jazz", "summer-jazz"))

	repo := NewEventRepository(db)
	events, total, err := repo.ListPublished(ctx, domain.EventFilter{City: "Haifa"}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, events, 1)
	require.Equal(t, "ev-1", events[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("set priority returns updated row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), priority = \$1\s+WHERE id = \$2`).
			WithArgs(10, "ev-1").
			WillReturnRows(eventRow("ev-1", "Summer Jazz", "summer-jazz"))

		repo := NewEventRepository(db)
		priority := 10
		got, err := repo.Update(ctx, "ev-1", domain.EventUpdate{Priority: &priority})
		require.NoError(t, err)
		require.Equal(t, "ev-1", got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update falls back to fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(eventRow("ev-1", "Summer Jazz", "summer-jazz"))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-1", domain.EventUpdate{})
		require.NoError(t, err)
		require.Equal(t, "ev-1", got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		priority := 1
		_, err = repo.Update(ctx, "ev-missing", domain.EventUpdate{Priority: &priority})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("slug-shaped id maps uuid cast error to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(&pq.Error{Code: "22P02"})

		repo := NewEventRepository(db)
		priority := 1
		_, err = repo.Update(ctx, "summer-jazz", domain.EventUpdate{Priority: &priority})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "ev-missing"), domain.ErrNotFound)
	})

	t.Run("slug-shaped id maps uuid cast error to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("summer-jazz").
			WillReturnError(&pq.Error{Code: "22P02"})

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "summer-jazz"), domain.ErrNotFound)
	})
}
