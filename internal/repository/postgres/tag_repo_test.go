package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`JOIN event_tag_relations rel ON rel.tag_id = t.id`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("tag-1", "career", created).
			AddRow("tag-2", "workshop", created))

	repo := NewTagRepository(db)
	tags, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "career", tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ReplaceEventTags(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM event_tag_relations WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO event_tag_relations`).
			WithArgs("ev-1", "tag-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO event_tag_relations`).
			WithArgs("ev-1", "tag-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewTagRepository(db)
		err = repo.ReplaceEventTags(ctx, "ev-1", []string{"tag-1", "tag-2"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear all tags", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM event_tag_relations WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		repo := NewTagRepository(db)
		err = repo.ReplaceEventTags(ctx, "ev-1", nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM event_tag_relations WHERE event_id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO event_tag_relations`).
			WithArgs("ev-1", "tag-1").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewTagRepository(db)
		err = repo.ReplaceEventTags(ctx, "ev-1", []string{"tag-1"})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, description, created_at FROM event_categories`).
			WithArgs("cat-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
				AddRow("cat-1", "Tech Talks", nil, created))

		repo := NewCategoryRepository(db)
		got, err := repo.GetByID(ctx, "cat-1")
		require.NoError(t, err)
		require.Equal(t, "Tech Talks", got.Name)
		require.Nil(t, got.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, description, created_at FROM event_categories`).
			WithArgs("cat-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewCategoryRepository(db)
		got, err := repo.GetByID(ctx, "cat-missing")
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
