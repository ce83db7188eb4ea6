package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var miqaatTestColumns = []string{
	"id", "name", "start_date", "end_date", "description", "status",
	"created_at", "updated_at",
}

func TestCreateMiqaat(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewMiqaatRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		m := &models.Miqaat{
			Name:      "Ashara Mubaraka 1447",
			StartDate: time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC),
			Status:    models.MiqaatUpcoming,
		}

		mock.ExpectQuery(`INSERT INTO miqaats`).
			WithArgs(
				m.Name, m.StartDate, m.EndDate, m.Description, m.Status,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		err := repo.Create(m)
		require.NoError(t, err)
		assert.Equal(t, int64(7), m.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		m := &models.Miqaat{Name: "Ashara Mubaraka 1447"}

		mock.ExpectQuery(`INSERT INTO miqaats`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(m)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create miqaat")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetMiqaatByID(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewMiqaatRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(miqaatTestColumns).AddRow(
				int64(7), "Ashara Mubaraka 1447", now, now.AddDate(0, 0, 10),
				nil, "upcoming", now, now,
			))

		m, err := repo.GetByID(7)
		require.NoError(t, err)
		assert.Equal(t, "Ashara Mubaraka 1447", m.Name)
		assert.Equal(t, models.MiqaatUpcoming, m.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		m, err := repo.GetByID(404)
		assert.Nil(t, m)
		assert.Equal(t, sql.ErrNoRows, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListUpcomingMiqaats(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewMiqaatRepository(mockDB)

	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM miqaats\s+WHERE status = 'upcoming' OR \(status = 'ongoing' AND end_date >= \$1\)`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(miqaatTestColumns).
			AddRow(int64(2), "Sherullah 1447", now.AddDate(0, 0, -3), now.AddDate(0, 0, 27),
				nil, "ongoing", now, now).
			AddRow(int64(7), "Ashara Mubaraka 1447", now.AddDate(0, 2, 0), now.AddDate(0, 2, 10),
				nil, "upcoming", now, now))

	miqaats, err := repo.ListUpcoming(now)
	require.NoError(t, err)
	require.Len(t, miqaats, 2)
	assert.True(t, miqaats[0].StartDate.Before(miqaats[1].StartDate))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMiqaat(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewMiqaatRepository(mockDB)

	mock.ExpectExec(`DELETE FROM miqaats WHERE id`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(7)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
