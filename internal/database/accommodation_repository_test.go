package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accommodationViewTestColumns = []string{
	"id", "its_id", "miqaat_id", "name", "city", "pincode",
	"accommodation_type", "room_number", "check_in_date", "check_out_date",
	"created_at", "updated_at", "mumineen_name", "miqaat_name",
}

func TestCreateAccommodation(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewAccommodationRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		a := &models.Accommodation{
			ItsID:             "30001234",
			MiqaatID:          7,
			Name:              "Saifee Mahal Annex",
			City:              "Mumbai",
			AccommodationType: "hotel",
			CheckInDate:       time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
			CheckOutDate:      time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		}

		mock.ExpectQuery(`INSERT INTO accommodations`).
			WithArgs(
				a.ItsID, a.MiqaatID, a.Name, a.City, a.Pincode,
				a.AccommodationType, a.RoomNumber, a.CheckInDate, a.CheckOutDate,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

		err := repo.Create(a)
		require.NoError(t, err)
		assert.Equal(t, int64(3), a.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		a := &models.Accommodation{ItsID: "30001234", MiqaatID: 7}

		mock.ExpectQuery(`INSERT INTO accommodations`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(a)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create accommodation")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAccommodationViewByID(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewAccommodationRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM accommodations a\s+JOIN mumineen m`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(accommodationViewTestColumns).AddRow(
				int64(3), "30001234", int64(7), "Saifee Mahal Annex", "Mumbai", nil,
				"hotel", "402", now, now.AddDate(0, 0, 12),
				now, now, "Husain Bhai Najmuddin", "Ashara Mubaraka 1447",
			))

		v, err := repo.GetViewByID(3)
		require.NoError(t, err)
		assert.Equal(t, "Husain Bhai Najmuddin", v.MumineenName)
		assert.Equal(t, "Ashara Mubaraka 1447", v.MiqaatName)
		require.NotNil(t, v.RoomNumber)
		assert.Equal(t, "402", *v.RoomNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM accommodations a\s+JOIN mumineen m`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		v, err := repo.GetViewByID(404)
		assert.Nil(t, v)
		assert.Equal(t, sql.ErrNoRows, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListAccommodationsByItsIDs(t *testing.T) {
	mockDB, mock := newMockDatabase(t)
	repo := NewAccommodationRepository(mockDB)

	now := time.Now()
	ids := []string{"30001234", "30005678"}

	mock.ExpectQuery(`WHERE a\.its_id = ANY`).
		WithArgs(pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows(accommodationViewTestColumns).
			AddRow(int64(3), "30001234", int64(7), "Saifee Mahal Annex", "Mumbai", nil,
				"hotel", "402", now, now.AddDate(0, 0, 12),
				now, now, "Husain Bhai Najmuddin", "Ashara Mubaraka 1447").
			AddRow(int64(4), "30005678", int64(7), "Saifee Mahal Annex", "Mumbai", nil,
				"hotel", "403", now, now.AddDate(0, 0, 12),
				now, now, "Fatema Ben Najmuddin", "Ashara Mubaraka 1447"))

	views, err := repo.ListByItsIDs(ids)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "30005678", views[1].ItsID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
