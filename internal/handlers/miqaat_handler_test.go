package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burhani-census/census-api/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiqaatHandler(db *sqlx.DB) *MiqaatHandler {
	return NewMiqaatHandler(database.NewMiqaatRepository(db), database.NewMiqaatEventRepository(db))
}

var miqaatHandlerTestColumns = []string{
	"id", "name", "start_date", "end_date", "description", "status",
	"created_at", "updated_at",
}

var miqaatEventTestColumns = []string{
	"id", "miqaat_id", "name", "datetime", "location", "description",
	"created_at", "updated_at",
}

func TestCreateMiqaatHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		mock.ExpectQuery(`INSERT INTO miqaats`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		c, w := testContext(t, http.MethodPost, "/miqaats", map[string]interface{}{
			"name":       "Ashara Mubaraka 1447",
			"start_date": "2025-06-26",
			"end_date":   "2025-07-06",
			"status":     "upcoming",
		})
		handler.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Miqaat created successfully", body["message"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(7), data["id"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("End Before Start", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		c, w := testContext(t, http.MethodPost, "/miqaats", map[string]interface{}{
			"name":       "Ashara Mubaraka 1447",
			"start_date": "2025-07-06",
			"end_date":   "2025-06-26",
			"status":     "upcoming",
		})
		handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Validation failed", body["message"])

		errs := body["errors"].(map[string]interface{})
		fieldErrs := errs["end_date"].([]interface{})
		assert.Equal(t, "The end_date must be a date after or equal to start_date.", fieldErrs[0])
	})

	t.Run("Invalid Status", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		c, w := testContext(t, http.MethodPost, "/miqaats", map[string]interface{}{
			"name":       "Ashara Mubaraka 1447",
			"start_date": "2025-06-26",
			"end_date":   "2025-07-06",
			"status":     "pending",
		})
		handler.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "status")
	})
}

func TestUpdateMiqaatHandler(t *testing.T) {
	t.Run("Single Sided Date Change Cannot Invert Range", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		now := time.Now()
		start := time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(miqaatHandlerTestColumns).AddRow(
				int64(7), "Ashara Mubaraka 1447", start, end, nil, "upcoming", now, now,
			))

		c, w := testContext(t, http.MethodPut, "/miqaats/7", map[string]interface{}{
			"end_date": "2025-06-01",
		})
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		handler.Update(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "end_date")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		c, w := testContext(t, http.MethodPut, "/miqaats/404", map[string]interface{}{
			"name": "Renamed",
		})
		c.Params = gin.Params{{Key: "id", Value: "404"}}
		handler.Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Miqaat not found", body["message"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non Numeric ID", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		c, w := testContext(t, http.MethodPut, "/miqaats/abc", map[string]interface{}{
			"name": "Renamed",
		})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMiqaatWithEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(miqaatHandlerTestColumns).AddRow(
				int64(7), "Ashara Mubaraka 1447", now, now.AddDate(0, 0, 10),
				nil, "upcoming", now, now,
			))
		mock.ExpectQuery(`SELECT (.+) FROM miqaat_events WHERE miqaat_id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(miqaatEventTestColumns).
				AddRow(int64(1), int64(7), "Waaz Session 1", now, "Saifee Masjid",
					nil, now, now).
				AddRow(int64(2), int64(7), "Waaz Session 2", now.AddDate(0, 0, 1),
					"Saifee Masjid", nil, now, now))

		c, w := testContext(t, http.MethodGet, "/miqaats/7/events", nil)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		handler.WithEvents(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "Ashara Mubaraka 1447", data["name"])

		events := data["events"].([]interface{})
		require.Len(t, events, 2)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miqaat Not Found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupMiqaatHandler(db)

		mock.ExpectQuery(`SELECT (.+) FROM miqaats WHERE id`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		c, w := testContext(t, http.MethodGet, "/miqaats/404/events", nil)
		c.Params = gin.Params{{Key: "id", Value: "404"}}
		handler.WithEvents(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Miqaat not found", body["message"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpcomingMiqaatsHandler(t *testing.T) {
	db, mock := setupTestDB(t)
	handler := setupMiqaatHandler(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM miqaats\s+WHERE status = 'upcoming'`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(miqaatHandlerTestColumns).
			AddRow(int64(2), "Sherullah 1447", now.AddDate(0, 0, -3), now.AddDate(0, 0, 27),
				nil, "ongoing", now, now))

	c, w := testContext(t, http.MethodGet, "/miqaats/upcoming", nil)
	handler.Upcoming(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	assert.Len(t, data, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}
