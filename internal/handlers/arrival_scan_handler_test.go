package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupArrivalScanHandler(db *sqlx.DB) *ArrivalScanHandler {
	return NewArrivalScanHandler(
		database.NewMiqaatRepository(db),
		database.NewMumineenRepository(db),
		database.NewArrivalScanRepository(db),
	)
}

func TestRecordArrivalScan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupArrivalScanHandler(db)

		operatorID := uuid.New()

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM miqaats`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM mumineen`).
			WithArgs("30001234").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`INSERT INTO arrival_scans`).
			WithArgs("30001234", operatorID, int64(7), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		c, w := testContext(t, http.MethodPost, "/miqaats/7/scans", map[string]interface{}{
			"its_id": "30001234",
		})
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Set(middleware.OperatorContextKey, middleware.OperatorContext{
			OperatorID: operatorID,
			Username:   "gate-scanner",
			Role:       "scanner",
		})
		handler.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Arrival scan recorded successfully", body["message"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, operatorID.String(), data["operator_id"])
		assert.NotEmpty(t, data["scanned_at"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Operator Context", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler := setupArrivalScanHandler(db)

		c, w := testContext(t, http.MethodPost, "/miqaats/7/scans", map[string]interface{}{
			"its_id": "30001234",
		})
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		handler.Create(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Miqaat Not Found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler := setupArrivalScanHandler(db)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM miqaats`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		c, w := testContext(t, http.MethodPost, "/miqaats/404/scans", map[string]interface{}{
			"its_id": "30001234",
		})
		c.Params = gin.Params{{Key: "id", Value: "404"}}
		c.Set(middleware.OperatorContextKey, middleware.OperatorContext{
			OperatorID: uuid.New(),
		})
		handler.Create(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Miqaat not found", body["message"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListArrivalScans(t *testing.T) {
	db, mock := setupTestDB(t)
	handler := setupArrivalScanHandler(db)

	now := time.Now()
	operatorID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM miqaats`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`FROM arrival_scans s`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "its_id", "operator_id", "miqaat_id", "scanned_at",
			"created_at", "updated_at", "mumineen_name", "operator_name",
		}).AddRow(
			int64(11), "30001234", operatorID, int64(7), now,
			now, now, "Husain Bhai Najmuddin", "Gate Scanner",
		))

	c, w := testContext(t, http.MethodGet, "/miqaats/7/scans", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	assert.Len(t, data, 1)

	scan := data[0].(map[string]interface{})
	assert.Equal(t, "Gate Scanner", scan["operator_name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
