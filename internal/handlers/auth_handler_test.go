package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/pkg/jwt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthHandler(db *sqlx.DB) (*AuthHandler, *jwt.Service) {
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", 1*time.Hour, 7*24*time.Hour)
	handler := NewAuthHandler(
		database.NewOperatorRepository(db),
		database.NewOperatorSessionRepository(db),
		jwtService,
	)
	return handler, jwtService
}

var operatorTestColumns = []string{
	"id", "username", "password_hash", "full_name", "role",
	"created_at", "updated_at",
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler, _ := setupAuthHandler(db)

		operatorID := uuid.New()
		now := time.Now()
		hash, err := bcrypt.GenerateFromPassword([]byte("scanner-pass"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE username`).
			WithArgs("gate-scanner").
			WillReturnRows(sqlmock.NewRows(operatorTestColumns).AddRow(
				operatorID, "gate-scanner", string(hash), "Gate Scanner", "scanner",
				now, now,
			))
		mock.ExpectExec(`INSERT INTO operator_sessions`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
			"username": "gate-scanner",
			"password": "scanner-pass",
		})
		c.Request.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 12) Chrome/120.0")
		handler.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Login successful", body["message"])

		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])

		operator := data["operator"].(map[string]interface{})
		assert.Equal(t, "gate-scanner", operator["username"])
		assert.NotContains(t, operator, "password_hash")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler, _ := setupAuthHandler(db)

		operatorID := uuid.New()
		now := time.Now()
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE username`).
			WithArgs("gate-scanner").
			WillReturnRows(sqlmock.NewRows(operatorTestColumns).AddRow(
				operatorID, "gate-scanner", string(hash), "Gate Scanner", "scanner",
				now, now,
			))

		c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
			"username": "gate-scanner",
			"password": "wrong-pass",
		})
		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid username or password", body["message"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Username", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler, _ := setupAuthHandler(db)

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE username`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
			"username": "nobody",
			"password": "whatever",
		})
		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid username or password", body["message"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler, _ := setupAuthHandler(db)

		c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
			"username": "gate-scanner",
		})
		handler.Login(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		errs := body["errors"].(map[string]interface{})
		assert.Contains(t, errs, "password")
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		handler, jwtService := setupAuthHandler(db)

		operatorID := uuid.New()
		now := time.Now()
		refreshToken, err := jwtService.GenerateRefreshToken(operatorID, "gate-scanner")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM operators WHERE id`).
			WithArgs(operatorID).
			WillReturnRows(sqlmock.NewRows(operatorTestColumns).AddRow(
				operatorID, "gate-scanner", "hash", "Gate Scanner", "scanner",
				now, now,
			))

		c, w := testContext(t, http.MethodPost, "/auth/refresh", map[string]interface{}{
			"refresh_token": refreshToken,
		})
		handler.Refresh(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler, jwtService := setupAuthHandler(db)

		accessToken, err := jwtService.GenerateAccessToken(uuid.New(), "gate-scanner", "scanner")
		require.NoError(t, err)

		c, w := testContext(t, http.MethodPost, "/auth/refresh", map[string]interface{}{
			"refresh_token": accessToken,
		})
		handler.Refresh(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		db, _ := setupTestDB(t)
		handler, _ := setupAuthHandler(db)

		c, w := testContext(t, http.MethodPost, "/auth/refresh", map[string]interface{}{})
		handler.Refresh(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
