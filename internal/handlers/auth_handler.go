package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/middleware"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/internal/utils"
	"github.com/burhani-census/census-api/pkg/jwt"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves operator authentication routes.
type AuthHandler struct {
	operatorRepo *database.OperatorRepository
	sessionRepo  *database.OperatorSessionRepository
	jwtService   *jwt.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(operatorRepo *database.OperatorRepository, sessionRepo *database.OperatorSessionRepository, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		operatorRepo: operatorRepo,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}

// Login verifies operator credentials and issues a token pair. A session
// row is recorded with device details parsed from the User-Agent header.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	operator, err := h.operatorRepo.GetByUsername(req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			respondUnauthorized(c, "Invalid username or password")
			return
		}
		respondServerError(c, "Failed to log in", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		respondUnauthorized(c, "Invalid username or password")
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(operator.ID, operator.Username, string(operator.Role))
	if err != nil {
		respondServerError(c, "Failed to log in", err)
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(operator.ID, operator.Username)
	if err != nil {
		respondServerError(c, "Failed to log in", err)
		return
	}

	device := utils.ParseUserAgent(c.GetHeader("User-Agent"))
	clientIP := c.ClientIP()
	session := &models.OperatorSession{
		OperatorID: operator.ID,
		IPAddress:  &clientIP,
		DeviceType: &device.DeviceType,
		OS:         &device.OS,
		Browser:    &device.Browser,
	}
	// A failed session insert should not block the sign-in itself.
	if err := h.sessionRepo.Create(session); err != nil {
		_ = c.Error(err)
	}

	respondSuccessMessage(c, http.StatusOK, "Login successful", models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Operator:     operator,
	})
}

// Refresh exchanges a valid refresh token for a fresh token pair
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		respondBadRequest(c, "Refresh token is required")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondUnauthorized(c, "Invalid or expired refresh token")
		return
	}

	operator, err := h.operatorRepo.GetByID(claims.OperatorID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondUnauthorized(c, "Invalid or expired refresh token")
			return
		}
		respondServerError(c, "Failed to refresh token", err)
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(operator.ID, operator.Username, string(operator.Role))
	if err != nil {
		respondServerError(c, "Failed to refresh token", err)
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(operator.ID, operator.Username)
	if err != nil {
		respondServerError(c, "Failed to refresh token", err)
		return
	}

	respondSuccess(c, http.StatusOK, models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Me returns the authenticated operator's account
// GET /auth/me (authenticated)
func (h *AuthHandler) Me(c *gin.Context) {
	operatorCtx, ok := middleware.GetOperatorContext(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	operator, err := h.operatorRepo.GetByID(operatorCtx.OperatorID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Operator not found")
			return
		}
		respondServerError(c, "Failed to retrieve operator", err)
		return
	}

	respondSuccess(c, http.StatusOK, operator)
}

// Sessions returns the authenticated operator's sign-in history
// GET /auth/sessions (authenticated)
func (h *AuthHandler) Sessions(c *gin.Context) {
	operatorCtx, ok := middleware.GetOperatorContext(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	sessions, err := h.sessionRepo.ListByOperator(operatorCtx.OperatorID)
	if err != nil {
		respondServerError(c, "Failed to retrieve sessions", err)
		return
	}

	respondSuccess(c, http.StatusOK, sessions)
}
