package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func newTestService() *Service {
	return NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
}

func TestNewService(t *testing.T) {
	service := newTestService()

	assert.NotNil(t, service)
	assert.Equal(t, testAccessSecret, service.accessSecret)
	assert.Equal(t, testRefreshSecret, service.refreshSecret)
	assert.Equal(t, time.Hour, service.accessTokenExpiry)
	assert.Equal(t, 24*time.Hour, service.refreshTokenExpiry)
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()
	operatorID := uuid.New()

	token, err := service.GenerateAccessToken(operatorID, "gate-scanner", "scanner")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, operatorID, claims.OperatorID)
	assert.Equal(t, "gate-scanner", claims.Username)
	assert.Equal(t, "scanner", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService()
	operatorID := uuid.New()

	token, err := service.GenerateRefreshToken(operatorID, "gate-scanner")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, operatorID, claims.OperatorID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	service := newTestService()
	operatorID := uuid.New()

	accessToken, err := service.GenerateAccessToken(operatorID, "gate-scanner", "scanner")
	require.NoError(t, err)
	refreshToken, err := service.GenerateRefreshToken(operatorID, "gate-scanner")
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	service := newTestService()
	other := NewService("other-access-secret", "other-refresh-secret", time.Hour, 24*time.Hour)

	token, err := service.GenerateAccessToken(uuid.New(), "gate-scanner", "scanner")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, -time.Minute, 24*time.Hour)

	token, err := service.GenerateAccessToken(uuid.New(), "gate-scanner", "scanner")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, service.IsTokenExpired(token))
}

func TestIsTokenExpired(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken(uuid.New(), "gate-scanner", "scanner")
	require.NoError(t, err)

	assert.False(t, service.IsTokenExpired(token))
	assert.True(t, service.IsTokenExpired("not-a-token"))
}

func TestTokenIssuerAndSubject(t *testing.T) {
	service := newTestService()
	operatorID := uuid.New()

	token, err := service.GenerateAccessToken(operatorID, "gate-scanner", "scanner")
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "census-api", claims.Issuer)
	assert.Equal(t, operatorID.String(), claims.Subject)
}

func TestTokenSigningMethod(t *testing.T) {
	service := newTestService()

	tokenString, err := service.GenerateAccessToken(uuid.New(), "gate-scanner", "scanner")
	require.NoError(t, err)

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS256", token.Method.Alg())
}
