package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/google/uuid"
)

// OperatorRole controls what an operator account may do.
type OperatorRole string

const (
	OperatorAdmin   OperatorRole = "admin"
	OperatorScanner OperatorRole = "scanner"
)

// Operator is a staff account that signs in to run arrival scanning and
// administrative data entry.
type Operator struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Username     string       `json:"username" db:"username"`
	PasswordHash string       `json:"-" db:"password_hash"`
	FullName     string       `json:"full_name" db:"full_name"`
	Role         OperatorRole `json:"role" db:"role"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OperatorSession records a device an operator has signed in from.
// Device fields come from parsing the login request's User-Agent.
type OperatorSession struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OperatorID     uuid.UUID `json:"operator_id" db:"operator_id"`
	IPAddress      *string   `json:"ip_address" db:"ip_address"`
	DeviceType     *string   `json:"device_type" db:"device_type"`
	OS             *string   `json:"os" db:"os"`
	Browser        *string   `json:"browser" db:"browser"`
	LastActivityAt time.Time `json:"last_activity_at" db:"last_activity_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks both credentials are present.
func (req *LoginRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("username", req.Username)
	errs.Require("password", req.Password)
	return errs
}

// RefreshRequest is the payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPair is the response payload for successful login/refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Operator     *Operator `json:"operator,omitempty"`
}
