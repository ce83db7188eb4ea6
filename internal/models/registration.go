package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// MiqaatRegistration links a member to a miqaat. A member registers for
// a given miqaat at most once.
type MiqaatRegistration struct {
	ID               int64     `json:"id" db:"id"`
	MiqaatID         int64     `json:"miqaat_id" db:"miqaat_id"`
	ItsID            string    `json:"its_id" db:"its_id"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationView is the listing shape with the member's display name
// joined in at read time.
type RegistrationView struct {
	MiqaatRegistration
	MumineenName string `json:"mumineen_name" db:"mumineen_name"`
}

// CreateRegistrationRequest represents the request to register a member
// for a miqaat. The miqaat id comes from the route.
type CreateRegistrationRequest struct {
	ItsID            string `json:"its_id"`
	RegistrationDate string `json:"registration_date"`
}

// Validate checks field-level constraints.
func (req *CreateRegistrationRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("its_id", req.ItsID)
	errs.Require("registration_date", req.RegistrationDate)
	if req.RegistrationDate != "" {
		errs.Date("registration_date", req.RegistrationDate)
	}
	return errs
}
