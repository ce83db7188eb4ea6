package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// MiqaatEvent is a sub-event owned by exactly one miqaat. Rows are
// removed with their parent.
type MiqaatEvent struct {
	ID          int64     `json:"id" db:"id"`
	MiqaatID    int64     `json:"miqaat_id" db:"miqaat_id"`
	Name        string    `json:"name" db:"name"`
	Datetime    time.Time `json:"datetime" db:"datetime"`
	Location    string    `json:"location" db:"location"`
	Description *string   `json:"description" db:"description"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateMiqaatEventRequest represents the request to create a sub-event.
// The parent miqaat id comes from the route, not the body.
type CreateMiqaatEventRequest struct {
	Name        string  `json:"name"`
	Datetime    string  `json:"datetime"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
}

// Validate checks field-level constraints.
func (req *CreateMiqaatEventRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("name", req.Name)
	errs.MaxLen("name", req.Name, 255)
	errs.Require("datetime", req.Datetime)
	if req.Datetime != "" {
		errs.Datetime("datetime", req.Datetime)
	}
	errs.Require("location", req.Location)
	errs.MaxLen("location", req.Location, 255)
	return errs
}

// UpdateMiqaatEventRequest represents a partial sub-event update.
type UpdateMiqaatEventRequest struct {
	Name        *string `json:"name,omitempty"`
	Datetime    *string `json:"datetime,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks field-level constraints on the provided fields.
func (req *UpdateMiqaatEventRequest) Validate() validator.Errors {
	errs := validator.New()
	if req.Name != nil {
		if *req.Name == "" {
			errs.Add("name", "The name field may not be empty.")
		}
		errs.MaxLen("name", *req.Name, 255)
	}
	if req.Datetime != nil {
		errs.Datetime("datetime", *req.Datetime)
	}
	if req.Location != nil {
		if *req.Location == "" {
			errs.Add("location", "The location field may not be empty.")
		}
		errs.MaxLen("location", *req.Location, 255)
	}
	return errs
}

// Apply merges the provided fields onto an existing record.
func (req *UpdateMiqaatEventRequest) Apply(e *MiqaatEvent) {
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Datetime != nil {
		if t, err := validator.ParseDatetime(*req.Datetime); err == nil {
			e.Datetime = t
		}
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Description != nil {
		e.Description = req.Description
	}
}
