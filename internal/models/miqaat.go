package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// MiqaatStatus is the declared lifecycle state of a miqaat. It is set
// explicitly by the caller; listings may re-derive display status from
// the date range.
type MiqaatStatus string

const (
	MiqaatUpcoming  MiqaatStatus = "upcoming"
	MiqaatOngoing   MiqaatStatus = "ongoing"
	MiqaatCompleted MiqaatStatus = "completed"
	MiqaatCancelled MiqaatStatus = "cancelled"
)

// Miqaat represents a scheduled community event.
type Miqaat struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	StartDate   time.Time    `json:"start_date" db:"start_date"`
	EndDate     time.Time    `json:"end_date" db:"end_date"`
	Description *string      `json:"description" db:"description"`
	Status      MiqaatStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MiqaatWithEvents is the response shape for a miqaat with its sub-events.
type MiqaatWithEvents struct {
	Miqaat
	Events []MiqaatEvent `json:"events"`
}

// CreateMiqaatRequest represents the request to create a miqaat.
type CreateMiqaatRequest struct {
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
}

// Validate checks field constraints including start_date <= end_date.
func (req *CreateMiqaatRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("name", req.Name)
	errs.MaxLen("name", req.Name, 255)
	errs.Require("start_date", req.StartDate)
	errs.Require("end_date", req.EndDate)
	errs.Require("status", req.Status)
	if req.Status != "" {
		errs.InList("status", req.Status,
			string(MiqaatUpcoming), string(MiqaatOngoing),
			string(MiqaatCompleted), string(MiqaatCancelled))
	}

	var start, end time.Time
	if req.StartDate != "" {
		start = errs.Date("start_date", req.StartDate)
	}
	if req.EndDate != "" {
		end = errs.Date("end_date", req.EndDate)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs.Add("end_date", "The end_date must be a date after or equal to start_date.")
	}
	return errs
}

// UpdateMiqaatRequest represents a partial miqaat update.
type UpdateMiqaatRequest struct {
	Name        *string `json:"name,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Validate checks field-level constraints on the provided fields.
func (req *UpdateMiqaatRequest) Validate() validator.Errors {
	errs := validator.New()
	if req.Name != nil {
		if *req.Name == "" {
			errs.Add("name", "The name field may not be empty.")
		}
		errs.MaxLen("name", *req.Name, 255)
	}
	if req.StartDate != nil {
		errs.Date("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		errs.Date("end_date", *req.EndDate)
	}
	if req.Status != nil {
		errs.InList("status", *req.Status,
			string(MiqaatUpcoming), string(MiqaatOngoing),
			string(MiqaatCompleted), string(MiqaatCancelled))
	}
	return errs
}

// Apply merges the provided fields onto an existing record. Validate must
// have passed first; date parsing here assumes well-formed input.
func (req *UpdateMiqaatRequest) Apply(m *Miqaat) {
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.StartDate != nil {
		if t, err := validator.ParseDate(*req.StartDate); err == nil {
			m.StartDate = t
		}
	}
	if req.EndDate != nil {
		if t, err := validator.ParseDate(*req.EndDate); err == nil {
			m.EndDate = t
		}
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if req.Status != nil {
		m.Status = MiqaatStatus(*req.Status)
	}
}
