package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// Gender of a community member.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Mumineen represents a community member. ItsID is the natural key;
// HofItsID is a self-reference to the member's head of family. A member
// is a head of family when HofItsID is nil or equals their own ItsID.
type Mumineen struct {
	ItsID    string  `json:"its_id" db:"its_id"`
	EitsID   *string `json:"eits_id" db:"eits_id"`
	HofItsID *string `json:"hof_its_id" db:"hof_its_id"`
	FullName string  `json:"full_name" db:"full_name"`
	Gender   Gender  `json:"gender" db:"gender"`
	Age      *int    `json:"age" db:"age"`
	Mobile   *string `json:"mobile" db:"mobile"`
	Country  *string `json:"country" db:"country"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsHof reports whether this member heads their own family.
func (m *Mumineen) IsHof() bool {
	return m.HofItsID == nil || *m.HofItsID == m.ItsID
}

// HofID returns the its_id of this member's head of family. Members
// without an explicit link are their own head.
func (m *Mumineen) HofID() string {
	if m.HofItsID != nil {
		return *m.HofItsID
	}
	return m.ItsID
}

// HeadOfFamily is the response shape for head-of-family resolution.
type HeadOfFamily struct {
	HofItsID   string    `json:"hof_its_id"`
	HofDetails *Mumineen `json:"hof_details"`
	IsHof      bool      `json:"is_hof"`
}

// CreateMumineenRequest represents the request to register a new member.
type CreateMumineenRequest struct {
	ItsID    string  `json:"its_id"`
	EitsID   *string `json:"eits_id,omitempty"`
	HofItsID *string `json:"hof_its_id,omitempty"`
	FullName string  `json:"full_name"`
	Gender   string  `json:"gender"`
	Age      *int    `json:"age,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Country  *string `json:"country,omitempty"`
}

// Validate checks field-level constraints. Referential checks (duplicate
// its_id, dangling hof_its_id) require the store and happen in the handler.
func (req *CreateMumineenRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("its_id", req.ItsID)
	errs.Require("full_name", req.FullName)
	errs.MaxLen("full_name", req.FullName, 255)
	errs.Require("gender", req.Gender)
	if req.Gender != "" {
		errs.InList("gender", req.Gender, string(GenderMale), string(GenderFemale))
	}
	if req.Mobile != nil {
		errs.MaxLen("mobile", *req.Mobile, 20)
	}
	if req.Country != nil {
		errs.MaxLen("country", *req.Country, 100)
	}
	return errs
}

// UpdateMumineenRequest represents a partial member update. Omitted
// fields keep their stored values.
type UpdateMumineenRequest struct {
	ItsID    *string `json:"its_id,omitempty"`
	EitsID   *string `json:"eits_id,omitempty"`
	HofItsID *string `json:"hof_its_id,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Country  *string `json:"country,omitempty"`
}

// Validate checks field-level constraints on the provided fields.
func (req *UpdateMumineenRequest) Validate() validator.Errors {
	errs := validator.New()
	if req.ItsID != nil && *req.ItsID == "" {
		errs.Add("its_id", "The its_id field may not be empty.")
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			errs.Add("full_name", "The full_name field may not be empty.")
		}
		errs.MaxLen("full_name", *req.FullName, 255)
	}
	if req.Gender != nil {
		errs.InList("gender", *req.Gender, string(GenderMale), string(GenderFemale))
	}
	if req.Mobile != nil {
		errs.MaxLen("mobile", *req.Mobile, 20)
	}
	if req.Country != nil {
		errs.MaxLen("country", *req.Country, 100)
	}
	return errs
}

// Apply merges the provided fields onto an existing record.
func (req *UpdateMumineenRequest) Apply(m *Mumineen) {
	if req.ItsID != nil {
		m.ItsID = *req.ItsID
	}
	if req.EitsID != nil {
		m.EitsID = req.EitsID
	}
	if req.HofItsID != nil {
		m.HofItsID = req.HofItsID
	}
	if req.FullName != nil {
		m.FullName = *req.FullName
	}
	if req.Gender != nil {
		m.Gender = Gender(*req.Gender)
	}
	if req.Age != nil {
		m.Age = req.Age
	}
	if req.Mobile != nil {
		m.Mobile = req.Mobile
	}
	if req.Country != nil {
		m.Country = req.Country
	}
}
