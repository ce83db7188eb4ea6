package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// WaazCenter is a facility members can be assigned to during a miqaat.
type WaazCenter struct {
	ID         int64  `json:"id" db:"id"`
	CenterName string `json:"center_name" db:"center_name"`
	Location   string `json:"location" db:"location"`
	Capacity   int    `json:"capacity" db:"capacity"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateWaazCenterRequest represents the request to create a center.
type CreateWaazCenterRequest struct {
	CenterName string `json:"center_name"`
	Location   string `json:"location"`
	Capacity   int    `json:"capacity"`
}

// Validate checks field-level constraints.
func (req *CreateWaazCenterRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("center_name", req.CenterName)
	errs.MaxLen("center_name", req.CenterName, 255)
	errs.Require("location", req.Location)
	errs.MaxLen("location", req.Location, 255)
	if req.Capacity <= 0 {
		errs.Add("capacity", "The capacity must be greater than 0.")
	}
	return errs
}

// UpdateWaazCenterRequest represents a partial center update.
type UpdateWaazCenterRequest struct {
	CenterName *string `json:"center_name,omitempty"`
	Location   *string `json:"location,omitempty"`
	Capacity   *int    `json:"capacity,omitempty"`
}

// Validate checks field-level constraints on the provided fields.
func (req *UpdateWaazCenterRequest) Validate() validator.Errors {
	errs := validator.New()
	if req.CenterName != nil {
		if *req.CenterName == "" {
			errs.Add("center_name", "The center_name field may not be empty.")
		}
		errs.MaxLen("center_name", *req.CenterName, 255)
	}
	if req.Location != nil {
		if *req.Location == "" {
			errs.Add("location", "The location field may not be empty.")
		}
		errs.MaxLen("location", *req.Location, 255)
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		errs.Add("capacity", "The capacity must be greater than 0.")
	}
	return errs
}

// Apply merges the provided fields onto an existing record.
func (req *UpdateWaazCenterRequest) Apply(w *WaazCenter) {
	if req.CenterName != nil {
		w.CenterName = *req.CenterName
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Capacity != nil {
		w.Capacity = *req.Capacity
	}
}

// WaazCenterPreference records which center a member prefers for a
// miqaat. One preference per member per miqaat.
type WaazCenterPreference struct {
	ID           int64  `json:"id" db:"id"`
	ItsID        string `json:"its_id" db:"its_id"`
	WaazCenterID int64  `json:"waaz_center_id" db:"waaz_center_id"`
	MiqaatID     int64  `json:"miqaat_id" db:"miqaat_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PreferenceView is the listing shape with display names joined in.
type PreferenceView struct {
	WaazCenterPreference
	MumineenName string `json:"mumineen_name" db:"mumineen_name"`
	CenterName   string `json:"center_name" db:"center_name"`
	MiqaatName   string `json:"miqaat_name" db:"miqaat_name"`
}

// CreatePreferenceRequest represents the request to record a preference.
type CreatePreferenceRequest struct {
	ItsID        string `json:"its_id"`
	WaazCenterID int64  `json:"waaz_center_id"`
	MiqaatID     int64  `json:"miqaat_id"`
}

// Validate checks field-level constraints.
func (req *CreatePreferenceRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("its_id", req.ItsID)
	if req.WaazCenterID == 0 {
		errs.Add("waaz_center_id", "The waaz_center_id field is required.")
	}
	if req.MiqaatID == 0 {
		errs.Add("miqaat_id", "The miqaat_id field is required.")
	}
	return errs
}
