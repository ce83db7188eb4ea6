package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
)

// Accommodation is a lodging assignment for one member at one miqaat.
type Accommodation struct {
	ID                int64     `json:"id" db:"id"`
	ItsID             string    `json:"its_id" db:"its_id"`
	MiqaatID          int64     `json:"miqaat_id" db:"miqaat_id"`
	Name              string    `json:"name" db:"name"`
	City              string    `json:"city" db:"city"`
	Pincode           *string   `json:"pincode" db:"pincode"`
	AccommodationType string    `json:"accommodation_type" db:"accommodation_type"`
	RoomNumber        *string   `json:"room_number" db:"room_number"`
	CheckInDate       time.Time `json:"check_in_date" db:"check_in_date"`
	CheckOutDate      time.Time `json:"check_out_date" db:"check_out_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AccommodationView is the response shape with member and miqaat display
// names joined in at read time. The persisted shape never carries these.
type AccommodationView struct {
	Accommodation
	MumineenName string `json:"mumineen_name" db:"mumineen_name"`
	MiqaatName   string `json:"miqaat_name" db:"miqaat_name"`
}

// CreateAccommodationRequest represents the request to create a lodging
// assignment. Referenced member and miqaat must exist; the handler
// verifies both against the store.
type CreateAccommodationRequest struct {
	ItsID             string  `json:"its_id"`
	MiqaatID          int64   `json:"miqaat_id"`
	Name              string  `json:"name"`
	City              string  `json:"city"`
	Pincode           *string `json:"pincode,omitempty"`
	AccommodationType string  `json:"accommodation_type"`
	RoomNumber        *string `json:"room_number,omitempty"`
	CheckInDate       string  `json:"check_in_date"`
	CheckOutDate      string  `json:"check_out_date"`
}

// Validate checks field constraints including check_out >= check_in.
func (req *CreateAccommodationRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("its_id", req.ItsID)
	if req.MiqaatID == 0 {
		errs.Add("miqaat_id", "The miqaat_id field is required.")
	}
	errs.Require("name", req.Name)
	errs.MaxLen("name", req.Name, 255)
	errs.Require("city", req.City)
	errs.MaxLen("city", req.City, 255)
	if req.Pincode != nil {
		errs.MaxLen("pincode", *req.Pincode, 20)
	}
	errs.Require("accommodation_type", req.AccommodationType)
	errs.MaxLen("accommodation_type", req.AccommodationType, 100)
	if req.RoomNumber != nil {
		errs.MaxLen("room_number", *req.RoomNumber, 50)
	}
	errs.Require("check_in_date", req.CheckInDate)
	errs.Require("check_out_date", req.CheckOutDate)

	var in, out time.Time
	if req.CheckInDate != "" {
		in = errs.Date("check_in_date", req.CheckInDate)
	}
	if req.CheckOutDate != "" {
		out = errs.Date("check_out_date", req.CheckOutDate)
	}
	if !in.IsZero() && !out.IsZero() && out.Before(in) {
		errs.Add("check_out_date", "The check_out_date must be a date after or equal to check_in_date.")
	}
	return errs
}

// UpdateAccommodationRequest represents a partial accommodation update.
type UpdateAccommodationRequest struct {
	ItsID             *string `json:"its_id,omitempty"`
	MiqaatID          *int64  `json:"miqaat_id,omitempty"`
	Name              *string `json:"name,omitempty"`
	City              *string `json:"city,omitempty"`
	Pincode           *string `json:"pincode,omitempty"`
	AccommodationType *string `json:"accommodation_type,omitempty"`
	RoomNumber        *string `json:"room_number,omitempty"`
	CheckInDate       *string `json:"check_in_date,omitempty"`
	CheckOutDate      *string `json:"check_out_date,omitempty"`
}

// Validate checks field-level constraints on the provided fields.
func (req *UpdateAccommodationRequest) Validate() validator.Errors {
	errs := validator.New()
	if req.ItsID != nil && *req.ItsID == "" {
		errs.Add("its_id", "The its_id field may not be empty.")
	}
	if req.Name != nil {
		if *req.Name == "" {
			errs.Add("name", "The name field may not be empty.")
		}
		errs.MaxLen("name", *req.Name, 255)
	}
	if req.City != nil {
		if *req.City == "" {
			errs.Add("city", "The city field may not be empty.")
		}
		errs.MaxLen("city", *req.City, 255)
	}
	if req.Pincode != nil {
		errs.MaxLen("pincode", *req.Pincode, 20)
	}
	if req.AccommodationType != nil {
		if *req.AccommodationType == "" {
			errs.Add("accommodation_type", "The accommodation_type field may not be empty.")
		}
		errs.MaxLen("accommodation_type", *req.AccommodationType, 100)
	}
	if req.RoomNumber != nil {
		errs.MaxLen("room_number", *req.RoomNumber, 50)
	}
	if req.CheckInDate != nil {
		errs.Date("check_in_date", *req.CheckInDate)
	}
	if req.CheckOutDate != nil {
		errs.Date("check_out_date", *req.CheckOutDate)
	}
	return errs
}

// Apply merges the provided fields onto an existing record.
func (req *UpdateAccommodationRequest) Apply(a *Accommodation) {
	if req.ItsID != nil {
		a.ItsID = *req.ItsID
	}
	if req.MiqaatID != nil {
		a.MiqaatID = *req.MiqaatID
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.Pincode != nil {
		a.Pincode = req.Pincode
	}
	if req.AccommodationType != nil {
		a.AccommodationType = *req.AccommodationType
	}
	if req.RoomNumber != nil {
		a.RoomNumber = req.RoomNumber
	}
	if req.CheckInDate != nil {
		if t, err := validator.ParseDate(*req.CheckInDate); err == nil {
			a.CheckInDate = t
		}
	}
	if req.CheckOutDate != nil {
		if t, err := validator.ParseDate(*req.CheckOutDate); err == nil {
			a.CheckOutDate = t
		}
	}
}
