package models

import (
	"time"

	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/google/uuid"
)

// ArrivalScan records a member being scanned in at a miqaat by an
// authenticated operator.
type ArrivalScan struct {
	ID         int64     `json:"id" db:"id"`
	ItsID      string    `json:"its_id" db:"its_id"`
	OperatorID uuid.UUID `json:"operator_id" db:"operator_id"`
	MiqaatID   int64     `json:"miqaat_id" db:"miqaat_id"`
	ScannedAt  time.Time `json:"scanned_at" db:"scanned_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArrivalScanView is the listing shape with member and operator display
// names joined in at read time.
type ArrivalScanView struct {
	ArrivalScan
	MumineenName string `json:"mumineen_name" db:"mumineen_name"`
	OperatorName string `json:"operator_name" db:"operator_name"`
}

// CreateArrivalScanRequest represents the request to record a scan. The
// miqaat id comes from the route and the operator from the auth context.
// ScannedAt defaults to the server clock when omitted.
type CreateArrivalScanRequest struct {
	ItsID     string  `json:"its_id"`
	ScannedAt *string `json:"scanned_at,omitempty"`
}

// Validate checks field-level constraints.
func (req *CreateArrivalScanRequest) Validate() validator.Errors {
	errs := validator.New()
	errs.Require("its_id", req.ItsID)
	if req.ScannedAt != nil {
		errs.Datetime("scanned_at", *req.ScannedAt)
	}
	return errs
}
