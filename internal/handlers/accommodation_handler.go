package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/internal/services"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// AccommodationHandler serves lodging assignment routes.
type AccommodationHandler struct {
	accommodationRepo *database.AccommodationRepository
	mumineenRepo      *database.MumineenRepository
	miqaatRepo        *database.MiqaatRepository
	familyService     *services.FamilyService
}

// NewAccommodationHandler creates a new accommodation handler
func NewAccommodationHandler(
	accommodationRepo *database.AccommodationRepository,
	mumineenRepo *database.MumineenRepository,
	miqaatRepo *database.MiqaatRepository,
	familyService *services.FamilyService,
) *AccommodationHandler {
	return &AccommodationHandler{
		accommodationRepo: accommodationRepo,
		mumineenRepo:      mumineenRepo,
		miqaatRepo:        miqaatRepo,
		familyService:     familyService,
	}
}

// checkReferences validates that the member and miqaat an accommodation
// points at actually exist, accumulating field errors.
func (h *AccommodationHandler) checkReferences(itsID string, miqaatID int64, errs validator.Errors) error {
	memberExists, err := h.mumineenRepo.Exists(itsID)
	if err != nil {
		return err
	}
	if !memberExists {
		errs.Add("its_id", "The selected its_id is invalid.")
	}

	miqaatExists, err := h.miqaatRepo.Exists(miqaatID)
	if err != nil {
		return err
	}
	if !miqaatExists {
		errs.Add("miqaat_id", "The selected miqaat_id is invalid.")
	}

	return nil
}

// List returns all accommodations with member and miqaat names
// GET /accommodations
func (h *AccommodationHandler) List(c *gin.Context) {
	views, err := h.accommodationRepo.List()
	if err != nil {
		respondServerError(c, "Failed to retrieve accommodations", err)
		return
	}

	respondSuccess(c, http.StatusOK, views)
}

// Create adds a lodging assignment
// POST /accommodations
func (h *AccommodationHandler) Create(c *gin.Context) {
	var req models.CreateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if !errs.Any() {
		if err := h.checkReferences(req.ItsID, req.MiqaatID, errs); err != nil {
			respondServerError(c, "Failed to create accommodation", err)
			return
		}
	}
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	checkIn, _ := validator.ParseDate(req.CheckInDate)
	checkOut, _ := validator.ParseDate(req.CheckOutDate)

	a := &models.Accommodation{
		ItsID:             req.ItsID,
		MiqaatID:          req.MiqaatID,
		Name:              req.Name,
		City:              req.City,
		Pincode:           req.Pincode,
		AccommodationType: req.AccommodationType,
		RoomNumber:        req.RoomNumber,
		CheckInDate:       checkIn,
		CheckOutDate:      checkOut,
	}

	if err := h.accommodationRepo.Create(a); err != nil {
		respondServerError(c, "Failed to create accommodation", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Accommodation created successfully", a)
}

// Show returns an accommodation with member and miqaat names
// GET /accommodations/:id
func (h *AccommodationHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Accommodation not found")
		return
	}

	v, err := h.accommodationRepo.GetViewByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Accommodation not found")
			return
		}
		respondServerError(c, "Failed to retrieve accommodation", err)
		return
	}

	respondSuccess(c, http.StatusOK, v)
}

// Update applies a partial update to an accommodation
// PUT /accommodations/:id
func (h *AccommodationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Accommodation not found")
		return
	}

	existing, err := h.accommodationRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Accommodation not found")
			return
		}
		respondServerError(c, "Failed to update accommodation", err)
		return
	}

	var req models.UpdateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if !errs.Any() {
		itsID := existing.ItsID
		if req.ItsID != nil {
			itsID = *req.ItsID
		}
		miqaatID := existing.MiqaatID
		if req.MiqaatID != nil {
			miqaatID = *req.MiqaatID
		}
		if err := h.checkReferences(itsID, miqaatID, errs); err != nil {
			respondServerError(c, "Failed to update accommodation", err)
			return
		}
	}
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	merged := *existing
	req.Apply(&merged)
	if merged.CheckOutDate.Before(merged.CheckInDate) {
		errs.Add("check_out_date", "The check_out_date must be a date after or equal to check_in_date.")
		respondValidation(c, errs)
		return
	}

	if err := h.accommodationRepo.Update(&merged); err != nil {
		respondServerError(c, "Failed to update accommodation", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Accommodation updated successfully", &merged)
}

// Delete removes an accommodation
// DELETE /accommodations/:id
func (h *AccommodationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Accommodation not found")
		return
	}

	if _, err := h.accommodationRepo.GetByID(id); err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Accommodation not found")
			return
		}
		respondServerError(c, "Failed to delete accommodation", err)
		return
	}

	if err := h.accommodationRepo.Delete(id); err != nil {
		respondServerError(c, "Failed to delete accommodation", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Accommodation deleted successfully", nil)
}

// Family returns all accommodations held by members of one family
// GET /accommodations/family/:hofItsId
func (h *AccommodationHandler) Family(c *gin.Context) {
	hofItsID := c.Param("hofItsId")

	itsIDs, err := h.familyService.FamilyItsIDs(hofItsID)
	if err != nil {
		if err == services.ErrHofNotFound {
			respondNotFound(c, "Head of Family not found")
			return
		}
		respondServerError(c, "Failed to retrieve family accommodations", err)
		return
	}

	views, err := h.accommodationRepo.ListByItsIDs(itsIDs)
	if err != nil {
		respondServerError(c, "Failed to retrieve family accommodations", err)
		return
	}

	respondSuccess(c, http.StatusOK, views)
}
