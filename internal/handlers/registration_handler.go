package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler serves registration routes nested under a miqaat.
type RegistrationHandler struct {
	miqaatRepo       *database.MiqaatRepository
	mumineenRepo     *database.MumineenRepository
	registrationRepo *database.RegistrationRepository
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(miqaatRepo *database.MiqaatRepository, mumineenRepo *database.MumineenRepository, registrationRepo *database.RegistrationRepository) *RegistrationHandler {
	return &RegistrationHandler{
		miqaatRepo:       miqaatRepo,
		mumineenRepo:     mumineenRepo,
		registrationRepo: registrationRepo,
	}
}

func (h *RegistrationHandler) requireMiqaat(c *gin.Context) (int64, bool) {
	miqaatID, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat not found")
		return 0, false
	}

	exists, err := h.miqaatRepo.Exists(miqaatID)
	if err != nil {
		respondServerError(c, "Failed to retrieve miqaat", err)
		return 0, false
	}
	if !exists {
		respondNotFound(c, "Miqaat not found")
		return 0, false
	}

	return miqaatID, true
}

// List returns a miqaat's registrations with member names
// GET /miqaats/:id/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	miqaatID, ok := h.requireMiqaat(c)
	if !ok {
		return
	}

	regs, err := h.registrationRepo.ListByMiqaat(miqaatID)
	if err != nil {
		respondServerError(c, "Failed to retrieve registrations", err)
		return
	}

	respondSuccess(c, http.StatusOK, regs)
}

// Create registers a member for a miqaat
// POST /miqaats/:id/registrations
func (h *RegistrationHandler) Create(c *gin.Context) {
	miqaatID, ok := h.requireMiqaat(c)
	if !ok {
		return
	}

	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if !errs.Any() {
		memberExists, err := h.mumineenRepo.Exists(req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to create registration", err)
			return
		}
		if !memberExists {
			errs.Add("its_id", "The selected its_id is invalid.")
		}

		registered, err := h.registrationRepo.ExistsForMember(miqaatID, req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to create registration", err)
			return
		}
		if registered {
			errs.Add("its_id", "The member is already registered for this miqaat.")
		}
	}
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	registrationDate, _ := validator.ParseDate(req.RegistrationDate)

	reg := &models.MiqaatRegistration{
		MiqaatID:         miqaatID,
		ItsID:            req.ItsID,
		RegistrationDate: registrationDate,
	}

	if err := h.registrationRepo.Create(reg); err != nil {
		respondServerError(c, "Failed to create registration", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Registration created successfully", reg)
}

// Delete removes a registration from a miqaat
// DELETE /miqaats/:id/registrations/:registrationId
func (h *RegistrationHandler) Delete(c *gin.Context) {
	miqaatID, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Registration not found")
		return
	}
	registrationID, ok := parseID(c, "registrationId")
	if !ok {
		respondNotFound(c, "Registration not found")
		return
	}

	reg, err := h.registrationRepo.GetByIDAndMiqaat(registrationID, miqaatID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Registration not found")
			return
		}
		respondServerError(c, "Failed to delete registration", err)
		return
	}

	if err := h.registrationRepo.Delete(reg.ID); err != nil {
		respondServerError(c, "Failed to delete registration", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Registration deleted successfully", nil)
}
