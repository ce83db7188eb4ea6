package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// MiqaatEventHandler serves sub-event routes nested under a miqaat.
// Every operation verifies the parent first and scopes child lookups to
// that exact parent, so a guessed id cannot reach another miqaat's events.
type MiqaatEventHandler struct {
	miqaatRepo *database.MiqaatRepository
	eventRepo  *database.MiqaatEventRepository
}

// NewMiqaatEventHandler creates a new miqaat event handler
func NewMiqaatEventHandler(miqaatRepo *database.MiqaatRepository, eventRepo *database.MiqaatEventRepository) *MiqaatEventHandler {
	return &MiqaatEventHandler{
		miqaatRepo: miqaatRepo,
		eventRepo:  eventRepo,
	}
}

// requireMiqaat resolves the parent miqaat id or writes a 404
func (h *MiqaatEventHandler) requireMiqaat(c *gin.Context) (int64, bool) {
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

// Create adds a sub-event to a miqaat
// POST /miqaats/:id/events
func (h *MiqaatEventHandler) Create(c *gin.Context) {
	miqaatID, ok := h.requireMiqaat(c)
	if !ok {
		return
	}

	var req models.CreateMiqaatEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	datetime, _ := validator.ParseDatetime(req.Datetime)

	e := &models.MiqaatEvent{
		MiqaatID:    miqaatID,
		Name:        req.Name,
		Datetime:    datetime,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := h.eventRepo.Create(e); err != nil {
		respondServerError(c, "Failed to create miqaat event", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Miqaat event created successfully", e)
}

// Show returns a sub-event belonging to the given miqaat
// GET /miqaats/:id/events/:eventId
func (h *MiqaatEventHandler) Show(c *gin.Context) {
	miqaatID, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}

	e, err := h.eventRepo.GetByIDAndMiqaat(eventID, miqaatID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat event not found")
			return
		}
		respondServerError(c, "Failed to retrieve miqaat event", err)
		return
	}

	respondSuccess(c, http.StatusOK, e)
}

// Update applies a partial update to a sub-event
// PUT /miqaats/:id/events/:eventId
func (h *MiqaatEventHandler) Update(c *gin.Context) {
	miqaatID, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}

	existing, err := h.eventRepo.GetByIDAndMiqaat(eventID, miqaatID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat event not found")
			return
		}
		respondServerError(c, "Failed to update miqaat event", err)
		return
	}

	var req models.UpdateMiqaatEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	req.Apply(existing)
	if err := h.eventRepo.Update(existing); err != nil {
		respondServerError(c, "Failed to update miqaat event", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Miqaat event updated successfully", existing)
}

// Delete removes a sub-event
// DELETE /miqaats/:id/events/:eventId
func (h *MiqaatEventHandler) Delete(c *gin.Context) {
	miqaatID, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		respondNotFound(c, "Miqaat event not found")
		return
	}

	e, err := h.eventRepo.GetByIDAndMiqaat(eventID, miqaatID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat event not found")
			return
		}
		respondServerError(c, "Failed to delete miqaat event", err)
		return
	}

	if err := h.eventRepo.Delete(e.ID); err != nil {
		respondServerError(c, "Failed to delete miqaat event", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Miqaat event deleted successfully", nil)
}
