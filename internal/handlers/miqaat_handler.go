package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// MiqaatHandler serves the event catalog routes
type MiqaatHandler struct {
	miqaatRepo *database.MiqaatRepository
	eventRepo  *database.MiqaatEventRepository
}

// NewMiqaatHandler creates a new miqaat handler
func NewMiqaatHandler(miqaatRepo *database.MiqaatRepository, eventRepo *database.MiqaatEventRepository) *MiqaatHandler {
	return &MiqaatHandler{
		miqaatRepo: miqaatRepo,
		eventRepo:  eventRepo,
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// List returns all miqaats
// GET /miqaats
func (h *MiqaatHandler) List(c *gin.Context) {
	miqaats, err := h.miqaatRepo.List()
	if err != nil {
		respondServerError(c, "Failed to retrieve miqaats", err)
		return
	}

	respondSuccess(c, http.StatusOK, miqaats)
}

// Create adds a new miqaat
// POST /miqaats
func (h *MiqaatHandler) Create(c *gin.Context) {
	var req models.CreateMiqaatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	startDate, _ := validator.ParseDate(req.StartDate)
	endDate, _ := validator.ParseDate(req.EndDate)

	m := &models.Miqaat{
		Name:        req.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
		Status:      models.MiqaatStatus(req.Status),
	}

	if err := h.miqaatRepo.Create(m); err != nil {
		respondServerError(c, "Failed to create miqaat", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Miqaat created successfully", m)
}

// Show returns a single miqaat
// GET /miqaats/:id
func (h *MiqaatHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat not found")
		return
	}

	m, err := h.miqaatRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat not found")
			return
		}
		respondServerError(c, "Failed to retrieve miqaat", err)
		return
	}

	respondSuccess(c, http.StatusOK, m)
}

// Update applies a partial update to a miqaat. The start/end ordering is
// re-checked against the merged record so a single-sided date change
// cannot invert the range.
// PUT /miqaats/:id
func (h *MiqaatHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat not found")
		return
	}

	existing, err := h.miqaatRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat not found")
			return
		}
		respondServerError(c, "Failed to update miqaat", err)
		return
	}

	var req models.UpdateMiqaatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	merged := *existing
	req.Apply(&merged)
	if merged.EndDate.Before(merged.StartDate) {
		errs.Add("end_date", "The end_date must be a date after or equal to start_date.")
		respondValidation(c, errs)
		return
	}

	if err := h.miqaatRepo.Update(&merged); err != nil {
		respondServerError(c, "Failed to update miqaat", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Miqaat updated successfully", &merged)
}

// Delete removes a miqaat together with its owned rows
// DELETE /miqaats/:id
func (h *MiqaatHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat not found")
		return
	}

	exists, err := h.miqaatRepo.Exists(id)
	if err != nil {
		respondServerError(c, "Failed to delete miqaat", err)
		return
	}
	if !exists {
		respondNotFound(c, "Miqaat not found")
		return
	}

	if err := h.miqaatRepo.Delete(id); err != nil {
		respondServerError(c, "Failed to delete miqaat", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Miqaat deleted successfully", nil)
}

// Upcoming returns miqaats that are declared upcoming, or ongoing with
// an end date not yet passed, ordered by start date
// GET /miqaats/upcoming
func (h *MiqaatHandler) Upcoming(c *gin.Context) {
	miqaats, err := h.miqaatRepo.ListUpcoming(time.Now())
	if err != nil {
		respondServerError(c, "Failed to retrieve upcoming miqaats", err)
		return
	}

	respondSuccess(c, http.StatusOK, miqaats)
}

// WithEvents returns a miqaat together with all of its sub-events
// GET /miqaats/:id/events
func (h *MiqaatHandler) WithEvents(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Miqaat not found")
		return
	}

	m, err := h.miqaatRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Miqaat not found")
			return
		}
		respondServerError(c, "Failed to retrieve miqaat", err)
		return
	}

	events, err := h.eventRepo.ListByMiqaat(id)
	if err != nil {
		respondServerError(c, "Failed to retrieve miqaat", err)
		return
	}

	respondSuccess(c, http.StatusOK, models.MiqaatWithEvents{
		Miqaat: *m,
		Events: events,
	})
}
