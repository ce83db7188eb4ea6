package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/gin-gonic/gin"
)

// WaazCenterHandler serves facility routes.
type WaazCenterHandler struct {
	centerRepo *database.WaazCenterRepository
}

// NewWaazCenterHandler creates a new waaz center handler
func NewWaazCenterHandler(centerRepo *database.WaazCenterRepository) *WaazCenterHandler {
	return &WaazCenterHandler{
		centerRepo: centerRepo,
	}
}

// List returns all centers
// GET /waaz-centers
func (h *WaazCenterHandler) List(c *gin.Context) {
	centers, err := h.centerRepo.List()
	if err != nil {
		respondServerError(c, "Failed to retrieve waaz centers", err)
		return
	}

	respondSuccess(c, http.StatusOK, centers)
}

// Create adds a center
// POST /waaz-centers
func (h *WaazCenterHandler) Create(c *gin.Context) {
	var req models.CreateWaazCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	w := &models.WaazCenter{
		CenterName: req.CenterName,
		Location:   req.Location,
		Capacity:   req.Capacity,
	}

	if err := h.centerRepo.Create(w); err != nil {
		respondServerError(c, "Failed to create waaz center", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Waaz center created successfully", w)
}

// Show returns a center
// GET /waaz-centers/:id
func (h *WaazCenterHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Waaz center not found")
		return
	}

	w, err := h.centerRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Waaz center not found")
			return
		}
		respondServerError(c, "Failed to retrieve waaz center", err)
		return
	}

	respondSuccess(c, http.StatusOK, w)
}

// Update applies a partial update to a center
// PUT /waaz-centers/:id
func (h *WaazCenterHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Waaz center not found")
		return
	}

	existing, err := h.centerRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Waaz center not found")
			return
		}
		respondServerError(c, "Failed to update waaz center", err)
		return
	}

	var req models.UpdateWaazCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if errs := req.Validate(); errs.Any() {
		respondValidation(c, errs)
		return
	}

	req.Apply(existing)
	if err := h.centerRepo.Update(existing); err != nil {
		respondServerError(c, "Failed to update waaz center", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Waaz center updated successfully", existing)
}

// Delete removes a center
// DELETE /waaz-centers/:id
func (h *WaazCenterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Waaz center not found")
		return
	}

	existing, err := h.centerRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Waaz center not found")
			return
		}
		respondServerError(c, "Failed to delete waaz center", err)
		return
	}

	if err := h.centerRepo.Delete(existing.ID); err != nil {
		respondServerError(c, "Failed to delete waaz center", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Waaz center deleted successfully", nil)
}
