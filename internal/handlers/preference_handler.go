package handlers

import (
	"database/sql"
	"net/http"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/gin-gonic/gin"
)

// PreferenceHandler serves waaz center preference routes.
type PreferenceHandler struct {
	preferenceRepo *database.PreferenceRepository
	centerRepo     *database.WaazCenterRepository
	mumineenRepo   *database.MumineenRepository
	miqaatRepo     *database.MiqaatRepository
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(
	preferenceRepo *database.PreferenceRepository,
	centerRepo *database.WaazCenterRepository,
	mumineenRepo *database.MumineenRepository,
	miqaatRepo *database.MiqaatRepository,
) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceRepo: preferenceRepo,
		centerRepo:     centerRepo,
		mumineenRepo:   mumineenRepo,
		miqaatRepo:     miqaatRepo,
	}
}

// List returns all preferences with display names
// GET /waaz-center-preferences
func (h *PreferenceHandler) List(c *gin.Context) {
	views, err := h.preferenceRepo.List()
	if err != nil {
		respondServerError(c, "Failed to retrieve preferences", err)
		return
	}

	respondSuccess(c, http.StatusOK, views)
}

// Create records a member's center preference for a miqaat
// POST /waaz-center-preferences
func (h *PreferenceHandler) Create(c *gin.Context) {
	var req models.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if !errs.Any() {
		memberExists, err := h.mumineenRepo.Exists(req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to create preference", err)
			return
		}
		if !memberExists {
			errs.Add("its_id", "The selected its_id is invalid.")
		}

		centerExists, err := h.centerRepo.Exists(req.WaazCenterID)
		if err != nil {
			respondServerError(c, "Failed to create preference", err)
			return
		}
		if !centerExists {
			errs.Add("waaz_center_id", "The selected waaz_center_id is invalid.")
		}

		miqaatExists, err := h.miqaatRepo.Exists(req.MiqaatID)
		if err != nil {
			respondServerError(c, "Failed to create preference", err)
			return
		}
		if !miqaatExists {
			errs.Add("miqaat_id", "The selected miqaat_id is invalid.")
		}

		if memberExists && miqaatExists {
			taken, err := h.preferenceRepo.ExistsForMember(req.ItsID, req.MiqaatID)
			if err != nil {
				respondServerError(c, "Failed to create preference", err)
				return
			}
			if taken {
				errs.Add("its_id", "A preference for this miqaat already exists.")
			}
		}
	}
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	p := &models.WaazCenterPreference{
		ItsID:        req.ItsID,
		WaazCenterID: req.WaazCenterID,
		MiqaatID:     req.MiqaatID,
	}

	if err := h.preferenceRepo.Create(p); err != nil {
		respondServerError(c, "Failed to create preference", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Preference created successfully", p)
}

// Delete removes a preference
// DELETE /waaz-center-preferences/:id
func (h *PreferenceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondNotFound(c, "Preference not found")
		return
	}

	p, err := h.preferenceRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Preference not found")
			return
		}
		respondServerError(c, "Failed to delete preference", err)
		return
	}

	if err := h.preferenceRepo.Delete(p.ID); err != nil {
		respondServerError(c, "Failed to delete preference", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Preference deleted successfully", nil)
}
