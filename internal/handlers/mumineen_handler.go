package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/internal/services"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// MumineenHandler serves the member registry and family resolution routes
type MumineenHandler struct {
	mumineenRepo  *database.MumineenRepository
	familyService *services.FamilyService
}

// NewMumineenHandler creates a new mumineen handler
func NewMumineenHandler(mumineenRepo *database.MumineenRepository, familyService *services.FamilyService) *MumineenHandler {
	return &MumineenHandler{
		mumineenRepo:  mumineenRepo,
		familyService: familyService,
	}
}

// List returns a page of members, optionally narrowed by a search term
// GET /mumineen?page=&per_page=&search=
func (h *MumineenHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}
	search := c.Query("search")

	members, total, err := h.mumineenRepo.List(page, perPage, search)
	if err != nil {
		respondServerError(c, "Failed to retrieve mumineen", err)
		return
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	respondPage(c, members, PageMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	})
}

// Create registers a new member
// POST /mumineen
func (h *MumineenHandler) Create(c *gin.Context) {
	var req models.CreateMumineenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()

	if req.ItsID != "" {
		exists, err := h.mumineenRepo.Exists(req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to create mumineen", err)
			return
		}
		if exists {
			errs.Add("its_id", "The its_id has already been taken.")
		}
	}

	// A member may reference themselves as head before their own row
	// exists, so the self-reference skips the existence check.
	if req.HofItsID != nil && *req.HofItsID != req.ItsID {
		hofExists, err := h.mumineenRepo.Exists(*req.HofItsID)
		if err != nil {
			respondServerError(c, "Failed to create mumineen", err)
			return
		}
		if !hofExists {
			errs.Add("hof_its_id", "The selected hof_its_id is invalid.")
		}
	}

	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	m := &models.Mumineen{
		ItsID:    req.ItsID,
		EitsID:   req.EitsID,
		HofItsID: req.HofItsID,
		FullName: req.FullName,
		Gender:   models.Gender(req.Gender),
		Age:      req.Age,
		Mobile:   req.Mobile,
		Country:  req.Country,
	}

	if err := h.mumineenRepo.Create(m); err != nil {
		respondServerError(c, "Failed to create mumineen", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Mumineen created successfully", m)
}

// Show returns a single member
// GET /mumineen/:id
func (h *MumineenHandler) Show(c *gin.Context) {
	m, err := h.mumineenRepo.GetByItsID(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Mumineen not found")
			return
		}
		respondServerError(c, "Failed to retrieve mumineen", err)
		return
	}

	respondSuccess(c, http.StatusOK, m)
}

// Update applies a partial update to a member. Omitted fields keep
// their stored values.
// PUT /mumineen/:id
func (h *MumineenHandler) Update(c *gin.Context) {
	itsID := c.Param("id")

	existing, err := h.mumineenRepo.GetByItsID(itsID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondNotFound(c, "Mumineen not found")
			return
		}
		respondServerError(c, "Failed to update mumineen", err)
		return
	}

	var req models.UpdateMumineenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()

	// Uniqueness check excludes the record's own its_id.
	if req.ItsID != nil && *req.ItsID != itsID {
		exists, err := h.mumineenRepo.Exists(*req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to update mumineen", err)
			return
		}
		if exists {
			errs.Add("its_id", "The its_id has already been taken.")
		}
	}

	// The self-reference exemption is judged against the its_id the
	// record will hold after the update, not the one it holds now.
	newItsID := existing.ItsID
	if req.ItsID != nil {
		newItsID = *req.ItsID
	}
	if req.HofItsID != nil && *req.HofItsID != newItsID {
		hofExists, err := h.mumineenRepo.Exists(*req.HofItsID)
		if err != nil {
			respondServerError(c, "Failed to update mumineen", err)
			return
		}
		if !hofExists {
			errs.Add("hof_its_id", "The selected hof_its_id is invalid.")
		}
	}

	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	req.Apply(existing)
	if err := h.mumineenRepo.Update(itsID, existing); err != nil {
		respondServerError(c, "Failed to update mumineen", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Mumineen updated successfully", existing)
}

// Delete removes a member. Dependents keep their rows; their hof link
// is nulled by the schema.
// DELETE /mumineen/:id
func (h *MumineenHandler) Delete(c *gin.Context) {
	itsID := c.Param("id")

	exists, err := h.mumineenRepo.Exists(itsID)
	if err != nil {
		respondServerError(c, "Failed to delete mumineen", err)
		return
	}
	if !exists {
		respondNotFound(c, "Mumineen not found")
		return
	}

	if err := h.mumineenRepo.Delete(itsID); err != nil {
		respondServerError(c, "Failed to delete mumineen", err)
		return
	}

	respondSuccessMessage(c, http.StatusOK, "Mumineen deleted successfully", nil)
}

// Search returns all members matching a term. The term is required.
// GET /mumineen/search?q=
func (h *MumineenHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		errs := validator.New()
		errs.Add("q", "Search query is required")
		respondValidation(c, errs)
		return
	}

	members, err := h.mumineenRepo.Search(term)
	if err != nil {
		respondServerError(c, "Failed to search mumineen", err)
		return
	}

	respondSuccess(c, http.StatusOK, members)
}

// Hofs returns every head of family
// GET /mumineen/hofs
func (h *MumineenHandler) Hofs(c *gin.Context) {
	hofs, err := h.familyService.ListHeadsOfFamily()
	if err != nil {
		respondServerError(c, "Failed to retrieve heads of families", err)
		return
	}

	respondSuccess(c, http.StatusOK, hofs)
}

// HofByIts resolves the head of family for a member
// GET /mumineen/hof-by-its/:itsId
func (h *MumineenHandler) HofByIts(c *gin.Context) {
	result, err := h.familyService.ResolveHeadOfFamily(c.Param("itsId"))
	if err != nil {
		switch err {
		case services.ErrMumineenNotFound:
			respondNotFound(c, "Mumineen not found")
		case services.ErrHofNotFound:
			respondNotFound(c, "Head of Family not found")
		default:
			respondServerError(c, "Failed to retrieve Head of Family information", err)
		}
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

// Family returns the family group rooted at a head of family
// GET /mumineen/family/:hofItsId
func (h *MumineenHandler) Family(c *gin.Context) {
	members, err := h.familyService.ListFamilyMembers(c.Param("hofItsId"))
	if err != nil {
		if err == services.ErrHofNotFound {
			respondNotFound(c, "Head of Family not found")
			return
		}
		respondServerError(c, "Failed to retrieve family members", err)
		return
	}

	respondSuccess(c, http.StatusOK, members)
}
