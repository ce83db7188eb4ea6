package handlers

import (
	"net/http"
	"time"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/middleware"
	"github.com/burhani-census/census-api/internal/models"
	"github.com/burhani-census/census-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ArrivalScanHandler serves arrival scan routes nested under a miqaat.
// Recording a scan requires an authenticated operator; the operator id
// always comes from the token, never the request body.
type ArrivalScanHandler struct {
	miqaatRepo   *database.MiqaatRepository
	mumineenRepo *database.MumineenRepository
	scanRepo     *database.ArrivalScanRepository
}

// NewArrivalScanHandler creates a new arrival scan handler
func NewArrivalScanHandler(miqaatRepo *database.MiqaatRepository, mumineenRepo *database.MumineenRepository, scanRepo *database.ArrivalScanRepository) *ArrivalScanHandler {
	return &ArrivalScanHandler{
		miqaatRepo:   miqaatRepo,
		mumineenRepo: mumineenRepo,
		scanRepo:     scanRepo,
	}
}

func (h *ArrivalScanHandler) requireMiqaat(c *gin.Context) (int64, bool) {
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

// List returns a miqaat's arrival scans, newest first
// GET /miqaats/:id/scans
func (h *ArrivalScanHandler) List(c *gin.Context) {
	miqaatID, ok := h.requireMiqaat(c)
	if !ok {
		return
	}

	scans, err := h.scanRepo.ListByMiqaat(miqaatID)
	if err != nil {
		respondServerError(c, "Failed to retrieve arrival scans", err)
		return
	}

	respondSuccess(c, http.StatusOK, scans)
}

// Create records an arrival scan for a member at a miqaat
// POST /miqaats/:id/scans (authenticated)
func (h *ArrivalScanHandler) Create(c *gin.Context) {
	operator, ok := middleware.GetOperatorContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Authentication required",
		})
		return
	}

	miqaatID, ok := h.requireMiqaat(c)
	if !ok {
		return
	}

	var req models.CreateArrivalScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	errs := req.Validate()
	if !errs.Any() {
		memberExists, err := h.mumineenRepo.Exists(req.ItsID)
		if err != nil {
			respondServerError(c, "Failed to record arrival scan", err)
			return
		}
		if !memberExists {
			errs.Add("its_id", "The selected its_id is invalid.")
		}
	}
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	scannedAt := time.Now()
	if req.ScannedAt != nil {
		scannedAt, _ = validator.ParseDatetime(*req.ScannedAt)
	}

	scan := &models.ArrivalScan{
		ItsID:      req.ItsID,
		OperatorID: operator.OperatorID,
		MiqaatID:   miqaatID,
		ScannedAt:  scannedAt,
	}

	if err := h.scanRepo.Create(scan); err != nil {
		respondServerError(c, "Failed to record arrival scan", err)
		return
	}

	respondSuccessMessage(c, http.StatusCreated, "Arrival scan recorded successfully", scan)
}
