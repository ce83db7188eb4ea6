package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

// ArrivalScanRepository handles arrival scan database operations
type ArrivalScanRepository struct {
	db DB
}

// NewArrivalScanRepository creates a new arrival scan repository
func NewArrivalScanRepository(db DB) *ArrivalScanRepository {
	return &ArrivalScanRepository{
		db: db,
	}
}

// Create inserts a new scan and fills in its generated id
func (r *ArrivalScanRepository) Create(s *models.ArrivalScan) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO arrival_scans (its_id, operator_id, miqaat_id, scanned_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		s.ItsID,
		s.OperatorID,
		s.MiqaatID,
		s.ScannedAt,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create arrival scan: %w", err)
	}

	return nil
}

// ListByMiqaat returns the miqaat's scans with member and operator names
// joined in for display, newest first.
func (r *ArrivalScanRepository) ListByMiqaat(miqaatID int64) ([]models.ArrivalScanView, error) {
	query := `
		SELECT s.id, s.its_id, s.operator_id, s.miqaat_id, s.scanned_at, s.created_at, s.updated_at,
			m.full_name AS mumineen_name,
			o.full_name AS operator_name
		FROM arrival_scans s
		JOIN mumineen m ON m.its_id = s.its_id
		JOIN operators o ON o.id = s.operator_id
		WHERE s.miqaat_id = $1
		ORDER BY s.scanned_at DESC, s.id DESC
	`

	scans := []models.ArrivalScanView{}
	if err := r.db.Select(&scans, query, miqaatID); err != nil {
		return nil, fmt.Errorf("failed to list arrival scans: %w", err)
	}

	return scans, nil
}
