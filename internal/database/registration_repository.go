package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

// RegistrationRepository handles miqaat registration database operations
type RegistrationRepository struct {
	db DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db DB) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
	}
}

// Create inserts a new registration and fills in its generated id
func (r *RegistrationRepository) Create(reg *models.MiqaatRegistration) error {
	now := time.Now()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	query := `
		INSERT INTO miqaat_registrations (miqaat_id, its_id, registration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		reg.MiqaatID,
		reg.ItsID,
		reg.RegistrationDate,
		reg.CreatedAt,
		reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// ExistsForMember reports whether the member already registered for the miqaat
func (r *RegistrationRepository) ExistsForMember(miqaatID int64, itsID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM miqaat_registrations WHERE miqaat_id = $1 AND its_id = $2)`
	if err := r.db.Get(&exists, query, miqaatID, itsID); err != nil {
		return false, fmt.Errorf("failed to check registration existence: %w", err)
	}
	return exists, nil
}

// GetByIDAndMiqaat retrieves a registration scoped to its miqaat.
// Returns sql.ErrNoRows when absent or owned by another miqaat.
func (r *RegistrationRepository) GetByIDAndMiqaat(id, miqaatID int64) (*models.MiqaatRegistration, error) {
	query := `
		SELECT id, miqaat_id, its_id, registration_date, created_at, updated_at
		FROM miqaat_registrations WHERE id = $1 AND miqaat_id = $2
	`

	reg := &models.MiqaatRegistration{}
	if err := r.db.Get(reg, query, id, miqaatID); err != nil {
		return nil, err
	}

	return reg, nil
}

// ListByMiqaat returns the miqaat's registrations with member names
// joined in for display.
func (r *RegistrationRepository) ListByMiqaat(miqaatID int64) ([]models.RegistrationView, error) {
	query := `
		SELECT r.id, r.miqaat_id, r.its_id, r.registration_date, r.created_at, r.updated_at,
			m.full_name AS mumineen_name
		FROM miqaat_registrations r
		JOIN mumineen m ON m.its_id = r.its_id
		WHERE r.miqaat_id = $1
		ORDER BY r.id
	`

	regs := []models.RegistrationView{}
	if err := r.db.Select(&regs, query, miqaatID); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	return regs, nil
}

// Delete removes a registration
func (r *RegistrationRepository) Delete(id int64) error {
	query := `DELETE FROM miqaat_registrations WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}
