package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

const miqaatColumns = `id, name, start_date, end_date, description, status, created_at, updated_at`

// MiqaatRepository handles miqaat database operations
type MiqaatRepository struct {
	db DB
}

// NewMiqaatRepository creates a new miqaat repository
func NewMiqaatRepository(db DB) *MiqaatRepository {
	return &MiqaatRepository{
		db: db,
	}
}

// Create inserts a new miqaat and fills in its generated id
func (r *MiqaatRepository) Create(m *models.Miqaat) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO miqaats (name, start_date, end_date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to create miqaat: %w", err)
	}

	return nil
}

// GetByID retrieves a miqaat. Returns sql.ErrNoRows when absent.
func (r *MiqaatRepository) GetByID(id int64) (*models.Miqaat, error) {
	query := `SELECT ` + miqaatColumns + ` FROM miqaats WHERE id = $1`

	m := &models.Miqaat{}
	if err := r.db.Get(m, query, id); err != nil {
		return nil, err
	}

	return m, nil
}

// Exists reports whether a miqaat with the given id exists
func (r *MiqaatRepository) Exists(id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM miqaats WHERE id = $1)`
	if err := r.db.Get(&exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check miqaat existence: %w", err)
	}
	return exists, nil
}

// List returns all miqaats in insertion order
func (r *MiqaatRepository) List() ([]models.Miqaat, error) {
	query := `SELECT ` + miqaatColumns + ` FROM miqaats ORDER BY id`

	miqaats := []models.Miqaat{}
	if err := r.db.Select(&miqaats, query); err != nil {
		return nil, fmt.Errorf("failed to list miqaats: %w", err)
	}

	return miqaats, nil
}

// ListUpcoming returns miqaats that are still ahead: declared upcoming,
// or declared ongoing and not yet past their end date. Ordered by start
// date ascending.
func (r *MiqaatRepository) ListUpcoming(now time.Time) ([]models.Miqaat, error) {
	query := `
		SELECT ` + miqaatColumns + ` FROM miqaats
		WHERE status = 'upcoming' OR (status = 'ongoing' AND end_date >= $1)
		ORDER BY start_date ASC
	`

	miqaats := []models.Miqaat{}
	if err := r.db.Select(&miqaats, query, now); err != nil {
		return nil, fmt.Errorf("failed to list upcoming miqaats: %w", err)
	}

	return miqaats, nil
}

// Update replaces the stored miqaat record
func (r *MiqaatRepository) Update(m *models.Miqaat) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE miqaats SET
			name = $1, start_date = $2, end_date = $3,
			description = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	_, err := r.db.Exec(
		query,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Description,
		m.Status,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update miqaat: %w", err)
	}

	return nil
}

// Delete removes a miqaat. Sub-events, registrations, scans,
// accommodations and preferences cascade at the schema level.
func (r *MiqaatRepository) Delete(id int64) error {
	query := `DELETE FROM miqaats WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete miqaat: %w", err)
	}
	return nil
}
