package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

// PreferenceRepository handles waaz center preference database operations
type PreferenceRepository struct {
	db DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db DB) *PreferenceRepository {
	return &PreferenceRepository{
		db: db,
	}
}

// Create inserts a new preference and fills in its generated id
func (r *PreferenceRepository) Create(p *models.WaazCenterPreference) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO waaz_center_preferences (its_id, waaz_center_id, miqaat_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		p.ItsID,
		p.WaazCenterID,
		p.MiqaatID,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create waaz center preference: %w", err)
	}

	return nil
}

// ExistsForMember reports whether the member already has a preference
// recorded for the miqaat.
func (r *PreferenceRepository) ExistsForMember(itsID string, miqaatID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM waaz_center_preferences WHERE its_id = $1 AND miqaat_id = $2)`
	if err := r.db.Get(&exists, query, itsID, miqaatID); err != nil {
		return false, fmt.Errorf("failed to check preference existence: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a preference. Returns sql.ErrNoRows when absent.
func (r *PreferenceRepository) GetByID(id int64) (*models.WaazCenterPreference, error) {
	query := `SELECT id, its_id, waaz_center_id, miqaat_id, created_at, updated_at FROM waaz_center_preferences WHERE id = $1`

	p := &models.WaazCenterPreference{}
	if err := r.db.Get(p, query, id); err != nil {
		return nil, err
	}

	return p, nil
}

// List returns all preferences with display names joined in
func (r *PreferenceRepository) List() ([]models.PreferenceView, error) {
	query := `
		SELECT p.id, p.its_id, p.waaz_center_id, p.miqaat_id, p.created_at, p.updated_at,
			m.full_name AS mumineen_name,
			w.center_name AS center_name,
			q.name AS miqaat_name
		FROM waaz_center_preferences p
		JOIN mumineen m ON m.its_id = p.its_id
		JOIN waaz_centers w ON w.id = p.waaz_center_id
		JOIN miqaats q ON q.id = p.miqaat_id
		ORDER BY p.id
	`

	views := []models.PreferenceView{}
	if err := r.db.Select(&views, query); err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	return views, nil
}

// Delete removes a preference
func (r *PreferenceRepository) Delete(id int64) error {
	query := `DELETE FROM waaz_center_preferences WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}
