package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

// WaazCenterRepository handles facility database operations
type WaazCenterRepository struct {
	db DB
}

// NewWaazCenterRepository creates a new waaz center repository
func NewWaazCenterRepository(db DB) *WaazCenterRepository {
	return &WaazCenterRepository{
		db: db,
	}
}

// Create inserts a new center and fills in its generated id
func (r *WaazCenterRepository) Create(w *models.WaazCenter) error {
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	query := `
		INSERT INTO waaz_centers (center_name, location, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		w.CenterName,
		w.Location,
		w.Capacity,
		w.CreatedAt,
		w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to create waaz center: %w", err)
	}

	return nil
}

// GetByID retrieves a center. Returns sql.ErrNoRows when absent.
func (r *WaazCenterRepository) GetByID(id int64) (*models.WaazCenter, error) {
	query := `SELECT id, center_name, location, capacity, created_at, updated_at FROM waaz_centers WHERE id = $1`

	w := &models.WaazCenter{}
	if err := r.db.Get(w, query, id); err != nil {
		return nil, err
	}

	return w, nil
}

// Exists reports whether a center with the given id exists
func (r *WaazCenterRepository) Exists(id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM waaz_centers WHERE id = $1)`
	if err := r.db.Get(&exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check waaz center existence: %w", err)
	}
	return exists, nil
}

// List returns all centers in insertion order
func (r *WaazCenterRepository) List() ([]models.WaazCenter, error) {
	query := `SELECT id, center_name, location, capacity, created_at, updated_at FROM waaz_centers ORDER BY id`

	centers := []models.WaazCenter{}
	if err := r.db.Select(&centers, query); err != nil {
		return nil, fmt.Errorf("failed to list waaz centers: %w", err)
	}

	return centers, nil
}

// Update replaces the stored center record
func (r *WaazCenterRepository) Update(w *models.WaazCenter) error {
	w.UpdatedAt = time.Now()

	query := `
		UPDATE waaz_centers SET center_name = $1, location = $2, capacity = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.Exec(query, w.CenterName, w.Location, w.Capacity, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update waaz center: %w", err)
	}

	return nil
}

// Delete removes a center. Preferences referencing it cascade.
func (r *WaazCenterRepository) Delete(id int64) error {
	query := `DELETE FROM waaz_centers WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete waaz center: %w", err)
	}
	return nil
}
