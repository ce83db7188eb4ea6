package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

const miqaatEventColumns = `id, miqaat_id, name, datetime, location, description, created_at, updated_at`

// MiqaatEventRepository handles sub-event database operations
type MiqaatEventRepository struct {
	db DB
}

// NewMiqaatEventRepository creates a new miqaat event repository
func NewMiqaatEventRepository(db DB) *MiqaatEventRepository {
	return &MiqaatEventRepository{
		db: db,
	}
}

// Create inserts a new sub-event and fills in its generated id
func (r *MiqaatEventRepository) Create(e *models.MiqaatEvent) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO miqaat_events (miqaat_id, name, datetime, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		e.MiqaatID,
		e.Name,
		e.Datetime,
		e.Location,
		e.Description,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create miqaat event: %w", err)
	}

	return nil
}

// GetByIDAndMiqaat retrieves a sub-event scoped to its parent miqaat.
// Returns sql.ErrNoRows when the id is absent or belongs to another
// miqaat, so guessed ids cannot cross event boundaries.
func (r *MiqaatEventRepository) GetByIDAndMiqaat(id, miqaatID int64) (*models.MiqaatEvent, error) {
	query := `SELECT ` + miqaatEventColumns + ` FROM miqaat_events WHERE id = $1 AND miqaat_id = $2`

	e := &models.MiqaatEvent{}
	if err := r.db.Get(e, query, id, miqaatID); err != nil {
		return nil, err
	}

	return e, nil
}

// ListByMiqaat returns all sub-events of a miqaat in insertion order
func (r *MiqaatEventRepository) ListByMiqaat(miqaatID int64) ([]models.MiqaatEvent, error) {
	query := `SELECT ` + miqaatEventColumns + ` FROM miqaat_events WHERE miqaat_id = $1 ORDER BY id`

	events := []models.MiqaatEvent{}
	if err := r.db.Select(&events, query, miqaatID); err != nil {
		return nil, fmt.Errorf("failed to list miqaat events: %w", err)
	}

	return events, nil
}

// Update replaces the stored sub-event record
func (r *MiqaatEventRepository) Update(e *models.MiqaatEvent) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE miqaat_events SET
			name = $1, datetime = $2, location = $3, description = $4, updated_at = $5
		WHERE id = $6
	`

	_, err := r.db.Exec(
		query,
		e.Name,
		e.Datetime,
		e.Location,
		e.Description,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update miqaat event: %w", err)
	}

	return nil
}

// Delete removes a sub-event
func (r *MiqaatEventRepository) Delete(id int64) error {
	query := `DELETE FROM miqaat_events WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete miqaat event: %w", err)
	}
	return nil
}
