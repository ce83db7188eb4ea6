package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
	"github.com/lib/pq"
)

const accommodationColumns = `a.id, a.its_id, a.miqaat_id, a.name, a.city, a.pincode,
	a.accommodation_type, a.room_number, a.check_in_date, a.check_out_date,
	a.created_at, a.updated_at`

// AccommodationRepository handles lodging assignment database operations
type AccommodationRepository struct {
	db DB
}

// NewAccommodationRepository creates a new accommodation repository
func NewAccommodationRepository(db DB) *AccommodationRepository {
	return &AccommodationRepository{
		db: db,
	}
}

// Create inserts a new accommodation and fills in its generated id
func (r *AccommodationRepository) Create(a *models.Accommodation) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO accommodations (
			its_id, miqaat_id, name, city, pincode, accommodation_type,
			room_number, check_in_date, check_out_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		a.ItsID,
		a.MiqaatID,
		a.Name,
		a.City,
		a.Pincode,
		a.AccommodationType,
		a.RoomNumber,
		a.CheckInDate,
		a.CheckOutDate,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}

	return nil
}

// GetByID retrieves an accommodation without display enrichment.
// Returns sql.ErrNoRows when absent.
func (r *AccommodationRepository) GetByID(id int64) (*models.Accommodation, error) {
	query := `
		SELECT id, its_id, miqaat_id, name, city, pincode, accommodation_type,
			room_number, check_in_date, check_out_date, created_at, updated_at
		FROM accommodations WHERE id = $1
	`

	a := &models.Accommodation{}
	if err := r.db.Get(a, query, id); err != nil {
		return nil, err
	}

	return a, nil
}

// GetViewByID retrieves an accommodation with member and miqaat display
// names joined in. Returns sql.ErrNoRows when absent.
func (r *AccommodationRepository) GetViewByID(id int64) (*models.AccommodationView, error) {
	query := `
		SELECT ` + accommodationColumns + `,
			m.full_name AS mumineen_name,
			q.name AS miqaat_name
		FROM accommodations a
		JOIN mumineen m ON m.its_id = a.its_id
		JOIN miqaats q ON q.id = a.miqaat_id
		WHERE a.id = $1
	`

	v := &models.AccommodationView{}
	if err := r.db.Get(v, query, id); err != nil {
		return nil, err
	}

	return v, nil
}

// List returns all accommodations with display names joined in
func (r *AccommodationRepository) List() ([]models.AccommodationView, error) {
	query := `
		SELECT ` + accommodationColumns + `,
			m.full_name AS mumineen_name,
			q.name AS miqaat_name
		FROM accommodations a
		JOIN mumineen m ON m.its_id = a.its_id
		JOIN miqaats q ON q.id = a.miqaat_id
		ORDER BY a.id
	`

	views := []models.AccommodationView{}
	if err := r.db.Select(&views, query); err != nil {
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}

	return views, nil
}

// ListByItsIDs returns accommodations belonging to any of the given
// members, with display names joined in.
func (r *AccommodationRepository) ListByItsIDs(itsIDs []string) ([]models.AccommodationView, error) {
	query := `
		SELECT ` + accommodationColumns + `,
			m.full_name AS mumineen_name,
			q.name AS miqaat_name
		FROM accommodations a
		JOIN mumineen m ON m.its_id = a.its_id
		JOIN miqaats q ON q.id = a.miqaat_id
		WHERE a.its_id = ANY($1)
		ORDER BY a.id
	`

	views := []models.AccommodationView{}
	if err := r.db.Select(&views, query, pq.Array(itsIDs)); err != nil {
		return nil, fmt.Errorf("failed to list family accommodations: %w", err)
	}

	return views, nil
}

// Update replaces the stored accommodation record
func (r *AccommodationRepository) Update(a *models.Accommodation) error {
	a.UpdatedAt = time.Now()

	query := `
		UPDATE accommodations SET
			its_id = $1, miqaat_id = $2, name = $3, city = $4, pincode = $5,
			accommodation_type = $6, room_number = $7, check_in_date = $8,
			check_out_date = $9, updated_at = $10
		WHERE id = $11
	`

	_, err := r.db.Exec(
		query,
		a.ItsID,
		a.MiqaatID,
		a.Name,
		a.City,
		a.Pincode,
		a.AccommodationType,
		a.RoomNumber,
		a.CheckInDate,
		a.CheckOutDate,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update accommodation: %w", err)
	}

	return nil
}

// Delete removes an accommodation
func (r *AccommodationRepository) Delete(id int64) error {
	query := `DELETE FROM accommodations WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}
	return nil
}
