package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
)

const mumineenColumns = `its_id, eits_id, hof_its_id, full_name, gender, age, mobile, country, created_at, updated_at`

// MumineenRepository handles member database operations
type MumineenRepository struct {
	db DB
}

// NewMumineenRepository creates a new mumineen repository
func NewMumineenRepository(db DB) *MumineenRepository {
	return &MumineenRepository{
		db: db,
	}
}

// Create inserts a new member record
func (r *MumineenRepository) Create(m *models.Mumineen) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO mumineen (
			its_id, eits_id, hof_its_id, full_name, gender,
			age, mobile, country, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		m.ItsID,
		m.EitsID,
		m.HofItsID,
		m.FullName,
		m.Gender,
		m.Age,
		m.Mobile,
		m.Country,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create mumineen: %w", err)
	}

	return nil
}

// GetByItsID retrieves a member by ITS ID. Returns sql.ErrNoRows when absent.
func (r *MumineenRepository) GetByItsID(itsID string) (*models.Mumineen, error) {
	query := `SELECT ` + mumineenColumns + ` FROM mumineen WHERE its_id = $1`

	m := &models.Mumineen{}
	if err := r.db.Get(m, query, itsID); err != nil {
		return nil, err
	}

	return m, nil
}

// Exists reports whether a member with the given ITS ID exists
func (r *MumineenRepository) Exists(itsID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM mumineen WHERE its_id = $1)`
	if err := r.db.Get(&exists, query, itsID); err != nil {
		return false, fmt.Errorf("failed to check mumineen existence: %w", err)
	}
	return exists, nil
}

// Update replaces the stored record identified by itsID with m. The record's
// its_id may itself change as part of the update.
func (r *MumineenRepository) Update(itsID string, m *models.Mumineen) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE mumineen SET
			its_id = $1, eits_id = $2, hof_its_id = $3, full_name = $4,
			gender = $5, age = $6, mobile = $7, country = $8, updated_at = $9
		WHERE its_id = $10
	`

	_, err := r.db.Exec(
		query,
		m.ItsID,
		m.EitsID,
		m.HofItsID,
		m.FullName,
		m.Gender,
		m.Age,
		m.Mobile,
		m.Country,
		m.UpdatedAt,
		itsID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mumineen: %w", err)
	}

	return nil
}

// Delete removes a member. Dependents' hof_its_id is nulled by the
// schema's ON DELETE SET NULL; dependents themselves are never deleted.
func (r *MumineenRepository) Delete(itsID string) error {
	query := `DELETE FROM mumineen WHERE its_id = $1`
	if _, err := r.db.Exec(query, itsID); err != nil {
		return fmt.Errorf("failed to delete mumineen: %w", err)
	}
	return nil
}

// List returns one page of members in insertion order together with the
// total row count. A non-empty search term narrows the set with a
// case-insensitive substring match over its_id, full_name and eits_id.
func (r *MumineenRepository) List(page, perPage int, search string) ([]models.Mumineen, int, error) {
	where := ""
	args := []interface{}{}
	if search != "" {
		where = ` WHERE its_id ILIKE '%' || $1 || '%' OR full_name ILIKE '%' || $1 || '%' OR eits_id ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM mumineen` + where
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count mumineen: %w", err)
	}

	offset := (page - 1) * perPage
	listQuery := fmt.Sprintf(
		`SELECT `+mumineenColumns+` FROM mumineen`+where+
			` ORDER BY created_at, its_id LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2,
	)
	args = append(args, perPage, offset)

	members := []models.Mumineen{}
	if err := r.db.Select(&members, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list mumineen: %w", err)
	}

	return members, total, nil
}

// Search returns all members matching the term as a case-insensitive
// substring of full_name, its_id or eits_id.
func (r *MumineenRepository) Search(term string) ([]models.Mumineen, error) {
	query := `
		SELECT ` + mumineenColumns + ` FROM mumineen
		WHERE full_name ILIKE '%' || $1 || '%'
			OR its_id ILIKE '%' || $1 || '%'
			OR eits_id ILIKE '%' || $1 || '%'
		ORDER BY created_at, its_id
	`

	members := []models.Mumineen{}
	if err := r.db.Select(&members, query, term); err != nil {
		return nil, fmt.Errorf("failed to search mumineen: %w", err)
	}

	return members, nil
}

// ListHofs returns all members who head their own family: hof_its_id is
// null or points back at the member.
func (r *MumineenRepository) ListHofs() ([]models.Mumineen, error) {
	query := `
		SELECT ` + mumineenColumns + ` FROM mumineen
		WHERE hof_its_id IS NULL OR hof_its_id = its_id
		ORDER BY created_at, its_id
	`

	members := []models.Mumineen{}
	if err := r.db.Select(&members, query); err != nil {
		return nil, fmt.Errorf("failed to list heads of family: %w", err)
	}

	return members, nil
}

// ListByHof returns all members whose hof_its_id equals hofItsID, in
// insertion order. The head's own record is not included.
func (r *MumineenRepository) ListByHof(hofItsID string) ([]models.Mumineen, error) {
	query := `
		SELECT ` + mumineenColumns + ` FROM mumineen
		WHERE hof_its_id = $1
		ORDER BY created_at, its_id
	`

	members := []models.Mumineen{}
	if err := r.db.Select(&members, query, hofItsID); err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}

	return members, nil
}

// FamilyItsIDs returns the ITS IDs of the head and every dependent of
// the family rooted at hofItsID.
func (r *MumineenRepository) FamilyItsIDs(hofItsID string) ([]string, error) {
	query := `SELECT its_id FROM mumineen WHERE hof_its_id = $1 OR its_id = $1`

	ids := []string{}
	if err := r.db.Select(&ids, query, hofItsID); err != nil {
		return nil, fmt.Errorf("failed to collect family its_ids: %w", err)
	}

	return ids, nil
}
