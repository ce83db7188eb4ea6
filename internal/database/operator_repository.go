package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
	"github.com/google/uuid"
)

// OperatorRepository handles operator account database operations
type OperatorRepository struct {
	db DB
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db DB) *OperatorRepository {
	return &OperatorRepository{
		db: db,
	}
}

// Create inserts a new operator account
func (r *OperatorRepository) Create(o *models.Operator) error {
	now := time.Now()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	query := `
		INSERT INTO operators (id, username, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		query,
		o.ID,
		o.Username,
		o.PasswordHash,
		o.FullName,
		o.Role,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	return nil
}

// GetByUsername retrieves an operator by username. Returns sql.ErrNoRows
// when absent.
func (r *OperatorRepository) GetByUsername(username string) (*models.Operator, error) {
	query := `
		SELECT id, username, password_hash, full_name, role, created_at, updated_at
		FROM operators WHERE username = $1
	`

	o := &models.Operator{}
	if err := r.db.Get(o, query, username); err != nil {
		return nil, err
	}

	return o, nil
}

// GetByID retrieves an operator by id. Returns sql.ErrNoRows when absent.
func (r *OperatorRepository) GetByID(id uuid.UUID) (*models.Operator, error) {
	query := `
		SELECT id, username, password_hash, full_name, role, created_at, updated_at
		FROM operators WHERE id = $1
	`

	o := &models.Operator{}
	if err := r.db.Get(o, query, id); err != nil {
		return nil, err
	}

	return o, nil
}
