package database

import (
	"fmt"
	"time"

	"github.com/burhani-census/census-api/internal/models"
	"github.com/google/uuid"
)

// OperatorSessionRepository handles operator session database operations
type OperatorSessionRepository struct {
	db DB
}

// NewOperatorSessionRepository creates a new operator session repository
func NewOperatorSessionRepository(db DB) *OperatorSessionRepository {
	return &OperatorSessionRepository{
		db: db,
	}
}

// Create records a new sign-in session for an operator
func (r *OperatorSessionRepository) Create(s *models.OperatorSession) error {
	now := time.Now()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.LastActivityAt = now
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO operator_sessions (
			id, operator_id, ip_address, device_type, os, browser,
			last_activity_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		query,
		s.ID,
		s.OperatorID,
		s.IPAddress,
		s.DeviceType,
		s.OS,
		s.Browser,
		s.LastActivityAt,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operator session: %w", err)
	}

	return nil
}

// ListByOperator returns all sessions for an operator, newest first
func (r *OperatorSessionRepository) ListByOperator(operatorID uuid.UUID) ([]models.OperatorSession, error) {
	query := `
		SELECT id, operator_id, ip_address, device_type, os, browser,
			last_activity_at, created_at, updated_at
		FROM operator_sessions
		WHERE operator_id = $1
		ORDER BY last_activity_at DESC
	`

	sessions := []models.OperatorSession{}
	if err := r.db.Select(&sessions, query, operatorID); err != nil {
		return nil, fmt.Errorf("failed to list operator sessions: %w", err)
	}

	return sessions, nil
}
