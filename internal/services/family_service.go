package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/burhani-census/census-api/internal/database"
	"github.com/burhani-census/census-api/internal/models"
)

var (
	// ErrMumineenNotFound indicates the looked-up member does not exist
	ErrMumineenNotFound = errors.New("mumineen not found")

	// ErrHofNotFound indicates the head-of-family record does not exist.
	// When hit while resolving an existing member's hof_its_id it signals
	// an orphaned reference in the data.
	ErrHofNotFound = errors.New("head of family not found")
)

// FamilyService derives head-of-family and family-group membership from
// the member registry. It owns no storage of its own.
//
// The family relation is a single-level tree: a head is never a dependent
// of another head, so resolution is two lookups, never a traversal.
type FamilyService struct {
	mumineenRepo *database.MumineenRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(mumineenRepo *database.MumineenRepository) *FamilyService {
	return &FamilyService{
		mumineenRepo: mumineenRepo,
	}
}

// ResolveHeadOfFamily resolves the head of family for a member. A member
// with a null hof_its_id is their own head.
func (s *FamilyService) ResolveHeadOfFamily(itsID string) (*models.HeadOfFamily, error) {
	member, err := s.mumineenRepo.GetByItsID(itsID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMumineenNotFound
		}
		return nil, fmt.Errorf("failed to look up mumineen: %w", err)
	}

	hofID := member.HofID()
	hof, err := s.mumineenRepo.GetByItsID(hofID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHofNotFound
		}
		return nil, fmt.Errorf("failed to look up head of family: %w", err)
	}

	return &models.HeadOfFamily{
		HofItsID:   hofID,
		HofDetails: hof,
		IsHof:      member.IsHof(),
	}, nil
}

// ListHeadsOfFamily returns every member heading their own family.
func (s *FamilyService) ListHeadsOfFamily() ([]models.Mumineen, error) {
	return s.mumineenRepo.ListHofs()
}

// ListFamilyMembers returns the family group rooted at hofItsID:
// dependents in storage order with the head's own record appended last
// when not already present. The head appears exactly once.
func (s *FamilyService) ListFamilyMembers(hofItsID string) ([]models.Mumineen, error) {
	hof, err := s.mumineenRepo.GetByItsID(hofItsID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHofNotFound
		}
		return nil, fmt.Errorf("failed to look up head of family: %w", err)
	}

	members, err := s.mumineenRepo.ListByHof(hofItsID)
	if err != nil {
		return nil, err
	}

	for _, m := range members {
		if m.ItsID == hofItsID {
			return members, nil
		}
	}
	return append(members, *hof), nil
}

// FamilyItsIDs returns the ITS IDs of the whole family group rooted at
// hofItsID, erroring with ErrHofNotFound when no such member exists.
func (s *FamilyService) FamilyItsIDs(hofItsID string) ([]string, error) {
	exists, err := s.mumineenRepo.Exists(hofItsID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrHofNotFound
	}

	return s.mumineenRepo.FamilyItsIDs(hofItsID)
}
