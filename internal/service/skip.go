package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/repo"
)

// SkipService implements business logic for skip-rule operations.
type SkipService struct {
	skips repo.SkipRepo
}

// NewSkipService constructs a SkipService backed by the provided SkipRepo.
func NewSkipService(r repo.SkipRepo) *SkipService {
	return &SkipService{skips: r}
}

// Record validates and upserts a skip rule for the (user, venue) pair,
// replacing any prior rule for that pair. The venue id is not checked against
// the catalog: a rule for an unknown venue is accepted and simply never
// matches anything.
func (s *SkipService) Record(ctx context.Context, userID string, venueID int64, typ domain.SkipType, reminder string) (domain.SkipRule, error) {
	if userID == "" {
		return domain.SkipRule{}, fmt.Errorf("service.SkipService.Record: %w: user id is required", domain.ErrValidation)
	}
	if venueID <= 0 {
		return domain.SkipRule{}, fmt.Errorf("service.SkipService.Record: %w: venue_id must be positive", domain.ErrValidation)
	}
	if !typ.Valid() {
		return domain.SkipRule{}, fmt.Errorf("service.SkipService.Record: %w: unknown skip type %q", domain.ErrValidation, typ)
	}

	rule, err := s.skips.Upsert(ctx, domain.SkipRule{
		ID:       uuid.New(),
		UserID:   userID,
		VenueID:  venueID,
		Type:     typ,
		Reminder: reminder,
	})
	if err != nil {
		return domain.SkipRule{}, fmt.Errorf("service.SkipService.Record: %w", err)
	}
	return rule, nil
}

// List returns the user's active skip rules.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SkipService) List(ctx context.Context, userID string) ([]domain.SkipRule, error) {
	rules, err := s.skips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.SkipService.List: %w", err)
	}
	if rules == nil {
		rules = []domain.SkipRule{}
	}
	return rules, nil
}

// Delete removes the rule for the (user, venue) pair.
// Returns domain.ErrNotFound if no such rule exists.
func (s *SkipService) Delete(ctx context.Context, userID string, venueID int64) error {
	if err := s.skips.Delete(ctx, userID, venueID); err != nil {
		return fmt.Errorf("service.SkipService.Delete: %w", err)
	}
	return nil
}
