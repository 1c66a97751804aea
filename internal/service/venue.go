package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/repo"
)

// VenueService implements business logic for venue catalog management.
type VenueService struct {
	venues repo.VenueRepo
}

// NewVenueService constructs a VenueService backed by the provided VenueRepo.
func NewVenueService(r repo.VenueRepo) *VenueService {
	return &VenueService{venues: r}
}

// Create validates and persists a new venue.
// Returns domain.ErrValidation if input violates business rules.
func (s *VenueService) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	if err := validateVenue(venue); err != nil {
		return domain.Venue{}, fmt.Errorf("service.VenueService.Create: %w", err)
	}
	result, err := s.venues.Create(ctx, venue)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("service.VenueService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single venue by catalog id.
func (s *VenueService) GetByID(ctx context.Context, id int64) (domain.Venue, error) {
	result, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("service.VenueService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of venues plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VenueService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error) {
	venues, total, err := s.venues.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VenueService.ListPaged: %w", err)
	}
	if venues == nil {
		venues = []domain.Venue{}
	}
	return venues, total, nil
}

// validateVenue checks the fields a venue must carry to ever be schedulable.
func validateVenue(v domain.Venue) error {
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if v.Lat < -90 || v.Lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if v.Lon < -180 || v.Lon > 180 {
		return fmt.Errorf("%w: lon must be between -180 and 180", domain.ErrValidation)
	}
	if _, err := time.Parse("15:04", v.ShowTime); err != nil {
		return fmt.Errorf("%w: show_time must be HH:MM", domain.ErrValidation)
	}
	return nil
}
