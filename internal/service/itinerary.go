// Package service contains the business logic for the Mic Crawl API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// planner calls. No SQL and no HTTP lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/geo"
	"github.com/openmicnyc/miccrawl/internal/planner"
	"github.com/openmicnyc/miccrawl/internal/repo"
)

// GenerateInput is everything one itinerary-generation request carries.
type GenerateInput struct {
	UserID string
	// Date is the target calendar date at midnight UTC.
	Date time.Time
	// StartTime is the desired start of the evening, "HH:MM" 24-hour clock,
	// interpreted on Date.
	StartTime string
	// MaxSpots bounds the itinerary length. Zero is valid and yields an
	// empty itinerary.
	MaxSpots int
	// BufferMinutes is the minimum lead time between arrival-readiness and a
	// venue's show time.
	BufferMinutes int
	// Modes is the set of acceptable transport modes. Must be non-empty.
	Modes []domain.TransportMode
}

// ItineraryService generates same-day open-mic itineraries.
// Each Generate call reads the catalog and the user's skip rules once and
// runs the planner over those snapshots; concurrent calls share nothing.
type ItineraryService struct {
	venues repo.VenueRepo
	skips  repo.SkipRepo
	// origin is the fixed reference starting point for every run
	// (by default Union Square; set from configuration).
	origin geo.Point
}

// NewItineraryService constructs an ItineraryService backed by the provided
// repos, with origin as the starting point for all runs.
func NewItineraryService(venues repo.VenueRepo, skips repo.SkipRepo, origin geo.Point) *ItineraryService {
	return &ItineraryService{venues: venues, skips: skips, origin: origin}
}

// Generate validates the request, loads and filters the candidate catalog,
// and runs the greedy builder. An empty itinerary is a valid result.
// Returns domain.ErrValidation before touching storage when input is malformed.
func (s *ItineraryService) Generate(ctx context.Context, in GenerateInput) ([]domain.ItineraryStop, error) {
	start, err := validateGenerate(in)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	catalog, err := s.venues.ListForDate(ctx, in.Date)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}
	rules, err := s.skips.ListByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	stops := planner.Build(planner.Request{
		Date:          in.Date,
		Start:         start,
		Origin:        s.origin,
		MaxStops:      in.MaxSpots,
		BufferMinutes: in.BufferMinutes,
		Modes:         planner.NewModeSet(in.Modes),
	}, planner.Eligible(catalog, rules, in.Date))

	return stops, nil
}

// validateGenerate checks the request and resolves the absolute start instant.
// All failures wrap domain.ErrValidation so handlers can map them to 422.
func validateGenerate(in GenerateInput) (time.Time, error) {
	if in.UserID == "" {
		return time.Time{}, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if in.MaxSpots < 0 {
		return time.Time{}, fmt.Errorf("%w: max_spots must be non-negative", domain.ErrValidation)
	}
	if in.BufferMinutes < 0 {
		return time.Time{}, fmt.Errorf("%w: buffer_minutes must be non-negative", domain.ErrValidation)
	}
	if len(in.Modes) == 0 {
		return time.Time{}, fmt.Errorf("%w: at least one transport mode is required", domain.ErrValidation)
	}
	for _, m := range in.Modes {
		if !m.Valid() {
			return time.Time{}, fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, m)
		}
	}

	hhmm, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_time must be HH:MM", domain.ErrValidation)
	}
	start := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(),
		hhmm.Hour(), hhmm.Minute(), 0, 0, in.Date.Location())
	return start, nil
}
