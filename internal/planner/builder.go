package planner

import (
	"time"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/geo"
)

// setDuration is the assumed length of one open-mic set. After each accepted
// stop the clock advances to the show time plus this duration before the next
// leg is considered.
const setDuration = 5 * time.Minute

// Request carries everything one Build run needs. Runs share nothing; two
// Builds with identical inputs produce identical itineraries.
type Request struct {
	// Date is the target calendar date at midnight, in the location all show
	// instants should be resolved in.
	Date time.Time
	// Start is the absolute instant the user becomes available.
	Start time.Time
	// Origin is where the user starts from.
	Origin geo.Point
	// MaxStops bounds the itinerary length.
	MaxStops int
	// BufferMinutes is the minimum lead time required between
	// arrival-readiness and a venue's show time.
	BufferMinutes int
	// Modes is the set of transport modes the user accepts.
	Modes ModeSet
}

// builder is the mutable state of one run: the simulated clock and position.
type builder struct {
	date          time.Time
	bufferMinutes int
	modes         ModeSet
	clock         time.Time
	pos           geo.Point
}

// Build constructs an itinerary from catalog by greedy insertion: it
// repeatedly commits to the lowest-cost feasible venue, advances the
// simulated clock and position past it, and drops it from the working set.
// No backtracking or lookahead — the result is locally optimal per step, not
// globally optimal, and that is the intended behavior.
//
// Each selected show time must exceed the clock, and the clock only advances
// to selected show times, so the output is non-decreasing in show time by
// construction.
//
// An empty itinerary is a normal outcome, not an error. Build never fails.
func Build(req Request, catalog []domain.Venue) []domain.ItineraryStop {
	b := &builder{
		date:          req.Date,
		bufferMinutes: req.BufferMinutes,
		modes:         req.Modes,
		clock:         req.Start,
		pos:           req.Origin,
	}

	remaining := append([]domain.Venue(nil), catalog...)
	stops := make([]domain.ItineraryStop, 0)

	for len(stops) < req.MaxStops && len(remaining) > 0 {
		// Select over an immutable snapshot, then rebuild the working set
		// without the winner.
		c, ok := b.best(remaining)
		if !ok {
			break
		}

		stops = append(stops, domain.ItineraryStop{
			VenueID:  c.venue.ID,
			Name:     c.venue.Name,
			Address:  c.venue.Address,
			ShowTime: c.venue.ShowTime,
			Travel:   c.leg,
			Notes:    c.venue.Notes,
		})

		b.clock = c.show.Add(setDuration)
		b.pos = geo.Point{Lat: c.venue.Lat, Lon: c.venue.Lon}
		remaining = without(remaining, c.venue.ID)
	}

	return stops
}

// without returns a copy of venues with the venue identified by id removed.
func without(venues []domain.Venue, id int64) []domain.Venue {
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}
