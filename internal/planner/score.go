package planner

import (
	"math"
	"time"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/geo"
)

// Transport model constants. Travel minutes truncate toward zero on the
// distance term; the subway wait is added after truncation.
const (
	walkMaxMiles         = 1.0
	walkMilesPerMinute   = 0.05 // 3 mph
	subwayMaxMiles       = 3.0
	subwayMilesPerMinute = 0.5
	subwayWaitMinutes    = 5
)

// ModeSet is the set of transport modes a request allows.
type ModeSet map[domain.TransportMode]bool

// NewModeSet builds a ModeSet from a mode list. Unknown modes are the
// caller's problem — validate before constructing.
func NewModeSet(modes []domain.TransportMode) ModeSet {
	s := make(ModeSet, len(modes))
	for _, m := range modes {
		s[m] = true
	}
	return s
}

// candidate is a feasible venue together with its chosen travel leg, its
// absolute show instant, and its selection cost.
type candidate struct {
	venue domain.Venue
	leg   domain.TravelLeg
	show  time.Time
	cost  float64
}

// best scans remaining in slice order and returns the lowest-cost feasible
// candidate. The comparison is strict, so cost ties keep the
// earlier-encountered venue; callers must pass remaining in a deterministic
// order for reproducible itineraries.
//
// A venue is feasible when its show time leaves room for the buffer plus
// travel by some allowed mode within that mode's distance bound. Venues that
// fail any check — including an unparseable show time — are skipped silently.
func (b *builder) best(remaining []domain.Venue) (candidate, bool) {
	buffer := time.Duration(b.bufferMinutes) * time.Minute

	var (
		found    bool
		pick     candidate
		bestCost = math.Inf(1)
	)
	for _, v := range remaining {
		show, ok := showInstant(b.date, v.ShowTime)
		if !ok {
			continue
		}
		// Not enough lead time even with zero travel.
		if show.Before(b.clock.Add(buffer)) {
			continue
		}

		dist := geo.Distance(b.pos, geo.Point{Lat: v.Lat, Lon: v.Lon})
		leg, ok := b.legFor(dist)
		if !ok {
			continue
		}

		travel := time.Duration(leg.Minutes) * time.Minute
		if show.Before(b.clock.Add(travel + buffer)) {
			continue
		}

		// Cost is travel plus idle time waiting for the show to start.
		arrival := b.clock.Add(travel)
		cost := float64(leg.Minutes) + show.Sub(arrival).Minutes()
		if cost < bestCost {
			bestCost = cost
			pick = candidate{venue: v, leg: leg, show: show, cost: cost}
			found = true
		}
	}
	return pick, found
}

// legFor picks the travel leg for a hop of dist miles. Walk takes precedence
// over subway when the distance allows both and walking is permitted.
func (b *builder) legFor(dist float64) (domain.TravelLeg, bool) {
	switch {
	case b.modes[domain.ModeWalk] && dist <= walkMaxMiles:
		return domain.TravelLeg{
			Mode:    domain.ModeWalk,
			Miles:   dist,
			Minutes: int(dist / walkMilesPerMinute),
		}, true
	case b.modes[domain.ModeSubway] && dist <= subwayMaxMiles:
		return domain.TravelLeg{
			Mode:    domain.ModeSubway,
			Miles:   dist,
			Minutes: int(dist/subwayMilesPerMinute) + subwayWaitMinutes,
		}, true
	}
	return domain.TravelLeg{}, false
}

// showInstant resolves a venue's "HH:MM" show time against the target date.
// Reports false for show times that do not parse.
func showInstant(date time.Time, hhmm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), true
}
