// Package planner implements the itinerary construction core: the per-user
// exclusion filter, the feasibility and scoring engine, and the greedy
// insertion builder. Everything in this package is pure computation — no I/O,
// no clocks, no shared state between runs.
package planner

import (
	"time"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

// Eligible returns the venues from catalog that no rule excludes on
// targetDate. The rules are assumed to belong to a single user (the repo
// query is already user-scoped). The input slice is never modified.
//
// Matching semantics:
//   - one_time and forever rules exclude unconditionally.
//   - week rules exclude whenever the rule's recording date falls on or
//     before targetDate + 7 days. The window end only moves forward, so a
//     week rule keeps excluding on every later date too. Deliberately not
//     "same calendar week" — see DESIGN.md.
//
// Rules referencing venues absent from the catalog match nothing.
func Eligible(catalog []domain.Venue, rules []domain.SkipRule, targetDate time.Time) []domain.Venue {
	if len(rules) == 0 {
		return append([]domain.Venue(nil), catalog...)
	}

	weekEnd := targetDate.AddDate(0, 0, 7)
	excluded := make(map[int64]bool, len(rules))
	for _, r := range rules {
		switch r.Type {
		case domain.SkipOneTime, domain.SkipForever:
			excluded[r.VenueID] = true
		case domain.SkipWeek:
			if !dateOf(r.CreatedAt).After(weekEnd) {
				excluded[r.VenueID] = true
			}
		}
	}

	out := make([]domain.Venue, 0, len(catalog))
	for _, v := range catalog {
		if !excluded[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// dateOf truncates t to midnight UTC so week-rule comparisons work on
// calendar dates, not instants.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
