package domain

import (
	"time"

	"github.com/google/uuid"
)

// SkipType controls the temporal scope of a skip rule.
type SkipType string

const (
	// SkipOneTime excludes the venue unconditionally. The name is historical:
	// the rule is not scoped to a single date, and behaves like SkipForever
	// until replaced. Kept as a distinct type so reminders can distinguish
	// "not tonight" from "never again".
	SkipOneTime SkipType = "one_time"

	// SkipWeek excludes the venue for any target date whose 7-day window end
	// falls on or after the rule's recording date.
	SkipWeek SkipType = "week"

	// SkipForever excludes the venue unconditionally.
	SkipForever SkipType = "forever"
)

// Valid reports whether t is one of the known skip types.
func (t SkipType) Valid() bool {
	switch t {
	case SkipOneTime, SkipWeek, SkipForever:
		return true
	}
	return false
}

// SkipRule is a per-user exclusion directive against a specific venue.
// At most one rule is active per (user, venue) pair; recording a new rule for
// the same pair replaces the old one. Rules may reference venues that do not
// exist in the catalog — such rules simply never match anything.
type SkipRule struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	VenueID int64     `json:"venue_id"`
	Type    SkipType  `json:"skip_type"`
	// Reminder is an optional free-text note shown when the rule is listed.
	Reminder string `json:"reminder,omitempty"`
	// CreatedAt is also the reference date for SkipWeek matching.
	CreatedAt time.Time `json:"created_at"`
}
