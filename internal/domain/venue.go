// Package domain contains the core data types for the Mic Crawl application.
// This package has no dependencies on other internal packages and is imported
// by every other layer (planner, repo, service, handler).
package domain

import "time"

// Venue is an open mic location with a fixed, date-independent show time.
// Venues are immutable reference data for the duration of one itinerary run.
type Venue struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	// ShowTime is the time of day the mic starts, "HH:MM" 24-hour clock.
	// A venue with an unparseable show time is never scheduled.
	ShowTime  string    `json:"show_time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
