package domain

import "fmt"

// TransportMode is a way of getting between venues.
type TransportMode string

const (
	ModeWalk   TransportMode = "walk"
	ModeSubway TransportMode = "subway"
)

// Valid reports whether m is a known transport mode.
func (m TransportMode) Valid() bool {
	return m == ModeWalk || m == ModeSubway
}

// TravelLeg describes how to reach a stop from the previous position.
type TravelLeg struct {
	Mode    TransportMode `json:"mode"`
	Miles   float64       `json:"miles"`
	Minutes int           `json:"minutes"`
}

// String renders the leg in the compact form shown to users,
// e.g. "0.6 mi walk (11 min)".
func (l TravelLeg) String() string {
	return fmt.Sprintf("%.1f mi %s (%d min)", l.Miles, l.Mode, l.Minutes)
}

// ItineraryStop is one scheduled mic in a generated itinerary.
// Stops are ordered by performance time, which the builder guarantees is
// non-decreasing.
type ItineraryStop struct {
	VenueID  int64     `json:"venue_id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	ShowTime string    `json:"show_time"`
	Travel   TravelLeg `json:"travel"`
	Notes    string    `json:"notes,omitempty"`
}
