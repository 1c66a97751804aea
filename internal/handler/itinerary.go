package handler

import (
	"encoding/json"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/service"
)

// generateItineraryRequest is the POST /itineraries body.
// Date uses the oapi-codegen date type so "YYYY-MM-DD" parsing and rejection
// happen during decode.
type generateItineraryRequest struct {
	Date          openapi_types.Date     `json:"date"`
	StartTime     string                 `json:"start_time"`
	MaxSpots      int                    `json:"max_spots"`
	BufferMinutes int                    `json:"buffer_minutes"`
	Transport     []domain.TransportMode `json:"transport"`
}

type generateItineraryResponse struct {
	Itinerary []itineraryStopResponse `json:"itinerary"`
}

type itineraryStopResponse struct {
	VenueID  int64            `json:"venue_id"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	ShowTime string           `json:"show_time"`
	Travel   domain.TravelLeg `json:"travel"`
	// TravelSummary is the compact human-readable rendering of Travel,
	// e.g. "0.6 mi walk (11 min)".
	TravelSummary string `json:"travel_summary"`
	Notes         string `json:"notes,omitempty"`
}

// GenerateItinerary handles POST /itineraries.
// An empty itinerary is a normal 200 response, not an error.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var req generateItineraryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	stops, err := s.itineraries.Generate(r.Context(), service.GenerateInput{
		UserID:        userID(r),
		Date:          req.Date.Time,
		StartTime:     req.StartTime,
		MaxSpots:      req.MaxSpots,
		BufferMinutes: req.BufferMinutes,
		Modes:         req.Transport,
	})
	if err != nil {
		respondServiceError(w, err, "itinerary not found")
		return
	}

	resp := generateItineraryResponse{Itinerary: make([]itineraryStopResponse, len(stops))}
	for i, stop := range stops {
		resp.Itinerary[i] = itineraryStopResponse{
			VenueID:       stop.VenueID,
			Name:          stop.Name,
			Address:       stop.Address,
			ShowTime:      stop.ShowTime,
			Travel:        stop.Travel,
			TravelSummary: stop.Travel.String(),
			Notes:         stop.Notes,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
