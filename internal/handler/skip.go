package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

// recordSkipRequest is the POST /skips body.
type recordSkipRequest struct {
	VenueID  int64           `json:"venue_id"`
	SkipType domain.SkipType `json:"skip_type"`
	Reminder string          `json:"reminder,omitempty"`
}

// RecordSkip handles POST /skips. It upserts the rule for the caller and the
// given venue: at most one rule per (user, venue), last write wins.
func (s *Server) RecordSkip(w http.ResponseWriter, r *http.Request) {
	var req recordSkipRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	rule, err := s.skips.Record(r.Context(), userID(r), req.VenueID, req.SkipType, req.Reminder)
	if err != nil {
		respondServiceError(w, err, "skip rule not found")
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// ListSkips handles GET /skips, returning the caller's active rules.
func (s *Server) ListSkips(w http.ResponseWriter, r *http.Request) {
	rules, err := s.skips.List(r.Context(), userID(r))
	if err != nil {
		respondServiceError(w, err, "skip rules not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.SkipRule{"skips": rules})
}

// DeleteSkip handles DELETE /skips/{venueID}, removing the caller's rule for
// that venue.
func (s *Server) DeleteSkip(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "venue id must be an integer")
		return
	}

	if err := s.skips.Delete(r.Context(), userID(r), venueID); err != nil {
		respondServiceError(w, err, "skip rule not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
