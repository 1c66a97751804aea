package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

// createVenueRequest is the POST /venues body.
type createVenueRequest struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	ShowTime string  `json:"show_time"`
	Notes    string  `json:"notes,omitempty"`
}

// listVenuesResponse is the paged GET /venues payload.
type listVenuesResponse struct {
	Data       []domain.Venue `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// CreateVenue handles POST /venues.
func (s *Server) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req createVenueRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return
	}

	venue, err := s.venues.Create(r.Context(), domain.Venue{
		Name:     req.Name,
		Address:  req.Address,
		Lat:      req.Lat,
		Lon:      req.Lon,
		ShowTime: req.ShowTime,
		Notes:    req.Notes,
	})
	if err != nil {
		respondServiceError(w, err, "venue not found")
		return
	}

	writeJSON(w, http.StatusCreated, venue)
}

// GetVenue handles GET /venues/{id}.
func (s *Server) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "venue id must be an integer")
		return
	}

	venue, err := s.venues.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "venue not found")
		return
	}

	writeJSON(w, http.StatusOK, venue)
}

// ListVenues handles GET /venues.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListVenues(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	venues, total, err := s.venues.ListPaged(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "venues not found")
		return
	}

	writeJSON(w, http.StatusOK, listVenuesResponse{
		Data: venues,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// queryInt parses an optional integer query parameter, returning nil when the
// parameter is absent or not an integer.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
