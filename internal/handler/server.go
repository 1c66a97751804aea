// Package handler implements the HTTP handlers for the Mic Crawl API.
// Handlers are methods on Server, split into resource-specific files
// (itinerary.go, skip.go, venue.go) but sharing the same struct so they can
// access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openmicnyc/miccrawl/internal/domain"
	"github.com/openmicnyc/miccrawl/internal/service"
)

// defaultUserID identifies requests that carry no X-User-ID header.
// The service is effectively single-user today; the header exists so a
// future auth layer can supply real identities without handler changes.
const defaultUserID = "user1"

// ItineraryGenerator defines the business operation the itinerary handler
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type ItineraryGenerator interface {
	Generate(ctx context.Context, in service.GenerateInput) ([]domain.ItineraryStop, error)
}

// SkipServicer defines the business operations the skip handler depends on.
type SkipServicer interface {
	Record(ctx context.Context, userID string, venueID int64, typ domain.SkipType, reminder string) (domain.SkipRule, error)
	List(ctx context.Context, userID string) ([]domain.SkipRule, error)
	Delete(ctx context.Context, userID string, venueID int64) error
}

// VenueServicer defines the business operations the venue handler depends on.
type VenueServicer interface {
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	GetByID(ctx context.Context, id int64) (domain.Venue, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error)
}

// Server implements all API endpoints.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	itineraries ItineraryGenerator
	skips       SkipServicer
	venues      VenueServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(itineraries ItineraryGenerator, skips SkipServicer, venues VenueServicer) *Server {
	return &Server{itineraries: itineraries, skips: skips, venues: venues}
}

// Routes returns the chi router for all API endpoints.
// Mount it at "/" in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/itineraries", s.GenerateItinerary)

	r.Route("/skips", func(r chi.Router) {
		r.Post("/", s.RecordSkip)
		r.Get("/", s.ListSkips)
		r.Delete("/{venueID}", s.DeleteSkip)
	})

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", s.ListVenues)
		r.Post("/", s.CreateVenue)
		r.Get("/{id}", s.GetVenue)
	})

	return r
}

// userID resolves the requesting user from the X-User-ID header,
// falling back to the single-user default.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return defaultUserID
}
