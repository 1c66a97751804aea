package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

func TestCreateVenue_Created(t *testing.T) {
	v := &mockVenueService{
		createFn: func(_ context.Context, venue domain.Venue) (domain.Venue, error) {
			assert.Equal(t, "QED Astoria", venue.Name)
			assert.InDelta(t, 40.7663, venue.Lat, 1e-9)
			assert.InDelta(t, -73.9188, venue.Lon, 1e-9)
			assert.Equal(t, "19:30", venue.ShowTime)
			venue.ID = 5
			return venue, nil
		},
	}
	h := newTestRouter(nil, nil, v)

	body := `{"name":"QED Astoria","address":"27-16 23rd Ave","lat":40.7663,"lon":-73.9188,"show_time":"19:30"}`
	rec := doJSON(t, h, http.MethodPost, "/venues", body, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
	assert.Contains(t, rec.Body.String(), `"name":"QED Astoria"`)
}

func TestCreateVenue_ValidationError(t *testing.T) {
	v := &mockVenueService{
		createFn: func(context.Context, domain.Venue) (domain.Venue, error) {
			return domain.Venue{}, fmt.Errorf("service.VenueService.Create: %w",
				fmt.Errorf("%w: name is required", domain.ErrValidation))
		},
	}
	h := newTestRouter(nil, nil, v)

	body := `{"name":"","lat":40.7,"lon":-73.9,"show_time":"19:30"}`
	rec := doJSON(t, h, http.MethodPost, "/venues", body, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"name is required"}}`, rec.Body.String())
}

func TestCreateVenue_MalformedBody(t *testing.T) {
	h := newTestRouter(nil, nil, &mockVenueService{})

	rec := doJSON(t, h, http.MethodPost, "/venues", `{"lat":"forty"}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestGetVenue_OK(t *testing.T) {
	v := &mockVenueService{
		getByIDFn: func(_ context.Context, id int64) (domain.Venue, error) {
			assert.Equal(t, int64(2), id)
			return domain.Venue{ID: 2, Name: "Grisly Pear Comedy Club", Lat: 40.7648, Lon: -73.9838, ShowTime: "17:00"}, nil
		},
	}
	h := newTestRouter(nil, nil, v)

	rec := doJSON(t, h, http.MethodGet, "/venues/2", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Grisly Pear Comedy Club"`)
}

func TestGetVenue_NotFound(t *testing.T) {
	v := &mockVenueService{
		getByIDFn: func(context.Context, int64) (domain.Venue, error) {
			return domain.Venue{}, fmt.Errorf("service.VenueService.GetByID: %w", domain.ErrNotFound)
		},
	}
	h := newTestRouter(nil, nil, v)

	rec := doJSON(t, h, http.MethodGet, "/venues/99", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "venue not found")
}

func TestGetVenue_NonIntegerID(t *testing.T) {
	h := newTestRouter(nil, nil, &mockVenueService{})

	rec := doJSON(t, h, http.MethodGet, "/venues/west-side", "", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "venue id must be an integer")
}

func TestListVenues_DefaultPagination(t *testing.T) {
	var got domain.PaginationParams
	v := &mockVenueService{
		listPagedFn: func(_ context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error) {
			got = p
			return []domain.Venue{
				{ID: 1, Name: "St. Marks Comedy Club", ShowTime: "17:00"},
				{ID: 2, Name: "Grisly Pear Comedy Club", ShowTime: "17:00"},
			}, 2, nil
		},
	}
	h := newTestRouter(nil, nil, v)

	rec := doJSON(t, h, http.MethodGet, "/venues", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, got)
	assert.Contains(t, rec.Body.String(), `"pagination":{"page":1,"limit":20,"total":2}`)
}

func TestListVenues_ExplicitPagination(t *testing.T) {
	var got domain.PaginationParams
	v := &mockVenueService{
		listPagedFn: func(_ context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error) {
			got = p
			return []domain.Venue{}, 42, nil
		},
	}
	h := newTestRouter(nil, nil, v)

	rec := doJSON(t, h, http.MethodGet, "/venues?page=3&limit=10", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 10}, got)
	assert.Contains(t, rec.Body.String(), `"total":42`)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
