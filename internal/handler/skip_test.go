package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

func TestRecordSkip_Created(t *testing.T) {
	ruleID := uuid.MustParse("b3d3adbe-8b26-4d66-a217-1f0931a4c01f")
	sk := &mockSkipService{
		recordFn: func(_ context.Context, userID string, venueID int64, typ domain.SkipType, reminder string) (domain.SkipRule, error) {
			assert.Equal(t, "user1", userID)
			assert.Equal(t, int64(2), venueID)
			assert.Equal(t, domain.SkipWeek, typ)
			assert.Equal(t, "bringer show this week", reminder)
			return domain.SkipRule{
				ID:        ruleID,
				UserID:    userID,
				VenueID:   venueID,
				Type:      typ,
				Reminder:  reminder,
				CreatedAt: time.Date(2025, 8, 3, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := newTestRouter(nil, sk, nil)

	body := `{"venue_id":2,"skip_type":"week","reminder":"bringer show this week"}`
	rec := doJSON(t, h, http.MethodPost, "/skips", body, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), ruleID.String())
	assert.Contains(t, rec.Body.String(), `"skip_type":"week"`)
}

func TestRecordSkip_MalformedBody(t *testing.T) {
	h := newTestRouter(nil, &mockSkipService{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/skips", `{"venue_id":"two"}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestRecordSkip_ServiceValidationError(t *testing.T) {
	sk := &mockSkipService{
		recordFn: func(context.Context, string, int64, domain.SkipType, string) (domain.SkipRule, error) {
			return domain.SkipRule{}, fmt.Errorf("service.SkipService.Record: %w",
				fmt.Errorf("%w: unknown skip type %q", domain.ErrValidation, "sometimes"))
		},
	}
	h := newTestRouter(nil, sk, nil)

	rec := doJSON(t, h, http.MethodPost, "/skips", `{"venue_id":2,"skip_type":"sometimes"}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"unknown skip type \"sometimes\""}}`, rec.Body.String())
}

func TestListSkips_OK(t *testing.T) {
	sk := &mockSkipService{
		listFn: func(_ context.Context, userID string) ([]domain.SkipRule, error) {
			assert.Equal(t, "comic42", userID)
			return []domain.SkipRule{
				{ID: uuid.New(), UserID: userID, VenueID: 1, Type: domain.SkipForever},
				{ID: uuid.New(), UserID: userID, VenueID: 3, Type: domain.SkipOneTime, Reminder: "host was rude"},
			}, nil
		},
	}
	h := newTestRouter(nil, sk, nil)

	rec := doJSON(t, h, http.MethodGet, "/skips", "", map[string]string{"X-User-ID": "comic42"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skips":[`)
	assert.Contains(t, rec.Body.String(), `"skip_type":"forever"`)
	assert.Contains(t, rec.Body.String(), `"reminder":"host was rude"`)
}

func TestListSkips_Empty(t *testing.T) {
	sk := &mockSkipService{
		listFn: func(context.Context, string) ([]domain.SkipRule, error) {
			return []domain.SkipRule{}, nil
		},
	}
	h := newTestRouter(nil, sk, nil)

	rec := doJSON(t, h, http.MethodGet, "/skips", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"skips":[]}`, rec.Body.String())
}

func TestDeleteSkip_NoContent(t *testing.T) {
	var gotVenueID int64
	sk := &mockSkipService{
		deleteFn: func(_ context.Context, userID string, venueID int64) error {
			assert.Equal(t, "user1", userID)
			gotVenueID = venueID
			return nil
		},
	}
	h := newTestRouter(nil, sk, nil)

	rec := doJSON(t, h, http.MethodDelete, "/skips/3", "", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), gotVenueID)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteSkip_NotFound(t *testing.T) {
	sk := &mockSkipService{
		deleteFn: func(context.Context, string, int64) error {
			return fmt.Errorf("service.SkipService.Delete: %w", domain.ErrNotFound)
		},
	}
	h := newTestRouter(nil, sk, nil)

	rec := doJSON(t, h, http.MethodDelete, "/skips/99", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestDeleteSkip_NonIntegerID(t *testing.T) {
	h := newTestRouter(nil, &mockSkipService{}, nil)

	rec := doJSON(t, h, http.MethodDelete, "/skips/grisly-pear", "", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "venue id must be an integer")
}
