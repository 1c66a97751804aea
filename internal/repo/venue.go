// Package repo contains all database access logic for the Mic Crawl API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VenueRepo defines the persistence operations for the venue catalog.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the planner path to be unit-tested with a mock.
type VenueRepo interface {
	// Create inserts a new venue and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)

	// GetByID retrieves a single venue by its catalog id.
	// Returns domain.ErrNotFound if no venue with that id exists.
	GetByID(ctx context.Context, id int64) (domain.Venue, error)

	// List returns one page of venues ordered by id, plus the total count.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error)

	// ListForDate returns the candidate venues for an itinerary on the given
	// date, ordered by id so planner iteration order is deterministic.
	// The stored catalog is date-independent; the parameter exists so a
	// date-aware catalog can replace this implementation behind the same
	// interface.
	ListForDate(ctx context.Context, date time.Time) ([]domain.Venue, error)
}

// pgVenueRepo is the Postgres implementation of VenueRepo.
type pgVenueRepo struct {
	db db
}

// NewVenueRepo constructs a VenueRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVenueRepo(db db) VenueRepo {
	return &pgVenueRepo{db: db}
}

// Create inserts a new venue row and returns the full persisted record.
func (r *pgVenueRepo) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	const q = `
		INSERT INTO venues (name, address, lat, lon, show_time, notes)
		VALUES (@name, @address, @lat, @lon, @show_time, @notes)
		RETURNING id, name, address, lat, lon, show_time, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":      venue.Name,
		"address":   venue.Address,
		"lat":       venue.Lat,
		"lon":       venue.Lon,
		"show_time": venue.ShowTime,
		"notes":     venue.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVenue(row)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("repo.VenueRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a venue by primary key.
func (r *pgVenueRepo) GetByID(ctx context.Context, id int64) (domain.Venue, error) {
	const q = `
		SELECT id, name, address, lat, lon, show_time, notes, created_at, updated_at
		FROM venues
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVenue(row)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("repo.VenueRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of venues ordered by id, plus the total row count.
func (r *pgVenueRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Venue, int64, error) {
	const countQ = `SELECT count(*) FROM venues`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.VenueRepo.List: count: %w", err)
	}

	const q = `
		SELECT id, name, address, lat, lon, show_time, notes, created_at, updated_at
		FROM venues
		ORDER BY id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VenueRepo.List: %w", err)
	}
	defer rows.Close()

	venues, err := collectVenues(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VenueRepo.List: %w", err)
	}
	return venues, total, nil
}

// ListForDate returns the full catalog ordered by id. The date parameter is
// unused by this implementation — the seed catalog applies to every date.
func (r *pgVenueRepo) ListForDate(ctx context.Context, _ time.Time) ([]domain.Venue, error) {
	const q = `
		SELECT id, name, address, lat, lon, show_time, notes, created_at, updated_at
		FROM venues
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VenueRepo.ListForDate: %w", err)
	}
	defer rows.Close()

	venues, err := collectVenues(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.VenueRepo.ListForDate: %w", err)
	}
	return venues, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanVenue to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanVenue maps a single database row into a domain.Venue.
func scanVenue(s scanner) (domain.Venue, error) {
	var v domain.Venue
	err := s.Scan(&v.ID, &v.Name, &v.Address, &v.Lat, &v.Lon, &v.ShowTime, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Venue{}, domain.ErrNotFound
		}
		return domain.Venue{}, err
	}
	return v, nil
}

// collectVenues drains rows into a slice, propagating scan and iteration errors.
func collectVenues(rows pgx.Rows) ([]domain.Venue, error) {
	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return venues, nil
}
