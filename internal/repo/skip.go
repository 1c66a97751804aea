package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openmicnyc/miccrawl/internal/domain"
)

// SkipRepo defines the persistence operations for per-user skip rules.
// The (user_id, venue_id) pair is the natural key: writing a rule for a pair
// that already has one replaces it atomically (last write wins).
type SkipRepo interface {
	// Upsert inserts or replaces the rule for (rule.UserID, rule.VenueID) and
	// returns the stored record. created_at is reset on replacement, which
	// also refreshes the reference date used by week-type matching.
	Upsert(ctx context.Context, rule domain.SkipRule) (domain.SkipRule, error)

	// ListByUser returns all rules for a user ordered by venue id.
	ListByUser(ctx context.Context, userID string) ([]domain.SkipRule, error)

	// Delete removes the rule for (userID, venueID).
	// Returns domain.ErrNotFound if no such rule exists.
	Delete(ctx context.Context, userID string, venueID int64) error
}

// pgSkipRepo is the Postgres implementation of SkipRepo.
type pgSkipRepo struct {
	db db
}

// NewSkipRepo constructs a SkipRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSkipRepo(db db) SkipRepo {
	return &pgSkipRepo{db: db}
}

// Upsert inserts or replaces the rule for the (user, venue) pair.
// The ON CONFLICT clause makes the replacement a single atomic statement.
func (r *pgSkipRepo) Upsert(ctx context.Context, rule domain.SkipRule) (domain.SkipRule, error) {
	const q = `
		INSERT INTO skips (id, user_id, venue_id, skip_type, reminder)
		VALUES (@id, @user_id, @venue_id, @skip_type, @reminder)
		ON CONFLICT (user_id, venue_id) DO UPDATE
		SET id         = EXCLUDED.id,
		    skip_type  = EXCLUDED.skip_type,
		    reminder   = EXCLUDED.reminder,
		    created_at = now()
		RETURNING id, user_id, venue_id, skip_type, reminder, created_at`

	args := pgx.NamedArgs{
		"id":        rule.ID,
		"user_id":   rule.UserID,
		"venue_id":  rule.VenueID,
		"skip_type": string(rule.Type),
		"reminder":  rule.Reminder,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSkip(row)
	if err != nil {
		return domain.SkipRule{}, fmt.Errorf("repo.SkipRepo.Upsert: %w", err)
	}
	return result, nil
}

// ListByUser returns all of a user's rules ordered by venue id.
func (r *pgSkipRepo) ListByUser(ctx context.Context, userID string) ([]domain.SkipRule, error) {
	const q = `
		SELECT id, user_id, venue_id, skip_type, reminder, created_at
		FROM skips
		WHERE user_id = @user_id
		ORDER BY venue_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.SkipRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var rules []domain.SkipRule
	for rows.Next() {
		rule, err := scanSkip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SkipRepo.ListByUser: scan: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SkipRepo.ListByUser: rows: %w", err)
	}

	return rules, nil
}

// Delete removes the rule for the (user, venue) pair.
func (r *pgSkipRepo) Delete(ctx context.Context, userID string, venueID int64) error {
	const q = `DELETE FROM skips WHERE user_id = @user_id AND venue_id = @venue_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "venue_id": venueID})
	if err != nil {
		return fmt.Errorf("repo.SkipRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SkipRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanSkip maps a single database row into a domain.SkipRule.
// It handles the UUID conversion from pgtype.
func scanSkip(s scanner) (domain.SkipRule, error) {
	var (
		rule domain.SkipRule
		id   pgtype.UUID
		typ  string
	)

	err := s.Scan(&id, &rule.UserID, &rule.VenueID, &typ, &rule.Reminder, &rule.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SkipRule{}, domain.ErrNotFound
		}
		return domain.SkipRule{}, err
	}

	rule.ID = uuid.UUID(id.Bytes)
	rule.Type = domain.SkipType(typ)
	return rule, nil
}
