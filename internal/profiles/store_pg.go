package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

const profileColumns = `id, username, plan, credits_total, credits_used, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var p Profile
	var plan string
	err := row.Scan(&p.ID, &p.Username, &plan, &p.CreditsTotal, &p.CreditsUsed, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Profile{}, err
	}
	p.Plan = PlanID(plan)
	return p, nil
}

// Ensure inserts the signup profile if missing and returns the stored row.
func (s *PGStore) Ensure(ctx context.Context, userID, username string) (Profile, error) {
	p := newProfile(userID, username, time.Now().UTC())
	const insert = `
INSERT INTO profiles (id, username, plan, credits_total, credits_used, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, insert, p.ID, p.Username, string(p.Plan), p.CreditsTotal, p.CreditsUsed, p.CreatedAt); err != nil {
		return Profile{}, err
	}
	return s.Get(ctx, userID)
}

func (s *PGStore) Get(ctx context.Context, userID string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(s.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// Consume increments credits_used only while it is below credits_total. Zero rows
// means the limit was hit or the profile is missing.
func (s *PGStore) Consume(ctx context.Context, userID string) (Profile, error) {
	query := `
UPDATE profiles
SET credits_used = credits_used + 1, updated_at = $2
WHERE id = $1 AND credits_used < credits_total
RETURNING ` + profileColumns
	p, err := scanProfile(s.DB.QueryRowContext(ctx, query, userID, time.Now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := s.Get(ctx, userID); getErr != nil {
			return Profile{}, getErr
		}
		return Profile{}, ErrLimitReached
	}
	return p, err
}

func (s *PGStore) SetPlan(ctx context.Context, userID string, plan Plan) (Profile, error) {
	query := `
UPDATE profiles
SET plan = $2, credits_total = $3, credits_used = 0, updated_at = $4
WHERE id = $1
RETURNING ` + profileColumns
	p, err := scanProfile(s.DB.QueryRowContext(ctx, query, userID, string(plan.ID), plan.Credits, time.Now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *PGStore) ResetUsed(ctx context.Context, userID string) (Profile, error) {
	query := `
UPDATE profiles
SET credits_used = 0, updated_at = $2
WHERE id = $1
RETURNING ` + profileColumns
	p, err := scanProfile(s.DB.QueryRowContext(ctx, query, userID, time.Now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

var _ Store = (*PGStore)(nil)
