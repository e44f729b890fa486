package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/parfolio/internal/types"
)

// GetProfile returns a user's career profile. Satisfies the
// pipeline.ProfileStore contract. A missing profile is ErrNotFound; callers
// that can coach without context should treat it as optional.
func (db *DB) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	var profile types.UserProfile
	err := db.pool.QueryRow(ctx,
		`SELECT first_name, COALESCE("current_role", ''), COALESCE(target_role, ''), COALESCE(career_stage, '')
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&profile.FirstName, &profile.CurrentRole, &profile.TargetRole, &profile.CareerStage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile creates or updates a user's career profile
func (db *DB) UpsertProfile(ctx context.Context, userID string, profile types.UserProfile) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, first_name, "current_role", target_role, career_stage)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   first_name = $2, "current_role" = $3, target_role = $4, career_stage = $5, updated_at = NOW()`,
		userID, profile.FirstName, profile.CurrentRole, profile.TargetRole, profile.CareerStage,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
