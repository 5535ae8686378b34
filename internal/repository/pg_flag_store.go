package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
)

// PgFlagStore persists feature flags and per-user overrides in Postgres.
type PgFlagStore struct {
	pool *pgxpool.Pool
}

// NewPgFlagStore creates a Postgres-backed flag store.
func NewPgFlagStore(pool *pgxpool.Pool) repository.FlagStore {
	return &PgFlagStore{pool: pool}
}

// FlagSchema is the DDL for the flag tables.
var FlagSchema = []string{
	`CREATE TABLE IF NOT EXISTS feature_flags (
		name TEXT PRIMARY KEY,
		enabled BOOLEAN NOT NULL DEFAULT false,
		rollout_percentage SMALLINT NOT NULL DEFAULT 100
			CHECK (rollout_percentage BETWEEN 0 AND 100),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS flag_overrides (
		flag_name TEXT NOT NULL REFERENCES feature_flags(name) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		enabled BOOLEAN NOT NULL,
		PRIMARY KEY (flag_name, user_id)
	)`,
}

func (s *PgFlagStore) List(ctx context.Context) ([]models.FeatureFlag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, enabled, rollout_percentage, updated_at
		FROM feature_flags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var flags []models.FeatureFlag
	for rows.Next() {
		var f models.FeatureFlag
		if err := rows.Scan(&f.Name, &f.Enabled, &f.RolloutPercentage, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

func (s *PgFlagStore) Overrides(ctx context.Context, userID string) ([]models.FlagOverride, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT flag_name, user_id, enabled
		FROM flag_overrides WHERE user_id = $1 ORDER BY flag_name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	var overrides []models.FlagOverride
	for rows.Next() {
		var o models.FlagOverride
		if err := rows.Scan(&o.FlagName, &o.UserID, &o.Enabled); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (s *PgFlagStore) Upsert(ctx context.Context, f models.FeatureFlag) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO feature_flags (name, enabled, rollout_percentage, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			rollout_percentage = EXCLUDED.rollout_percentage,
			updated_at = now()`,
		f.Name, f.Enabled, f.RolloutPercentage)
	if err != nil {
		return fmt.Errorf("upsert flag: %w", err)
	}
	return nil
}
