package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
)

// PgSettingsStore persists the bot settings as a single JSONB row. The
// settings form one flat document saved and loaded atomically, so a
// one-row blob is simpler than a column per field and survives new fields
// without migrations.
type PgSettingsStore struct {
	pool *pgxpool.Pool
}

// NewPgSettingsStore creates a Postgres-backed settings store.
func NewPgSettingsStore(pool *pgxpool.Pool) repository.SettingsStore {
	return &PgSettingsStore{pool: pool}
}

// SettingsSchema is the DDL for the settings table.
var SettingsSchema = []string{
	`CREATE TABLE IF NOT EXISTS bot_settings (
		id SMALLINT PRIMARY KEY CHECK (id = 1),
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func (s *PgSettingsStore) Load(ctx context.Context) (*models.BotSettings, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM bot_settings WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var settings models.BotSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

func (s *PgSettingsStore) Save(ctx context.Context, settings *models.BotSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO bot_settings (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, raw)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *PgSettingsStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
