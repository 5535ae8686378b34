package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

// ErrNotFound is returned when a store has no row for the requested key.
var ErrNotFound = errors.New("repository: not found")

// TradeStore persists and queries the bot's trade history.
type TradeStore interface {
	Init(ctx context.Context) error // ensure tables exist
	Insert(ctx context.Context, t *models.TradeRecord) error
	InsertBatch(ctx context.Context, trades []models.TradeRecord) error
	// Window returns trades with CreatedAt in [from, to), newest last,
	// filtered by mode (ModeAll matches everything).
	Window(ctx context.Context, mode Mode, from, to time.Time, limit int) ([]models.TradeRecord, error)
	// Summaries returns the server-side per-strategy rollups, the
	// fallback source for all-time views.
	Summaries(ctx context.Context, mode Mode) ([]models.StrategySummary, error)
	Health(ctx context.Context) error
	Close() error
}

// SettingsStore persists the flat bot configuration blob.
type SettingsStore interface {
	Load(ctx context.Context) (*models.BotSettings, error) // ErrNotFound when never saved
	Save(ctx context.Context, s *models.BotSettings) error
	Health(ctx context.Context) error
}

// FlagStore persists feature flags and per-user overrides.
type FlagStore interface {
	List(ctx context.Context) ([]models.FeatureFlag, error)
	Overrides(ctx context.Context, userID string) ([]models.FlagOverride, error)
	Upsert(ctx context.Context, f models.FeatureFlag) error
}

// Metrics records operational metrics for the dashboard service.
type Metrics interface {
	RecordTradeIngested(platform, outcome string)
	RecordAggregation(mode string, trades int)
	RecordCacheLookup(hit bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
