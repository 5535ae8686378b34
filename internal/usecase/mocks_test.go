package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
)

type fakeTradeStore struct {
	mu        sync.Mutex
	trades    []models.TradeRecord
	summaries []models.StrategySummary
	windowErr error
	insertErr error
}

func (f *fakeTradeStore) Init(context.Context) error { return nil }

func (f *fakeTradeStore) Insert(_ context.Context, t *models.TradeRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trades = append(f.trades, *t)
	return nil
}

func (f *fakeTradeStore) InsertBatch(ctx context.Context, trades []models.TradeRecord) error {
	for i := range trades {
		if err := f.Insert(ctx, &trades[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTradeStore) Window(_ context.Context, mode repository.Mode, from, to time.Time, limit int) ([]models.TradeRecord, error) {
	if f.windowErr != nil {
		return nil, f.windowErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TradeRecord
	for _, t := range f.trades {
		if mode != repository.ModeAll && t.Mode != string(mode) {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTradeStore) Summaries(context.Context, repository.Mode) ([]models.StrategySummary, error) {
	return f.summaries, nil
}

func (f *fakeTradeStore) Health(context.Context) error { return nil }
func (f *fakeTradeStore) Close() error                 { return nil }

type fakeSettingsStore struct {
	saved   *models.BotSettings
	loadErr error
}

func (f *fakeSettingsStore) Load(context.Context) (*models.BotSettings, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saved == nil {
		return nil, repository.ErrNotFound
	}
	return f.saved, nil
}

func (f *fakeSettingsStore) Save(_ context.Context, s *models.BotSettings) error {
	copied := *s
	f.saved = &copied
	return nil
}

func (f *fakeSettingsStore) Health(context.Context) error { return nil }

type fakeFlagStore struct {
	flags     []models.FeatureFlag
	overrides []models.FlagOverride
}

func (f *fakeFlagStore) List(context.Context) ([]models.FeatureFlag, error) {
	return f.flags, nil
}

func (f *fakeFlagStore) Overrides(_ context.Context, userID string) ([]models.FlagOverride, error) {
	var out []models.FlagOverride
	for _, o := range f.overrides {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeFlagStore) Upsert(_ context.Context, flag models.FeatureFlag) error {
	for i := range f.flags {
		if f.flags[i].Name == flag.Name {
			f.flags[i] = flag
			return nil
		}
	}
	f.flags = append(f.flags, flag)
	return nil
}

type fakeMetrics struct {
	mu           sync.Mutex
	ingested     int
	aggregations int
	errors       map[string]int
}

func (f *fakeMetrics) RecordTradeIngested(string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingested++
}

func (f *fakeMetrics) RecordAggregation(string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregations++
}

func (f *fakeMetrics) RecordCacheLookup(bool) {}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errors == nil {
		f.errors = map[string]int{}
	}
	f.errors[kind]++
}

func (f *fakeMetrics) RecordLatency(string, float64) {}
