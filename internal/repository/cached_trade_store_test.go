package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/pkg/cache"
)

type countingTradeStore struct {
	windowCalls int
	trades      []models.TradeRecord
}

func (s *countingTradeStore) Init(context.Context) error { return nil }

func (s *countingTradeStore) Insert(context.Context, *models.TradeRecord) error { return nil }

func (s *countingTradeStore) InsertBatch(context.Context, []models.TradeRecord) error { return nil }

func (s *countingTradeStore) Window(context.Context, repository.Mode, time.Time, time.Time, int) ([]models.TradeRecord, error) {
	s.windowCalls++
	return s.trades, nil
}

func (s *countingTradeStore) Summaries(context.Context, repository.Mode) ([]models.StrategySummary, error) {
	return nil, nil
}

func (s *countingTradeStore) Health(context.Context) error { return nil }
func (s *countingTradeStore) Close() error                 { return nil }

type nopMetrics struct {
	hits, misses int
}

func (m *nopMetrics) RecordTradeIngested(string, string) {}
func (m *nopMetrics) RecordAggregation(string, int)      {}
func (m *nopMetrics) RecordCacheLookup(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}
func (m *nopMetrics) RecordError(string)            {}
func (m *nopMetrics) RecordLatency(string, float64) {}

func TestWindowServedFromCacheWithinTTL(t *testing.T) {
	profit := 12.0
	inner := &countingTradeStore{trades: []models.TradeRecord{{
		ID:              "t1",
		CreatedAt:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Strategy:        "kalshi_momentum",
		Mode:            "live",
		Outcome:         models.OutcomeWon,
		ActualProfitUsd: &profit,
	}}}
	metrics := &nopMetrics{}
	store := NewCachedTradeStore(inner, cache.NewMemoryCache(0), time.Minute, metrics)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	first, err := store.Window(context.Background(), repository.ModeLive, from, to, 0)
	require.NoError(t, err)
	second, err := store.Window(context.Background(), repository.ModeLive, from, to, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.windowCalls)
	assert.Equal(t, 1, metrics.misses)
	assert.Equal(t, 1, metrics.hits)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	require.NotNil(t, second[0].ActualProfitUsd)
	assert.InDelta(t, profit, *second[0].ActualProfitUsd, 1e-9)
}

func TestWindowKeyCoversEveryQueryParameter(t *testing.T) {
	inner := &countingTradeStore{}
	store := NewCachedTradeStore(inner, cache.NewMemoryCache(0), time.Minute, &nopMetrics{})

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := store.Window(context.Background(), repository.ModeLive, from, to, 0)
	require.NoError(t, err)
	_, err = store.Window(context.Background(), repository.ModePaper, from, to, 0)
	require.NoError(t, err)
	_, err = store.Window(context.Background(), repository.ModeLive, from, to, 100)
	require.NoError(t, err)
	_, err = store.Window(context.Background(), repository.ModeLive, from.Add(time.Hour), to, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, inner.windowCalls)
}
