package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/pkg/cache"
)

// CachedTradeStore is a read-through cache over a TradeStore. Only Window
// is cached; the key covers every query parameter so a hit is always an
// exact answer. Writes pass through without invalidation because window
// queries are keyed by time range and expire on their own.
type CachedTradeStore struct {
	inner   repository.TradeStore
	cache   cache.Service
	ttl     time.Duration
	metrics repository.Metrics
}

// NewCachedTradeStore wraps a trade store with a cache layer.
func NewCachedTradeStore(inner repository.TradeStore, c cache.Service, ttl time.Duration, m repository.Metrics) repository.TradeStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedTradeStore{inner: inner, cache: c, ttl: ttl, metrics: m}
}

func (s *CachedTradeStore) Init(ctx context.Context) error {
	return s.inner.Init(ctx)
}

func (s *CachedTradeStore) Insert(ctx context.Context, t *models.TradeRecord) error {
	return s.inner.Insert(ctx, t)
}

func (s *CachedTradeStore) InsertBatch(ctx context.Context, trades []models.TradeRecord) error {
	return s.inner.InsertBatch(ctx, trades)
}

func (s *CachedTradeStore) Window(ctx context.Context, mode repository.Mode, from, to time.Time, limit int) ([]models.TradeRecord, error) {
	key := windowKey(mode, from, to, limit)

	var cached []models.TradeRecord
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		s.metrics.RecordCacheLookup(true)
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Degrade to the store on cache errors instead of failing the read.
		s.metrics.RecordError("cache_get")
	}
	s.metrics.RecordCacheLookup(false)

	trades, err := s.inner.Window(ctx, mode, from, to, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, trades, s.ttl); err != nil {
		s.metrics.RecordError("cache_set")
	}
	return trades, nil
}

func (s *CachedTradeStore) Summaries(ctx context.Context, mode repository.Mode) ([]models.StrategySummary, error) {
	return s.inner.Summaries(ctx, mode)
}

func (s *CachedTradeStore) Health(ctx context.Context) error {
	return s.inner.Health(ctx)
}

func (s *CachedTradeStore) Close() error {
	return s.inner.Close()
}

func windowKey(mode repository.Mode, from, to time.Time, limit int) string {
	return fmt.Sprintf("trades:%s:%d:%d:%d", mode, from.UTC().Unix(), to.UTC().Unix(), limit)
}
