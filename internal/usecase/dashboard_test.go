package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/pkg/logger"
)

var dashNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newDashboard(store *fakeTradeStore, settings *fakeSettingsStore, metrics *fakeMetrics) *DashboardService {
	svc := NewDashboardService(
		store,
		NewSettingsService(settings, logger.Nop()),
		metrics,
		logger.Nop(),
		168, 30,
	)
	svc.now = func() time.Time { return dashNow }
	return svc
}

func dashTrade(id, mode string, hoursAgo int, outcome models.Outcome, profit float64) models.TradeRecord {
	t := models.TradeRecord{
		ID:        id,
		CreatedAt: dashNow.Add(-time.Duration(hoursAgo) * time.Hour),
		Strategy:  "polymarket_momentum",
		Mode:      mode,
	}
	t.Outcome = outcome
	if outcome.Resolved() {
		t.ActualProfitUsd = &profit
	}
	return t
}

func TestAnalyticsAggregatesWindow(t *testing.T) {
	store := &fakeTradeStore{trades: []models.TradeRecord{
		dashTrade("t1", "live", 2, models.OutcomeWon, 10),
		dashTrade("t2", "live", 4, models.OutcomeLost, -5),
		dashTrade("t3", "live", 6, models.OutcomePending, 0),
	}}
	metrics := &fakeMetrics{}
	svc := newDashboard(store, &fakeSettingsStore{}, metrics)

	res, err := svc.Analytics(context.Background(), models.AnalyticsRequest{Mode: "live", LookbackHours: 24, Days: 30})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 3, res.Totals.TotalTrades)
	assert.Equal(t, 1, res.Totals.WinningTrades)
	assert.Equal(t, 1, res.Totals.PendingTrades)
	assert.InDelta(t, 5.0, res.Totals.TotalPnl, 1e-9)
	assert.False(t, res.FromSummary)
	assert.Equal(t, 1, metrics.aggregations)
}

func TestAnalyticsUsesConfiguredStartingBalance(t *testing.T) {
	store := &fakeTradeStore{trades: []models.TradeRecord{
		dashTrade("t1", "live", 2, models.OutcomeWon, 100),
	}}
	settings, err := DefaultSettings()
	require.NoError(t, err)
	settings.StartingBalance = 2500

	svc := newDashboard(store, &fakeSettingsStore{saved: settings}, &fakeMetrics{})
	res, err := svc.Analytics(context.Background(), models.AnalyticsRequest{Mode: "live", LookbackHours: 24})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, 2500.0, res.Performance.StartingBalance, 1e-9)
	assert.InDelta(t, 2600.0, res.Performance.EndingBalance, 1e-9)
}

func TestAnalyticsFallsBackToSummaries(t *testing.T) {
	store := &fakeTradeStore{summaries: []models.StrategySummary{
		{Strategy: "kalshi_momentum", TotalPnl: 80, TotalTrades: 8, WinningTrades: 5, LosingTrades: 3},
	}}
	svc := newDashboard(store, &fakeSettingsStore{}, &fakeMetrics{})

	res, err := svc.Analytics(context.Background(), models.AnalyticsRequest{Mode: "all", LookbackHours: 24})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.FromSummary)
	assert.Equal(t, 8, res.Totals.TotalTrades)
}

func TestAnalyticsNilOnNoData(t *testing.T) {
	svc := newDashboard(&fakeTradeStore{}, &fakeSettingsStore{}, &fakeMetrics{})
	res, err := svc.Analytics(context.Background(), models.AnalyticsRequest{Mode: "all", LookbackHours: 24})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAnalyticsModeFilter(t *testing.T) {
	store := &fakeTradeStore{trades: []models.TradeRecord{
		dashTrade("t1", "live", 2, models.OutcomeWon, 10),
		dashTrade("t2", "paper", 2, models.OutcomeWon, 20),
	}}
	svc := newDashboard(store, &fakeSettingsStore{}, &fakeMetrics{})

	res, err := svc.Analytics(context.Background(), models.AnalyticsRequest{Mode: "paper", LookbackHours: 24})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Totals.TotalTrades)
	assert.InDelta(t, 20.0, res.Totals.TotalPnl, 1e-9)
}

func TestTradesRespectsLimit(t *testing.T) {
	store := &fakeTradeStore{trades: []models.TradeRecord{
		dashTrade("t1", "live", 1, models.OutcomeWon, 10),
		dashTrade("t2", "live", 2, models.OutcomeLost, -5),
		dashTrade("t3", "live", 3, models.OutcomeWon, 7),
	}}
	svc := newDashboard(store, &fakeSettingsStore{}, &fakeMetrics{})

	trades, err := svc.Trades(context.Background(), models.TradesRequest{Mode: "live", LookbackHours: 24, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}
