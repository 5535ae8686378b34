package analytics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

func resolvedSeries(outcomes ...models.Outcome) []models.TradeRecord {
	trades := make([]models.TradeRecord, 0, len(outcomes))
	for i, o := range outcomes {
		profit := 10.0
		if o == models.OutcomeLost {
			profit = -5.0
		}
		trades = append(trades, trade("s", i, o, profit))
	}
	return trades
}

func TestPerformance_Streaks(t *testing.T) {
	// Three wins then two losses: maxWin=3, maxLoss=2, current is a
	// 2-long loss streak.
	trades := resolvedSeries(
		models.OutcomeWon, models.OutcomeWon, models.OutcomeWon,
		models.OutcomeLost, models.OutcomeLost,
	)
	p := computePerformance(trades, nil, 0)

	assert.Equal(t, 3, p.MaxWinStreak)
	assert.Equal(t, 2, p.MaxLossStreak)
	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, StreakLoss, p.CurrentStreakType)
}

func TestPerformance_NoResolvedTrades(t *testing.T) {
	p := computePerformance(nil, nil, 1000)

	assert.Equal(t, 0.0, p.WinRate)
	assert.False(t, math.IsNaN(p.WinRate))
	assert.Equal(t, 0.0, p.ProfitFactor)
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, StreakNone, p.CurrentStreakType)
	assert.Equal(t, 1000.0, p.EndingBalance)
}

func TestPerformance_ProfitFactorInfinityOnNoLosses(t *testing.T) {
	trades := resolvedSeries(models.OutcomeWon, models.OutcomeWon)
	p := computePerformance(trades, nil, 0)

	assert.True(t, math.IsInf(p.ProfitFactor, 1))
	assert.True(t, math.IsInf(p.PayoffRatio, 1))
	assert.Equal(t, 100.0, p.WinRate)
}

func TestPerformance_ExpectancyAndPayoff(t *testing.T) {
	// 50% at +10 / -5: expectancy = 0.5*10 - 0.5*5 = 2.5, payoff = 2.
	trades := resolvedSeries(models.OutcomeWon, models.OutcomeLost)
	p := computePerformance(trades, nil, 0)

	assert.InDelta(t, 2.5, p.Expectancy, 1e-9)
	assert.InDelta(t, 2.0, p.PayoffRatio, 1e-9)
}

func TestPerformance_Drawdown(t *testing.T) {
	up, down, small := 100.0, -300.0, 50.0
	trades := []models.TradeRecord{
		{CreatedAt: testBase, Outcome: models.OutcomeWon, ActualProfitUsd: &up},
		{CreatedAt: testBase.Add(time.Hour), Outcome: models.OutcomeLost, ActualProfitUsd: &down},
		{CreatedAt: testBase.Add(2 * time.Hour), Outcome: models.OutcomeWon, ActualProfitUsd: &small},
	}
	p := computePerformance(trades, nil, 1000)

	// Peak 1100, trough 800.
	assert.InDelta(t, 300.0, p.MaxDrawdownUsd, 1e-9)
	assert.InDelta(t, 300.0/1100.0*100, p.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 850.0, p.EndingBalance, 1e-9)
}

func TestPerformance_DailyVolatility(t *testing.T) {
	daily := []DailyBucket{
		{Date: "2025-06-01", Pnl: 10},
		{Date: "2025-06-02", Pnl: -10},
		{Date: "2025-06-03", Pnl: 10},
		{Date: "2025-06-04", Pnl: -10},
	}
	p := computePerformance(nil, daily, 0)

	assert.InDelta(t, 0.0, p.AvgDailyReturn, 1e-9)
	assert.InDelta(t, 10.0, p.Volatility, 1e-9)
}

func TestPerformance_MarshalsInfinityAsNull(t *testing.T) {
	trades := resolvedSeries(models.OutcomeWon)
	p := computePerformance(trades, nil, 0)
	require.True(t, math.IsInf(p.ProfitFactor, 1))

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Nil(t, decoded["profitFactor"])
	assert.Equal(t, 100.0, decoded["winRate"])
}
