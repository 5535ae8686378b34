package analytics

import (
	"encoding/json"
	"math"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

// Streak type reported in Performance.CurrentStreakType.
const (
	StreakWin  = "win"
	StreakLoss = "loss"
	StreakNone = "none"
)

// Performance holds the risk and performance ratios for one window.
// Every ratio is guarded against zero denominators: the zero value means
// "not computable", never NaN. ProfitFactor and PayoffRatio may be +Inf
// when there are wins and no losses.
type Performance struct {
	WinRate           float64 `json:"winRate"` // percent
	AvgWin            float64 `json:"avgWin"`
	AvgLoss           float64 `json:"avgLoss"` // absolute value
	ProfitFactor      float64 `json:"profitFactor"`
	Expectancy        float64 `json:"expectancy"`
	PayoffRatio       float64 `json:"payoffRatio"`
	MaxWinStreak      int     `json:"maxWinStreak"`
	MaxLossStreak     int     `json:"maxLossStreak"`
	CurrentStreak     int     `json:"currentStreak"`
	CurrentStreakType string  `json:"currentStreakType"`
	MaxDrawdownUsd    float64 `json:"maxDrawdownUsd"`
	MaxDrawdownPct    float64 `json:"maxDrawdownPct"`
	Volatility        float64 `json:"volatility"` // stddev of daily P&L
	AvgDailyReturn    float64 `json:"avgDailyReturn"`
	StartingBalance   float64 `json:"startingBalance"`
	EndingBalance     float64 `json:"endingBalance"`
}

// computePerformance reduces resolved trades (won/lost only, already in
// CreatedAt order) and the full daily series into Performance.
func computePerformance(resolved []models.TradeRecord, daily []DailyBucket, startingBalance float64) Performance {
	p := Performance{
		CurrentStreakType: StreakNone,
		StartingBalance:   startingBalance,
		EndingBalance:     startingBalance,
	}

	var wins, losses int
	var grossWin, grossLoss float64
	for i := range resolved {
		profit := resolved[i].Profit()
		if resolved[i].Outcome == models.OutcomeWon {
			wins++
			grossWin += profit
		} else {
			losses++
			grossLoss += math.Abs(profit)
		}
	}

	p.WinRate = safeRate(wins, wins+losses)
	if wins > 0 {
		p.AvgWin = grossWin / float64(wins)
	}
	if losses > 0 {
		p.AvgLoss = grossLoss / float64(losses)
	}

	switch {
	case grossLoss == 0 && grossWin > 0:
		p.ProfitFactor = math.Inf(1)
	case grossLoss == 0:
		p.ProfitFactor = 0
	default:
		p.ProfitFactor = grossWin / grossLoss
	}

	switch {
	case p.AvgLoss == 0 && p.AvgWin > 0:
		p.PayoffRatio = math.Inf(1)
	case p.AvgLoss == 0:
		p.PayoffRatio = 0
	default:
		p.PayoffRatio = p.AvgWin / p.AvgLoss
	}

	winFrac := p.WinRate / 100
	p.Expectancy = winFrac*p.AvgWin - (1-winFrac)*p.AvgLoss

	p.computeStreaks(resolved)
	p.computeDrawdown(resolved, startingBalance)
	p.computeDailyStats(daily)
	return p
}

// computeStreaks walks the chronological outcome sequence and records the
// longest win run, the longest loss run, and the run active at the end.
func (p *Performance) computeStreaks(resolved []models.TradeRecord) {
	var run int
	var runType string
	for i := range resolved {
		t := StreakLoss
		if resolved[i].Outcome == models.OutcomeWon {
			t = StreakWin
		}
		if t == runType {
			run++
		} else {
			run = 1
			runType = t
		}
		if runType == StreakWin && run > p.MaxWinStreak {
			p.MaxWinStreak = run
		}
		if runType == StreakLoss && run > p.MaxLossStreak {
			p.MaxLossStreak = run
		}
	}
	if runType != "" {
		p.CurrentStreak = run
		p.CurrentStreakType = runType
	}
}

// computeDrawdown tracks the running balance and records the largest
// peak-to-trough decline, absolute and as a percentage of the peak.
func (p *Performance) computeDrawdown(resolved []models.TradeRecord, startingBalance float64) {
	balance := startingBalance
	peak := startingBalance
	for i := range resolved {
		balance += resolved[i].Profit()
		if balance > peak {
			peak = balance
		}
		dd := peak - balance
		if dd > p.MaxDrawdownUsd {
			p.MaxDrawdownUsd = dd
			if peak > 0 {
				p.MaxDrawdownPct = dd / peak * 100
			}
		}
	}
	p.EndingBalance = balance
}

func (p *Performance) computeDailyStats(daily []DailyBucket) {
	if len(daily) == 0 {
		return
	}
	var sum float64
	for _, d := range daily {
		sum += d.Pnl
	}
	mean := sum / float64(len(daily))
	p.AvgDailyReturn = mean

	var variance float64
	for _, d := range daily {
		variance += (d.Pnl - mean) * (d.Pnl - mean)
	}
	variance /= float64(len(daily))
	p.Volatility = math.Sqrt(variance)
}

// MarshalJSON renders non-finite ratios as null. encoding/json rejects IEEE
// infinities outright, and the charting layer treats null as "no losses
// recorded yet".
func (p Performance) MarshalJSON() ([]byte, error) {
	type alias Performance
	shadow := struct {
		alias
		ProfitFactor *float64 `json:"profitFactor"`
		PayoffRatio  *float64 `json:"payoffRatio"`
	}{alias: alias(p)}
	shadow.ProfitFactor = finiteOrNil(p.ProfitFactor)
	shadow.PayoffRatio = finiteOrNil(p.PayoffRatio)
	return json.Marshal(shadow)
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
