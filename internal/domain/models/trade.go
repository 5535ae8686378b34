package models

import (
	"math"
	"time"
)

// Outcome is the resolution state of a trade.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomePending Outcome = "pending"
	OutcomeFailed  Outcome = "failed_execution"
)

// Resolved reports whether the trade has a final P&L.
func (o Outcome) Resolved() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// TradeRecord is one resolved or pending trade as reported by the bot.
// Platform-specific identifier fields are optional; which ones are set
// depends on the venue the bot executed on.
type TradeRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Strategy  string    `json:"strategy"`
	Mode      string    `json:"mode"` // "paper" or "live"

	// Platform hints, in descending inference priority.
	Platform          string `json:"platform,omitempty"`
	PolymarketTokenID string `json:"polymarketTokenId,omitempty"`
	KalshiTicker      string `json:"kalshiTicker,omitempty"`
	ExchangeSymbol    string `json:"exchangeSymbol,omitempty"`
	BrokerSymbol      string `json:"brokerSymbol,omitempty"`

	PositionSizeUsd float64  `json:"positionSizeUsd"`
	ActualProfitUsd *float64 `json:"actualProfitUsd"` // nil while pending
	Outcome         Outcome  `json:"outcome"`
}

// Profit returns the realized P&L, treating nil or non-finite values as
// zero so one malformed record cannot poison an aggregation.
func (t *TradeRecord) Profit() float64 {
	if t.ActualProfitUsd == nil {
		return 0
	}
	v := *t.ActualProfitUsd
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Size returns the position size, with the same malformed-field guard.
func (t *TradeRecord) Size() float64 {
	if math.IsNaN(t.PositionSizeUsd) || math.IsInf(t.PositionSizeUsd, 0) || t.PositionSizeUsd < 0 {
		return 0
	}
	return t.PositionSizeUsd
}

// StrategySummary is a server-side pre-aggregated rollup for one strategy.
// Used as a fallback for all-time views when raw per-trade history is not
// available for the full period.
type StrategySummary struct {
	Strategy      string  `json:"strategy"`
	TotalPnl      float64 `json:"totalPnl"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	BestTrade     float64 `json:"bestTrade"`
	WorstTrade    float64 `json:"worstTrade"`
}
