package models

// BotSettings is the flat configuration blob the dashboard persists for the
// bot process. The bot reads it verbatim; the dashboard only round-trips it.
// Defaults are applied via creasty/defaults when a stored row is missing.
type BotSettings struct {
	// Global trading controls.
	TradingEnabled   bool    `json:"tradingEnabled" default:"false"`
	Mode             string  `json:"mode" default:"paper" validate:"oneof=paper live"`
	MaxOpenPositions int     `json:"maxOpenPositions" default:"10" validate:"gte=0"`
	MaxDailyLossUsd  float64 `json:"maxDailyLossUsd" default:"250" validate:"gte=0"`
	StartingBalance  float64 `json:"startingBalance" default:"10000" validate:"gt=0"`

	// Position sizing.
	BaseSizeUsd       float64 `json:"baseSizeUsd" default:"50" validate:"gte=0"`
	MaxSizeUsd        float64 `json:"maxSizeUsd" default:"500" validate:"gte=0"`
	KellyFraction     float64 `json:"kellyFraction" default:"0.25" validate:"gte=0,lte=1"`
	SizeOnConfidence  bool    `json:"sizeOnConfidence" default:"true"`
	MinEdgePercent    float64 `json:"minEdgePercent" default:"2" validate:"gte=0"`
	MaxSlippageBps    int     `json:"maxSlippageBps" default:"50" validate:"gte=0"`
	CooldownMinutes   int     `json:"cooldownMinutes" default:"15" validate:"gte=0"`
	MaxTradesPerDay   int     `json:"maxTradesPerDay" default:"40" validate:"gte=0"`
	StopLossPercent   float64 `json:"stopLossPercent" default:"20" validate:"gte=0,lte=100"`
	TakeProfitPercent float64 `json:"takeProfitPercent" default:"0" validate:"gte=0"`

	// Per-platform switches.
	PolymarketEnabled bool `json:"polymarketEnabled" default:"true"`
	KalshiEnabled     bool `json:"kalshiEnabled" default:"true"`
	CryptoEnabled     bool `json:"cryptoEnabled" default:"false"`
	StocksEnabled     bool `json:"stocksEnabled" default:"false"`

	// Per-platform starting balances, used by drawdown math on the
	// analytics side.
	PolymarketBalanceUsd float64 `json:"polymarketBalanceUsd" default:"5000" validate:"gte=0"`
	KalshiBalanceUsd     float64 `json:"kalshiBalanceUsd" default:"5000" validate:"gte=0"`
	CryptoBalanceUsd     float64 `json:"cryptoBalanceUsd" default:"0" validate:"gte=0"`
	StocksBalanceUsd     float64 `json:"stocksBalanceUsd" default:"0" validate:"gte=0"`

	// Strategy parameters (forwarded to the bot untouched).
	SingleScanIntervalSec  int     `json:"singleScanIntervalSec" default:"60" validate:"gte=1"`
	ArbMinSpreadPercent    float64 `json:"arbMinSpreadPercent" default:"1.5" validate:"gte=0"`
	ArbMaxLegSizeUsd       float64 `json:"arbMaxLegSizeUsd" default:"200" validate:"gte=0"`
	MomentumLookbackHours  int     `json:"momentumLookbackHours" default:"24" validate:"gte=1"`
	MomentumThreshold      float64 `json:"momentumThreshold" default:"0.6" validate:"gte=0,lte=1"`
	NewsReactionEnabled    bool    `json:"newsReactionEnabled" default:"false"`
	NewsReactionDelaySec   int     `json:"newsReactionDelaySec" default:"30" validate:"gte=0"`
	MarketMakingEnabled    bool    `json:"marketMakingEnabled" default:"false"`
	MarketMakingSpreadBps  int     `json:"marketMakingSpreadBps" default:"80" validate:"gte=0"`
	MarketMakingMaxInvUsd  float64 `json:"marketMakingMaxInvUsd" default:"300" validate:"gte=0"`
	CopyTradingEnabled     bool    `json:"copyTradingEnabled" default:"false"`
	CopyTradingAddresses   string  `json:"copyTradingAddresses" default:""`
	CopyTradingScalePct    float64 `json:"copyTradingScalePct" default:"10" validate:"gte=0,lte=100"`
	ResolutionSnipeEnabled bool    `json:"resolutionSnipeEnabled" default:"false"`
	ResolutionSnipeMinutes int     `json:"resolutionSnipeMinutes" default:"10" validate:"gte=0"`

	// Notifications.
	NotifyOnFill    bool   `json:"notifyOnFill" default:"true"`
	NotifyOnLoss    bool   `json:"notifyOnLoss" default:"true"`
	WebhookURL      string `json:"webhookUrl" default:""`
	DigestHourUTC   int    `json:"digestHourUtc" default:"8" validate:"gte=0,lte=23"`
	DigestEnabled   bool   `json:"digestEnabled" default:"false"`
	QuietHoursStart int    `json:"quietHoursStart" default:"0" validate:"gte=0,lte=23"`
	QuietHoursEnd   int    `json:"quietHoursEnd" default:"0" validate:"gte=0,lte=23"`
}
