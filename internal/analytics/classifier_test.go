package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

func TestPlatform_ExplicitFieldWins(t *testing.T) {
	tr := &models.TradeRecord{
		Platform:          "Kalshi",
		PolymarketTokenID: "0xabc", // lower priority, must be ignored
	}
	assert.Equal(t, "kalshi", Platform(tr))
}

func TestPlatform_IdentifierPriority(t *testing.T) {
	tests := []struct {
		name  string
		trade models.TradeRecord
		want  string
	}{
		{"polymarket token", models.TradeRecord{PolymarketTokenID: "0xabc"}, PlatformPolymarket},
		{"kalshi ticker", models.TradeRecord{KalshiTicker: "INXD-24SEP"}, PlatformKalshi},
		{"exchange symbol", models.TradeRecord{ExchangeSymbol: "BTCUSDT"}, PlatformCrypto},
		{"broker symbol", models.TradeRecord{BrokerSymbol: "AAPL"}, PlatformStocks},
		{"token beats ticker", models.TradeRecord{PolymarketTokenID: "0xabc", KalshiTicker: "X"}, PlatformPolymarket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Platform(&tt.trade))
		})
	}
}

func TestPlatform_StrategyNameFallback(t *testing.T) {
	tr := &models.TradeRecord{Strategy: "single_polymarket_momentum"}
	assert.Equal(t, PlatformPolymarket, Platform(tr))

	tr = &models.TradeRecord{Strategy: "kalshi_weather_arb"}
	assert.Equal(t, PlatformKalshi, Platform(tr))
}

func TestPlatform_DefaultsToOther(t *testing.T) {
	assert.Equal(t, PlatformOther, Platform(&models.TradeRecord{Strategy: "mystery"}))
	assert.Equal(t, PlatformOther, Platform(&models.TradeRecord{}))
}

func TestStrategyLabel_Formatting(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"polymarket_momentum", "PM Momentum"},
		{"single_platform_arbitrage", "Single-Platform Arb"},
		{"single_market_scan", "Single-Platform Market Scan"},
		{"news_reaction", "News Reaction"},
		{"COPY_TRADING", "Copy Trading"},
		{"", "Unknown"},
		{"   ", "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrategyLabel(tt.raw), "raw=%q", tt.raw)
	}
}
