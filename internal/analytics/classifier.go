package analytics

import (
	"strings"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

// Platform identifiers produced by the classifier.
const (
	PlatformPolymarket = "polymarket"
	PlatformKalshi     = "kalshi"
	PlatformCrypto     = "crypto"
	PlatformStocks     = "stocks"
	PlatformOther      = "other"
)

// Platform infers the normalized platform for a trade. The inference order
// is a fixed priority list: the explicit platform field wins, then
// venue-specific identifier fields, then a substring match against the
// strategy name. It never fails; unrecognized input maps to "other".
func Platform(t *models.TradeRecord) string {
	if p := strings.ToLower(strings.TrimSpace(t.Platform)); p != "" {
		return p
	}
	if t.PolymarketTokenID != "" {
		return PlatformPolymarket
	}
	if t.KalshiTicker != "" {
		return PlatformKalshi
	}
	if t.ExchangeSymbol != "" {
		return PlatformCrypto
	}
	if t.BrokerSymbol != "" {
		return PlatformStocks
	}

	s := strings.ToLower(t.Strategy)
	switch {
	case strings.Contains(s, "polymarket"):
		return PlatformPolymarket
	case strings.Contains(s, "kalshi"):
		return PlatformKalshi
	case strings.Contains(s, "crypto") || strings.Contains(s, "exchange"):
		return PlatformCrypto
	case strings.Contains(s, "stock") || strings.Contains(s, "broker"):
		return PlatformStocks
	}
	return PlatformOther
}

// StrategyLabel formats a raw strategy identifier into the label shown on
// the dashboard: underscores become spaces, words are title-cased, then a
// fixed set of abbreviation substitutions is applied.
func StrategyLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Unknown"
	}

	words := strings.Fields(strings.ReplaceAll(raw, "_", " "))
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := titleWord(words[i])
		switch w {
		case "Polymarket":
			w = "PM"
		case "Single":
			// "single" and "single_platform" both label as Single-Platform.
			if i+1 < len(words) && titleWord(words[i+1]) == "Platform" {
				i++
			}
			w = "Single-Platform"
		case "Arbitrage":
			w = "Arb"
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
