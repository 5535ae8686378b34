package analytics

import (
	"sort"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
)

// DefaultDayCap limits daily buckets to the most recent N calendar days.
const DefaultDayCap = 30

// Rollup is a per-strategy or per-platform aggregate.
type Rollup struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Pnl        float64 `json:"pnl"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pending    int     `json:"pending"`
	Failed     int     `json:"failed"`
	BestTrade  float64 `json:"bestTrade"`
	WorstTrade float64 `json:"worstTrade"`
	WinRate    float64 `json:"winRate"` // percent
}

// DailyBucket is one calendar day of realized P&L (UTC date truncation).
// Only resolved trades land here: a pending trade counts toward the rollup
// and total trade counts but has no realized profit to bucket, so it never
// appears in the daily series or in anything derived from it (cumulative
// totals, volatility, drawdown).
type DailyBucket struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Pnl    float64 `json:"pnl"`
	Trades int     `json:"trades"`
}

// CumulativePoint carries the running P&L total per strategy as of one day.
// Strategies not traded on that day keep their last known total.
type CumulativePoint struct {
	Date   string             `json:"date"`
	Totals map[string]float64 `json:"totals"`
}

// Totals are the whole-window trade counts and P&L.
type Totals struct {
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	PendingTrades int     `json:"pendingTrades"`
	FailedTrades  int     `json:"failedTrades"`
	TotalPnl      float64 `json:"totalPnl"`
}

// Result is the full aggregation output consumed by the dashboard charts.
// A nil *Result is the designated empty sentinel: it means "no data", which
// the presentation layer renders as an empty state rather than a zeroed
// chart.
type Result struct {
	Totals      Totals            `json:"totals"`
	Strategies  []Rollup          `json:"strategies"`
	Platforms   []Rollup          `json:"platforms"`
	Daily       []DailyBucket     `json:"daily"`
	Cumulative  []CumulativePoint `json:"cumulative"`
	Performance Performance       `json:"performance"`
	FromSummary bool              `json:"fromSummary,omitempty"`
}

// Options tune one aggregation call.
type Options struct {
	// DayCap caps the daily and cumulative series to the most recent N
	// days. Zero means DefaultDayCap.
	DayCap int
	// StartingBalance seeds the drawdown balance series.
	StartingBalance float64
}

// Aggregate transforms a flat trade list into the derived dashboard
// metrics. It owns no state, performs no I/O, and never mutates its inputs.
// When trades is empty, summaries (if any) are used as a fallback source;
// when both are empty the result is nil.
func Aggregate(trades []models.TradeRecord, summaries []models.StrategySummary, opts Options) *Result {
	if opts.DayCap <= 0 {
		opts.DayCap = DefaultDayCap
	}
	if len(trades) == 0 {
		return fromSummaries(summaries, opts)
	}

	// Work on a sorted copy: streaks and drawdown are chronological by
	// CreatedAt, never by slice position.
	ordered := make([]models.TradeRecord, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	res := &Result{}
	stratRollups := map[string]*Rollup{}
	platRollups := map[string]*Rollup{}
	days := map[string]*DailyBucket{}
	dayStrategyPnl := map[string]map[string]float64{}
	resolved := make([]models.TradeRecord, 0, len(ordered))

	for i := range ordered {
		t := &ordered[i]
		platform := Platform(t)
		sr := ensureRollup(stratRollups, t.Strategy, StrategyLabel(t.Strategy))
		pr := ensureRollup(platRollups, platform, platform)

		res.Totals.TotalTrades++
		switch t.Outcome {
		case models.OutcomeFailed:
			// Excluded from every P&L sum and every ratio, reported only
			// as a count.
			res.Totals.FailedTrades++
			sr.Failed++
			pr.Failed++
			continue
		case models.OutcomePending:
			res.Totals.PendingTrades++
			sr.Pending++
			pr.Pending++
			sr.Trades++
			pr.Trades++
			continue
		}

		profit := t.Profit()
		res.Totals.TotalPnl += profit
		if t.Outcome == models.OutcomeWon {
			res.Totals.WinningTrades++
		} else {
			res.Totals.LosingTrades++
		}
		resolved = append(resolved, *t)

		for _, r := range []*Rollup{sr, pr} {
			r.Trades++
			r.Pnl += profit
			if t.Outcome == models.OutcomeWon {
				r.Wins++
			} else {
				r.Losses++
			}
			if r.Wins+r.Losses == 1 || profit > r.BestTrade {
				r.BestTrade = profit
			}
			if r.Wins+r.Losses == 1 || profit < r.WorstTrade {
				r.WorstTrade = profit
			}
		}

		day := t.CreatedAt.UTC().Format(time.DateOnly)
		b, ok := days[day]
		if !ok {
			b = &DailyBucket{Date: day}
			days[day] = b
		}
		b.Pnl += profit
		b.Trades++

		if dayStrategyPnl[day] == nil {
			dayStrategyPnl[day] = map[string]float64{}
		}
		dayStrategyPnl[day][t.Strategy] += profit
	}

	res.Strategies = sortRollups(stratRollups)
	res.Platforms = sortRollups(platRollups)

	fullDaily := sortDaily(days)
	res.Performance = computePerformance(resolved, fullDaily, opts.StartingBalance)
	res.Daily = capDays(fullDaily, opts.DayCap)
	res.Cumulative = cumulativeSeries(fullDaily, dayStrategyPnl, opts.DayCap)
	return res
}

// fromSummaries builds a degraded all-time result from pre-aggregated
// strategy summaries. Daily and cumulative series are unavailable on this
// path; ratios that need per-trade data stay zero.
func fromSummaries(summaries []models.StrategySummary, opts Options) *Result {
	if len(summaries) == 0 {
		return nil
	}
	res := &Result{FromSummary: true}
	res.Strategies = make([]Rollup, 0, len(summaries))
	for _, s := range summaries {
		r := Rollup{
			Key:        s.Strategy,
			Label:      StrategyLabel(s.Strategy),
			Pnl:        s.TotalPnl,
			Trades:     s.TotalTrades,
			Wins:       s.WinningTrades,
			Losses:     s.LosingTrades,
			BestTrade:  s.BestTrade,
			WorstTrade: s.WorstTrade,
			WinRate:    safeRate(s.WinningTrades, s.WinningTrades+s.LosingTrades),
		}
		res.Strategies = append(res.Strategies, r)
		res.Totals.TotalTrades += s.TotalTrades
		res.Totals.WinningTrades += s.WinningTrades
		res.Totals.LosingTrades += s.LosingTrades
		res.Totals.TotalPnl += s.TotalPnl
	}
	sort.Slice(res.Strategies, func(i, j int) bool {
		return res.Strategies[i].Key < res.Strategies[j].Key
	})
	res.Performance.WinRate = safeRate(res.Totals.WinningTrades,
		res.Totals.WinningTrades+res.Totals.LosingTrades)
	res.Performance.CurrentStreakType = StreakNone
	res.Performance.StartingBalance = opts.StartingBalance
	res.Performance.EndingBalance = opts.StartingBalance + res.Totals.TotalPnl
	return res
}

func ensureRollup(m map[string]*Rollup, key, label string) *Rollup {
	r, ok := m[key]
	if !ok {
		r = &Rollup{Key: key, Label: label}
		m[key] = r
	}
	return r
}

func sortRollups(m map[string]*Rollup) []Rollup {
	out := make([]Rollup, 0, len(m))
	for _, r := range m {
		r.WinRate = safeRate(r.Wins, r.Wins+r.Losses)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sortDaily(days map[string]*DailyBucket) []DailyBucket {
	out := make([]DailyBucket, 0, len(days))
	for _, b := range days {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func capDays(daily []DailyBucket, cap int) []DailyBucket {
	if len(daily) <= cap {
		return daily
	}
	return daily[len(daily)-cap:]
}

// cumulativeSeries builds the forward-filled running total per strategy for
// the cumulative P&L line chart. Every point carries the total for every
// strategy seen so far.
func cumulativeSeries(daily []DailyBucket, perDay map[string]map[string]float64, cap int) []CumulativePoint {
	running := map[string]float64{}
	points := make([]CumulativePoint, 0, len(daily))
	for _, d := range daily {
		for strat, pnl := range perDay[d.Date] {
			running[strat] += pnl
		}
		totals := make(map[string]float64, len(running))
		for k, v := range running {
			totals[k] = v
		}
		points = append(points, CumulativePoint{Date: d.Date, Totals: totals})
	}
	if len(points) > cap {
		points = points[len(points)-cap:]
	}
	return points
}

// safeRate returns num/den as a percentage, 0 when den is zero.
func safeRate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
