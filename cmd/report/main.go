package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"

	"github.com/Rut304/polybot-sub000/internal/analytics"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	internalrepo "github.com/Rut304/polybot-sub000/internal/repository"
	pkgch "github.com/Rut304/polybot-sub000/pkg/clickhouse"
	"github.com/Rut304/polybot-sub000/pkg/config"
	"github.com/Rut304/polybot-sub000/pkg/util"
)

// report prints the strategy performance table straight from ClickHouse,
// for operators who live in a terminal instead of the dashboard.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	mode := flag.String("mode", "all", "trading mode filter: paper, live, all")
	hours := flag.Int("hours", 168, "lookback window in hours")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
	)
	if err != nil {
		log.Fatalf("clickhouse: %v", err)
	}
	defer client.Close()

	store := internalrepo.NewClickHouseTradeStore(client.DB(), "bot_trades")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	from, to := util.LookbackWindow(time.Now(), *hours, 168)
	trades, err := store.Window(ctx, repository.NormalizeMode(*mode), from, to, 0)
	if err != nil {
		log.Fatalf("query trades: %v", err)
	}

	res := analytics.Aggregate(trades, nil, analytics.Options{})
	if res == nil {
		fmt.Printf("no trades in the last %dh (mode=%s)\n", *hours, *mode)
		return
	}

	renderStrategies(res)
	renderPerformance(res)
}

func renderStrategies(res *analytics.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Strategy", "Trades", "Wins", "Losses", "Win %", "P&L", "Best", "Worst"})

	for _, r := range res.Strategies {
		t.AppendRow(table.Row{
			r.Label,
			r.Trades,
			r.Wins,
			r.Losses,
			fmt.Sprintf("%.1f", r.WinRate),
			usd(r.Pnl),
			usd(r.BestTrade),
			usd(r.WorstTrade),
		})
	}
	t.AppendFooter(table.Row{"Total", res.Totals.TotalTrades, res.Totals.WinningTrades,
		res.Totals.LosingTrades, "", usd(res.Totals.TotalPnl), "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	t.Render()
}

func renderPerformance(res *analytics.Result) {
	p := res.Performance
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Win rate", fmt.Sprintf("%.1f%%", p.WinRate)},
		{"Profit factor", ratio(p.ProfitFactor)},
		{"Expectancy", usd(p.Expectancy)},
		{"Payoff ratio", ratio(p.PayoffRatio)},
		{"Max drawdown", fmt.Sprintf("%s (%.1f%%)", usd(p.MaxDrawdownUsd), p.MaxDrawdownPct)},
		{"Daily volatility", usd(p.Volatility)},
		{"Longest win streak", p.MaxWinStreak},
		{"Longest loss streak", p.MaxLossStreak},
	})
	t.Render()
}

func usd(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func ratio(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", v)
}
