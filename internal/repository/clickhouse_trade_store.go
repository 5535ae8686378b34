package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
)

// ClickHouseTradeStore implements TradeStore on ClickHouse. Trade history
// is append-heavy and read as time windows, which fits the MergeTree
// layout ordered by (created_at, id).
type ClickHouseTradeStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseTradeStore creates a ClickHouse-backed trade store.
func NewClickHouseTradeStore(db *sql.DB, table string) repository.TradeStore {
	if table == "" {
		table = "bot_trades"
	}
	return &ClickHouseTradeStore{db: db, table: table}
}

func (s *ClickHouseTradeStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id String,
		created_at DateTime64(3, 'UTC'),
		strategy String,
		mode LowCardinality(String),
		platform LowCardinality(String),
		polymarket_token_id String,
		kalshi_ticker String,
		exchange_symbol String,
		broker_symbol String,
		position_size_usd Float64,
		actual_profit_usd Nullable(Float64),
		outcome LowCardinality(String)
	) ENGINE = ReplacingMergeTree
	ORDER BY (created_at, id)`, s.table)
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *ClickHouseTradeStore) Insert(ctx context.Context, t *models.TradeRecord) error {
	return s.InsertBatch(ctx, []models.TradeRecord{*t})
}

func (s *ClickHouseTradeStore) InsertBatch(ctx context.Context, trades []models.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	const chunkSize = 1000
	for start := 0; start < len(trades); start += chunkSize {
		end := start + chunkSize
		if end > len(trades) {
			end = len(trades)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*12)
		for i := range trades[start:end] {
			t := &trades[start+i]
			if t.ID == "" || t.CreatedAt.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				t.ID,
				t.CreatedAt.UTC(),
				t.Strategy,
				t.Mode,
				t.Platform,
				t.PolymarketTokenID,
				t.KalshiTicker,
				t.ExchangeSymbol,
				t.BrokerSymbol,
				t.PositionSizeUsd,
				t.ActualProfitUsd,
				string(t.Outcome),
			)
		}
		if len(values) == 0 {
			continue
		}

		q := fmt.Sprintf(`INSERT INTO %s
			(id, created_at, strategy, mode, platform, polymarket_token_id, kalshi_ticker,
			 exchange_symbol, broker_symbol, position_size_usd, actual_profit_usd, outcome)
			VALUES %s`, s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert trades: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseTradeStore) Window(ctx context.Context, mode repository.Mode, from, to time.Time, limit int) ([]models.TradeRecord, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT id, created_at, strategy, mode, platform,
		polymarket_token_id, kalshi_ticker, exchange_symbol, broker_symbol,
		position_size_usd, actual_profit_usd, outcome
		FROM %s WHERE created_at >= ? AND created_at < ?`, s.table)

	args := []interface{}{from.UTC(), to.UTC()}
	if mode != repository.ModeAll {
		sb.WriteString(" AND mode = ?")
		args = append(args, string(mode))
	}
	sb.WriteString(" ORDER BY created_at ASC")
	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var t models.TradeRecord
		var createdAt time.Time
		var profit sql.NullFloat64
		var outcome string
		if err := rows.Scan(&t.ID, &createdAt, &t.Strategy, &t.Mode, &t.Platform,
			&t.PolymarketTokenID, &t.KalshiTicker, &t.ExchangeSymbol, &t.BrokerSymbol,
			&t.PositionSizeUsd, &profit, &outcome); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		t.CreatedAt = createdAt.UTC()
		t.Outcome = models.Outcome(outcome)
		if profit.Valid {
			v := profit.Float64
			t.ActualProfitUsd = &v
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *ClickHouseTradeStore) Summaries(ctx context.Context, mode repository.Mode) ([]models.StrategySummary, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT strategy,
		sum(if(outcome IN ('won', 'lost'), coalesce(actual_profit_usd, 0), 0)) AS total_pnl,
		count() AS total_trades,
		countIf(outcome = 'won') AS winning_trades,
		countIf(outcome = 'lost') AS losing_trades,
		maxIf(coalesce(actual_profit_usd, 0), outcome IN ('won', 'lost')) AS best_trade,
		minIf(coalesce(actual_profit_usd, 0), outcome IN ('won', 'lost')) AS worst_trade
		FROM %s WHERE outcome != 'failed_execution'`, s.table)

	args := []interface{}{}
	if mode != repository.ModeAll {
		sb.WriteString(" AND mode = ?")
		args = append(args, string(mode))
	}
	sb.WriteString(" GROUP BY strategy ORDER BY strategy ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.StrategySummary
	for rows.Next() {
		var sm models.StrategySummary
		if err := rows.Scan(&sm.Strategy, &sm.TotalPnl, &sm.TotalTrades,
			&sm.WinningTrades, &sm.LosingTrades, &sm.BestTrade, &sm.WorstTrade); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

func (s *ClickHouseTradeStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseTradeStore) Close() error {
	return nil // pool owned by pkg/clickhouse
}
