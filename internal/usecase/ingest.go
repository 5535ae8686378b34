package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rut304/polybot-sub000/internal/analytics"
	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/pkg/logger"
)

// TradeIngestor consumes trade events published by the bot processes and
// writes them to the trade store. It implements kafka.MessageHandler.
type TradeIngestor struct {
	topic   string
	store   repository.TradeStore
	metrics repository.Metrics
	log     *logger.Logger
}

// NewTradeIngestor creates a trade event handler for the given topic.
func NewTradeIngestor(topic string, store repository.TradeStore, metrics repository.Metrics, log *logger.Logger) *TradeIngestor {
	return &TradeIngestor{topic: topic, store: store, metrics: metrics, log: log}
}

// Topic returns the Kafka topic this handler consumes.
func (i *TradeIngestor) Topic() string {
	return i.topic
}

// Handle decodes one trade event and persists it. Malformed events are
// logged and dropped rather than returned as errors, so the consumer does
// not retry a message that can never parse.
func (i *TradeIngestor) Handle(ctx context.Context, data []byte) error {
	var trade models.TradeRecord
	if err := json.Unmarshal(data, &trade); err != nil {
		i.metrics.RecordError("ingest_decode")
		i.log.Warn("dropping undecodable trade event", logger.Error(err))
		return nil
	}

	if err := validateTradeEvent(&trade); err != nil {
		i.metrics.RecordError("ingest_invalid")
		i.log.Warn("dropping invalid trade event",
			logger.String("id", trade.ID),
			logger.Error(err))
		return nil
	}

	if trade.Mode == "" {
		trade.Mode = string(repository.ModePaper)
	}
	trade.CreatedAt = trade.CreatedAt.UTC()

	if err := i.store.Insert(ctx, &trade); err != nil {
		i.metrics.RecordError("ingest_insert")
		return fmt.Errorf("insert trade %s: %w", trade.ID, err)
	}

	i.metrics.RecordTradeIngested(analytics.Platform(&trade), string(trade.Outcome))
	i.log.Debug("trade ingested",
		logger.String("id", trade.ID),
		logger.String("strategy", trade.Strategy),
		logger.String("outcome", string(trade.Outcome)))
	return nil
}

func validateTradeEvent(t *models.TradeRecord) error {
	if t.ID == "" {
		return fmt.Errorf("missing id")
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("missing createdAt")
	}
	if t.Strategy == "" {
		return fmt.Errorf("missing strategy")
	}
	switch t.Outcome {
	case models.OutcomeWon, models.OutcomeLost, models.OutcomePending, models.OutcomeFailed:
	default:
		return fmt.Errorf("unknown outcome %q", t.Outcome)
	}
	if t.Outcome.Resolved() && t.ActualProfitUsd == nil {
		return fmt.Errorf("resolved trade without profit")
	}
	if t.CreatedAt.After(time.Now().Add(5 * time.Minute)) {
		return fmt.Errorf("createdAt in the future")
	}
	return nil
}
