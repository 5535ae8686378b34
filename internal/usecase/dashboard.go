package usecase

import (
	"context"
	"time"

	"github.com/Rut304/polybot-sub000/internal/analytics"
	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/pkg/logger"
	"github.com/Rut304/polybot-sub000/pkg/util"
)

// DashboardService answers the analytics queries behind the dashboard
// charts. Raw trades are the source of truth; the pre-aggregated strategy
// summaries are used only when the trade window comes back empty.
type DashboardService struct {
	trades   repository.TradeStore
	settings *SettingsService
	metrics  repository.Metrics
	log      *logger.Logger

	defaultLookbackHours int
	dayCap               int
	now                  func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(
	trades repository.TradeStore,
	settings *SettingsService,
	metrics repository.Metrics,
	log *logger.Logger,
	defaultLookbackHours, dayCap int,
) *DashboardService {
	if defaultLookbackHours <= 0 {
		defaultLookbackHours = 168
	}
	if dayCap <= 0 {
		dayCap = analytics.DefaultDayCap
	}
	return &DashboardService{
		trades:               trades,
		settings:             settings,
		metrics:              metrics,
		log:                  log,
		defaultLookbackHours: defaultLookbackHours,
		dayCap:               dayCap,
		now:                  time.Now,
	}
}

// Analytics aggregates the trade window for one dashboard view. A nil
// result means no data for the window, not an error.
func (s *DashboardService) Analytics(ctx context.Context, req models.AnalyticsRequest) (*analytics.Result, error) {
	start := time.Now()
	mode := repository.NormalizeMode(req.Mode)
	from, to := util.LookbackWindow(s.now(), req.LookbackHours, s.defaultLookbackHours)

	trades, err := s.trades.Window(ctx, mode, from, to, 0)
	if err != nil {
		s.metrics.RecordError("trade_window")
		return nil, err
	}

	var summaries []models.StrategySummary
	if len(trades) == 0 {
		summaries, err = s.trades.Summaries(ctx, mode)
		if err != nil {
			s.metrics.RecordError("trade_summaries")
			return nil, err
		}
	}

	dayCap := s.dayCap
	if req.Days > 0 {
		dayCap = req.Days
	}

	result := analytics.Aggregate(trades, summaries, analytics.Options{
		DayCap:          dayCap,
		StartingBalance: s.startingBalance(ctx),
	})

	s.metrics.RecordAggregation(string(mode), len(trades))
	s.metrics.RecordLatency("analytics", time.Since(start).Seconds())
	return result, nil
}

// Trades returns the raw trade window for the trade log table.
func (s *DashboardService) Trades(ctx context.Context, req models.TradesRequest) ([]models.TradeRecord, error) {
	mode := repository.NormalizeMode(req.Mode)
	from, to := util.LookbackWindow(s.now(), req.LookbackHours, s.defaultLookbackHours)
	return s.trades.Window(ctx, mode, from, to, req.Limit)
}

// startingBalance reads the configured starting balance, falling back to
// the default when settings cannot be loaded. Drawdown seeded from the
// default is better than failing the whole analytics request.
func (s *DashboardService) startingBalance(ctx context.Context) float64 {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		s.log.Warn("loading settings for analytics", logger.Error(err))
		def, derr := DefaultSettings()
		if derr != nil {
			return 0
		}
		return def.StartingBalance
	}
	return settings.StartingBalance
}
