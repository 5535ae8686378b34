package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the domain Metrics interface using Prometheus.
type Recorder struct {
	tradesIngested *prometheus.CounterVec
	aggregations   *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	windowSize     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		tradesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polybot_trades_ingested_total",
				Help: "Total number of trade records ingested from the bot",
			},
			[]string{"platform", "outcome"},
		),
		aggregations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polybot_aggregations_total",
				Help: "Total number of analytics aggregations computed",
			},
			[]string{"mode"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polybot_cache_lookups_total",
				Help: "Trade window cache lookups by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polybot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polybot_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		windowSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polybot_aggregation_window_trades",
				Help:    "Number of trades per aggregation window",
				Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"mode"},
		),
	}
}

// RecordTradeIngested counts one ingested trade event.
func (r *Recorder) RecordTradeIngested(platform, outcome string) {
	r.tradesIngested.WithLabelValues(platform, outcome).Inc()
}

// RecordAggregation counts one aggregation run and its window size.
func (r *Recorder) RecordAggregation(mode string, trades int) {
	r.aggregations.WithLabelValues(mode).Inc()
	r.windowSize.WithLabelValues(mode).Observe(float64(trades))
}

// RecordCacheLookup counts a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
