package di

import (
	"context"
	"fmt"
	"time"

	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/internal/handler/api"
	internalrepo "github.com/Rut304/polybot-sub000/internal/repository"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	"github.com/Rut304/polybot-sub000/pkg/cache"
	pkgch "github.com/Rut304/polybot-sub000/pkg/clickhouse"
	"github.com/Rut304/polybot-sub000/pkg/config"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	pkgkafka "github.com/Rut304/polybot-sub000/pkg/kafka"
	"github.com/Rut304/polybot-sub000/pkg/logger"
	"github.com/Rut304/polybot-sub000/pkg/metrics"
	pkgpg "github.com/Rut304/polybot-sub000/pkg/postgres"
	"github.com/Rut304/polybot-sub000/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates the ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePostgresClient creates the Postgres pool and ensures the schema.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	client, err := pkgpg.NewClient(
		pkgpg.WithDSN(cfg.Postgres.DSN),
		pkgpg.WithMaxConns(int32(cfg.Postgres.MaxConns)),
		pkgpg.WithConnectTimeout(cfg.Postgres.ConnTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	schema := append([]string{}, internalrepo.SettingsSchema...)
	schema = append(schema, internalrepo.FlagSchema...)
	if err := client.InitSchema(ctx, schema); err != nil {
		client.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return client, nil
}

// ProvideCache creates the cache backend, Redis when enabled and an
// in-process map otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(0), nil
	}
	c, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Redis.Addr),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideTradeStore creates the ClickHouse trade store wrapped with the
// read-through cache, and ensures the trade table exists.
func ProvideTradeStore(chClient *pkgch.Client, cacheSvc cache.Service, m repository.Metrics, cfg *config.Config) (repository.TradeStore, error) {
	store := internalrepo.NewClickHouseTradeStore(chClient.DB(), "bot_trades")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("trade store schema: %w", err)
	}

	return internalrepo.NewCachedTradeStore(store, cacheSvc, cfg.Dashboard.CacheTTL, m), nil
}

// ProvideSettingsStore creates the Postgres settings store.
func ProvideSettingsStore(pgClient *pkgpg.Client) repository.SettingsStore {
	return internalrepo.NewPgSettingsStore(pgClient.Pool())
}

// ProvideFlagStore creates the Postgres flag store.
func ProvideFlagStore(pgClient *pkgpg.Client) repository.FlagStore {
	return internalrepo.NewPgFlagStore(pgClient.Pool())
}

// ProvideSettingsService creates the settings use case.
func ProvideSettingsService(store repository.SettingsStore, log *logger.Logger) *usecase.SettingsService {
	return usecase.NewSettingsService(store, log)
}

// ProvideFlagService creates the flag use case.
func ProvideFlagService(store repository.FlagStore) *usecase.FlagService {
	return usecase.NewFlagService(store)
}

// ProvideDashboardService creates the analytics use case.
func ProvideDashboardService(
	trades repository.TradeStore,
	settings *usecase.SettingsService,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.DashboardService {
	return usecase.NewDashboardService(trades, settings, m, log,
		cfg.Dashboard.DefaultLookbackHours, cfg.Dashboard.DayCap)
}

// ProvideKafkaConsumer creates the ingest consumer with the trade handler
// registered. Returns nil when Kafka is disabled.
func ProvideKafkaConsumer(
	cfg *config.Config,
	trades repository.TradeStore,
	m repository.Metrics,
	log *logger.Logger,
) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.RetryMax, cfg.Kafka.BackoffMin, cfg.Kafka.BackoffMax),
		pkgkafka.WithConsumerLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	consumer.RegisterHandler(usecase.NewTradeIngestor(cfg.Kafka.Topic, trades, m, log))
	return consumer, nil
}

// ProvideHTTPHandler composes all API handlers.
func ProvideHTTPHandler(
	log *logger.Logger,
	dashboard *usecase.DashboardService,
	settings *usecase.SettingsService,
	flags *usecase.FlagService,
	trades repository.TradeStore,
	settingsStore repository.SettingsStore,
	cacheSvc cache.Service,
) xhttp.Handler {
	checks := []api.HealthCheck{
		{Name: "clickhouse", Probe: trades.Health},
		{Name: "postgres", Probe: settingsStore.Health},
	}
	// The in-memory cache backend has no Health method.
	if hc, ok := cacheSvc.(interface{ Health(context.Context) error }); ok {
		checks = append(checks, api.HealthCheck{Name: "redis", Probe: hc.Health})
	}

	return api.NewRouter(
		api.NewDashboardHandler(log, dashboard),
		api.NewSettingsHandler(log, settings),
		api.NewFlagsHandler(log, flags),
		api.NewLiveHandler(log, dashboard),
		api.NewHealthHandler(log, checks...),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	chClient *pkgch.Client,
	pgClient *pkgpg.Client,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, handler, consumer, chClient, pgClient, cacheSvc)
}
