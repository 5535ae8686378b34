package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rut304/polybot-sub000/pkg/cache"
	pkgch "github.com/Rut304/polybot-sub000/pkg/clickhouse"
	"github.com/Rut304/polybot-sub000/pkg/config"
	xhttp "github.com/Rut304/polybot-sub000/pkg/http"
	pkgkafka "github.com/Rut304/polybot-sub000/pkg/kafka"
	"github.com/Rut304/polybot-sub000/pkg/logger"
	pkgpg "github.com/Rut304/polybot-sub000/pkg/postgres"
)

// App owns the application lifecycle: it starts the Kafka ingest consumer
// and the HTTP server, then blocks until SIGINT or SIGTERM and shuts
// everything down in reverse order.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	handler  xhttp.Handler
	consumer *pkgkafka.Consumer
	chClient *pkgch.Client
	pgClient *pkgpg.Client
	cache    cache.Service

	httpServer *xhttp.Server
}

// New creates the application. consumer may be nil when Kafka is disabled.
func New(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	chClient *pkgch.Client,
	pgClient *pkgpg.Client,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		consumer: consumer,
		chClient: chClient,
		pgClient: pgClient,
		cache:    cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	}
	if a.cfg.Metrics.Enabled && a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if a.consumer != nil {
		if err := a.consumer.Start(); err != nil {
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.log.Info("dashboard started",
		logger.Int("port", a.cfg.Server.Port),
		logger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting HTTP traffic first, then the ingest path, then the
	// storage clients the two depend on.
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", logger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", logger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", logger.Error(err))
		}
	}
	if a.pgClient != nil {
		a.pgClient.Close()
	}

	a.log.Info("shutdown complete")
	return nil
}
