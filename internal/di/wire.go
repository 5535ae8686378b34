//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Rut304/polybot-sub000/pkg/config"
	"github.com/Rut304/polybot-sub000/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvidePostgresClient,
		ProvideCache,

		// Repositories
		ProvideTradeStore,
		ProvideSettingsStore,
		ProvideFlagStore,

		// Use cases
		ProvideSettingsService,
		ProvideFlagService,
		ProvideDashboardService,
		ProvideKafkaConsumer,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
