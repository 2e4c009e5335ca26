//go:build wireinject
// +build wireinject

package di

import (
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/config"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories (with business logic)
		ProvideCHStorage,
		ProvideGameLogStorage,
		ProvideSlateStore,
		ProvideGameLogStore,
		ProvideAlertPublisher,
		ProvideCriteriaSource,
		ProvideStatFeed,
		ProvideSlateFeed,

		// Use cases
		ProvideCriteriaEngine,
		ProvidePropReportUseCase,
		ProvideAlertScanUseCase,
		ProvideScanQueue,
		ProvideSlateSync,
		ProvideGameLogProcessor,
		ProvideGameLogCollector,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
