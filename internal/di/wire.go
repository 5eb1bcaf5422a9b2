//go:build wireinject
// +build wireinject

package di

import (
	"TrendPulse/pkg/config"
	"TrendPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideErrorBuffer,
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideElasticClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvideDocumentStore,
		ProvideTickStore,
		ProvideTickPublisher,
		ProvideFeedStream,

		// Classification
		ProvideClassifierRegistry,
		ProvideSpamFilter,

		// Use cases
		ProvideClassifyUsecase,
		ProvideAggregateUsecase,
		ProvidePredictUsecase,
		ProvideTickProcessor,
		ProvideTickCollector,
		ProvideKafkaTicksHandler,

		// HTTP
		ProvideAPIHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
