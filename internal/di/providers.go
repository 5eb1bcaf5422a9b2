package di

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/domain/repository"
	"TrendPulse/internal/handler/api"
	internalrepo "TrendPulse/internal/repository"
	"TrendPulse/internal/service/feed"
	"TrendPulse/internal/services/sentiment"
	"TrendPulse/internal/usecase"
	"TrendPulse/pkg/cache"
	pkgch "TrendPulse/pkg/clickhouse"
	"TrendPulse/pkg/config"
	"TrendPulse/pkg/elastic"
	xhttp "TrendPulse/pkg/http"
	pkgkafka "TrendPulse/pkg/kafka"
	applogger "TrendPulse/pkg/logger"
	"TrendPulse/pkg/metrics"
	"TrendPulse/pkg/server"
)

// ProvideErrorBuffer creates the diagnostics ring surfaced by /healthz.
func ProvideErrorBuffer() *applogger.ErrorBuffer {
	return applogger.NewErrorBuffer(50)
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config, buf *applogger.ErrorBuffer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachErrorBuffer(buf)
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideElasticClient creates the Elasticsearch client.
func ProvideElasticClient(cfg *config.Config) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.WithAddresses(cfg.Elasticsearch.Addresses),
		elastic.WithCredentials(cfg.Elasticsearch.Username, cfg.Elasticsearch.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideDocumentStore creates the Elasticsearch document store.
func ProvideDocumentStore(client *elastic.Client, log *applogger.Logger, cfg *config.Config) repository.DocumentStore {
	return internalrepo.NewESDocumentStore(client, log, cfg.Elasticsearch.BulkChunkSize)
}

// ProvideTickStore creates ClickHouse tick storage and ensures its schema.
func ProvideTickStore(chClient *pkgch.Client, cfg *config.Config) (repository.TickStore, error) {
	store := internalrepo.NewClickHouseTickStore(chClient.DB(), cfg.ClickHouse.Database+".price_ticks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("tick store init: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer when Kafka is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTickPublisher creates the Kafka publisher repository.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaTickPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer when Kafka is enabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaTicksHandler registers the handler for the ticks topic.
func ProvideKafkaTicksHandler(store repository.TickStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaTicksHandler {
	return usecase.NewKafkaTicksHandler(cfg.Kafka.Topic, store, m)
}

// ProvideFeedStream creates the WebSocket market stream.
func ProvideFeedStream(cfg *config.Config, log *applogger.Logger) repository.MarketStream {
	return feed.New(
		cfg.Feed.APIKey,
		cfg.Feed.WebSocketURL,
		cfg.Feed.Symbols,
		cfg.Feed.ReconnectDelay,
		cfg.Feed.PingInterval,
		log,
	)
}

// ProvideTickProcessor creates the tick processor use case.
func ProvideTickProcessor(pub repository.Publisher, store repository.TickStore, m repository.Metrics, cfg *config.Config) *usecase.TickProcessor {
	return usecase.NewTickProcessor(pub, store, m, cfg.Feed.Backend)
}

// ProvideTickCollector creates the tick collector use case.
func ProvideTickCollector(stream repository.MarketStream, proc *usecase.TickProcessor, m repository.Metrics) *usecase.TickCollector {
	return usecase.NewTickCollector(stream, proc, m)
}

// ProvideCache creates the prediction cache: layered over Redis when
// configured, in-process only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	local := cache.NewMemoryCache()
	if !cfg.Cache.Enabled {
		return local, nil
	}
	remote, err := cache.NewRedisCache(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(local, remote), nil
}

// ProvideClassifierRegistry builds the registry of available classifiers.
func ProvideClassifierRegistry(cfg *config.Config, log *applogger.Logger) *sentiment.Registry {
	return sentiment.NewDefaultRegistry(sentiment.Settings{
		CorpusDir:      cfg.Classifier.CorpusDir,
		StopWordsFile:  cfg.Classifier.StopWordsFile,
		ModelPath:      cfg.Classifier.ModelPath,
		VocabularySize: cfg.Classifier.VocabularySize,
		Evaluate:       cfg.Classifier.Evaluate,
		HoldoutSize:    cfg.Classifier.HoldoutSize,
	}, log)
}

// ProvideSpamFilter loads the spam pattern file when configured.
func ProvideSpamFilter(cfg *config.Config, log *applogger.Logger) (*sentiment.SpamFilter, error) {
	if cfg.Classifier.SpamFilterFile == "" {
		return nil, nil
	}
	f, err := sentiment.LoadSpamFilter(cfg.Classifier.SpamFilterFile)
	if err != nil {
		return nil, fmt.Errorf("spam filter: %w", err)
	}
	return f, nil
}

// ProvideClassifyUsecase creates the classification run.
func ProvideClassifyUsecase(
	docs repository.DocumentStore,
	registry *sentiment.Registry,
	spam *sentiment.SpamFilter,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.ClassifyDocuments {
	return usecase.NewClassifyDocuments(docs, registry, spam, m, log, usecase.ClassifyConfig{
		Index:          cfg.Elasticsearch.DocumentIndex,
		ClassifierName: cfg.Classifier.Name,
		SearchFilter:   cfg.Elasticsearch.SearchFilter,
		BatchSize:      cfg.Elasticsearch.ScrollBatchSize,
		KeepAlive:      cfg.Elasticsearch.ScrollKeepAlive,
		BulkChunkSize:  cfg.Elasticsearch.BulkChunkSize,
		MaxDocuments:   cfg.Elasticsearch.MaxDocuments,
	})
}

// ProvideAggregateUsecase creates the aggregation run.
func ProvideAggregateUsecase(
	docs repository.DocumentStore,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.AggregateSentiment {
	return usecase.NewAggregateSentiment(docs, m, log, usecase.AggregateConfig{
		DocumentIndex:  cfg.Elasticsearch.DocumentIndex,
		SentimentIndex: cfg.Elasticsearch.SentimentIndex,
		ClassifierName: cfg.Classifier.Name,
		SearchFilter:   cfg.Elasticsearch.SearchFilter,
		BatchSize:      cfg.Elasticsearch.ScrollBatchSize,
		KeepAlive:      cfg.Elasticsearch.ScrollKeepAlive,
		Interval:       cfg.AggregationInterval(),
	})
}

// ProvidePredictUsecase creates the prediction run.
func ProvidePredictUsecase(
	ticks repository.TickStore,
	docs repository.DocumentStore,
	c cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.PredictPrices {
	return usecase.NewPredictPrices(ticks, docs, c, m, log, usecase.PredictConfig{
		Symbol:             cfg.Prediction.Symbol,
		SentimentIndex:     cfg.Elasticsearch.SentimentIndex,
		PredictionIndex:    cfg.Elasticsearch.PredictionIndex,
		AnalysisDays:       cfg.Prediction.AnalysisDays,
		Interval:           cfg.AggregationInterval(),
		WindowSize:         cfg.Prediction.AnalysisDays,
		SentimentThreshold: cfg.Prediction.SentimentThreshold,
		UpFactor:           cfg.Prediction.UpFactor,
		DownFactor:         cfg.Prediction.DownFactor,
		TradeEndHour:       cfg.Prediction.TradeEndHour,
		UTCOffsetHours:     cfg.Prediction.UTCOffsetHours,
		CacheTTL:           cfg.Cache.TTL,
	})
}

// ProvideAPIHandler creates the HTTP read API.
func ProvideAPIHandler(
	log *applogger.Logger,
	docs repository.DocumentStore,
	ticks repository.TickStore,
	c cache.Service,
	buf *applogger.ErrorBuffer,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewPredictionsHandler(
		log, docs, ticks, c, buf,
		cfg.Prediction.Symbol,
		cfg.Elasticsearch.SentimentIndex,
		cfg.Elasticsearch.PredictionIndex,
		cfg.Cache.TTL,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	classify *usecase.ClassifyDocuments,
	aggregate *usecase.AggregateSentiment,
	predict *usecase.PredictPrices,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTicksHandler,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *server.App {
	app := server.New(cfg, log, classify, aggregate, predict, collector, consumer, kh, chClient, cacheSvc)
	app.SetHTTPHandler(handler)
	return app
}
