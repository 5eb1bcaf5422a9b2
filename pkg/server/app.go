package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"TrendPulse/internal/usecase"
	"TrendPulse/pkg/cache"
	pkgch "TrendPulse/pkg/clickhouse"
	"TrendPulse/pkg/config"
	xhttp "TrendPulse/pkg/http"
	pkgkafka "TrendPulse/pkg/kafka"
	applogger "TrendPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// App encapsulates the entire application lifecycle: the scheduled analysis
// pipeline, the optional tick ingestion path, and the HTTP read API.
type App struct {
	cfg *config.Config
	log *applogger.Logger

	classify  *usecase.ClassifyDocuments
	aggregate *usecase.AggregateSentiment
	predict   *usecase.PredictPrices

	collector *usecase.TickCollector
	consumer  *pkgkafka.Consumer
	kh        pkgkafka.MessageHandler

	chClient *pkgch.Client
	cache    cache.Service

	httpServer  *xhttp.Server
	httpHandler xhttp.Handler

	cron    *cron.Cron
	running sync.Mutex
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	classify *usecase.ClassifyDocuments,
	aggregate *usecase.AggregateSentiment,
	predict *usecase.PredictPrices,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		classify:  classify,
		aggregate: aggregate,
		predict:   predict,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		cache:     cacheSvc,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.cfg.Feed.Enabled && a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				a.log.Error("collector error", applogger.Error(err))
			}
		}()
		a.log.Info("collector started", applogger.Strings("symbols", a.cfg.Feed.Symbols))
	}

	if a.cfg.Kafka.Enabled && a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if a.cfg.Scheduler.Enabled {
		if err := a.startScheduler(ctx); err != nil {
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// startScheduler runs the analysis pipeline once immediately and then on
// every scheduler tick.
func (a *App) startScheduler(ctx context.Context) error {
	a.cron = cron.New()
	spec := "@every " + a.cfg.Scheduler.Interval.String()
	if _, err := a.cron.AddFunc(spec, func() { a.runPipeline(ctx) }); err != nil {
		return err
	}
	a.cron.Start()
	a.log.Info("scheduler started", applogger.String("interval", a.cfg.Scheduler.Interval.String()))

	go a.runPipeline(ctx)
	return nil
}

// runPipeline executes classify, aggregate and predict in order. Ticks that
// fire while a pipeline is still running are skipped, not queued.
func (a *App) runPipeline(ctx context.Context) {
	if !a.running.TryLock() {
		a.log.Warn("pipeline still running, skipping tick")
		return
	}
	defer a.running.Unlock()

	if _, err := a.classify.Run(ctx); err != nil {
		a.log.Error("classification run failed", applogger.Error(err))
		return
	}
	if err := a.aggregate.Run(ctx); err != nil {
		a.log.Error("aggregation run failed", applogger.Error(err))
		return
	}
	if err := a.predict.Run(ctx); err != nil {
		a.log.Error("prediction run failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}

	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			a.log.Warn("collector stop error", applogger.Error(err))
		}
		a.collector.Processor().Close()
	}

	if a.consumer != nil {
		a.consumer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
