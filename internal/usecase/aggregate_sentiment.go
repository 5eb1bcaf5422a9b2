package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/domain/repository"
	"TrendPulse/internal/services/market"
	applogger "TrendPulse/pkg/logger"
)

// AggregateConfig holds settings for one aggregation run.
type AggregateConfig struct {
	DocumentIndex  string
	SentimentIndex string
	ClassifierName string
	SearchFilter   string
	BatchSize      int
	KeepAlive      time.Duration
	Interval       time.Duration
}

// AggregateSentiment rebuilds the sentiment bucket index from scored
// documents. The target index is dropped and rewritten whole so stale
// buckets from earlier runs never linger.
type AggregateSentiment struct {
	docs    repository.DocumentStore
	metrics repository.Metrics
	log     *applogger.Logger
	cfg     AggregateConfig
}

// NewAggregateSentiment creates the aggregation usecase.
func NewAggregateSentiment(docs repository.DocumentStore, metrics repository.Metrics, log *applogger.Logger, cfg AggregateConfig) *AggregateSentiment {
	return &AggregateSentiment{docs: docs, metrics: metrics, log: log, cfg: cfg}
}

// Run executes one aggregation pass.
func (u *AggregateSentiment) Run(ctx context.Context) error {
	start := time.Now()
	field := SentimentField(u.cfg.ClassifierName)

	page, err := u.docs.ScrollOpen(ctx, repository.ScrollQuery{
		Index:          u.cfg.DocumentIndex,
		Query:          u.cfg.SearchFilter,
		SentimentField: field,
		BatchSize:      u.cfg.BatchSize,
		KeepAlive:      u.cfg.KeepAlive,
	})
	if err != nil {
		u.metrics.RecordError("aggregate_scroll")
		return fmt.Errorf("open document scroll: %w", err)
	}

	cursor := page.Cursor
	defer func() {
		if cursor != "" {
			if err := u.docs.ScrollClear(context.WithoutCancel(ctx), cursor); err != nil {
				u.log.Warn("clear scroll failed", applogger.Error(err))
			}
		}
	}()

	var obs []market.ClassifiedObservation
	for {
		for _, doc := range page.Documents {
			if doc.Sentiment == nil {
				continue
			}
			obs = append(obs, market.ClassifiedObservation{
				Timestamp: doc.Date,
				Polarity:  *doc.Sentiment,
			})
		}
		if len(page.Documents) == 0 {
			break
		}
		page, err = u.docs.ScrollNext(ctx, cursor, u.cfg.KeepAlive)
		if err != nil {
			u.metrics.RecordError("aggregate_scroll")
			return fmt.Errorf("advance document scroll: %w", err)
		}
		cursor = page.Cursor
	}

	buckets := market.AggregateSentiments(obs, u.cfg.Interval)

	if err := u.docs.DeleteIndex(ctx, u.cfg.SentimentIndex); err != nil {
		u.metrics.RecordError("aggregate_delete")
		return fmt.Errorf("reset sentiment index: %w", err)
	}
	if err := u.docs.StoreSentimentBuckets(ctx, u.cfg.SentimentIndex, buckets); err != nil {
		u.metrics.RecordError("aggregate_store")
		return fmt.Errorf("store sentiment buckets: %w", err)
	}

	u.metrics.RecordLatency("aggregate_run", time.Since(start).Seconds())
	u.log.Info("aggregation run finished",
		applogger.Int("observations", len(obs)),
		applogger.Int("buckets", len(buckets)),
		applogger.Duration("took", time.Since(start)),
	)
	return nil
}
