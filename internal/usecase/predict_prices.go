package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TrendPulse/internal/domain/models"
	"TrendPulse/internal/domain/repository"
	"TrendPulse/internal/services/market"
	"TrendPulse/pkg/cache"
	applogger "TrendPulse/pkg/logger"
)

// PredictConfig holds settings for one prediction run.
type PredictConfig struct {
	Symbol             string
	SentimentIndex     string
	PredictionIndex    string
	AnalysisDays       int
	Interval           time.Duration
	WindowSize         int
	SentimentThreshold float64
	UpFactor           float64
	DownFactor         float64
	TradeEndHour       int
	UTCOffsetHours     int
	CacheTTL           time.Duration
}

// PredictionCacheKey is where the latest materialized run is cached for the
// read API.
func PredictionCacheKey(symbol string) string {
	return "predictions:latest:" + symbol
}

// PredictPrices merges price and sentiment buckets, groups them into trading
// days and rewrites the prediction index with materialized intraday points.
type PredictPrices struct {
	ticks   repository.TickStore
	docs    repository.DocumentStore
	cache   cache.Service
	metrics repository.Metrics
	log     *applogger.Logger
	cfg     PredictConfig
}

// NewPredictPrices creates the prediction usecase.
func NewPredictPrices(
	ticks repository.TickStore,
	docs repository.DocumentStore,
	c cache.Service,
	metrics repository.Metrics,
	log *applogger.Logger,
	cfg PredictConfig,
) *PredictPrices {
	return &PredictPrices{ticks: ticks, docs: docs, cache: c, metrics: metrics, log: log, cfg: cfg}
}

// Run executes one prediction pass. The momentum window starts empty on
// every run so a stale window from a previous dataset cannot leak in.
func (u *PredictPrices) Run(ctx context.Context) error {
	start := time.Now()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -u.cfg.AnalysisDays)

	rawTicks, err := u.ticks.QueryRange(ctx, u.cfg.Symbol, from, to)
	if err != nil {
		u.metrics.RecordError("predict_ticks")
		return fmt.Errorf("load ticks: %w", err)
	}
	sentiments, err := u.docs.FetchSentimentBuckets(ctx, u.cfg.SentimentIndex)
	if err != nil {
		u.metrics.RecordError("predict_sentiments")
		return fmt.Errorf("load sentiment buckets: %w", err)
	}

	prices := market.AggregatePrices(rawTicks, u.cfg.Interval)
	merged := market.Merge(prices, sentiments)
	calendar := market.NewCalendar(u.cfg.UTCOffsetHours, u.cfg.TradeEndHour)
	days := calendar.GroupByTradingDay(merged)

	predictor := market.NewMomentumPredictor(
		u.cfg.WindowSize,
		u.cfg.SentimentThreshold,
		u.cfg.UpFactor,
		u.cfg.DownFactor,
	)
	preds := market.FilterDirectional(predictor.Predict(days))
	points := market.Materialize(preds)

	if err := u.docs.DeleteIndex(ctx, u.cfg.PredictionIndex); err != nil {
		u.metrics.RecordError("predict_delete")
		return fmt.Errorf("reset prediction index: %w", err)
	}
	if err := u.docs.StorePredictions(ctx, u.cfg.PredictionIndex, points); err != nil {
		u.metrics.RecordError("predict_store")
		return fmt.Errorf("store predictions: %w", err)
	}

	u.cachePoints(ctx, points)

	u.metrics.RecordPredictions(len(preds))
	u.metrics.RecordLatency("predict_run", time.Since(start).Seconds())
	u.log.Info("prediction run finished",
		applogger.String("symbol", u.cfg.Symbol),
		applogger.Int("ticks", len(rawTicks)),
		applogger.Int("price_buckets", len(prices)),
		applogger.Int("merged", len(merged)),
		applogger.Int("trading_days", len(days)),
		applogger.Int("predictions", len(preds)),
		applogger.Int("points", len(points)),
		applogger.Duration("took", time.Since(start)),
	)
	return nil
}

// CachedPrediction is the API-facing shape of one intraday point.
type CachedPrediction struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
	Bias  string    `json:"bias"`
}

func (u *PredictPrices) cachePoints(ctx context.Context, points []models.IntradayPoint) {
	if u.cache == nil {
		return
	}
	out := make([]CachedPrediction, len(points))
	for i, p := range points {
		out[i] = CachedPrediction{Date: p.Timestamp, Price: p.PredictedPrice, Bias: p.Bias.String()}
	}
	b, err := json.Marshal(out)
	if err != nil {
		u.log.Warn("cache marshal failed", applogger.Error(err))
		return
	}
	if err := u.cache.Set(ctx, PredictionCacheKey(u.cfg.Symbol), b, u.cfg.CacheTTL); err != nil {
		u.log.Warn("cache write failed", applogger.Error(err))
	}
}
