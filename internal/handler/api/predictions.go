package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domrepo "TrendPulse/internal/domain/repository"
	"TrendPulse/internal/usecase"
	"TrendPulse/pkg/cache"
	xhttp "TrendPulse/pkg/http"
	xlogger "TrendPulse/pkg/logger"
	"TrendPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// PredictionsHandler serves the read side of the pipeline: materialized
// predictions, sentiment buckets and component health.
type PredictionsHandler struct {
	logger *xlogger.Logger
	docs   domrepo.DocumentStore
	ticks  domrepo.TickStore
	cache  cache.Service
	errs   *xlogger.ErrorBuffer

	symbol          string
	sentimentIndex  string
	predictionIndex string
	cacheTTL        time.Duration
}

// NewPredictionsHandler creates the API handler.
func NewPredictionsHandler(
	logger *xlogger.Logger,
	docs domrepo.DocumentStore,
	ticks domrepo.TickStore,
	c cache.Service,
	errs *xlogger.ErrorBuffer,
	symbol, sentimentIndex, predictionIndex string,
	cacheTTL time.Duration,
) *PredictionsHandler {
	return &PredictionsHandler{
		logger:          logger,
		docs:            docs,
		ticks:           ticks,
		cache:           c,
		errs:            errs,
		symbol:          symbol,
		sentimentIndex:  sentimentIndex,
		predictionIndex: predictionIndex,
		cacheTTL:        cacheTTL,
	}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/predictions", h.Predictions)
	g.GET("/sentiments", h.Sentiments)
	e.GET("/healthz", h.Health)
}

type predictionsRequest struct {
	Symbol string `query:"symbol" validate:"omitempty,alphanum,max=12"`
}

// Predictions returns the latest materialized intraday points, cache-first.
func (h *PredictionsHandler) Predictions(c echo.Context) error {
	req := &predictionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := req.Symbol
	if symbol == "" {
		symbol = h.symbol
	}

	ctx := c.Request().Context()
	key := usecase.PredictionCacheKey(symbol)
	if h.cache != nil {
		if b, err := h.cache.Get(ctx, key); err == nil {
			var cached []usecase.CachedPrediction
			if err := json.Unmarshal(b, &cached); err == nil {
				return xhttp.SuccessResponse(c, cached)
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("prediction cache read failed", xlogger.Error(err))
		}
	}

	points, err := h.docs.FetchPredictions(ctx, h.predictionIndex)
	if err != nil {
		h.logger.Error("fetch predictions failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("predictions unavailable").WithError(err))
	}

	out := make([]usecase.CachedPrediction, len(points))
	for i, p := range points {
		out[i] = usecase.CachedPrediction{Date: p.Timestamp, Price: p.PredictedPrice, Bias: p.Bias.String()}
	}
	if h.cache != nil && len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = h.cache.Set(ctx, key, b, h.cacheTTL)
		}
	}
	return xhttp.SuccessResponse(c, out)
}

type sentimentBucketResponse struct {
	Date     time.Time `json:"date"`
	Positive int       `json:"positive"`
	Negative int       `json:"negative"`
	Neutral  int       `json:"neutral"`
	Ratio    *float64  `json:"ratio,omitempty"`
}

type sentimentsRequest struct {
	From  string `query:"from" validate:"omitempty,max=64"`
	To    string `query:"to" validate:"omitempty,max=64"`
	Limit int    `query:"limit" default:"500" validate:"min=1,max=10000"`
}

// Sentiments returns the aggregated sentiment buckets, optionally bounded
// by from/to query parameters (RFC3339 or unix seconds) and capped by limit.
func (h *PredictionsHandler) Sentiments(c echo.Context) error {
	req := &sentimentsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	buckets, err := h.docs.FetchSentimentBuckets(c.Request().Context(), h.sentimentIndex)
	if err != nil {
		h.logger.Error("fetch sentiment buckets failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("sentiments unavailable").WithError(err))
	}

	from := util.ParseTimeDefault(req.From, time.Time{})
	to := util.ParseTimeDefault(req.To, time.Time{})

	out := make([]sentimentBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		if !from.IsZero() && b.Start.Before(from) {
			continue
		}
		if !to.IsZero() && b.Start.After(to) {
			continue
		}
		resp := sentimentBucketResponse{
			Date:     b.Start,
			Positive: b.Positive,
			Negative: b.Negative,
			Neutral:  b.Neutral,
		}
		if r, ok := b.Ratio(); ok {
			resp.Ratio = &r
		}
		out = append(out, resp)
	}
	if len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return xhttp.SuccessResponse(c, out)
}

type healthResponse struct {
	Status        string               `json:"status"`
	Elasticsearch string               `json:"elasticsearch"`
	ClickHouse    string               `json:"clickhouse"`
	RecentErrors  []xlogger.ErrorEntry `json:"recent_errors,omitempty"`
}

// Health reports backend connectivity and recent error diagnostics.
func (h *PredictionsHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Elasticsearch: "ok", ClickHouse: "ok"}
	if err := h.docs.Health(ctx); err != nil {
		res.Status = "degraded"
		res.Elasticsearch = err.Error()
	}
	if h.ticks != nil {
		if err := h.ticks.Health(ctx); err != nil {
			res.Status = "degraded"
			res.ClickHouse = err.Error()
		}
	}
	if h.errs != nil {
		res.RecentErrors = h.errs.Snapshot()
	}
	return xhttp.SuccessResponse(c, res)
}
