package repository

import (
	"context"
	"time"

	"TrendPulse/internal/domain/models"
)

// ScrollQuery describes a paged read over a document index. KeepAlive is the
// server-side cursor timeout; it must be renewed on every page request or
// the cursor expires and the fetch has to restart from scratch.
type ScrollQuery struct {
	Index          string
	Query          string
	SentimentField string
	BatchSize      int
	KeepAlive      time.Duration
}

// DocumentPage is one page of a scroll. Cursor is the token for the next
// page request; Total is the server-reported hit count for the whole query.
type DocumentPage struct {
	Documents []models.Document
	Cursor    string
	Total     int
}

type DocumentStore interface {
	ScrollOpen(ctx context.Context, q ScrollQuery) (*DocumentPage, error)
	ScrollNext(ctx context.Context, cursor string, keepAlive time.Duration) (*DocumentPage, error)
	ScrollClear(ctx context.Context, cursor string) error
	UpdateSentiments(ctx context.Context, index, field string, updates []models.SentimentUpdate) error
	StoreSentimentBuckets(ctx context.Context, index string, buckets []models.SentimentBucket) error
	FetchSentimentBuckets(ctx context.Context, index string) ([]models.SentimentBucket, error)
	StorePredictions(ctx context.Context, index string, points []models.IntradayPoint) error
	FetchPredictions(ctx context.Context, index string) ([]models.IntradayPoint, error)
	DeleteIndex(ctx context.Context, index string) error
	Health(ctx context.Context) error
}

type TickStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreBatch(ctx context.Context, ticks []*models.PriceTick) error
	QueryRange(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceTick, error)
	Health(ctx context.Context) error
	Close() error
}

type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.PriceTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, t *models.PriceTick) error
	PublishBatch(ctx context.Context, ticks []*models.PriceTick) error
	Close() error
}

type Metrics interface {
	RecordMessageSent(backend, symbol string)
	RecordDocumentsClassified(classifier string, n int)
	RecordPredictions(n int)
	RecordLastPrice(symbol string, price float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
