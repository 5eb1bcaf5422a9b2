package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/domain/models"
	"TrendPulse/internal/domain/repository"
	applogger "TrendPulse/pkg/logger"
)

func testLogger() *applogger.Logger {
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		panic(err)
	}
	return l
}

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(string, string)      {}
func (nopMetrics) RecordDocumentsClassified(string, int) {}
func (nopMetrics) RecordPredictions(int)                 {}
func (nopMetrics) RecordLastPrice(string, float64)       {}
func (nopMetrics) RecordError(string)                    {}
func (nopMetrics) RecordLatency(string, float64)         {}

// fakeDocStore pages documents out of memory and records every write.
type fakeDocStore struct {
	pages [][]models.Document
	next  int

	buckets []models.SentimentBucket

	updates       []models.SentimentUpdate
	updateField   string
	deleted       []string
	storedBuckets map[string][]models.SentimentBucket
	storedPoints  map[string][]models.IntradayPoint
	cleared       bool

	scrollNextErr error
}

func newFakeDocStore(pages ...[]models.Document) *fakeDocStore {
	return &fakeDocStore{
		pages:         pages,
		storedBuckets: make(map[string][]models.SentimentBucket),
		storedPoints:  make(map[string][]models.IntradayPoint),
	}
}

func (f *fakeDocStore) page() *repository.DocumentPage {
	total := 0
	for _, p := range f.pages {
		total += len(p)
	}
	if f.next >= len(f.pages) {
		return &repository.DocumentPage{Cursor: "cursor", Total: total}
	}
	p := f.pages[f.next]
	f.next++
	return &repository.DocumentPage{Documents: p, Cursor: "cursor", Total: total}
}

func (f *fakeDocStore) ScrollOpen(context.Context, repository.ScrollQuery) (*repository.DocumentPage, error) {
	f.next = 0
	return f.page(), nil
}

func (f *fakeDocStore) ScrollNext(context.Context, string, time.Duration) (*repository.DocumentPage, error) {
	if f.scrollNextErr != nil {
		return nil, f.scrollNextErr
	}
	return f.page(), nil
}

func (f *fakeDocStore) ScrollClear(context.Context, string) error {
	f.cleared = true
	return nil
}

func (f *fakeDocStore) UpdateSentiments(_ context.Context, _ string, field string, updates []models.SentimentUpdate) error {
	f.updateField = field
	f.updates = append(f.updates, updates...)
	return nil
}

func (f *fakeDocStore) StoreSentimentBuckets(_ context.Context, index string, buckets []models.SentimentBucket) error {
	f.storedBuckets[index] = append(f.storedBuckets[index], buckets...)
	return nil
}

func (f *fakeDocStore) FetchSentimentBuckets(context.Context, string) ([]models.SentimentBucket, error) {
	return f.buckets, nil
}

func (f *fakeDocStore) StorePredictions(_ context.Context, index string, points []models.IntradayPoint) error {
	f.storedPoints[index] = append(f.storedPoints[index], points...)
	return nil
}

func (f *fakeDocStore) FetchPredictions(_ context.Context, index string) ([]models.IntradayPoint, error) {
	return f.storedPoints[index], nil
}

func (f *fakeDocStore) DeleteIndex(_ context.Context, index string) error {
	f.deleted = append(f.deleted, index)
	return nil
}

func (f *fakeDocStore) Health(context.Context) error { return nil }

// fakeTickStore returns a canned tick series.
type fakeTickStore struct {
	ticks  []models.PriceTick
	stored []*models.PriceTick
}

func (f *fakeTickStore) Init(context.Context) error { return nil }

func (f *fakeTickStore) StoreBatch(_ context.Context, ticks []*models.PriceTick) error {
	f.stored = append(f.stored, ticks...)
	return nil
}

func (f *fakeTickStore) QueryRange(context.Context, string, time.Time, time.Time) ([]models.PriceTick, error) {
	return f.ticks, nil
}

func (f *fakeTickStore) Health(context.Context) error { return nil }
func (f *fakeTickStore) Close() error                 { return nil }

var errScrollExpired = fmt.Errorf("scroll next: cursor expired")
