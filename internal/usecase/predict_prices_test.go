package usecase

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
	"TrendPulse/pkg/cache"
)

func TestPredictRun(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 10, 0, 0, 0, time.UTC)
	}
	ticks := &fakeTickStore{ticks: []models.PriceTick{
		{Symbol: "AAPL", Timestamp: day(1), Price: 100},
		{Symbol: "AAPL", Timestamp: day(2), Price: 102},
		{Symbol: "AAPL", Timestamp: day(3), Price: 101},
	}}
	store := newFakeDocStore()
	store.buckets = []models.SentimentBucket{
		{Start: day(1), Positive: 1, Negative: 4}, // ratio 0.2
		{Start: day(2), Positive: 1, Negative: 1}, // ratio 0.5
		{Start: day(3), Positive: 1, Negative: 9}, // ratio 0.1
	}
	mem := cache.NewMemoryCache()

	u := NewPredictPrices(ticks, store, mem, nopMetrics{}, testLogger(), PredictConfig{
		Symbol:             "AAPL",
		SentimentIndex:     "sentiments",
		PredictionIndex:    "predictions",
		AnalysisDays:       30,
		Interval:           10 * time.Minute,
		WindowSize:         3,
		SentimentThreshold: 0.05,
		UpFactor:           1.01,
		DownFactor:         0.99,
		TradeEndHour:       20,
		UTCOffsetHours:     0,
		CacheTTL:           time.Minute,
	})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "predictions" {
		t.Fatalf("expected prediction index reset, got %v", store.deleted)
	}

	// two directional days, 720 two-minute points each
	points := store.storedPoints["predictions"]
	if len(points) != 1440 {
		t.Fatalf("expected 1440 points, got %d", len(points))
	}
	if math.Abs(points[0].PredictedPrice-103.02) > 1e-9 {
		t.Fatalf("unexpected day-two price %v", points[0].PredictedPrice)
	}
	if points[0].Bias != models.BiasPositive {
		t.Fatalf("unexpected day-two bias %v", points[0].Bias)
	}
	if math.Abs(points[720].PredictedPrice-99.99) > 1e-9 {
		t.Fatalf("unexpected day-three price %v", points[720].PredictedPrice)
	}
	if points[720].Bias != models.BiasNegative {
		t.Fatalf("unexpected day-three bias %v", points[720].Bias)
	}

	b, err := mem.Get(context.Background(), PredictionCacheKey("AAPL"))
	if err != nil {
		t.Fatalf("cache get: %v", err)
	}
	var cached []CachedPrediction
	if err := json.Unmarshal(b, &cached); err != nil {
		t.Fatalf("cache decode: %v", err)
	}
	if len(cached) != 1440 {
		t.Fatalf("expected 1440 cached points, got %d", len(cached))
	}
	if cached[0].Bias != "positive" {
		t.Fatalf("unexpected cached bias %q", cached[0].Bias)
	}
}
