package usecase

import (
	"context"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestAggregateRunRebuildsIndex(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	pos, neg := 0.6, -0.4
	store := newFakeDocStore([]models.Document{
		{ID: "a", Date: base.Add(1 * time.Minute), Sentiment: &pos},
		{ID: "b", Date: base.Add(2 * time.Minute), Sentiment: &neg},
		{ID: "c", Date: base.Add(3 * time.Minute)}, // unscored, ignored
		{ID: "d", Date: base.Add(11 * time.Minute), Sentiment: &pos},
	})

	u := NewAggregateSentiment(store, nopMetrics{}, testLogger(), AggregateConfig{
		DocumentIndex:  "documents",
		SentimentIndex: "sentiments",
		ClassifierName: "lexicon",
		BatchSize:      100,
		KeepAlive:      time.Minute,
		Interval:       10 * time.Minute,
	})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "sentiments" {
		t.Fatalf("expected sentiment index reset, got %v", store.deleted)
	}
	buckets := store.storedBuckets["sentiments"]
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	first := buckets[0]
	if !first.Start.Equal(base) || first.Positive != 1 || first.Negative != 1 {
		t.Fatalf("unexpected first bucket %+v", first)
	}
	second := buckets[1]
	if !second.Start.Equal(base.Add(10*time.Minute)) || second.Positive != 1 || second.Negative != 0 {
		t.Fatalf("unexpected second bucket %+v", second)
	}
	if !store.cleared {
		t.Fatalf("expected scroll to be cleared")
	}
}
