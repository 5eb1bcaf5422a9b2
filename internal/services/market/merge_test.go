package market

import (
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestMergeInnerJoin(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Minute)
	t2 := t0.Add(20 * time.Minute)

	prices := []models.PriceBucket{
		{Start: t0, Mean: 100, Count: 1},
		{Start: t1, Mean: 101, Count: 1},
	}
	sentiments := []models.SentimentBucket{
		{Start: t1, Positive: 3, Negative: 1},
		{Start: t2, Positive: 1, Negative: 1},
	}

	out := Merge(prices, sentiments)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged observation, got %d", len(out))
	}
	o := out[0]
	if !o.Timestamp.Equal(t1) || o.Price != 101 || o.SentimentRatio != 0.75 {
		t.Fatalf("unexpected merged observation %+v", o)
	}
}

func TestMergeDropsUndefinedRatios(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	prices := []models.PriceBucket{{Start: t0, Mean: 100, Count: 1}}
	sentiments := []models.SentimentBucket{{Start: t0, Neutral: 5}}

	if out := Merge(prices, sentiments); len(out) != 0 {
		t.Fatalf("expected empty merge, got %d", len(out))
	}
}

func TestMergeSortedAscending(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var prices []models.PriceBucket
	var sentiments []models.SentimentBucket
	for i := 4; i >= 0; i-- {
		start := t0.Add(time.Duration(i) * time.Minute)
		prices = append(prices, models.PriceBucket{Start: start, Mean: float64(i), Count: 1})
		sentiments = append(sentiments, models.SentimentBucket{Start: start, Positive: 1})
	}

	out := Merge(prices, sentiments)
	if len(out) != 5 {
		t.Fatalf("expected 5 observations, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Timestamp.Before(out[i].Timestamp) {
			t.Fatalf("output not sorted at %d", i)
		}
	}
}
