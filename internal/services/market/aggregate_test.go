package market

import (
	"math"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func ts(minute, second int) time.Time {
	return time.Date(2024, 5, 1, 10, minute, second, 0, time.UTC)
}

func TestAggregatePricesMeansPerBucket(t *testing.T) {
	ticks := []models.PriceTick{
		{Symbol: "AAPL", Timestamp: ts(0, 10), Price: 100},
		{Symbol: "AAPL", Timestamp: ts(3, 0), Price: 102},
		{Symbol: "AAPL", Timestamp: ts(12, 0), Price: 110},
	}

	out := AggregatePrices(ticks, 10*time.Minute)
	if len(out) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(out))
	}
	if !out[0].Start.Equal(ts(0, 0)) {
		t.Fatalf("unexpected first bucket start %v", out[0].Start)
	}
	if math.Abs(out[0].Mean-101) > 1e-9 {
		t.Fatalf("expected mean 101, got %v", out[0].Mean)
	}
	if out[0].Count != 2 {
		t.Fatalf("expected count 2, got %d", out[0].Count)
	}
	if !out[1].Start.Equal(ts(10, 0)) || out[1].Mean != 110 {
		t.Fatalf("unexpected second bucket %+v", out[1])
	}
}

func TestAggregatePricesEmptyInput(t *testing.T) {
	if out := AggregatePrices(nil, time.Minute); len(out) != 0 {
		t.Fatalf("expected no buckets, got %d", len(out))
	}
}

func TestAggregateSentimentsCountsByPolaritySign(t *testing.T) {
	obs := []ClassifiedObservation{
		{Timestamp: ts(1, 0), Polarity: 0.8},
		{Timestamp: ts(2, 0), Polarity: -0.3},
		{Timestamp: ts(3, 0), Polarity: 0},
		{Timestamp: ts(4, 0), Polarity: 0.1},
	}

	out := AggregateSentiments(obs, 10*time.Minute)
	if len(out) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(out))
	}
	b := out[0]
	if b.Positive != 2 || b.Negative != 1 || b.Neutral != 1 {
		t.Fatalf("unexpected counts %+v", b)
	}
	ratio, ok := b.Ratio()
	if !ok {
		t.Fatalf("expected defined ratio")
	}
	if math.Abs(ratio-2.0/3.0) > 1e-9 {
		t.Fatalf("unexpected ratio %v", ratio)
	}
}

func TestAggregateSentimentsSkipsNeutralOnlyBuckets(t *testing.T) {
	obs := []ClassifiedObservation{
		{Timestamp: ts(1, 0), Polarity: 0},
		{Timestamp: ts(2, 0), Polarity: 0},
		{Timestamp: ts(15, 0), Polarity: 0.5},
	}

	out := AggregateSentiments(obs, 10*time.Minute)
	if len(out) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(out))
	}
	if !out[0].Start.Equal(ts(10, 0)) {
		t.Fatalf("unexpected bucket start %v", out[0].Start)
	}
}
