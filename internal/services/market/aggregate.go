package market

import (
	"time"

	"TrendPulse/internal/domain/models"
)

// ClassifiedObservation is a timestamped polarity, the only thing the
// aggregator needs from a classified document.
type ClassifiedObservation struct {
	Timestamp time.Time
	Polarity  float64
}

// AggregatePrices buckets a time-sorted tick stream into fixed-width
// intervals keyed by bucket start, one forward pass. Intervals without
// samples produce no bucket at all: a zero mean would be indistinguishable
// from real data.
func AggregatePrices(ticks []models.PriceTick, interval time.Duration) []models.PriceBucket {
	var out []models.PriceBucket

	var cur time.Time
	var sum float64
	var count int
	flush := func() {
		if count == 0 {
			return
		}
		out = append(out, models.PriceBucket{Start: cur, Mean: sum / float64(count), Count: count})
	}

	for _, t := range ticks {
		start := t.Timestamp.UTC().Truncate(interval)
		if count > 0 && !start.Equal(cur) {
			flush()
			sum, count = 0, 0
		}
		cur = start
		sum += t.Price
		count++
	}
	flush()
	return out
}

// AggregateSentiments buckets time-sorted classified observations into
// fixed-width intervals of per-class counts. Classes come from the polarity
// sign; buckets that saw neither a positive nor a negative document have no
// defined ratio and are skipped.
func AggregateSentiments(obs []ClassifiedObservation, interval time.Duration) []models.SentimentBucket {
	var out []models.SentimentBucket

	var cur models.SentimentBucket
	var open bool
	flush := func() {
		if !open {
			return
		}
		if cur.Positive+cur.Negative > 0 {
			out = append(out, cur)
		}
	}

	for _, o := range obs {
		start := o.Timestamp.UTC().Truncate(interval)
		if open && !start.Equal(cur.Start) {
			flush()
			cur = models.SentimentBucket{}
			open = false
		}
		if !open {
			cur.Start = start
			open = true
		}
		switch {
		case o.Polarity > 0:
			cur.Positive++
		case o.Polarity < 0:
			cur.Negative++
		default:
			cur.Neutral++
		}
	}
	flush()
	return out
}
