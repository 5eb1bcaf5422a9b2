package models

import "time"

// PriceTick is a raw market observation as delivered by the feed.
type PriceTick struct {
	Symbol    string
	Timestamp time.Time
	Price     float64
	Volume    float64
}

// PriceBucket aggregates ticks falling into one fixed-width interval.
// Buckets with zero contributing samples are never constructed: a zero mean
// is indistinguishable from "no data".
type PriceBucket struct {
	Start time.Time
	Mean  float64
	Count int
}

// SentimentBucket holds per-class counts of classified documents falling
// into one fixed-width interval.
type SentimentBucket struct {
	Start    time.Time
	Positive int
	Negative int
	Neutral  int
}

// Ratio returns positive/(positive+negative). The second return is false
// when the bucket saw no positive or negative documents, in which case the
// ratio is undefined and the bucket must not participate in a merge.
func (b SentimentBucket) Ratio() (float64, bool) {
	total := b.Positive + b.Negative
	if total == 0 {
		return 0, false
	}
	return float64(b.Positive) / float64(total), true
}

// MergedObservation exists only for timestamps where both a price bucket
// and a ratio-bearing sentiment bucket were present.
type MergedObservation struct {
	Timestamp      time.Time
	Price          float64
	SentimentRatio float64
}
