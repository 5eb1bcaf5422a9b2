package market

import (
	"sort"

	"TrendPulse/internal/domain/models"
)

// Merge inner-joins price buckets and sentiment buckets on bucket start.
// Timestamps carrying only one side are dropped, never defaulted; the
// output is sorted ascending by timestamp. The sort materializes the whole
// join in memory, an accepted scale limit.
func Merge(prices []models.PriceBucket, sentiments []models.SentimentBucket) []models.MergedObservation {
	type entry struct {
		price    float64
		hasPrice bool
		ratio    float64
		hasRatio bool
	}
	merged := make(map[int64]*entry, len(prices))

	get := func(key int64) *entry {
		e, ok := merged[key]
		if !ok {
			e = &entry{}
			merged[key] = e
		}
		return e
	}

	for _, p := range prices {
		e := get(p.Start.Unix())
		e.price = p.Mean
		e.hasPrice = true
	}
	for _, s := range sentiments {
		ratio, ok := s.Ratio()
		if !ok {
			continue
		}
		e := get(s.Start.Unix())
		e.ratio = ratio
		e.hasRatio = true
	}

	out := make([]models.MergedObservation, 0, len(merged))
	for key, e := range merged {
		if !e.hasPrice || !e.hasRatio {
			continue
		}
		out = append(out, models.MergedObservation{
			Timestamp:      unixUTC(key),
			Price:          e.price,
			SentimentRatio: e.ratio,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
