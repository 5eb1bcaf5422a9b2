package market

import (
	"time"

	"TrendPulse/internal/domain/models"
)

// One point every two minutes over 24 hours.
const intradayStep = 2

// Materialize expands each prediction into a dense intraday series anchored
// at the trading date, tagged with the direction of the adjustment. Pure
// fan-out, no cross-day state. Flat predictions were filtered upstream; a
// flat point slipping through is dropped rather than tagged.
func Materialize(preds []models.Prediction) []models.IntradayPoint {
	points := make([]models.IntradayPoint, 0, len(preds)*24*60/intradayStep)
	for _, pr := range preds {
		diff := pr.PredictedPrice - pr.BaselinePrice
		if diff == 0 {
			continue
		}
		bias := models.BiasPositive
		if diff < 0 {
			bias = models.BiasNegative
		}
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute += intradayStep {
				ts := time.Date(pr.Day.Year(), pr.Day.Month(), pr.Day.Day(), hour, minute, 0, 0, time.UTC)
				points = append(points, models.IntradayPoint{
					Timestamp:      ts,
					PredictedPrice: pr.PredictedPrice,
					Bias:           bias,
				})
			}
		}
	}
	return points
}
