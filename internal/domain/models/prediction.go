package models

import "time"

// TradingDay groups merged observations by exchange-local calendar date
// under the close-hour rollover rule. Observations keep arrival order.
type TradingDay struct {
	Date         time.Time
	Observations []MergedObservation
}

// Prediction is one directional call for a trading day.
type Prediction struct {
	Day            time.Time
	BaselinePrice  float64
	SentimentDelta float64
	PredictedPrice float64
}

// Bias tags an intraday point as an up or down adjustment relative to the
// day's baseline price. Flat predictions are filtered before
// materialization, so there is no neutral bias.
type Bias int

const (
	BiasPositive Bias = iota + 1
	BiasNegative
)

func (b Bias) String() string {
	switch b {
	case BiasPositive:
		return "positive"
	case BiasNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// IntradayPoint is one materialized sample of a daily prediction.
type IntradayPoint struct {
	Timestamp      time.Time
	PredictedPrice float64
	Bias           Bias
}
