package market

import (
	"gonum.org/v1/gonum/stat"

	"TrendPulse/internal/domain/models"
)

// Momentum defaults matching the historical strategy.
const (
	DefaultAnalysisDays       = 3
	DefaultSentimentThreshold = 0.05
	DefaultUpFactor           = 1.01
	DefaultDownFactor         = 0.99
)

// MomentumPredictor keeps a bounded rolling window of daily mean sentiment
// values, newest first, and turns sentiment shifts into directional price
// calls. Explicitly stateful: construct one per run.
type MomentumPredictor struct {
	window     []float64
	windowSize int
	threshold  float64
	upFactor   float64
	downFactor float64
}

func NewMomentumPredictor(windowSize int, threshold, upFactor, downFactor float64) *MomentumPredictor {
	if windowSize <= 0 {
		windowSize = DefaultAnalysisDays
	}
	if threshold <= 0 {
		threshold = DefaultSentimentThreshold
	}
	if upFactor == 0 {
		upFactor = DefaultUpFactor
	}
	if downFactor == 0 {
		downFactor = DefaultDownFactor
	}
	return &MomentumPredictor{
		windowSize: windowSize,
		threshold:  threshold,
		upFactor:   upFactor,
		downFactor: downFactor,
	}
}

// Predict walks trading days oldest to newest. The first day ever seen only
// seeds the window and emits nothing: there is no history to diff against.
func (p *MomentumPredictor) Predict(days []models.TradingDay) []models.Prediction {
	var out []models.Prediction
	for _, day := range days {
		if pred, ok := p.observe(day); ok {
			out = append(out, pred)
		}
	}
	return out
}

func (p *MomentumPredictor) observe(day models.TradingDay) (models.Prediction, bool) {
	if len(day.Observations) == 0 {
		return models.Prediction{}, false
	}

	ratios := make([]float64, len(day.Observations))
	prices := make([]float64, len(day.Observations))
	for i, o := range day.Observations {
		ratios[i] = o.SentimentRatio
		prices[i] = o.Price
	}
	meanSentiment := stat.Mean(ratios, nil)
	meanPrice := stat.Mean(prices, nil)

	if len(p.window) == 0 {
		p.window = append(p.window, meanSentiment)
		return models.Prediction{}, false
	}

	// The delta is against the window as it stood before today.
	windowMean := stat.Mean(p.window, nil)
	delta := meanSentiment - windowMean

	p.window = append([]float64{meanSentiment}, p.window...)
	if len(p.window) > p.windowSize {
		p.window = p.window[:p.windowSize]
	}

	predicted := meanPrice
	switch {
	case delta > p.threshold:
		predicted = meanPrice * p.upFactor
	case delta < -p.threshold:
		predicted = meanPrice * p.downFactor
	}

	return models.Prediction{
		Day:            day.Date,
		BaselinePrice:  meanPrice,
		SentimentDelta: delta,
		PredictedPrice: predicted,
	}, true
}

// WindowLen exposes the current window size for tests and diagnostics.
func (p *MomentumPredictor) WindowLen() int { return len(p.window) }

// FilterDirectional drops predictions whose price equals the baseline;
// only directional calls are materialized.
func FilterDirectional(preds []models.Prediction) []models.Prediction {
	out := preds[:0:0]
	for _, pr := range preds {
		if pr.PredictedPrice != pr.BaselinePrice {
			out = append(out, pr)
		}
	}
	return out
}
