package service

import "TrendPulse/internal/domain/models"

// Classifier turns raw text into a polarity score. Implementations must be
// safe for concurrent use once constructed.
type Classifier interface {
	Name() string
	Classify(text string) (models.Classification, error)
}
