package models

import "time"

// Document is a single text observation fetched from the document store.
// Sentiment is nil until a classification run has written a polarity for
// the active classifier.
type Document struct {
	ID        string
	Message   string
	Date      time.Time
	Sentiment *float64
}

// Classification is the result of running a classifier over raw text.
// Polarity is in [-1,1]: sign follows the winning class, magnitude is the
// posterior probability rescaled from [0.5,1] to [0,1]. Subjectivity is only
// produced by lexicon-based classifiers.
type Classification struct {
	Polarity     float64
	Probability  float64
	Subjectivity *float64
}

// SentimentUpdate is a partial-document upsert: it targets one document id
// and merges a single polarity field.
type SentimentUpdate struct {
	ID       string
	Polarity float64
}
