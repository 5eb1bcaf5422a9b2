package usecase

import (
	"context"
	"fmt"
	"time"

	"TrendPulse/internal/domain/models"
	"TrendPulse/internal/domain/repository"
	domsvc "TrendPulse/internal/domain/service"
	"TrendPulse/internal/services/sentiment"
	applogger "TrendPulse/pkg/logger"
)

// ClassifyConfig holds settings for one classification run.
type ClassifyConfig struct {
	Index          string
	ClassifierName string
	SearchFilter   string
	BatchSize      int
	KeepAlive      time.Duration
	BulkChunkSize  int
	MaxDocuments   int
}

// ClassifyStats summarizes one classification run.
type ClassifyStats struct {
	Scanned    int
	Classified int
	Spam       int
	Skipped    int
}

// ClassifyDocuments walks the document index with a server-side cursor,
// classifies each unscored message and writes polarities back in bulk.
type ClassifyDocuments struct {
	docs     repository.DocumentStore
	registry *sentiment.Registry
	spam     *sentiment.SpamFilter
	metrics  repository.Metrics
	log      *applogger.Logger
	cfg      ClassifyConfig
}

// NewClassifyDocuments creates the classification usecase.
func NewClassifyDocuments(
	docs repository.DocumentStore,
	registry *sentiment.Registry,
	spam *sentiment.SpamFilter,
	metrics repository.Metrics,
	log *applogger.Logger,
	cfg ClassifyConfig,
) *ClassifyDocuments {
	return &ClassifyDocuments{
		docs:     docs,
		registry: registry,
		spam:     spam,
		metrics:  metrics,
		log:      log,
		cfg:      cfg,
	}
}

// SentimentField is the document attribute a classifier writes its polarity
// to. Each classifier owns its own field so switching classifiers never
// overwrites earlier scores.
func SentimentField(classifierName string) string {
	return "sentiment_" + classifierName
}

// Run executes one classification pass. A cursor that expires mid-run fails
// the whole run; the next scheduled run starts over from a fresh cursor.
func (u *ClassifyDocuments) Run(ctx context.Context) (*ClassifyStats, error) {
	start := time.Now()

	classifier, err := u.registry.Get(u.cfg.ClassifierName)
	if err != nil {
		return nil, fmt.Errorf("resolve classifier: %w", err)
	}
	field := SentimentField(classifier.Name())

	page, err := u.docs.ScrollOpen(ctx, repository.ScrollQuery{
		Index:          u.cfg.Index,
		Query:          u.cfg.SearchFilter,
		SentimentField: field,
		BatchSize:      u.cfg.BatchSize,
		KeepAlive:      u.cfg.KeepAlive,
	})
	if err != nil {
		u.metrics.RecordError("classify_scroll")
		return nil, fmt.Errorf("open document scroll: %w", err)
	}

	u.log.Info("classification run started",
		applogger.String("classifier", classifier.Name()),
		applogger.String("index", u.cfg.Index),
		applogger.Int("total", page.Total),
	)

	stats := &ClassifyStats{}
	pending := make([]models.SentimentUpdate, 0, u.cfg.BulkChunkSize)
	cursor := page.Cursor
	defer func() {
		if cursor != "" {
			if err := u.docs.ScrollClear(context.WithoutCancel(ctx), cursor); err != nil {
				u.log.Warn("clear scroll failed", applogger.Error(err))
			}
		}
	}()

	for {
		for _, doc := range page.Documents {
			if u.cfg.MaxDocuments > 0 && stats.Scanned >= u.cfg.MaxDocuments {
				break
			}
			stats.Scanned++
			update, outcome := u.classifyOne(classifier, doc)
			switch outcome {
			case outcomeClassified:
				pending = append(pending, update)
				stats.Classified++
			case outcomeSpam:
				stats.Spam++
			case outcomeSkipped:
				stats.Skipped++
			}

			if len(pending) >= u.cfg.BulkChunkSize && u.cfg.BulkChunkSize > 0 {
				if err := u.flush(ctx, field, pending); err != nil {
					return stats, err
				}
				pending = pending[:0]
			}
		}

		if len(page.Documents) == 0 {
			break
		}
		if u.cfg.MaxDocuments > 0 && stats.Scanned >= u.cfg.MaxDocuments {
			break
		}

		page, err = u.docs.ScrollNext(ctx, cursor, u.cfg.KeepAlive)
		if err != nil {
			u.metrics.RecordError("classify_scroll")
			return stats, fmt.Errorf("advance document scroll: %w", err)
		}
		cursor = page.Cursor
	}

	if err := u.flush(ctx, field, pending); err != nil {
		return stats, err
	}

	u.metrics.RecordDocumentsClassified(classifier.Name(), stats.Classified)
	u.metrics.RecordLatency("classify_run", time.Since(start).Seconds())
	u.log.Info("classification run finished",
		applogger.Int("scanned", stats.Scanned),
		applogger.Int("classified", stats.Classified),
		applogger.Int("spam", stats.Spam),
		applogger.Int("skipped", stats.Skipped),
		applogger.Duration("took", time.Since(start)),
	)
	return stats, nil
}

type classifyOutcome int

const (
	outcomeClassified classifyOutcome = iota
	outcomeSpam
	outcomeSkipped
)

func (u *ClassifyDocuments) classifyOne(classifier domsvc.Classifier, doc models.Document) (models.SentimentUpdate, classifyOutcome) {
	if doc.Sentiment != nil {
		// already scored by this classifier
		return models.SentimentUpdate{}, outcomeSkipped
	}
	text := sentiment.StripURLs(doc.Message)
	if u.spam != nil && u.spam.Match(text) {
		return models.SentimentUpdate{}, outcomeSpam
	}

	c, err := classifier.Classify(text)
	if err != nil {
		u.log.Warn("classification failed",
			applogger.String("id", doc.ID),
			applogger.Error(err),
		)
		u.metrics.RecordError("classify_document")
		return models.SentimentUpdate{}, outcomeSkipped
	}
	return models.SentimentUpdate{ID: doc.ID, Polarity: c.Polarity}, outcomeClassified
}

func (u *ClassifyDocuments) flush(ctx context.Context, field string, updates []models.SentimentUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := u.docs.UpdateSentiments(ctx, u.cfg.Index, field, updates); err != nil {
		u.metrics.RecordError("classify_bulk")
		return fmt.Errorf("write sentiment updates: %w", err)
	}
	return nil
}
