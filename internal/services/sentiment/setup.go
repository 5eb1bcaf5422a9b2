package sentiment

import (
	"errors"
	"fmt"
	"os"

	domsvc "TrendPulse/internal/domain/service"
	applogger "TrendPulse/pkg/logger"
)

// Settings configures classifier construction.
type Settings struct {
	CorpusDir      string
	StopWordsFile  string
	ModelPath      string
	VocabularySize int
	Evaluate       bool
	HoldoutSize    int
}

// NewDefaultRegistry builds a registry with the built-in classifiers. The
// naive Bayes factory prefers a saved model artifact and falls back to
// training from the corpus when the artifact is missing or unreadable.
func NewDefaultRegistry(s Settings, log *applogger.Logger) *Registry {
	r := NewRegistry()
	r.Register("naive_bayes", func() (domsvc.Classifier, error) {
		return buildNaiveBayes(s, log)
	})
	r.Register("lexicon", func() (domsvc.Classifier, error) {
		return NewLexicon(), nil
	})
	return r
}

func buildNaiveBayes(s Settings, log *applogger.Logger) (domsvc.Classifier, error) {
	if s.ModelPath != "" {
		nb, err := LoadNaiveBayes(s.ModelPath)
		if err == nil {
			log.Info("loaded classifier model", applogger.String("path", s.ModelPath))
			return nb, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("discarding unreadable classifier model",
				applogger.String("path", s.ModelPath),
				applogger.Error(err),
			)
		}
	}

	var stop []string
	if s.StopWordsFile != "" {
		var err error
		stop, err = LoadStopWords(s.StopWordsFile)
		if err != nil {
			return nil, fmt.Errorf("load stop words: %w", err)
		}
	}

	corpus := NewCorpus(s.CorpusDir)
	builder := NewVocabularyBuilder(stop)
	for _, label := range trainOrder {
		if err := corpus.EachSentence(label, builder.Add); err != nil {
			return nil, fmt.Errorf("read %s corpus: %w", label, err)
		}
	}

	size := s.VocabularySize
	if size <= 0 {
		size = DefaultVocabularySize
	}
	vocab := builder.Build(size)
	log.Info("vocabulary built",
		applogger.Int("distinct", builder.Distinct()),
		applogger.Int("kept", vocab.Len()),
	)

	nb, stats, err := TrainNaiveBayes(vocab, corpus, TrainOptions{
		Evaluate:    s.Evaluate,
		HoldoutSize: s.HoldoutSize,
	})
	if err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}
	log.Info("classifier trained",
		applogger.Int("trained", stats.Trained),
		applogger.Int("discarded", stats.Discarded),
	)
	if stats.Evaluated > 0 {
		log.Info("holdout evaluation",
			applogger.Int("evaluated", stats.Evaluated),
			applogger.Float64("accuracy", stats.Accuracy),
		)
	}

	if s.ModelPath != "" {
		if err := nb.Save(s.ModelPath); err != nil {
			log.Warn("saving classifier model failed",
				applogger.String("path", s.ModelPath),
				applogger.Error(err),
			)
		}
	}
	return nb, nil
}
