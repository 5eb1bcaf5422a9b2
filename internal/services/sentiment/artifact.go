package sentiment

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

// modelArtifact is the serialized form of a trained model. It carries the
// exact log-space parameters so a reloaded model classifies byte-for-byte
// identically to the one that produced the artifact.
type modelArtifact struct {
	Words      []string
	Labels     []Label
	LogPrior   map[Label]float64
	LogProb    map[Label]map[string]float64
	LogDefault map[Label]float64
}

// Save writes the model as a gzip-compressed gob blob. The write goes to a
// temp file first so a crash never leaves a truncated artifact behind.
func (nb *NaiveBayes) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}

	zw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return fmt.Errorf("gzip writer: %w", err)
	}

	art := modelArtifact{
		Words:      nb.vocab.Words(),
		Labels:     nb.labels,
		LogPrior:   nb.logPrior,
		LogProb:    nb.logProb,
		LogDefault: nb.logDefault,
	}
	if err := gob.NewEncoder(zw).Encode(art); err != nil {
		zw.Close()
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// LoadNaiveBayes restores a model from a saved artifact.
func LoadNaiveBayes(path string) (*NaiveBayes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer zr.Close()

	var art modelArtifact
	if err := gob.NewDecoder(zr).Decode(&art); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if len(art.Labels) == 0 || len(art.Words) == 0 {
		return nil, fmt.Errorf("artifact is empty")
	}

	return &NaiveBayes{
		vocab:      newVocabulary(art.Words),
		labels:     art.Labels,
		logPrior:   art.LogPrior,
		logProb:    art.LogProb,
		logDefault: art.LogDefault,
	}, nil
}
