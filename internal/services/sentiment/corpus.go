package sentiment

import (
	"fmt"
	"path/filepath"
)

// Corpus points at the flat training sources, one example per line, one
// file per label.
type Corpus struct {
	positive string
	negative string
	neutral  string
}

// NewCorpus expects positive.txt, negative.txt and neutral.txt under dir.
func NewCorpus(dir string) *Corpus {
	return &Corpus{
		positive: filepath.Join(dir, "positive.txt"),
		negative: filepath.Join(dir, "negative.txt"),
		neutral:  filepath.Join(dir, "neutral.txt"),
	}
}

// NewCorpusFiles builds a corpus from explicit file paths.
func NewCorpusFiles(positive, negative, neutral string) *Corpus {
	return &Corpus{positive: positive, negative: negative, neutral: neutral}
}

// EachSentence streams the training sentences of one label. An unreadable
// source fails the whole pass; there is no partial corpus.
func (c *Corpus) EachSentence(label Label, fn func(sentence string)) error {
	path, err := c.path(label)
	if err != nil {
		return err
	}
	return eachLine(path, fn)
}

func (c *Corpus) path(label Label) (string, error) {
	switch label {
	case LabelPositive:
		return c.positive, nil
	case LabelNegative:
		return c.negative, nil
	case LabelNeutral:
		return c.neutral, nil
	default:
		return "", fmt.Errorf("unknown corpus label: %s", label)
	}
}
