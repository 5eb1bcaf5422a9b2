package sentiment

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestCorpus(t *testing.T) *Corpus {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"positive.txt": "good great\ngood awesome day\ngreat rally today\ngood gains\n",
		"negative.txt": "bad terrible\nbad awful day\nterrible crash today\nbad losses\n",
		"neutral.txt":  "market opens monday\nearnings report due\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return NewCorpus(dir)
}

func trainTestModel(t *testing.T) *NaiveBayes {
	t.Helper()
	corpus := writeTestCorpus(t)

	b := NewVocabularyBuilder(nil)
	for _, label := range trainOrder {
		if err := corpus.EachSentence(label, b.Add); err != nil {
			t.Fatalf("build vocabulary: %v", err)
		}
	}
	nb, stats, err := TrainNaiveBayes(b.Build(0), corpus, TrainOptions{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if stats.Trained == 0 {
		t.Fatalf("nothing trained")
	}
	return nb
}

func TestClassifyPositiveText(t *testing.T) {
	nb := trainTestModel(t)
	c, err := nb.Classify("good great")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity <= 0 {
		t.Fatalf("expected positive polarity, got %v", c.Polarity)
	}
	if c.Polarity > 1 {
		t.Fatalf("polarity out of range: %v", c.Polarity)
	}
}

func TestClassifyNegativeText(t *testing.T) {
	nb := trainTestModel(t)
	c, err := nb.Classify("bad terrible")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity >= 0 {
		t.Fatalf("expected negative polarity, got %v", c.Polarity)
	}
	if c.Polarity < -1 {
		t.Fatalf("polarity out of range: %v", c.Polarity)
	}
}

func TestClassifyUnknownTextFallsBackToPriors(t *testing.T) {
	nb := trainTestModel(t)
	c, err := nb.Classify("xylophone zebra")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity < -1 || c.Polarity > 1 {
		t.Fatalf("polarity out of range: %v", c.Polarity)
	}
	if c.Probability <= 0 || c.Probability > 1 {
		t.Fatalf("probability out of range: %v", c.Probability)
	}
}

func TestClassifyEmptyString(t *testing.T) {
	nb := trainTestModel(t)
	c, err := nb.Classify("")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity < -1 || c.Polarity > 1 {
		t.Fatalf("polarity out of range: %v", c.Polarity)
	}
	if c.Probability <= 0 || c.Probability > 1 {
		t.Fatalf("probability out of range: %v", c.Probability)
	}
}

func TestClassifyPolarityMagnitudeRescaled(t *testing.T) {
	nb := trainTestModel(t)
	c, err := nb.Classify("good great awesome rally gains")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	// a confident call must scale polarity toward 1, never past it
	if c.Polarity <= 0.5 || c.Polarity > 1 {
		t.Fatalf("expected confident positive polarity, got %v", c.Polarity)
	}
}

func TestTrainDiscardsEmptyFeatureVectors(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"positive.txt": "good great\n12345\n",
		"negative.txt": "bad terrible\n",
		"neutral.txt":  "market open\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	corpus := NewCorpus(dir)

	b := NewVocabularyBuilder(nil)
	for _, label := range trainOrder {
		if err := corpus.EachSentence(label, b.Add); err != nil {
			t.Fatalf("build vocabulary: %v", err)
		}
	}
	_, stats, err := TrainNaiveBayes(b.Build(0), corpus, TrainOptions{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if stats.Discarded != 1 {
		t.Fatalf("expected 1 discarded sentence, got %d", stats.Discarded)
	}
	if stats.Trained != 3 {
		t.Fatalf("expected 3 trained sentences, got %d", stats.Trained)
	}
}

func TestTrainWithHoldoutEvaluation(t *testing.T) {
	corpus := writeTestCorpus(t)
	b := NewVocabularyBuilder(nil)
	for _, label := range trainOrder {
		if err := corpus.EachSentence(label, b.Add); err != nil {
			t.Fatalf("build vocabulary: %v", err)
		}
	}
	_, stats, err := TrainNaiveBayes(b.Build(0), corpus, TrainOptions{Evaluate: true, HoldoutSize: 2, Seed: 1})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if stats.Evaluated != 2 {
		t.Fatalf("expected 2 evaluated, got %d", stats.Evaluated)
	}
	if stats.Accuracy < 0 || stats.Accuracy > 1 {
		t.Fatalf("accuracy out of range: %v", stats.Accuracy)
	}
}

func TestMapRange(t *testing.T) {
	if got := mapRange(0.75, 0.5, 1, 0, 1); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := mapRange(0.5, 0.5, 1, 0, 1); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := mapRange(1, 0.5, 1, 0, 1); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}
