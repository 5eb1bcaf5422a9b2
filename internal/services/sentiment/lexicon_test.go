package sentiment

import (
	"math"
	"testing"
)

func TestLexiconNoHitsIsNeutral(t *testing.T) {
	l := NewLexicon()
	c, err := l.Classify("the quarterly report is out")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity != 0 || c.Probability != 0.5 {
		t.Fatalf("expected neutral, got %+v", c)
	}
	if c.Subjectivity == nil || *c.Subjectivity != 0 {
		t.Fatalf("expected zero subjectivity")
	}
}

func TestLexiconPositive(t *testing.T) {
	l := NewLexicon()
	c, err := l.Classify("great gains and strong growth")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity <= 0 {
		t.Fatalf("expected positive polarity, got %v", c.Polarity)
	}
	if c.Probability <= 0.5 {
		t.Fatalf("expected probability above prior, got %v", c.Probability)
	}
	if c.Subjectivity == nil || *c.Subjectivity <= 0 {
		t.Fatalf("expected positive subjectivity")
	}
}

func TestLexiconMixed(t *testing.T) {
	l := NewLexicon()
	c, err := l.Classify("good day bad day")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if math.Abs(c.Polarity) > 1e-9 {
		t.Fatalf("expected balanced polarity, got %v", c.Polarity)
	}
}

func TestLexiconNegative(t *testing.T) {
	l := NewLexicon()
	c, err := l.Classify("terrible crash huge losses")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Polarity >= 0 {
		t.Fatalf("expected negative polarity, got %v", c.Polarity)
	}
}
