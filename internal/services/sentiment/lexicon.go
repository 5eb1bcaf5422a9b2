package sentiment

import "TrendPulse/internal/domain/models"

// Lexicon is a stateless rule-based classifier: no training, no
// vocabulary. It scores text by counting hits against fixed polarity word
// lists and is interchangeable with the trained classifier.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var lexiconPositive = []string{
	"good", "great", "awesome", "amazing", "excellent", "love", "happy",
	"nice", "best", "fantastic", "wonderful", "win", "winning", "bullish",
	"up", "gain", "gains", "profit", "strong", "beat", "beats", "growth",
	"success", "successful", "positive", "rally", "soar", "surge",
}

var lexiconNegative = []string{
	"bad", "terrible", "awful", "horrible", "hate", "sad", "worst",
	"poor", "fail", "failure", "bearish", "down", "loss", "losses", "weak",
	"miss", "misses", "decline", "drop", "crash", "negative", "fear",
	"plunge", "sink", "slump", "tank",
}

func NewLexicon() *Lexicon {
	l := &Lexicon{
		positive: make(map[string]struct{}, len(lexiconPositive)),
		negative: make(map[string]struct{}, len(lexiconNegative)),
	}
	for _, w := range lexiconPositive {
		l.positive[w] = struct{}{}
	}
	for _, w := range lexiconNegative {
		l.negative[w] = struct{}{}
	}
	return l
}

func (l *Lexicon) Name() string { return "lexicon" }

// Classify scores the text by the balance of positive and negative hits.
// Text without any hit is neutral: zero polarity at prior confidence.
func (l *Lexicon) Classify(text string) (models.Classification, error) {
	words := Tokenize(text)

	var pos, neg int
	for _, w := range words {
		if _, ok := l.positive[w]; ok {
			pos++
		}
		if _, ok := l.negative[w]; ok {
			neg++
		}
	}

	hits := pos + neg
	if hits == 0 {
		subj := 0.0
		return models.Classification{Polarity: 0, Probability: 0.5, Subjectivity: &subj}, nil
	}

	polarity := float64(pos-neg) / float64(hits)
	subj := float64(hits) / float64(len(words))
	if subj > 1 {
		subj = 1
	}
	probability := 0.5 + polarity/2
	if polarity < 0 {
		probability = 0.5 - polarity/2
	}
	return models.Classification{Polarity: polarity, Probability: probability, Subjectivity: &subj}, nil
}
