package sentiment

import (
	"fmt"
	"math"
	"math/rand"

	"TrendPulse/internal/domain/models"
)

// Label is a training class.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// trainOrder fixes the scan order over classes so vocabulary tie-breaks and
// training counts are reproducible.
var trainOrder = []Label{LabelPositive, LabelNegative, LabelNeutral}

// NaiveBayes is a Bernoulli-style bag-of-words classifier over presence
// features. Immutable after training; safe for concurrent classification.
type NaiveBayes struct {
	vocab      *Vocabulary
	labels     []Label
	logPrior   map[Label]float64
	logProb    map[Label]map[string]float64 // log P(token present | label)
	logDefault map[Label]float64            // smoothed log prob for unseen (label, token) pairs
}

// TrainOptions controls training. Evaluate reserves a held-out set and
// reports accuracy; that path must never produce the production model.
type TrainOptions struct {
	Evaluate    bool
	HoldoutSize int
	Seed        int64
}

// TrainStats reports what training saw.
type TrainStats struct {
	Trained   int
	Discarded int
	Evaluated int
	Accuracy  float64
}

const defaultHoldoutSize = 1000

type trainingItem struct {
	fv    FeatureVector
	label Label
}

// TrainNaiveBayes builds feature vectors for every corpus sentence against
// the vocabulary and estimates class priors and per-token conditional
// presence probabilities with Laplace smoothing. Sentences whose feature
// vector is empty carry no discriminative signal and are discarded.
func TrainNaiveBayes(vocab *Vocabulary, corpus *Corpus, opts TrainOptions) (*NaiveBayes, *TrainStats, error) {
	stats := &TrainStats{}

	var items []trainingItem
	for _, label := range trainOrder {
		label := label
		err := corpus.EachSentence(label, func(sentence string) {
			fv := Features(vocab, sentence)
			if len(fv) == 0 {
				stats.Discarded++
				return
			}
			items = append(items, trainingItem{fv: fv, label: label})
		})
		if err != nil {
			return nil, nil, fmt.Errorf("read %s corpus: %w", label, err)
		}
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("training corpus produced no usable examples")
	}

	var holdout []trainingItem
	if opts.Evaluate {
		size := opts.HoldoutSize
		if size <= 0 {
			size = defaultHoldoutSize
		}
		if size > len(items)/2 {
			size = len(items) / 2
		}
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		holdout = items[:size]
		items = items[size:]
	}

	nb := fit(vocab, items)
	stats.Trained = len(items)

	if opts.Evaluate {
		correct := 0
		for _, it := range holdout {
			if sample, _ := nb.argmax(it.fv); sample == it.label {
				correct++
			}
		}
		stats.Evaluated = len(holdout)
		if len(holdout) > 0 {
			stats.Accuracy = float64(correct) / float64(len(holdout))
		}
	}

	return nb, stats, nil
}

func fit(vocab *Vocabulary, items []trainingItem) *NaiveBayes {
	docs := make(map[Label]int)
	tokens := make(map[Label]map[string]int)
	for _, it := range items {
		docs[it.label]++
		tm := tokens[it.label]
		if tm == nil {
			tm = make(map[string]int)
			tokens[it.label] = tm
		}
		for w := range it.fv {
			tm[w]++
		}
	}

	nb := &NaiveBayes{
		vocab:      vocab,
		logPrior:   make(map[Label]float64),
		logProb:    make(map[Label]map[string]float64),
		logDefault: make(map[Label]float64),
	}
	total := len(items)
	for _, label := range trainOrder {
		n := docs[label]
		if n == 0 {
			continue
		}
		nb.labels = append(nb.labels, label)
		nb.logPrior[label] = math.Log(float64(n) / float64(total))
		nb.logDefault[label] = math.Log(1 / float64(n+2))
		probs := make(map[string]float64, len(tokens[label]))
		for w, c := range tokens[label] {
			probs[w] = math.Log(float64(c+1) / float64(n+2))
		}
		nb.logProb[label] = probs
	}
	return nb
}

func (nb *NaiveBayes) Name() string { return "naive_bayes" }

// Classify tokenizes the text exactly like training, builds its feature
// vector against the trained vocabulary and returns the signed polarity of
// the winning class. An empty feature vector degrades to the class priors.
func (nb *NaiveBayes) Classify(text string) (models.Classification, error) {
	fv := Features(nb.vocab, text)
	sample, p := nb.argmax(fv)

	// The arg-max posterior lives in [1/len(labels), 1]; the rescale domain
	// starts at 0.5, so anything below it clamps to a zero-magnitude call.
	clamped := p
	if clamped < 0.5 {
		clamped = 0.5
	}
	polarity := mapRange(clamped, 0.5, 1, 0, 1)
	if sample == LabelNegative {
		polarity = -polarity
	}

	return models.Classification{Polarity: polarity, Probability: p}, nil
}

// argmax returns the most probable label and its normalized posterior.
func (nb *NaiveBayes) argmax(fv FeatureVector) (Label, float64) {
	scores := make(map[Label]float64, len(nb.labels))
	maxScore := math.Inf(-1)
	for _, label := range nb.labels {
		s := nb.logPrior[label]
		probs := nb.logProb[label]
		for w := range fv {
			if lp, ok := probs[w]; ok {
				s += lp
			} else {
				s += nb.logDefault[label]
			}
		}
		scores[label] = s
		if s > maxScore {
			maxScore = s
		}
	}

	var sum float64
	for label, s := range scores {
		e := math.Exp(s - maxScore)
		scores[label] = e
		sum += e
	}

	best := nb.labels[0]
	bestP := 0.0
	for _, label := range nb.labels {
		p := scores[label] / sum
		if p > bestP {
			best, bestP = label, p
		}
	}
	return best, bestP
}

// mapRange linearly rescales a number from one range to another.
func mapRange(number, inStart, inEnd, outStart, outEnd float64) float64 {
	return (number-inStart)*(outEnd-outStart)/(inEnd-inStart) + outStart
}
