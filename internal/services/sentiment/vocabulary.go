package sentiment

import "sort"

// DefaultVocabularySize bounds the feature dimensionality of every model
// trained against a vocabulary.
const DefaultVocabularySize = 10000

// Vocabulary is the fixed feature-word set selected from the training
// corpus. It is immutable once built.
type Vocabulary struct {
	words []string
	index map[string]int
}

func newVocabulary(words []string) *Vocabulary {
	idx := make(map[string]int, len(words))
	for i, w := range words {
		idx[w] = i
	}
	return &Vocabulary{words: words, index: idx}
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[word]
	return ok
}

func (v *Vocabulary) Len() int { return len(v.words) }

// Words returns the tokens in selection order.
func (v *Vocabulary) Words() []string { return v.words }

// VocabularyBuilder accumulates global token frequencies across the
// training classes. Sentences must be fed in a fixed class order
// (positive, negative, neutral) so the first-seen tie-break is stable.
type VocabularyBuilder struct {
	stop      map[string]struct{}
	counts    map[string]int
	firstSeen map[string]int
	seq       int
}

func NewVocabularyBuilder(stopWords []string) *VocabularyBuilder {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[w] = struct{}{}
	}
	return &VocabularyBuilder{
		stop:      stop,
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

// Add tokenizes one training sentence and counts its non-stop-word tokens.
func (b *VocabularyBuilder) Add(sentence string) {
	for _, word := range Tokenize(sentence) {
		if _, skip := b.stop[word]; skip {
			continue
		}
		if _, seen := b.firstSeen[word]; !seen {
			b.firstSeen[word] = b.seq
			b.seq++
		}
		b.counts[word]++
	}
}

// Distinct returns the number of distinct tokens seen so far.
func (b *VocabularyBuilder) Distinct() int { return len(b.counts) }

// Build selects the top-k tokens by descending frequency, ties broken by
// first-seen order.
func (b *VocabularyBuilder) Build(k int) *Vocabulary {
	if k <= 0 {
		k = DefaultVocabularySize
	}
	words := make([]string, 0, len(b.counts))
	for w := range b.counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		ci, cj := b.counts[words[i]], b.counts[words[j]]
		if ci != cj {
			return ci > cj
		}
		return b.firstSeen[words[i]] < b.firstSeen[words[j]]
	})
	if len(words) > k {
		words = words[:k]
	}
	return newVocabulary(words)
}
