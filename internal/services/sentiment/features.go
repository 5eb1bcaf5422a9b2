package sentiment

// FeatureVector is a sparse presence map over vocabulary tokens. Tokens
// absent from the text are omitted, never stored as false; with a 10k-word
// vocabulary a dense map per document would dominate memory.
type FeatureVector map[string]struct{}

// Features builds the feature vector of a text against a fixed vocabulary.
func Features(vocab *Vocabulary, text string) FeatureVector {
	fv := make(FeatureVector)
	for _, word := range Tokenize(text) {
		if vocab.Contains(word) {
			fv[word] = struct{}{}
		}
	}
	return fv
}
