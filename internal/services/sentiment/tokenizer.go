package sentiment

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

var (
	nonLetterPattern  = regexp.MustCompile(`[^a-z ]`)
	whitespacePattern = regexp.MustCompile(`\s{2,}`)
)

// Tokenize normalizes a sentence into a list of lowercase letter-only
// tokens: lowercase, strip everything that is not a letter or space,
// collapse whitespace runs, split on single spaces. Invalid encoding bytes
// fall out with the non-letter filter instead of failing the sentence.
func Tokenize(sentence string) []string {
	sentence = strings.ToLower(sentence)
	sentence = nonLetterPattern.ReplaceAllString(sentence, "")
	sentence = whitespacePattern.ReplaceAllString(sentence, " ")
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil
	}
	return strings.Split(sentence, " ")
}

// LoadStopWords reads one stop word per line, cleaned with the same
// letter-only filter applied to training text. Empty lines are skipped.
func LoadStopWords(path string) ([]string, error) {
	var words []string
	err := eachLine(path, func(line string) {
		line = strings.ToLower(strings.TrimSpace(line))
		line = nonLetterPattern.ReplaceAllString(line, "")
		if line == "" {
			return
		}
		words = append(words, line)
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// eachLine streams a flat text file line by line. The buffer is widened so
// long corpus lines do not abort the scan.
func eachLine(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fn(sc.Text())
	}
	return sc.Err()
}
