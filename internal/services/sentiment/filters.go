package sentiment

import (
	"fmt"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// StripURLs removes links from a message before classification; they never
// carry vocabulary tokens and only inflate the non-letter noise.
func StripURLs(message string) string {
	return strings.TrimSpace(urlPattern.ReplaceAllString(message, ""))
}

// SpamFilter excludes documents matching any of an ordered list of
// case-insensitive patterns.
type SpamFilter struct {
	patterns []*regexp.Regexp
}

// LoadSpamFilter compiles one pattern per non-empty line.
func LoadSpamFilter(path string) (*SpamFilter, error) {
	f := &SpamFilter{}
	var compileErr error
	err := eachLine(path, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || compileErr != nil {
			return
		}
		p, err := regexp.Compile("(?i)" + line)
		if err != nil {
			compileErr = fmt.Errorf("spam pattern %q: %w", line, err)
			return
		}
		f.patterns = append(f.patterns, p)
	})
	if err != nil {
		return nil, err
	}
	if compileErr != nil {
		return nil, compileErr
	}
	return f, nil
}

// NewSpamFilter builds a filter from already-compiled patterns. Used by
// tests and by callers with an inline pattern list.
func NewSpamFilter(patterns []*regexp.Regexp) *SpamFilter {
	return &SpamFilter{patterns: patterns}
}

// Match reports whether the message hits any spam pattern.
func (f *SpamFilter) Match(message string) bool {
	for _, p := range f.patterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}
