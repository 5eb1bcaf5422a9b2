package sentiment

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestStripURLs(t *testing.T) {
	got := StripURLs("buy now https://example.com/x?y=1 great stock")
	if got != "buy now  great stock" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestSpamFilterMatch(t *testing.T) {
	f := NewSpamFilter([]*regexp.Regexp{
		regexp.MustCompile(`(?i)free money`),
		regexp.MustCompile(`(?i)click here`),
	})
	if !f.Match("FREE MONEY inside") {
		t.Fatalf("expected match")
	}
	if f.Match("quarterly earnings beat") {
		t.Fatalf("unexpected match")
	}
}

func TestLoadSpamFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spam.txt")
	if err := os.WriteFile(path, []byte("pump\n\ndump\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := LoadSpamFilter(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !f.Match("PUMP it") {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestLoadSpamFilterBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spam.txt")
	if err := os.WriteFile(path, []byte("[invalid\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSpamFilter(path); err == nil {
		t.Fatalf("expected compile error")
	}
}
