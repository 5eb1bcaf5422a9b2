package sentiment

import (
	"reflect"
	"testing"
)

func TestVocabularyBuilderTopK(t *testing.T) {
	b := NewVocabularyBuilder([]string{"the"})
	b.Add("the market rallies market")
	b.Add("market gains")
	b.Add("gains gains slump")

	v := b.Build(2)
	if v.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", v.Len())
	}
	// market: 3, gains: 3, rallies: 1, slump: 1; tie broken by first seen
	want := []string{"market", "gains"}
	if !reflect.DeepEqual(v.Words(), want) {
		t.Fatalf("got %v, want %v", v.Words(), want)
	}
	if v.Contains("the") {
		t.Fatalf("stop word leaked into vocabulary")
	}
}

func TestVocabularyBuilderDistinct(t *testing.T) {
	b := NewVocabularyBuilder(nil)
	b.Add("one two two three")
	if b.Distinct() != 3 {
		t.Fatalf("expected 3 distinct, got %d", b.Distinct())
	}
}

func TestFeaturesPresenceOnly(t *testing.T) {
	v := newVocabulary([]string{"up", "down"})
	fv := Features(v, "up up up and away")
	if len(fv) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fv))
	}
	if _, ok := fv["up"]; !ok {
		t.Fatalf("missing feature")
	}
}
