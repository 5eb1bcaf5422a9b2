package sentiment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestArtifactRoundTrip(t *testing.T) {
	nb := trainTestModel(t)
	path := filepath.Join(t.TempDir(), "model.bin")
	if err := nb.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadNaiveBayes(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for _, text := range []string{"good great", "bad terrible", "market opens", ""} {
		want, err := nb.Classify(text)
		if err != nil {
			t.Fatalf("classify original: %v", err)
		}
		got, err := loaded.Classify(text)
		if err != nil {
			t.Fatalf("classify loaded: %v", err)
		}
		if got.Polarity != want.Polarity || got.Probability != want.Probability {
			t.Fatalf("round trip drift on %q: got %+v, want %+v", text, got, want)
		}
	}
}

func TestArtifactNoTempFileLeftBehind(t *testing.T) {
	nb := trainTestModel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "model.bin")
	if err := nb.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	if _, err := LoadNaiveBayes(filepath.Join(t.TempDir(), "absent.bin")); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestLoadCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	if err := os.WriteFile(path, []byte("not a gzip blob"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadNaiveBayes(path); err == nil {
		t.Fatalf("expected error for corrupt artifact")
	}
}
