package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/signal"
)

func TestLoadFile_LayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classify.yaml")
	data := `
text_confidence_cap: 0.9
lexicon:
  happy: ["contento", "feliz"]
  sad: ["triste"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.TextConfidenceCap != 0.9 {
		t.Errorf("TextConfidenceCap = %f, want 0.9", cfg.TextConfidenceCap)
	}
	// Untouched keys keep their defaults
	if cfg.FacialWeight != 0.4 {
		t.Errorf("FacialWeight = %f, want default 0.4", cfg.FacialWeight)
	}

	// Swapped locale drives text classification
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r := c.Text(&signal.Text{Content: "muy feliz hoy"})
	if len(r.Predictions) == 0 || r.Predictions[0].Emotion != emotion.Happy {
		t.Errorf("Expected happy from swapped lexicon, got %+v", r.Predictions)
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classify.yaml")
	if err := os.WriteFile(path, []byte("facial_weight: -1\n"), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected validation error for negative weight")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
