package fusion

import (
	"math"
	"testing"
	"time"

	"github.com/auralab/go-aura/pkg/classify"
	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/signal"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := classify.New(classify.DefaultConfig())
	if err != nil {
		t.Fatalf("classify.New failed: %v", err)
	}
	fixed := time.UnixMilli(1700000000000)
	return NewWithClock(c, func() time.Time { return fixed })
}

func TestFuse_NoModalities(t *testing.T) {
	e := newTestEngine(t)

	state := e.Fuse(Inputs{})

	if state.Mood != emotion.Neutral {
		t.Errorf("Mood = %s, want neutral", state.Mood)
	}
	if state.Confidence != 0.3 {
		t.Errorf("Confidence = %f, want 0.3", state.Confidence)
	}
	if len(state.SourceWeights) != 0 {
		t.Errorf("SourceWeights = %v, want empty", state.SourceWeights)
	}
	if state.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d, want clock time", state.Timestamp)
	}
}

func TestFuse_ActivityContext(t *testing.T) {
	e := newTestEngine(t)

	state := e.Fuse(Inputs{Activity: &signal.Activity{Label: "homework"}})

	if state.Context != "homework" {
		t.Errorf("Context = %q, want homework", state.Context)
	}
}

func TestFuse_SourceWeightsSumToOne(t *testing.T) {
	e := newTestEngine(t)

	cases := []Inputs{
		{Facial: &signal.Facial{Features: []float64{0.9, 0.1}}},
		{
			Facial: &signal.Facial{Features: []float64{0.9, 0.1}},
			Voice:  &signal.Voice{Pitch: 0.8, Energy: 0.8},
		},
		{
			Facial:   &signal.Facial{Features: []float64{0.9, 0.1}},
			Voice:    &signal.Voice{Pitch: 0.8, Energy: 0.8},
			Text:     &signal.Text{Content: "feeling great"},
			Wearable: &signal.Wearable{HeartRate: signal.Float64(70)},
		},
	}

	for i, in := range cases {
		state := e.Fuse(in)
		if math.Abs(state.WeightSum()-1) > 1e-9 {
			t.Errorf("case %d: weight sum = %.12f, want 1", i, state.WeightSum())
		}
	}
}

func TestFuse_AgreementLiftsConfidence(t *testing.T) {
	e := newTestEngine(t)

	// Both modalities rank happy near the top
	agreeing := e.Fuse(Inputs{
		Facial: &signal.Facial{Features: []float64{0.95, 0.05}},
		Text:   &signal.Text{Content: "so happy and glad"},
	})
	if agreeing.Mood != emotion.Happy {
		t.Fatalf("Mood = %s, want happy", agreeing.Mood)
	}

	// Only the facial modality sees happy; text reads tired
	split := e.Fuse(Inputs{
		Facial: &signal.Facial{Features: []float64{0.95, 0.05}},
		Text:   &signal.Text{Content: "exhausted and drained"},
	})

	if agreeing.Confidence <= split.Confidence {
		t.Errorf("Agreement should lift confidence: agreeing=%.3f split=%.3f",
			agreeing.Confidence, split.Confidence)
	}
}

func TestFuse_ConfidenceBounds(t *testing.T) {
	e := newTestEngine(t)

	extreme := []Inputs{
		{Facial: &signal.Facial{Features: []float64{1e12, -1e12}}},
		{Voice: &signal.Voice{Pitch: 1e9, Energy: 1e9}},
		{Text: &signal.Text{Content: "happy happy happy happy happy happy happy"}},
		{
			Facial:   &signal.Facial{Features: []float64{0.99, 0.01}},
			Voice:    &signal.Voice{Pitch: 0.99, Energy: 0.99},
			Text:     &signal.Text{Content: "happy excited thrilled"},
			Wearable: &signal.Wearable{Steps: signal.Float64(500)},
		},
	}

	for i, in := range extreme {
		state := e.Fuse(in)
		if state.Confidence < 0 || state.Confidence > 1 {
			t.Errorf("case %d: confidence %f outside [0,1]", i, state.Confidence)
		}
	}
}

func TestFuse_Deterministic(t *testing.T) {
	e := newTestEngine(t)

	in := Inputs{
		Facial: &signal.Facial{Features: []float64{0.6, 0.6}},
		Voice:  &signal.Voice{Pitch: 0.5, Energy: 0.5},
		Text:   &signal.Text{Content: "calm but a little worried"},
	}

	first := e.Fuse(in)
	for i := 0; i < 10; i++ {
		again := e.Fuse(in)
		if again.Mood != first.Mood || again.Confidence != first.Confidence {
			t.Fatalf("Fusion not deterministic: run %d got %s/%.6f, first %s/%.6f",
				i, again.Mood, again.Confidence, first.Mood, first.Confidence)
		}
	}
}

func TestFuse_SingleModalityWeight(t *testing.T) {
	e := newTestEngine(t)

	state := e.Fuse(Inputs{Text: &signal.Text{Content: "furious about everything"}})

	w, ok := state.SourceWeights[string(signal.ModalityText)]
	if !ok || w != 1 {
		t.Errorf("SourceWeights[text] = %f, %v; want 1, true", w, ok)
	}
	if state.Mood != emotion.Angry {
		t.Errorf("Mood = %s, want angry", state.Mood)
	}
}
