package classify

import (
	"testing"

	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/signal"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func top(t *testing.T, r Result) emotion.Prediction {
	t.Helper()
	if len(r.Predictions) == 0 {
		t.Fatal("Expected at least one prediction")
	}
	return r.Predictions[0]
}

func TestFacial_HighSmile(t *testing.T) {
	c := newTestClassifier(t)

	// Dominant first component: normalizes to smile near 1
	r := c.Facial(&signal.Facial{Features: []float64{0.95, 0.1, 0.05}})

	if got := top(t, r); got.Emotion != emotion.Happy {
		t.Errorf("Top prediction = %s, want happy", got.Emotion)
	}
	if !r.Contains(emotion.Excited) {
		t.Error("Expected excited among ranked predictions")
	}
	if r.Weight != 0.4 {
		t.Errorf("Weight = %f, want 0.4", r.Weight)
	}
}

func TestFacial_LowSmileHighTension(t *testing.T) {
	c := newTestClassifier(t)

	// Small smile, dominant tension component
	r := c.Facial(&signal.Facial{Features: []float64{0.1, 0.99, 0.05}})

	if !r.Contains(emotion.Sad) {
		t.Error("Expected sad for low smile")
	}
	if !r.Contains(emotion.Anxious) {
		t.Error("Expected anxious for high tension")
	}
	if len(r.Predictions) > 3 {
		t.Errorf("Got %d predictions, want at most 3", len(r.Predictions))
	}
}

func TestFacial_Degenerate(t *testing.T) {
	c := newTestClassifier(t)

	for _, sig := range []*signal.Facial{nil, {}, {Features: []float64{0.5}}} {
		r := c.Facial(sig)
		got := top(t, r)
		if got.Emotion != emotion.Neutral {
			t.Errorf("Degenerate input: top = %s, want neutral", got.Emotion)
		}
		if got.Confidence != 0.2 {
			t.Errorf("Degenerate input: confidence = %f, want 0.2", got.Confidence)
		}
	}
}

func TestFacial_AllZeroVector(t *testing.T) {
	c := newTestClassifier(t)

	// All-zero is the one vector L2 normalization cannot scale; it must
	// degrade to the neutral fallback, never read as a confident low smile.
	r := c.Facial(&signal.Facial{Features: []float64{0, 0, 0}})

	got := top(t, r)
	if got.Emotion != emotion.Neutral {
		t.Errorf("All-zero vector: top = %s, want neutral", got.Emotion)
	}
	if got.Confidence != 0.2 {
		t.Errorf("All-zero vector: confidence = %f, want 0.2", got.Confidence)
	}
	if r.Contains(emotion.Sad) {
		t.Error("All-zero vector must not rank sad")
	}
}

func TestVoice_Quadrants(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		name          string
		pitch, energy float64
		want          emotion.Emotion
	}{
		{"high pitch high energy", 0.9, 0.9, emotion.Excited},
		{"low pitch high energy", 0.2, 0.9, emotion.Angry},
		{"low pitch low energy", 0.2, 0.2, emotion.Sad},
		{"high pitch low energy", 0.9, 0.2, emotion.Anxious},
		{"middle", 0.5, 0.5, emotion.Calm},
	}

	for _, tc := range cases {
		r := c.Voice(&signal.Voice{Pitch: tc.pitch, Energy: tc.energy})
		if got := top(t, r); got.Emotion != tc.want {
			t.Errorf("%s: top = %s, want %s", tc.name, got.Emotion, tc.want)
		}
	}
}

func TestVoice_ToneOverride(t *testing.T) {
	c := newTestClassifier(t)

	// Middle quadrant would say calm; the harsh tone label overrides it
	r := c.Voice(&signal.Voice{Pitch: 0.5, Energy: 0.5, Tone: "Harsh"})

	if got := top(t, r); got.Emotion != emotion.Angry {
		t.Errorf("Top with harsh tone = %s, want angry", got.Emotion)
	}
}

func TestVoice_ClampsOutOfRange(t *testing.T) {
	c := newTestClassifier(t)

	r := c.Voice(&signal.Voice{Pitch: 42, Energy: -3})

	for _, p := range r.Predictions {
		if p.Confidence < 0 || p.Confidence > 1 {
			t.Errorf("Confidence %f outside [0,1]", p.Confidence)
		}
	}
	// pitch clamps to 1, energy to 0: high-pitch/low-energy quadrant
	if got := top(t, r); got.Emotion != emotion.Anxious {
		t.Errorf("Top = %s, want anxious", got.Emotion)
	}
}

func TestText_LexiconCounts(t *testing.T) {
	c := newTestClassifier(t)

	r := c.Text(&signal.Text{Content: "I feel happy, so happy, though a bit tired."})

	got := top(t, r)
	if got.Emotion != emotion.Happy {
		t.Errorf("Top = %s, want happy", got.Emotion)
	}
	// 2 happy matches of 3 total
	if diff := got.Confidence - 2.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Confidence = %f, want 2/3", got.Confidence)
	}
	if !r.Contains(emotion.Tired) {
		t.Error("Expected tired among predictions")
	}
}

func TestText_ConfidenceCap(t *testing.T) {
	c := newTestClassifier(t)

	r := c.Text(&signal.Text{Content: "sad sad sad sad"})

	if got := top(t, r); got.Confidence != 0.95 {
		t.Errorf("Confidence = %f, want capped at 0.95", got.Confidence)
	}
}

func TestText_WholeWordOnly(t *testing.T) {
	c := newTestClassifier(t)

	// "unhappy" must not count as "happy"; it is its own sad keyword
	r := c.Text(&signal.Text{Content: "thoroughly unhappy today"})

	if got := top(t, r); got.Emotion != emotion.Sad {
		t.Errorf("Top = %s, want sad", got.Emotion)
	}
	if r.Contains(emotion.Happy) {
		t.Error("Substring match leaked: happy predicted from 'unhappy'")
	}
}

func TestText_NoMatches(t *testing.T) {
	c := newTestClassifier(t)

	r := c.Text(&signal.Text{Content: "the weather report mentioned rain"})

	if got := top(t, r); got.Emotion != emotion.Neutral || got.Confidence != 0.2 {
		t.Errorf("No-match text: got %s/%.2f, want neutral/0.20", got.Emotion, got.Confidence)
	}
}

func TestWearable_Thresholds(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		name  string
		hr    *float64
		steps *float64
		want  emotion.Emotion
	}{
		{"high HR at rest", signal.Float64(120), signal.Float64(5), emotion.Anxious},
		{"high HR moving", signal.Float64(120), signal.Float64(110), emotion.Excited},
		{"low HR", signal.Float64(52), nil, emotion.Calm},
		{"many steps", nil, signal.Float64(140), emotion.Excited},
		{"few steps", nil, signal.Float64(10), emotion.Calm},
	}

	for _, tc := range cases {
		r := c.Wearable(&signal.Wearable{HeartRate: tc.hr, Steps: tc.steps})
		if got := top(t, r); got.Emotion != tc.want {
			t.Errorf("%s: top = %s, want %s", tc.name, got.Emotion, tc.want)
		}
	}
}

func TestWearable_AbsentReadings(t *testing.T) {
	c := newTestClassifier(t)

	for _, sig := range []*signal.Wearable{nil, {}} {
		r := c.Wearable(sig)
		if got := top(t, r); got.Emotion != emotion.Neutral {
			t.Errorf("Absent readings: top = %s, want neutral", got.Emotion)
		}
	}

	// Middle-range readings are equally unremarkable
	r := c.Wearable(&signal.Wearable{HeartRate: signal.Float64(75), Steps: signal.Float64(50)})
	if got := top(t, r); got.Emotion != emotion.Neutral {
		t.Errorf("Middle-range readings: top = %s, want neutral", got.Emotion)
	}
}

func TestRank_DedupKeepsMax(t *testing.T) {
	preds := rank([]emotion.Prediction{
		{Emotion: emotion.Happy, Confidence: 0.3},
		{Emotion: emotion.Happy, Confidence: 0.8},
		{Emotion: emotion.Sad, Confidence: 0.5},
		{Emotion: emotion.Calm, Confidence: 0.4},
		{Emotion: emotion.Tired, Confidence: 0.2},
	})

	if len(preds) != 3 {
		t.Fatalf("Got %d predictions, want 3", len(preds))
	}
	if preds[0].Emotion != emotion.Happy || preds[0].Confidence != 0.8 {
		t.Errorf("Top = %s/%.2f, want happy/0.80", preds[0].Emotion, preds[0].Confidence)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.FacialWeight = -0.4 },
		func(c *Config) { c.VoiceWeight = 0 },
		func(c *Config) { c.SmileHigh = 0.2 }, // below SmileLow
		func(c *Config) { c.HeartRateLow = 150 },
		func(c *Config) { c.StepsLow = 500 },
		func(c *Config) { c.TextConfidenceCap = 1.5 },
		func(c *Config) { c.Lexicon = map[emotion.Emotion][]string{"blissful": {"bliss"}} },
	}

	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if _, err := New(cfg); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
