// Package classify maps one modality's normalized signal to a ranked list of
// emotion predictions plus a fixed reliability weight.
//
// The four classifiers (facial, voice, text, wearable) are independent pure
// functions: same signal and tables in, same ranked predictions out. They
// never fail — absent or degenerate input degrades to a low-confidence
// neutral prediction. This is deliberately a threshold-and-keyword system,
// not a trained model.
package classify

import (
	"sort"
	"strings"
	"unicode"

	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/signal"
)

// maxPredictions bounds each classifier's ranked output.
const maxPredictions = 3

// Result is one modality's ranked read of the person's state.
type Result struct {
	Modality    signal.Modality      `json:"modality"`
	Predictions []emotion.Prediction `json:"predictions"`
	Weight      float64              `json:"weight"`
}

// Contains reports whether the result ranked the given category.
func (r Result) Contains(e emotion.Emotion) bool {
	for _, p := range r.Predictions {
		if p.Emotion == e {
			return true
		}
	}
	return false
}

// Classifier evaluates the per-modality rules against its injected tables.
type Classifier struct {
	cfg Config

	// lexicon sets built once from cfg.Lexicon for O(1) word lookup
	words map[string][]emotion.Emotion
}

// New creates a classifier, validating the configuration.
func New(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	words := make(map[string][]emotion.Emotion)
	for e, list := range cfg.Lexicon {
		for _, w := range list {
			w = strings.ToLower(w)
			words[w] = append(words[w], e)
		}
	}

	return &Classifier{cfg: cfg, words: words}, nil
}

// Config returns a copy of the classifier's configuration.
func (c *Classifier) Config() Config { return c.cfg }

// Facial classifies a facial feature vector.
// The vector is L2-normalized and the first two components (smile, tension)
// are thresholded against the configured cut points.
func (c *Classifier) Facial(sig *signal.Facial) Result {
	if sig == nil || len(sig.Features) < 2 {
		return c.fallback(signal.ModalityFacial, c.cfg.FacialWeight)
	}

	f := signal.NormalizeL2(sig.Features)
	if isZeroVector(f) {
		// Zero-norm vector carries no facial information
		return c.fallback(signal.ModalityFacial, c.cfg.FacialWeight)
	}
	smile, tension := f[0], f[1]

	var preds []emotion.Prediction
	switch {
	case smile >= c.cfg.SmileHigh:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Happy, Confidence: smile},
			emotion.Prediction{Emotion: emotion.Excited, Confidence: smile * 0.6})
	case smile <= c.cfg.SmileLow:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Sad, Confidence: signal.Clamp01(1 - smile)},
			emotion.Prediction{Emotion: emotion.Tired, Confidence: 0.4})
	}
	if tension >= c.cfg.TensionHigh {
		preds = append(preds, emotion.Prediction{Emotion: emotion.Anxious, Confidence: tension})
	}
	if len(preds) == 0 {
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Neutral, Confidence: 0.5},
			emotion.Prediction{Emotion: emotion.Calm, Confidence: 0.4})
	}

	return Result{Modality: signal.ModalityFacial, Predictions: rank(preds), Weight: c.cfg.FacialWeight}
}

// Voice classifies a voice tone measurement using the pitch/energy quadrant
// rule; a configured tone label can override or extend the quadrant output.
func (c *Classifier) Voice(sig *signal.Voice) Result {
	if sig == nil {
		return c.fallback(signal.ModalityVoice, c.cfg.VoiceWeight)
	}

	pitch := signal.Clamp01(sig.Pitch)
	energy := signal.Clamp01(sig.Energy)

	var preds []emotion.Prediction
	switch {
	case pitch >= c.cfg.PitchHigh && energy >= c.cfg.EnergyHigh:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Excited, Confidence: energy},
			emotion.Prediction{Emotion: emotion.Happy, Confidence: pitch * 0.8})
	case energy >= c.cfg.EnergyHigh && pitch <= c.cfg.PitchLow:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Angry, Confidence: energy},
			emotion.Prediction{Emotion: emotion.Frustrated, Confidence: energy * 0.8})
	case energy <= c.cfg.EnergyLow && pitch <= c.cfg.PitchLow:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Sad, Confidence: signal.Clamp01(1 - energy)},
			emotion.Prediction{Emotion: emotion.Tired, Confidence: signal.Clamp01((1 - energy) * 0.8)})
	case energy <= c.cfg.EnergyLow && pitch >= c.cfg.PitchHigh:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Anxious, Confidence: pitch},
			emotion.Prediction{Emotion: emotion.Overwhelmed, Confidence: pitch * 0.8})
	default:
		preds = append(preds,
			emotion.Prediction{Emotion: emotion.Calm, Confidence: 0.5},
			emotion.Prediction{Emotion: emotion.Neutral, Confidence: 0.4})
	}

	if sig.Tone != "" {
		if override, ok := c.cfg.ToneOverrides[strings.ToLower(sig.Tone)]; ok {
			preds = append(preds, override...)
		}
	}

	return Result{Modality: signal.ModalityVoice, Predictions: rank(preds), Weight: c.cfg.VoiceWeight}
}

// Text classifies free text by case-insensitive whole-word counts against
// the lexicon. Confidence per category is matches/totalMatches, capped.
func (c *Classifier) Text(sig *signal.Text) Result {
	if sig == nil || strings.TrimSpace(sig.Content) == "" {
		return c.fallback(signal.ModalityText, c.cfg.TextWeight)
	}

	counts := make(map[emotion.Emotion]int)
	total := 0
	for _, tok := range tokenize(sig.Content) {
		for _, e := range c.words[tok] {
			counts[e]++
			total++
		}
	}
	if total == 0 {
		return c.fallback(signal.ModalityText, c.cfg.TextWeight)
	}

	var preds []emotion.Prediction
	for e, n := range counts {
		conf := float64(n) / float64(total)
		if conf > c.cfg.TextConfidenceCap {
			conf = c.cfg.TextConfidenceCap
		}
		preds = append(preds, emotion.Prediction{Emotion: e, Confidence: conf})
	}

	return Result{Modality: signal.ModalityText, Predictions: rank(preds), Weight: c.cfg.TextWeight}
}

// Wearable classifies heart-rate and step-count readings by threshold.
func (c *Classifier) Wearable(sig *signal.Wearable) Result {
	if sig == nil || (sig.HeartRate == nil && sig.Steps == nil) {
		return c.fallback(signal.ModalityWearable, c.cfg.WearableWeight)
	}

	var preds []emotion.Prediction
	if sig.HeartRate != nil {
		hr := *sig.HeartRate
		switch {
		case hr > c.cfg.HeartRateHigh:
			if sig.Steps != nil && *sig.Steps > c.cfg.StepsActive {
				preds = append(preds, emotion.Prediction{Emotion: emotion.Excited, Confidence: 0.7})
			} else {
				preds = append(preds, emotion.Prediction{Emotion: emotion.Anxious, Confidence: 0.7})
			}
		case hr < c.cfg.HeartRateLow && hr > 0:
			preds = append(preds,
				emotion.Prediction{Emotion: emotion.Calm, Confidence: 0.6},
				emotion.Prediction{Emotion: emotion.Tired, Confidence: 0.5})
		}
	}
	if sig.Steps != nil {
		steps := *sig.Steps
		switch {
		case steps > c.cfg.StepsHigh:
			preds = append(preds, emotion.Prediction{Emotion: emotion.Excited, Confidence: 0.65})
		case steps < c.cfg.StepsLow:
			preds = append(preds,
				emotion.Prediction{Emotion: emotion.Calm, Confidence: 0.5},
				emotion.Prediction{Emotion: emotion.Focused, Confidence: 0.4})
		}
	}
	if len(preds) == 0 {
		// Readings present but all in the unremarkable middle range
		return c.fallback(signal.ModalityWearable, c.cfg.WearableWeight)
	}

	return Result{Modality: signal.ModalityWearable, Predictions: rank(preds), Weight: c.cfg.WearableWeight}
}

func isZeroVector(f []float64) bool {
	for _, v := range f {
		if v != 0 {
			return false
		}
	}
	return true
}

// fallback is the low-confidence neutral result for degenerate input.
func (c *Classifier) fallback(m signal.Modality, weight float64) Result {
	return Result{
		Modality:    m,
		Predictions: []emotion.Prediction{{Emotion: emotion.Neutral, Confidence: c.cfg.NeutralConfidence}},
		Weight:      weight,
	}
}

// rank clamps confidences, de-duplicates by category keeping the max, sorts
// by confidence descending (canonical category order breaks ties) and
// truncates to maxPredictions.
func rank(preds []emotion.Prediction) []emotion.Prediction {
	best := make(map[emotion.Emotion]float64, len(preds))
	for _, p := range preds {
		conf := signal.Clamp01(p.Confidence)
		if conf > best[p.Emotion] {
			best[p.Emotion] = conf
		}
	}

	order := make(map[emotion.Emotion]int, emotion.Count)
	for i, e := range emotion.All {
		order[e] = i
	}

	out := make([]emotion.Prediction, 0, len(best))
	for e, conf := range best {
		out = append(out, emotion.Prediction{Emotion: e, Confidence: conf})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return order[out[i].Emotion] < order[out[j].Emotion]
	})

	if len(out) > maxPredictions {
		out = out[:maxPredictions]
	}
	return out
}

// tokenize splits text into lowercase words. Apostrophes stay inside words
// so contractions match as single tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
