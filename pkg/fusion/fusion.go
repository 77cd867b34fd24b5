// Package fusion combines whichever modality classifications are present
// into a single emotional state with confidence and per-source attribution.
//
// Fusion is deterministic and side-effect-free: same inputs and clock, same
// state. Anything cosmetic (display jitter, animation) belongs in the
// presentation layer, never here.
package fusion

import (
	"time"

	"github.com/auralab/go-aura/pkg/classify"
	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/signal"
)

// defaultConfidence is the confidence of the neutral state returned when no
// modality is present at all.
const defaultConfidence = 0.3

// Inputs carries the optional per-modality signals for one fusion call.
// Any subset (including none) may be set.
type Inputs struct {
	Facial   *signal.Facial   `json:"facial,omitempty"`
	Voice    *signal.Voice    `json:"voice,omitempty"`
	Text     *signal.Text     `json:"text,omitempty"`
	Wearable *signal.Wearable `json:"wearable,omitempty"`
	Activity *signal.Activity `json:"activity,omitempty"`
}

// Empty reports whether no modality signal is present.
func (in Inputs) Empty() bool {
	return in.Facial == nil && in.Voice == nil && in.Text == nil && in.Wearable == nil
}

// Engine fuses modality classifications into emotional states.
type Engine struct {
	classifier *classify.Classifier

	// Clock supplies "now" for state timestamps; injectable for tests.
	clock func() time.Time
}

// New creates a fusion engine over the given classifier.
func New(classifier *classify.Classifier) *Engine {
	return &Engine{classifier: classifier, clock: time.Now}
}

// NewWithClock creates an engine with an injected clock.
func NewWithClock(classifier *classify.Classifier, clock func() time.Time) *Engine {
	return &Engine{classifier: classifier, clock: clock}
}

// Fuse combines the present modalities into one emotional state.
//
// With no modality present it returns the neutral default (confidence 0.3,
// empty source weights). Otherwise the present modalities' reliability
// weights are normalized to sum to 1, weighted confidence is accumulated per
// category across every ranked prediction, and the top-scoring category
// wins. The final confidence is score × (0.7 + 0.3 × agreement), where
// agreement is the share of present modalities that ranked the winner.
func (e *Engine) Fuse(in Inputs) emotion.State {
	now := e.clock().UnixMilli()

	context := ""
	if in.Activity != nil {
		context = in.Activity.Label
	}

	if in.Empty() {
		return emotion.State{
			Mood:          emotion.Neutral,
			Confidence:    defaultConfidence,
			SourceWeights: map[string]float64{},
			Timestamp:     now,
			Context:       context,
		}
	}

	var results []classify.Result
	if in.Facial != nil {
		results = append(results, e.classifier.Facial(in.Facial))
	}
	if in.Voice != nil {
		results = append(results, e.classifier.Voice(in.Voice))
	}
	if in.Text != nil {
		results = append(results, e.classifier.Text(in.Text))
	}
	if in.Wearable != nil {
		results = append(results, e.classifier.Wearable(in.Wearable))
	}

	var totalWeight float64
	for _, r := range results {
		totalWeight += r.Weight
	}

	scores := make(map[emotion.Emotion]float64)
	weights := make(map[string]float64, len(results))
	for _, r := range results {
		w := r.Weight / totalWeight
		weights[string(r.Modality)] = w
		for _, p := range r.Predictions {
			scores[p.Emotion] += w * p.Confidence
		}
	}

	// Argmax over canonical category order for determinism
	winner := emotion.Neutral
	bestScore := -1.0
	for _, e := range emotion.All {
		if s, ok := scores[e]; ok && s > bestScore {
			winner = e
			bestScore = s
		}
	}

	agreeing := 0
	for _, r := range results {
		if r.Contains(winner) {
			agreeing++
		}
	}
	agreement := float64(agreeing) / float64(len(results))

	return emotion.State{
		Mood:          winner,
		Confidence:    signal.Clamp01(bestScore * (0.7 + 0.3*agreement)),
		SourceWeights: weights,
		Timestamp:     now,
		Context:       context,
	}
}
