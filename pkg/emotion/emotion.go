// Package emotion defines the closed emotional vocabulary shared by the
// classifiers, fusion engine, alert engine and time capsule.
//
// The category set is deliberately closed: every component switches over it
// exhaustively, so adding a category is a compile-time visible change.
package emotion

// Emotion is one categorical emotional state.
type Emotion string

const (
	Happy       Emotion = "happy"
	Sad         Emotion = "sad"
	Angry       Emotion = "angry"
	Anxious     Emotion = "anxious"
	Calm        Emotion = "calm"
	Excited     Emotion = "excited"
	Tired       Emotion = "tired"
	Frustrated  Emotion = "frustrated"
	Focused     Emotion = "focused"
	Overwhelmed Emotion = "overwhelmed"
	Neutral     Emotion = "neutral"
)

// All lists every category in canonical order. Iteration over All (rather
// than over maps) keeps score argmax and distribution output deterministic.
var All = []Emotion{
	Happy, Sad, Angry, Anxious, Calm, Excited,
	Tired, Frustrated, Focused, Overwhelmed, Neutral,
}

// Count is the size of the closed category set.
const Count = 11

// IsValid reports whether e is a member of the closed set.
func (e Emotion) IsValid() bool {
	switch e {
	case Happy, Sad, Angry, Anxious, Calm, Excited,
		Tired, Frustrated, Focused, Overwhelmed, Neutral:
		return true
	}
	return false
}

// Valence is the coarse positive/negative/neutral bucket used to judge
// whether a mood shift is significant.
type Valence int

const (
	ValenceNeutral Valence = iota
	ValencePositive
	ValenceNegative
)

// String returns a human-readable valence name.
func (v Valence) String() string {
	switch v {
	case ValencePositive:
		return "positive"
	case ValenceNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// Valence returns the coarse bucket for e.
// Tired counts as neutral, not negative: fatigue gets its own alert path.
func (e Emotion) Valence() Valence {
	switch e {
	case Happy, Excited, Calm, Focused:
		return ValencePositive
	case Sad, Angry, Anxious, Frustrated, Overwhelmed:
		return ValenceNegative
	default:
		return ValenceNeutral
	}
}

// IsNegative reports whether e falls in the negative valence group.
func (e Emotion) IsNegative() bool { return e.Valence() == ValenceNegative }

// IsPositive reports whether e falls in the positive valence group.
func (e Emotion) IsPositive() bool { return e.Valence() == ValencePositive }

// Prediction is one classifier's ranked guess for a single category.
type Prediction struct {
	Emotion    Emotion `json:"emotion"`
	Confidence float64 `json:"confidence"`
}
