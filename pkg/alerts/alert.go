// Package alerts watches a stream of fused emotional states for concerning
// or encouraging temporal patterns.
//
// The engine keeps a bounded, confidence-filtered history and evaluates four
// independent detectors on demand: sustained negative emotion (with a
// separate prolonged-fatigue path), sudden valence changes, emotional
// volatility and positive trends. Each alert type has its own cooldown so a
// persisting condition cannot spam the caller.
package alerts

import (
	"fmt"

	"github.com/auralab/go-aura/pkg/emotion"
)

// Type identifies one alert pattern. The set is closed: the last-fired
// cooldown table is sized by it at compile time.
type Type int

const (
	SustainedNegative Type = iota
	SuddenChange
	RecurringPattern
	IntensitySpike
	ProlongedFatigue
	EmotionalVolatility
	PositiveTrend

	numTypes // sentinel, keep last
)

// String returns the wire name of the alert type.
func (t Type) String() string {
	switch t {
	case SustainedNegative:
		return "sustained_negative"
	case SuddenChange:
		return "sudden_change"
	case RecurringPattern:
		return "recurring_pattern"
	case IntensitySpike:
		return "intensity_spike"
	case ProlongedFatigue:
		return "prolonged_fatigue"
	case EmotionalVolatility:
		return "emotional_volatility"
	case PositiveTrend:
		return "positive_trend"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its wire name.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a wire name back into a Type.
func (t *Type) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' {
		name = name[1 : len(name)-1]
	}
	for c := Type(0); c < numTypes; c++ {
		if c.String() == name {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("alerts: unknown alert type %q", name)
}

// Severity grades how urgent an alert is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is one fired pattern detection.
type Alert struct {
	// ID is a unique identifier for presentation-layer bookkeeping.
	ID string `json:"id"`

	Type     Type            `json:"type"`
	Emotion  emotion.Emotion `json:"emotion"`
	Severity Severity        `json:"severity"`

	// Suggestion is a short actionable hint, possibly rewritten for the
	// activity the person was engaged in.
	Suggestion string `json:"suggestion"`

	// TriggeredAt is millisecond epoch of the detection.
	TriggeredAt int64 `json:"triggered_at"`

	// Duration of the detected pattern in milliseconds, when meaningful.
	Duration int64 `json:"duration,omitempty"`

	// Context is the activity label supplied with the check, if any.
	Context string `json:"context,omitempty"`
}

// Key is the composite identity used by presentation layers to dismiss an
// alert: type + emotion + trigger timestamp.
func (a Alert) Key() string {
	return fmt.Sprintf("%s|%s|%d", a.Type, a.Emotion, a.TriggeredAt)
}
