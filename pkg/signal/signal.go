// Package signal defines the raw per-modality observations consumed by the
// classifiers, and the normalization helpers that make them comparable.
//
// Signals arrive at irregular real-world cadence from the perception layer
// (facial, voice), the journaling surface (text) and an optional wearable
// bridge. Any subset of modalities may be present for a given fusion call.
package signal

// Modality names one independent signal channel.
type Modality string

const (
	ModalityFacial   Modality = "facial"
	ModalityVoice    Modality = "voice"
	ModalityText     Modality = "text"
	ModalityWearable Modality = "wearable"
)

// Facial is a summarized facial feature vector from the perception layer.
// Feature extraction itself (video frames to components) happens upstream.
type Facial struct {
	// Features is the raw feature vector. Convention: index 0 tracks smile
	// intensity, index 1 tracks brow/eye tension. Values are unbounded on
	// input and L2-normalized before classification.
	Features []float64 `json:"features"`

	// Timestamp is millisecond epoch of the capture.
	Timestamp int64 `json:"timestamp"`
}

// Voice is a summarized voice tone measurement.
type Voice struct {
	// Pitch is the relative pitch level, clamped to [0,1] on use.
	Pitch float64 `json:"pitch"`

	// Energy is the relative vocal energy, clamped to [0,1] on use.
	Energy float64 `json:"energy"`

	// Tone is an optional upstream tone label (e.g. "cheerful", "flat").
	Tone string `json:"tone,omitempty"`

	Timestamp int64 `json:"timestamp"`
}

// Text is a free-text journal entry or message.
type Text struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Wearable is a reading from a wearable-device bridge.
// Both measurements are optional; nil means the device did not report.
type Wearable struct {
	// HeartRate in beats per minute.
	HeartRate *float64 `json:"heart_rate,omitempty"`

	// Steps per minute.
	Steps *float64 `json:"steps,omitempty"`

	Timestamp int64 `json:"timestamp"`
}

// Activity is the free-text context label supplied alongside a fusion call.
type Activity struct {
	Label string `json:"label"`
}

// Float64 returns a pointer to v, for building optional wearable fields.
func Float64(v float64) *float64 { return &v }
