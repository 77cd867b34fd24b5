package emotion

// State is one fused emotional reading.
//
// States are produced only by the fusion engine and are treated as immutable
// afterwards: the alert engine and time capsule read them but never modify
// them. SourceWeights values sum to 1 whenever the map is non-empty.
type State struct {
	// Mood is the winning category.
	Mood Emotion `json:"mood"`

	// Confidence is the fused confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// SourceWeights maps modality name to its normalized contribution.
	// Empty when no modality was present for the fusion call.
	SourceWeights map[string]float64 `json:"source_weights,omitempty"`

	// Timestamp is the fusion time in millisecond epoch.
	Timestamp int64 `json:"timestamp"`

	// Context is an optional free-text activity label.
	Context string `json:"context,omitempty"`
}

// WeightSum returns the sum of the source weights.
func (s State) WeightSum() float64 {
	var sum float64
	for _, w := range s.SourceWeights {
		sum += w
	}
	return sum
}
