package emotion

import "testing"

func TestAllMatchesCount(t *testing.T) {
	if len(All) != Count {
		t.Fatalf("len(All) = %d, want %d", len(All), Count)
	}
	seen := make(map[Emotion]bool)
	for _, e := range All {
		if !e.IsValid() {
			t.Errorf("%s in All but not valid", e)
		}
		if seen[e] {
			t.Errorf("%s appears twice in All", e)
		}
		seen[e] = true
	}
}

func TestIsValidRejectsUnknown(t *testing.T) {
	if Emotion("bored").IsValid() {
		t.Error("unknown category reported valid")
	}
	if Emotion("").IsValid() {
		t.Error("empty category reported valid")
	}
}

func TestValenceGroups(t *testing.T) {
	positive := []Emotion{Happy, Excited, Calm, Focused}
	negative := []Emotion{Sad, Angry, Anxious, Frustrated, Overwhelmed}
	neutral := []Emotion{Neutral, Tired}

	for _, e := range positive {
		if e.Valence() != ValencePositive {
			t.Errorf("%s valence = %s, want positive", e, e.Valence())
		}
	}
	for _, e := range negative {
		if !e.IsNegative() {
			t.Errorf("%s not in negative group", e)
		}
	}
	for _, e := range neutral {
		if e.Valence() != ValenceNeutral {
			t.Errorf("%s valence = %s, want neutral", e, e.Valence())
		}
	}

	if len(positive)+len(negative)+len(neutral) != Count {
		t.Fatalf("valence groups do not partition the category set")
	}
}

func TestTiredIsNotNegative(t *testing.T) {
	// Fatigue has its own alert path; it must not trip negative-group logic.
	if Tired.IsNegative() {
		t.Error("tired counted as negative")
	}
}

func TestWeightSum(t *testing.T) {
	s := State{SourceWeights: map[string]float64{"facial": 0.6, "voice": 0.4}}
	if got := s.WeightSum(); got < 0.999 || got > 1.001 {
		t.Errorf("weight sum = %f, want 1", got)
	}
	if got := (State{}).WeightSum(); got != 0 {
		t.Errorf("empty weight sum = %f, want 0", got)
	}
}
