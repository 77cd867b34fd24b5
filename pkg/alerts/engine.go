package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/ring"
	"github.com/auralab/go-aura/pkg/signal"
)

// negativePriority ranks how urgent each negative category is when scaling
// sustained-alert severity.
var negativePriority = map[emotion.Emotion]int{
	emotion.Overwhelmed: 3,
	emotion.Angry:       2,
	emotion.Anxious:     2,
	emotion.Frustrated:  1,
	emotion.Sad:         1,
}

// Engine retains recent fused states and evaluates the pattern detectors.
//
// The engine performs no I/O and runs no timers: "now" is read at each call
// and cooldowns are plain timestamp comparisons. A single instance is not
// safe for concurrent use; callers sharing one must serialize access.
type Engine struct {
	cfg   Config
	clock func() time.Time

	history *ring.Buffer[emotion.State]

	// lastFired holds the last trigger time (ms epoch, 0 = never) per alert
	// type. Fixed-size so a new Type constant cannot be forgotten here.
	lastFired [numTypes]int64
}

// New creates an alert engine, validating the configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		cfg:     cfg,
		clock:   clock,
		history: ring.New[emotion.State](cfg.HistoryCap),
	}, nil
}

// AddState offers a fused state to the history. It reports whether the
// state was retained: states below the confidence floor are silently
// dropped, as are states older than the newest retained one, so the
// duration and volatility math always runs over time-ordered history.
func (e *Engine) AddState(s emotion.State) bool {
	if s.Confidence < e.cfg.ConfidenceFloor {
		return false
	}
	if newest, ok := e.history.Newest(); ok && s.Timestamp < newest.Timestamp {
		return false
	}
	e.history.Push(s)
	return true
}

// HistoryLen returns the number of retained states.
func (e *Engine) HistoryLen() int { return e.history.Len() }

// Reset clears the history and the cooldown table.
func (e *Engine) Reset() {
	e.history.Clear()
	e.lastFired = [numTypes]int64{}
}

// Check evaluates every detector against the retained history and returns
// the alerts that fired. Multiple detectors may fire on the same call; each
// is gated by its own cooldown. Fewer than two retained states yield no
// alerts. Check never fails.
func (e *Engine) Check(activity *signal.Activity) []Alert {
	if e.history.Len() < 2 {
		return nil
	}

	now := e.clock().UnixMilli()
	label := ""
	if activity != nil {
		label = activity.Label
	}

	var fired []Alert
	candidates := []candidate{
		e.checkSustained(),
		e.checkSuddenChange(),
		e.checkVolatility(now),
		e.checkPositiveTrend(),
	}

	for _, c := range candidates {
		if !c.ok || !e.cooldownElapsed(c.alert.Type, now) {
			continue
		}
		a := c.alert
		a.ID = uuid.NewString()
		a.TriggeredAt = now
		a.Context = label
		a.Suggestion = suggestionFor(a.Type, a.Emotion, label)
		e.lastFired[a.Type] = now
		fired = append(fired, a)
	}

	return fired
}

// cooldownElapsed reports whether the type's cooldown has passed.
// Volatility cools down twice as long as the base, positive trends three
// times, to keep the chattier detectors quiet.
func (e *Engine) cooldownElapsed(t Type, now int64) bool {
	last := e.lastFired[t]
	if last == 0 {
		return true
	}
	cooldown := e.cfg.Cooldown
	switch t {
	case EmotionalVolatility:
		cooldown *= 2
	case PositiveTrend:
		cooldown *= 3
	}
	return now-last >= cooldown.Milliseconds()
}

// candidate is a detector result before cooldown gating.
type candidate struct {
	alert Alert
	ok    bool
}

// checkSustained scans backward from the newest entry while the mood is
// unchanged and measures the run's elapsed time. A negative mood held for
// the sustained duration fires sustained_negative; tiredness held for
// FatigueFactor times the duration fires prolonged_fatigue instead.
func (e *Engine) checkSustained() candidate {
	n := e.history.Len()
	newest := e.history.At(n - 1)

	start := n - 1
	for start > 0 && e.history.At(start-1).Mood == newest.Mood {
		start--
	}
	elapsed := newest.Timestamp - e.history.At(start).Timestamp
	if elapsed <= 0 {
		return candidate{}
	}

	mood := newest.Mood
	if mood == emotion.Tired {
		threshold := time.Duration(float64(e.cfg.SustainedDuration) * e.cfg.FatigueFactor)
		if elapsed >= threshold.Milliseconds() {
			severity := SeverityLow
			if elapsed >= 2*threshold.Milliseconds() {
				severity = SeverityMedium
			}
			return candidate{Alert{
				Type:     ProlongedFatigue,
				Emotion:  mood,
				Severity: severity,
				Duration: elapsed,
			}, true}
		}
		return candidate{}
	}

	if mood.IsNegative() && elapsed >= e.cfg.SustainedDuration.Milliseconds() {
		severity := SeverityMedium
		if elapsed >= 2*e.cfg.SustainedDuration.Milliseconds() || negativePriority[mood] >= 3 {
			severity = SeverityHigh
		}
		return candidate{Alert{
			Type:     SustainedNegative,
			Emotion:  mood,
			Severity: severity,
			Duration: elapsed,
		}, true}
	}

	return candidate{}
}

// checkSuddenChange compares the two newest entries: a mood flip across
// valence groups inside the sudden-change window fires sudden_change.
// Crossing into the negative group is graded medium, anything else low.
func (e *Engine) checkSuddenChange() candidate {
	n := e.history.Len()
	prev := e.history.At(n - 2)
	cur := e.history.At(n - 1)

	if cur.Mood == prev.Mood {
		return candidate{}
	}
	gap := cur.Timestamp - prev.Timestamp
	if gap > e.cfg.SuddenWindow.Milliseconds() {
		return candidate{}
	}
	if cur.Mood.Valence() == prev.Mood.Valence() {
		return candidate{}
	}

	severity := SeverityLow
	if cur.Mood.IsNegative() {
		severity = SeverityMedium
	}
	return candidate{Alert{
		Type:     SuddenChange,
		Emotion:  cur.Mood,
		Severity: severity,
		Duration: gap,
	}, true}
}

// checkVolatility counts adjacent mood changes among the entries inside the
// volatility window; enough changes over at least three entries fire a
// high-severity emotional_volatility alert.
func (e *Engine) checkVolatility(now int64) candidate {
	cutoff := now - e.cfg.VolatilityWindow.Milliseconds()

	var inWindow []emotion.State
	for i := 0; i < e.history.Len(); i++ {
		if s := e.history.At(i); s.Timestamp >= cutoff {
			inWindow = append(inWindow, s)
		}
	}
	if len(inWindow) < 3 {
		return candidate{}
	}

	changes := 0
	for i := 1; i < len(inWindow); i++ {
		if inWindow[i].Mood != inWindow[i-1].Mood {
			changes++
		}
	}
	if changes < e.cfg.VolatilityThreshold {
		return candidate{}
	}

	return candidate{Alert{
		Type:     EmotionalVolatility,
		Emotion:  inWindow[len(inWindow)-1].Mood,
		Severity: SeverityHigh,
		Duration: inWindow[len(inWindow)-1].Timestamp - inWindow[0].Timestamp,
	}, true}
}

// checkPositiveTrend looks at the five most recent entries: four or more in
// the positive group, with the newest itself positive, fire a low-severity
// positive_trend alert.
func (e *Engine) checkPositiveTrend() candidate {
	n := e.history.Len()
	start := n - 5
	if start < 0 {
		start = 0
	}

	positives := 0
	for i := start; i < n; i++ {
		if e.history.At(i).Mood.IsPositive() {
			positives++
		}
	}
	newest := e.history.At(n - 1)
	if positives < 4 || !newest.Mood.IsPositive() {
		return candidate{}
	}

	return candidate{Alert{
		Type:     PositiveTrend,
		Emotion:  newest.Mood,
		Severity: SeverityLow,
		Duration: newest.Timestamp - e.history.At(start).Timestamp,
	}, true}
}
