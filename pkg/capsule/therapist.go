package capsule

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/auralab/go-aura/pkg/emotion"
)

// Audience selects the register of the generated summary text.
type Audience string

const (
	AudienceClinician Audience = "clinician"
	AudienceCaregiver Audience = "caregiver"
	AudienceSelf      Audience = "self"
)

// SummaryOptions shapes the generated prose. The zero value means a
// clinician summary with contexts, no focus filter and no length cap.
type SummaryOptions struct {
	Audience Audience `json:"audience,omitempty"`

	// IncludeContexts adds the most recent entry contexts to the text.
	IncludeContexts bool `json:"include_contexts,omitempty"`

	// MaxLength truncates the text to this many runes; 0 means unlimited.
	MaxLength int `json:"max_length,omitempty"`

	// FocusAreas restricts the trend discussion to these categories.
	FocusAreas []emotion.Emotion `json:"focus_areas,omitempty"`
}

// DefaultSummaryOptions returns the options used when the caller passes
// none.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Audience: AudienceClinician, IncludeContexts: true}
}

// TherapistSummary composes the period's Summary into deterministic
// templated prose. There is no free generation here: same history, same
// period, same options — same text.
func (c *Capsule) TherapistSummary(period *Period, opts SummaryOptions) string {
	if opts.Audience == "" {
		opts.Audience = AudienceClinician
	}

	s := c.Summarize(period)
	var b strings.Builder

	b.WriteString(opening(opts.Audience, s))

	total := s.EntryCount + s.StateCount
	if total == 0 {
		b.WriteString(" No observations were recorded in this period.")
		return truncate(b.String(), opts.MaxLength)
	}

	fmt.Fprintf(&b, " The dominant emotional state was %s (%.0f%% of %d observations).",
		s.Dominant, s.Distribution[s.Dominant]*100, total)

	trends := s.Trends
	if len(opts.FocusAreas) > 0 {
		trends = lo.Filter(trends, func(t Trend, _ int) bool {
			return lo.Contains(opts.FocusAreas, t.Emotion)
		})
	}
	for _, t := range trends {
		switch t.Direction {
		case DirectionIncreasing:
			fmt.Fprintf(&b, " Reports of feeling %s became more frequent over the period.", t.Emotion)
		case DirectionDecreasing:
			fmt.Fprintf(&b, " Reports of feeling %s became less frequent over the period.", t.Emotion)
		default:
			fmt.Fprintf(&b, " Reports of feeling %s held steady (%d occurrences).", t.Emotion, t.Count)
		}
	}

	switch {
	case s.Volatility < 0.3:
		b.WriteString(" Mood was steady, with few shifts between states.")
	case s.Volatility < 0.6:
		b.WriteString(" Mood shifted between states a moderate amount.")
	default:
		b.WriteString(" Mood shifted between states frequently, which may be worth discussing.")
	}

	if opts.IncludeContexts {
		if contexts := c.recentContexts(s.Period, 3); len(contexts) > 0 {
			fmt.Fprintf(&b, " Recent recorded contexts: %s.", strings.Join(contexts, "; "))
		}
	}

	return truncate(b.String(), opts.MaxLength)
}

func opening(audience Audience, s Summary) string {
	start := time.UnixMilli(s.Period.Start).UTC().Format("Jan 2, 2006")
	end := time.UnixMilli(s.Period.End).UTC().Format("Jan 2, 2006")
	span := start
	if end != start {
		span = start + " to " + end
	}

	switch audience {
	case AudienceSelf:
		return fmt.Sprintf("Here is how things looked for you over %s.", span)
	case AudienceCaregiver:
		return fmt.Sprintf("This is an overview of how they have been doing over %s.", span)
	default:
		return fmt.Sprintf("Summary of the emotional record for %s.", span)
	}
}

// recentContexts returns up to limit distinct entry contexts in the period,
// newest first.
func (c *Capsule) recentContexts(p Period, limit int) []string {
	seen := make(map[string]bool)
	var contexts []string
	snapshot := c.entries.Snapshot()
	for i := len(snapshot) - 1; i >= 0 && len(contexts) < limit; i-- {
		e := snapshot[i]
		if !p.Contains(e.Timestamp) || e.Context == "" || seen[e.Context] {
			continue
		}
		seen[e.Context] = true
		contexts = append(contexts, e.Context)
	}
	return contexts
}

// truncate cuts s to max runes, rune-safe. 0 means no limit.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
