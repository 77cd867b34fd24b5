// Package capsule retains emotional history — fused states and media-tagged
// entries — and computes windowed summaries over it on demand.
//
// Two independent capacity-bounded logs back the capsule: journal entries
// appended by the caller, and emotional states produced by fusion. Nothing
// here performs I/O; persistence happens through the Store boundary.
package capsule

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/auralab/go-aura/pkg/emotion"
	"github.com/auralab/go-aura/pkg/ring"
	"github.com/auralab/go-aura/pkg/signal"
)

// Entry is one media-tagged moment: an external media reference with an
// emotion tag and optional intensity, context and notes.
type Entry struct {
	ID string `json:"id"`

	// MediaRef points at externally stored media (photo, clip, audio note).
	MediaRef string `json:"media_ref,omitempty"`

	Emotion emotion.Emotion `json:"emotion"`

	// Intensity in [0,1]; 0 means unspecified.
	Intensity float64 `json:"intensity,omitempty"`

	Context string `json:"context,omitempty"`
	Notes   string `json:"notes,omitempty"`

	// Timestamp is millisecond epoch.
	Timestamp int64 `json:"timestamp"`
}

// Period is a half-open time window [Start, End) in millisecond epoch.
type Period struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether ts falls inside the period.
func (p Period) Contains(ts int64) bool { return ts >= p.Start && ts < p.End }

// Midpoint returns the period's midpoint timestamp.
func (p Period) Midpoint() int64 { return p.Start + (p.End-p.Start)/2 }

// Config holds the capsule's capacity and clock.
type Config struct {
	// Capacity bounds each of the two logs independently.
	Capacity int

	// Clock supplies "now"; nil means time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the recommended capsule configuration.
func DefaultConfig() Config {
	return Config{Capacity: 1000}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return errors.New("capsule: capacity must be at least 1")
	}
	return nil
}

// Capsule is the bounded emotional history store.
// A single instance is not safe for concurrent use; callers sharing one
// must serialize access.
type Capsule struct {
	cfg   Config
	clock func() time.Time

	entries *ring.Buffer[Entry]
	states  *ring.Buffer[emotion.State]
}

// New creates a capsule, validating the configuration.
func New(cfg Config) (*Capsule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Capsule{
		cfg:     cfg,
		clock:   clock,
		entries: ring.New[Entry](cfg.Capacity),
		states:  ring.New[emotion.State](cfg.Capacity),
	}, nil
}

// AddEntry appends a media-tagged entry, filling in a generated ID and the
// current timestamp when absent, and defensively clamping the rest. The
// stored entry is returned.
func (c *Capsule) AddEntry(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == 0 {
		e.Timestamp = c.clock().UnixMilli()
	}
	if !e.Emotion.IsValid() {
		e.Emotion = emotion.Neutral
	}
	e.Intensity = signal.Clamp01(e.Intensity)

	c.entries.Push(e)
	return e
}

// AddState appends a fused state. States older than the newest retained one
// are rejected so summaries always run over time-ordered history; the
// return value reports whether the state was kept.
func (c *Capsule) AddState(s emotion.State) bool {
	if newest, ok := c.states.Newest(); ok && s.Timestamp < newest.Timestamp {
		return false
	}
	c.states.Push(s)
	return true
}

// EntryCount returns the number of retained entries.
func (c *Capsule) EntryCount() int { return c.entries.Len() }

// StateCount returns the number of retained states.
func (c *Capsule) StateCount() int { return c.states.Len() }

// Snapshot is the capsule's exportable payload: both logs verbatim, in
// oldest-to-newest order. It is also the persistence wire format.
type Snapshot struct {
	Entries []Entry         `json:"entries"`
	States  []emotion.State `json:"states"`
}

// Export copies both logs out for external persistence.
func (c *Capsule) Export() Snapshot {
	return Snapshot{
		Entries: c.entries.Snapshot(),
		States:  c.states.Snapshot(),
	}
}

// Import replaces both logs with the snapshot's contents, oldest first.
// Anything beyond capacity is evicted exactly as live appends would be.
func (c *Capsule) Import(snap Snapshot) {
	c.entries.Clear()
	c.states.Clear()
	for _, e := range snap.Entries {
		c.entries.Push(e)
	}
	for _, s := range snap.States {
		c.states.Push(s)
	}
}

// Clear empties both logs.
func (c *Capsule) Clear() {
	c.entries.Clear()
	c.states.Clear()
}

// defaultPeriod is [earliest stored timestamp, now).
func (c *Capsule) defaultPeriod() Period {
	now := c.clock().UnixMilli()
	start := now
	if c.entries.Len() > 0 && c.entries.At(0).Timestamp < start {
		start = c.entries.At(0).Timestamp
	}
	if c.states.Len() > 0 && c.states.At(0).Timestamp < start {
		start = c.states.At(0).Timestamp
	}
	return Period{Start: start, End: now + 1}
}
