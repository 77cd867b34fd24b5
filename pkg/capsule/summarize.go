package capsule

import (
	"sort"

	"github.com/samber/lo"

	"github.com/auralab/go-aura/pkg/emotion"
)

// Direction describes how a category's share moved across the period.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// trendBand is the share delta beyond which a trend counts as moving.
const trendBand = 0.1

// defaultVolatility is the sentinel reported when the capsule holds nothing
// for the requested period.
const defaultVolatility = 0.5

// Trend is one category's direction over the period.
type Trend struct {
	Emotion   emotion.Emotion `json:"emotion"`
	Direction Direction       `json:"direction"`

	// Count is the category's combined occurrences across the period.
	Count int `json:"count"`
}

// Summary is the windowed digest of the capsule's history.
type Summary struct {
	Period Period `json:"period"`

	// Distribution is the normalized share per category across entries and
	// states inside the period. Uniform when nothing fell in range.
	Distribution map[emotion.Emotion]float64 `json:"distribution"`

	// Dominant is the most frequent category.
	Dominant emotion.Emotion `json:"dominant"`

	// Trends lists per-category direction, most frequent first. Only
	// categories with at least two occurrences are included.
	Trends []Trend `json:"trends"`

	// Volatility is the mood-change frequency in [0,1].
	Volatility float64 `json:"volatility"`

	EntryCount int `json:"entry_count"`
	StateCount int `json:"state_count"`
}

// observation flattens entries and states into (emotion, timestamp) points.
type observation struct {
	emotion   emotion.Emotion
	timestamp int64
}

// Summarize computes the distribution, dominant category, per-category
// trends and volatility for the period. A nil period means everything from
// the earliest stored timestamp until now. An empty result range yields the
// default summary: uniform distribution, dominant neutral, volatility 0.5.
func (c *Capsule) Summarize(period *Period) Summary {
	p := c.resolvePeriod(period)

	obs := c.observations(p)
	states := lo.Filter(c.states.Snapshot(), func(s emotion.State, _ int) bool {
		return p.Contains(s.Timestamp)
	})

	if len(obs) == 0 {
		return defaultSummary(p)
	}

	counts := lo.CountValuesBy(obs, func(o observation) emotion.Emotion { return o.emotion })

	return Summary{
		Period:       p,
		Distribution: normalize(counts, len(obs)),
		Dominant:     dominant(counts),
		Trends:       c.trends(p, obs, counts),
		Volatility:   volatility(states),
		EntryCount:   countInPeriod(c.entries.Snapshot(), p),
		StateCount:   len(states),
	}
}

func (c *Capsule) resolvePeriod(period *Period) Period {
	if period != nil && period.End > period.Start {
		return *period
	}
	return c.defaultPeriod()
}

// observations collects in-period entries and states, time-ordered.
// States are ordered on ingestion; entries may arrive tagged with arbitrary
// timestamps, so the merged view is sorted.
func (c *Capsule) observations(p Period) []observation {
	var obs []observation
	for _, e := range c.entries.Snapshot() {
		if p.Contains(e.Timestamp) {
			obs = append(obs, observation{emotion: e.Emotion, timestamp: e.Timestamp})
		}
	}
	for _, s := range c.states.Snapshot() {
		if p.Contains(s.Timestamp) {
			obs = append(obs, observation{emotion: s.Mood, timestamp: s.Timestamp})
		}
	}
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].timestamp < obs[j].timestamp })
	return obs
}

func countInPeriod(entries []Entry, p Period) int {
	n := 0
	for _, e := range entries {
		if p.Contains(e.Timestamp) {
			n++
		}
	}
	return n
}

// defaultSummary is returned when nothing falls inside the period.
func defaultSummary(p Period) Summary {
	dist := make(map[emotion.Emotion]float64, emotion.Count)
	for _, e := range emotion.All {
		dist[e] = 1.0 / float64(emotion.Count)
	}
	return Summary{
		Period:       p,
		Distribution: dist,
		Dominant:     emotion.Neutral,
		Volatility:   defaultVolatility,
	}
}

func normalize(counts map[emotion.Emotion]int, total int) map[emotion.Emotion]float64 {
	dist := make(map[emotion.Emotion]float64, len(counts))
	for e, n := range counts {
		dist[e] = float64(n) / float64(total)
	}
	return dist
}

// dominant is the argmax over canonical category order for determinism.
func dominant(counts map[emotion.Emotion]int) emotion.Emotion {
	best := emotion.Neutral
	bestCount := -1
	for _, e := range emotion.All {
		if n, ok := counts[e]; ok && n > bestCount {
			best = e
			bestCount = n
		}
	}
	return best
}

// trends bisects the period at its midpoint and compares each category's
// share between the halves. Categories need at least two combined
// occurrences; the result is sorted by frequency descending.
func (c *Capsule) trends(p Period, obs []observation, counts map[emotion.Emotion]int) []Trend {
	mid := p.Midpoint()

	firstCounts := make(map[emotion.Emotion]int)
	secondCounts := make(map[emotion.Emotion]int)
	firstTotal, secondTotal := 0, 0
	for _, o := range obs {
		if o.timestamp < mid {
			firstCounts[o.emotion]++
			firstTotal++
		} else {
			secondCounts[o.emotion]++
			secondTotal++
		}
	}

	share := func(counts map[emotion.Emotion]int, total int, e emotion.Emotion) float64 {
		if total == 0 {
			return 0
		}
		return float64(counts[e]) / float64(total)
	}

	var trends []Trend
	for _, e := range emotion.All {
		total := counts[e]
		if total < 2 {
			continue
		}
		delta := share(secondCounts, secondTotal, e) - share(firstCounts, firstTotal, e)
		direction := DirectionStable
		switch {
		case delta > trendBand:
			direction = DirectionIncreasing
		case delta < -trendBand:
			direction = DirectionDecreasing
		}
		trends = append(trends, Trend{Emotion: e, Direction: direction, Count: total})
	}

	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Count > trends[j].Count })
	return trends
}

// volatility is adjacent mood changes over states-1, for time-ordered
// states. Fewer than three states read as 0.
func volatility(states []emotion.State) float64 {
	if len(states) < 3 {
		return 0
	}
	changes := 0
	for i := 1; i < len(states); i++ {
		if states[i].Mood != states[i-1].Mood {
			changes++
		}
	}
	v := float64(changes) / float64(len(states)-1)
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
