package alerts

import (
	"strings"

	"github.com/auralab/go-aura/pkg/emotion"
)

// genericSuggestions is the per-emotion fallback suggestion text.
var genericSuggestions = map[emotion.Emotion]string{
	emotion.Sad:         "It might help to talk to someone you trust, or do something small that usually lifts you.",
	emotion.Angry:       "Try stepping away for a moment — a few slow breaths can take the edge off.",
	emotion.Anxious:     "A short grounding exercise can help: name five things you can see around you.",
	emotion.Frustrated:  "Consider a short break and coming back to this with fresh eyes.",
	emotion.Overwhelmed: "Try breaking what is in front of you into one small next step.",
	emotion.Tired:       "Your body may be asking for rest — a break, water, or an earlier night could help.",
	emotion.Happy:       "Nice — consider noting what is working so you can come back to it.",
	emotion.Excited:     "Great energy — channel it into something you care about.",
	emotion.Calm:        "A good moment to tackle something that usually feels hard.",
	emotion.Focused:     "You are in a good groove — protect this time if you can.",
	emotion.Neutral:     "Checking in with yourself now and then is a good habit.",
}

// typeSuggestions overrides the per-emotion text for pattern-level alerts
// where the pattern, not the single emotion, is the message.
var typeSuggestions = map[Type]string{
	ProlongedFatigue:    "You have seemed tired for a while now. A real break — or sleep — will do more than pushing through.",
	EmotionalVolatility: "Your mood has been swinging quickly. Slowing down for a few minutes may help you settle.",
	PositiveTrend:       "You have been on a good stretch — whatever you are doing, it seems to be working.",
}

// activityOverride rewrites the suggestion when the activity label matches
// one of its keywords.
type activityOverride struct {
	keywords   []string
	suggestion string
}

var activityOverrides = []activityOverride{
	{
		keywords:   []string{"homework", "study", "studying", "class", "school", "exam"},
		suggestion: "A short break from studying — stretch, water, a few deep breaths — can help you reset.",
	},
	{
		keywords:   []string{"game", "gaming", "match", "play"},
		suggestion: "Consider stepping away from the game for a few minutes and coming back fresh.",
	},
	{
		keywords:   []string{"social", "friends", "party", "chat", "call"},
		suggestion: "If the interaction feels heavy, it is okay to take a quiet moment for yourself.",
	},
	{
		keywords:   []string{"work", "meeting", "deadline"},
		suggestion: "Even two minutes away from your desk can reset a difficult stretch of work.",
	},
}

// suggestionFor picks the suggestion text for an alert: activity keyword
// overrides beat the per-type text, which beats the per-emotion fallback.
// Positive trends keep their encouraging text regardless of activity.
func suggestionFor(t Type, e emotion.Emotion, activityLabel string) string {
	if t != PositiveTrend && activityLabel != "" {
		label := strings.ToLower(activityLabel)
		for _, o := range activityOverrides {
			for _, kw := range o.keywords {
				if strings.Contains(label, kw) {
					return o.suggestion
				}
			}
		}
	}

	if s, ok := typeSuggestions[t]; ok {
		return s
	}
	if s, ok := genericSuggestions[e]; ok {
		return s
	}
	return genericSuggestions[emotion.Neutral]
}
