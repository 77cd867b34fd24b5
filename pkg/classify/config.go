package classify

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/auralab/go-aura/pkg/emotion"
)

// Config holds every table and cut point the classifiers consult.
// All tables are injected at construction and treated as immutable, so
// thresholds or keyword locales can be swapped without touching the
// classification rules themselves.
type Config struct {
	// Reliability weights per modality. Fusion normalizes the weights of
	// whichever modalities are present; these express relative trust.
	FacialWeight   float64 `yaml:"facial_weight"`
	VoiceWeight    float64 `yaml:"voice_weight"`
	TextWeight     float64 `yaml:"text_weight"`
	WearableWeight float64 `yaml:"wearable_weight"`

	// Facial cut points, applied to the first two L2-normalized components
	// (smile intensity, brow/eye tension).
	SmileHigh   float64 `yaml:"smile_high"`
	SmileLow    float64 `yaml:"smile_low"`
	TensionHigh float64 `yaml:"tension_high"`

	// Voice quadrant cut points on clamped pitch/energy.
	PitchHigh  float64 `yaml:"pitch_high"`
	PitchLow   float64 `yaml:"pitch_low"`
	EnergyHigh float64 `yaml:"energy_high"`
	EnergyLow  float64 `yaml:"energy_low"`

	// ToneOverrides maps an upstream tone label (lowercase) to predictions
	// that override or extend the quadrant rule.
	ToneOverrides map[string][]emotion.Prediction `yaml:"tone_overrides"`

	// Lexicon maps each category to its keyword list for text matching.
	Lexicon map[emotion.Emotion][]string `yaml:"lexicon"`

	// TextConfidenceCap bounds text confidence (matches/total) from above.
	TextConfidenceCap float64 `yaml:"text_confidence_cap"`

	// Wearable thresholds. HeartRate in bpm, steps per minute.
	// StepsActive splits the elevated-heart-rate rule: above it a high pulse
	// reads as exertion (excited), below it as arousal at rest (anxious).
	HeartRateHigh float64 `yaml:"heart_rate_high"`
	HeartRateLow  float64 `yaml:"heart_rate_low"`
	StepsHigh     float64 `yaml:"steps_high"`
	StepsLow      float64 `yaml:"steps_low"`
	StepsActive   float64 `yaml:"steps_active"`

	// NeutralConfidence is the confidence assigned to the neutral fallback
	// prediction emitted for absent or degenerate input.
	NeutralConfidence float64 `yaml:"neutral_confidence"`
}

// DefaultConfig returns the built-in English tables and thresholds.
func DefaultConfig() Config {
	return Config{
		FacialWeight:   0.4,
		VoiceWeight:    0.3,
		TextWeight:     0.25,
		WearableWeight: 0.15,

		SmileHigh:   0.7,
		SmileLow:    0.3,
		TensionHigh: 0.6,

		PitchHigh:  0.6,
		PitchLow:   0.4,
		EnergyHigh: 0.6,
		EnergyLow:  0.4,

		ToneOverrides: map[string][]emotion.Prediction{
			"cheerful":  {{Emotion: emotion.Happy, Confidence: 0.85}},
			"flat":      {{Emotion: emotion.Tired, Confidence: 0.6}, {Emotion: emotion.Sad, Confidence: 0.45}},
			"tense":     {{Emotion: emotion.Anxious, Confidence: 0.75}},
			"harsh":     {{Emotion: emotion.Angry, Confidence: 0.8}},
			"shaky":     {{Emotion: emotion.Anxious, Confidence: 0.7}, {Emotion: emotion.Overwhelmed, Confidence: 0.5}},
			"soft":      {{Emotion: emotion.Calm, Confidence: 0.65}},
			"energetic": {{Emotion: emotion.Excited, Confidence: 0.8}},
		},

		Lexicon: map[emotion.Emotion][]string{
			emotion.Happy:       {"happy", "glad", "great", "joy", "joyful", "wonderful", "awesome", "love", "loved", "smiling"},
			emotion.Sad:         {"sad", "unhappy", "down", "cry", "crying", "miserable", "lonely", "hurt", "heartbroken"},
			emotion.Angry:       {"angry", "mad", "furious", "rage", "hate", "hated", "fuming"},
			emotion.Anxious:     {"anxious", "nervous", "worried", "worry", "scared", "afraid", "panic", "uneasy"},
			emotion.Calm:        {"calm", "relaxed", "peaceful", "chill", "serene", "settled"},
			emotion.Excited:     {"excited", "thrilled", "pumped", "stoked", "hyped", "ecstatic"},
			emotion.Tired:       {"tired", "sleepy", "exhausted", "drained", "fatigued", "weary"},
			emotion.Frustrated:  {"frustrated", "stuck", "annoyed", "irritated", "ugh", "fed"},
			emotion.Focused:     {"focused", "productive", "concentrating", "determined", "locked"},
			emotion.Overwhelmed: {"overwhelmed", "swamped", "buried", "overloaded", "stressed"},
			emotion.Neutral:     {"fine", "okay", "ok", "meh", "whatever", "normal"},
		},
		TextConfidenceCap: 0.95,

		HeartRateHigh: 100,
		HeartRateLow:  60,
		StepsHigh:     120,
		StepsLow:      20,
		StepsActive:   60,

		NeutralConfidence: 0.2,
	}
}

// LoadFile reads a YAML config file layered over the defaults.
// Missing keys keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("classify: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("classify: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	weights := map[string]float64{
		"facial":   c.FacialWeight,
		"voice":    c.VoiceWeight,
		"text":     c.TextWeight,
		"wearable": c.WearableWeight,
	}
	for name, w := range weights {
		if w <= 0 || w > 1 {
			return fmt.Errorf("classify: %s weight must be in (0,1], got %v", name, w)
		}
	}

	cuts := map[string]float64{
		"smile_high":   c.SmileHigh,
		"smile_low":    c.SmileLow,
		"tension_high": c.TensionHigh,
		"pitch_high":   c.PitchHigh,
		"pitch_low":    c.PitchLow,
		"energy_high":  c.EnergyHigh,
		"energy_low":   c.EnergyLow,
	}
	for name, v := range cuts {
		if v < 0 || v > 1 {
			return fmt.Errorf("classify: %s must be in [0,1], got %v", name, v)
		}
	}
	if c.SmileLow >= c.SmileHigh {
		return errors.New("classify: smile_low must be below smile_high")
	}
	if c.PitchLow > c.PitchHigh {
		return errors.New("classify: pitch_low must not exceed pitch_high")
	}
	if c.EnergyLow > c.EnergyHigh {
		return errors.New("classify: energy_low must not exceed energy_high")
	}

	if c.HeartRateHigh < 0 || c.HeartRateLow < 0 || c.StepsHigh < 0 || c.StepsLow < 0 || c.StepsActive < 0 {
		return errors.New("classify: wearable thresholds must be non-negative")
	}
	if c.HeartRateLow >= c.HeartRateHigh {
		return errors.New("classify: heart_rate_low must be below heart_rate_high")
	}
	if c.StepsLow >= c.StepsHigh {
		return errors.New("classify: steps_low must be below steps_high")
	}

	if c.TextConfidenceCap <= 0 || c.TextConfidenceCap > 1 {
		return fmt.Errorf("classify: text_confidence_cap must be in (0,1], got %v", c.TextConfidenceCap)
	}
	if c.NeutralConfidence <= 0 || c.NeutralConfidence > 1 {
		return fmt.Errorf("classify: neutral_confidence must be in (0,1], got %v", c.NeutralConfidence)
	}

	for e := range c.Lexicon {
		if !e.IsValid() {
			return fmt.Errorf("classify: lexicon references unknown category %q", e)
		}
	}
	for tone, preds := range c.ToneOverrides {
		for _, p := range preds {
			if !p.Emotion.IsValid() {
				return fmt.Errorf("classify: tone %q references unknown category %q", tone, p.Emotion)
			}
			if p.Confidence < 0 || p.Confidence > 1 {
				return fmt.Errorf("classify: tone %q has confidence outside [0,1]", tone)
			}
		}
	}

	return nil
}
