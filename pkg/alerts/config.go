package alerts

import (
	"errors"
	"time"
)

// Config holds the alert engine's thresholds and windows.
type Config struct {
	// HistoryCap bounds the retained state history (oldest evicted first).
	HistoryCap int

	// ConfidenceFloor drops low-confidence states before they enter history.
	ConfidenceFloor float64

	// SustainedDuration is how long a negative mood must persist before a
	// sustained_negative alert fires. Fatigue uses FatigueFactor times this.
	SustainedDuration time.Duration
	FatigueFactor     float64

	// SuddenWindow bounds how recent a valence flip must be to count as a
	// sudden change.
	SuddenWindow time.Duration

	// VolatilityWindow and VolatilityThreshold control the volatility
	// detector: at least VolatilityThreshold adjacent mood changes among the
	// states inside the window.
	VolatilityWindow    time.Duration
	VolatilityThreshold int

	// Cooldown is the base minimum spacing between alerts of the same type.
	// Volatility uses 2x, positive trend 3x.
	Cooldown time.Duration

	// Clock supplies "now"; nil means time.Now. Injectable for tests and
	// offline replay.
	Clock func() time.Time
}

// DefaultConfig returns the recommended thresholds.
func DefaultConfig() Config {
	return Config{
		HistoryCap:      100,
		ConfidenceFloor: 0.6,

		SustainedDuration: 10 * time.Minute,
		FatigueFactor:     1.5,

		SuddenWindow: 5 * time.Minute,

		VolatilityWindow:    30 * time.Minute,
		VolatilityThreshold: 4,

		Cooldown: 5 * time.Minute,
	}
}

// SensitiveConfig returns thresholds tuned for shorter sessions.
func SensitiveConfig() Config {
	cfg := DefaultConfig()
	cfg.SustainedDuration = 5 * time.Minute
	cfg.SuddenWindow = 3 * time.Minute
	cfg.VolatilityWindow = 15 * time.Minute
	cfg.VolatilityThreshold = 3
	cfg.Cooldown = 3 * time.Minute
	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HistoryCap < 2 {
		return errors.New("alerts: history cap must be at least 2")
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return errors.New("alerts: confidence floor must be in [0,1]")
	}
	if c.SustainedDuration <= 0 {
		return errors.New("alerts: sustained duration must be positive")
	}
	if c.FatigueFactor < 1 {
		return errors.New("alerts: fatigue factor must be at least 1")
	}
	if c.SuddenWindow <= 0 {
		return errors.New("alerts: sudden-change window must be positive")
	}
	if c.VolatilityWindow <= 0 {
		return errors.New("alerts: volatility window must be positive")
	}
	if c.VolatilityThreshold < 1 {
		return errors.New("alerts: volatility threshold must be at least 1")
	}
	if c.Cooldown <= 0 {
		return errors.New("alerts: cooldown must be positive")
	}
	return nil
}
