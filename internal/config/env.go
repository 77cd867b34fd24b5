// Package config provides environment configuration helpers for go-aura
// commands.
package config

import "os"

// Defaults for the aura daemon.
const (
	DefaultPort = "8787"
)

// Port returns the HTTP port from AURA_PORT or the default.
func Port() string {
	if p := os.Getenv("AURA_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// DataPath returns the capsule snapshot path from AURA_DATA.
// Empty means persistence is disabled.
func DataPath() string {
	return os.Getenv("AURA_DATA")
}

// ClassifyConfigPath returns the classifier table file from
// AURA_CLASSIFY_CONFIG. Empty means the built-in defaults.
func ClassifyConfigPath() string {
	return os.Getenv("AURA_CLASSIFY_CONFIG")
}

// LogLevel returns the log level from LOG_LEVEL or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
