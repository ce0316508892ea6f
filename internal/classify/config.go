// Package classify turns raw captured text into a structured capture
// request using a local language model. The whole subsystem is optional
// and disabled by default; captures work fine without it.
package classify

import (
	"os"
	"strconv"
)

// Config holds configuration for the classification subsystem.
type Config struct {
	Enabled    bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns a Config with sensible defaults.
// Classification is disabled by default.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// LoadConfig reads classifier configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("NUDGE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NUDGE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("NUDGE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NUDGE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("NUDGE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
