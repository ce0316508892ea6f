// Package config loads engine configuration from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
)

// Config holds all runtime configuration for the engine.
type Config struct {
	DBPath string

	// Working-hours envelope used when building calendar availability.
	WorkStart string // HH:MM
	WorkEnd   string // HH:MM

	// BufferMinutes is trimmed from both ends of every free window.
	BufferMinutes int

	// MorningProtect reserves the first free window before this HH:MM
	// cutoff for deep work. Empty disables protection.
	MorningProtect string

	// CalendarEnabled turns on the Google Calendar integration.
	CalendarEnabled bool
	CalendarName    string

	Timezone *time.Location
}

// DefaultConfig returns a Config with sensible defaults.
// Calendar integration is disabled by default.
func DefaultConfig() Config {
	return Config{
		DBPath:          defaultDBPath(),
		WorkStart:       "09:00",
		WorkEnd:         "17:00",
		BufferMinutes:   15,
		MorningProtect:  "",
		CalendarEnabled: false,
		CalendarName:    "primary",
		Timezone:        time.Local,
	}
}

// LoadConfig reads engine configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("NUDGE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NUDGE_WORK_START"); v != "" {
		if err := validateHHMM(v); err != nil {
			return cfg, err
		}
		cfg.WorkStart = v
	}
	if v := os.Getenv("NUDGE_WORK_END"); v != "" {
		if err := validateHHMM(v); err != nil {
			return cfg, err
		}
		cfg.WorkEnd = v
	}
	if v := os.Getenv("NUDGE_BUFFER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BufferMinutes = n
		}
	}
	if v := os.Getenv("NUDGE_MORNING_PROTECT"); v != "" {
		if err := validateHHMM(v); err != nil {
			return cfg, err
		}
		cfg.MorningProtect = v
	}
	if v := os.Getenv("NUDGE_CALENDAR"); v != "" {
		cfg.CalendarEnabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("NUDGE_CALENDAR_NAME"); v != "" {
		cfg.CalendarName = v
	}
	if v := os.Getenv("NUDGE_TZ"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return cfg, domain.Validationf("unknown timezone %q", v)
		}
		cfg.Timezone = loc
	}

	return cfg, nil
}

func validateHHMM(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return domain.Validationf("invalid clock time %q, want HH:MM", v)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nudge.db"
	}
	return filepath.Join(home, ".nudge", "nudge.db")
}
