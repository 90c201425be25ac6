// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warp/shift-engine/roster"
)

type Config struct {
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Server      struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
		CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173" envSeparator:","`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"roster.db"`
	} `envPrefix:"DATABASE_"`
	Roster RosterConfig `envPrefix:"ROSTER_"`
}

// RosterConfig holds engine settings. The working-hours fields are optional
// overrides; unset fields keep the stored or catalog value.
type RosterConfig struct {
	BreakMinutes     *int   `env:"BREAK_MINUTES"`
	MinHoursForBreak *int   `env:"MIN_HOURS_FOR_BREAK"`
	MaxRegularHours  *int   `env:"MAX_REGULAR_HOURS"`
	CatalogFile      string `env:"CATALOG_FILE"`
	Locale           string `env:"LOCALE" envDefault:"es"`

	// CatalogSyncInterval is how often CatalogFile is re-read while the
	// server runs. Zero disables the sync.
	CatalogSyncInterval time.Duration `env:"CATALOG_SYNC_INTERVAL" envDefault:"1m"`
}

// Apply returns base with every override that is set.
func (r RosterConfig) Apply(base roster.WorkingHoursConfig) roster.WorkingHoursConfig {
	if r.BreakMinutes != nil {
		base.BreakMinutes = *r.BreakMinutes
	}
	if r.MinHoursForBreak != nil {
		base.MinHoursForBreak = *r.MinHoursForBreak
	}
	if r.MaxRegularHours != nil {
		base.MaxRegularHoursPerDay = *r.MaxRegularHours
	}
	return base
}

// HasOverrides reports whether any working-hours override is set.
func (r RosterConfig) HasOverrides() bool {
	return r.BreakMinutes != nil || r.MinHoursForBreak != nil || r.MaxRegularHours != nil
}

// Load reads the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// The first error makes for a clearer log line.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT out of range: %d", cfg.Server.Port)
	}
	return cfg, nil
}
