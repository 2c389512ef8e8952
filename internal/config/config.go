// Package config defines the tool's configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"

	"github.com/pable/go-mm-features/internal/logger"
	"github.com/pable/go-mm-features/internal/season"
)

// Config contains process configuration.
type Config struct {
	// RawDir holds the per-season summary files.
	RawDir string `koanf:"raw_dir"`

	// ProcessedDir receives features_*.csv and matchups_*.csv.
	ProcessedDir string `koanf:"processed_dir"`

	// SummaryPattern names a season's summary file; {yy} is the two-digit year.
	SummaryPattern string `koanf:"summary_pattern"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsFile, when set, receives the run's metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		RawDir:         "data/raw",
		ProcessedDir:   "data/processed",
		SummaryPattern: season.DefaultPattern,
		LogLevel:       "info",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RawDir) == "" {
		return fmt.Errorf("%w: raw_dir must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ProcessedDir) == "" {
		return fmt.Errorf("%w: processed_dir must not be empty", ErrInvalidConfig)
	}
	if !strings.Contains(c.SummaryPattern, season.YearToken) {
		return fmt.Errorf("%w: summary_pattern %q must contain %s", ErrInvalidConfig, c.SummaryPattern, season.YearToken)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
