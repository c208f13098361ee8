package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/scheme"
)

// Config holds all runtime configuration for a subdiv invocation.
// Values are populated from .subdiv.yaml, SUBDIV_* env vars, and CLI flags.
type Config struct {
	Scheme       string `mapstructure:"scheme"`
	Boundary     string `mapstructure:"boundary"`
	MaxLevel     int    `mapstructure:"max_level"`
	Adaptive     bool   `mapstructure:"adaptive"`
	FullTopology bool   `mapstructure:"full_topology"`
	ReportDir    string `mapstructure:"report_dir"`
	Telemetry    string `mapstructure:"telemetry"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("scheme", "catmull-clark")
	viper.SetDefault("boundary", "edge-only")
	viper.SetDefault("max_level", 2)
	viper.SetDefault("adaptive", false)
	viper.SetDefault("full_topology", false)
	viper.SetDefault("report_dir", "")
	viper.SetDefault("telemetry", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configured names parse and the refinement
// depth is usable.
func (c Config) Validate() error {
	if _, err := scheme.Parse(c.Scheme); err != nil {
		return err
	}
	if _, err := scheme.ParseBoundary(c.Boundary); err != nil {
		return err
	}
	if c.MaxLevel < 0 {
		return fmt.Errorf("max_level must be non-negative, got %d", c.MaxLevel)
	}
	return nil
}

// SchemeOptions resolves the parsed scheme and its options. Call only
// after Validate has succeeded.
func (c Config) SchemeOptions() (scheme.Scheme, scheme.Options) {
	s, _ := scheme.Parse(c.Scheme)
	b, _ := scheme.ParseBoundary(c.Boundary)
	opts := scheme.DefaultOptions()
	opts.Boundary = b
	return s, opts
}
