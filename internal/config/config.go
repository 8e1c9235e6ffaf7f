// Package config holds the application configuration, loaded through
// Viper from an optional config file, environment variables and bound
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Split    SplitConfig    `mapstructure:"split"`
	Progress ProgressConfig `mapstructure:"progress"`
	Log      LogConfig      `mapstructure:"log"`
}

// SplitConfig holds defaults for split operations.
type SplitConfig struct {
	// Encoding is the IANA encoding name applied when the --encoding
	// flag is not given. Empty means UTF-8 pass-through.
	Encoding string `mapstructure:"encoding"`
	// Separator joins the source stem and the sequence index in target
	// file names.
	Separator string `mapstructure:"separator"`
}

// ProgressConfig holds progress display configuration.
type ProgressConfig struct {
	// Enabled turns the console spinner on or off.
	Enabled bool `mapstructure:"enabled"`
	// SpinnerInterval is the spinner frame interval.
	SpinnerInterval time.Duration `mapstructure:"spinner_interval"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New creates a new Config instance from Viper.
func New(v *viper.Viper) *Config {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	return &config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Split.Separator == "" {
		return errors.New("split.separator must not be empty")
	}

	if c.Progress.SpinnerInterval <= 0 {
		return errors.New("progress.spinner_interval must be positive")
	}

	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error: %s", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text: %s", c.Log.Format)
	}

	return nil
}
