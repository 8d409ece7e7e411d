// Package config loads runtime settings from a YAML file, environment
// variables, and built-in defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggerConfig controls log output.
type LoggerConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is console or json.
	Format string `mapstructure:"format"`
	// File, when set, duplicates output to a rotating JSON log file.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Config holds all tunable settings.
type Config struct {
	// Threshold is the minimum match confidence accepted by searches.
	Threshold float64 `mapstructure:"threshold"`
	// EventDelayMs is the pause between the move/down/up events of a
	// composed click.
	EventDelayMs int `mapstructure:"event_delay_ms"`
	// CaptureFrequency is the number of captures per second used when
	// waiting for an image to appear.
	CaptureFrequency float64 `mapstructure:"capture_frequency"`
	// Logger configures log output.
	Logger LoggerConfig `mapstructure:"logger"`
}

// Load reads the configuration. cfgFile, when non-empty, names an
// explicit config file; otherwise pixelbot.yaml is looked up in the
// working directory. Environment variables use the PIXELBOT_ prefix
// with underscores for nesting (PIXELBOT_LOGGER_LEVEL=debug). A missing
// config file is not an error; unknown keys in an existing one are.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("threshold", 0.8)
	v.SetDefault("event_delay_ms", 90)
	v.SetDefault("capture_frequency", 3.0)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size_mb", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 14)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pixelbot")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PIXELBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("threshold %v outside [0,1]", cfg.Threshold)
	}
	if cfg.CaptureFrequency <= 0 {
		return nil, fmt.Errorf("capture_frequency must be positive, got %v", cfg.CaptureFrequency)
	}
	return &cfg, nil
}
