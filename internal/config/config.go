// Package config provides configuration management for s2l using Viper for
// loading from files, environment variables, and command-line flags.
//
// Settings are read from .s2l.yml (or the file named by S2L_CONFIG_FILE or
// --config), overridden by S2L_* environment variables such as
// S2L_CONVERSION_WORKERS, and finally by flags bound in cmd. Configuration
// is read-only: nothing is ever written back.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/s2l/internal/errors"
	"github.com/conneroisu/s2l/internal/logging"
	"github.com/conneroisu/s2l/internal/output"
	"github.com/conneroisu/s2l/internal/types"
)

const (
	// MaxWorkers caps the conversion pool size.
	MaxWorkers = 64
	// DefaultDebounce is the quiet period before watch mode reconverts.
	DefaultDebounce = 300 * time.Millisecond
)

type Config struct {
	Directories DirectoriesConfig `mapstructure:"directories" yaml:"directories" json:"directories"`
	Conversion  ConversionConfig  `mapstructure:"conversion" yaml:"conversion" json:"conversion"`
	Defaults    DefaultsConfig    `mapstructure:"defaults" yaml:"defaults" json:"defaults"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging" json:"logging"`
	Watch       WatchConfig       `mapstructure:"watch" yaml:"watch" json:"watch"`
	OpenOutput  bool              `mapstructure:"open_output" yaml:"open_output" json:"open_output"`
}

type DirectoriesConfig struct {
	Input  string `mapstructure:"input" yaml:"input" json:"input"`
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

type ConversionConfig struct {
	// Workers is the pool size; 0 selects DefaultWorkers.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// MaxCollisions bounds the "(n)" name variants; 0 is unbounded.
	MaxCollisions int `mapstructure:"max_collisions" yaml:"max_collisions" json:"max_collisions"`
}

// DefaultsConfig holds attribute values applied to every scanned file
// before any edit.
type DefaultsConfig struct {
	ViewBox string `mapstructure:"viewbox" yaml:"viewbox" json:"viewbox"`
	Class   string `mapstructure:"class" yaml:"class" json:"class"`
	Fill    string `mapstructure:"fill" yaml:"fill" json:"fill"`
	Prefix  string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// DefaultWorkers is twice the CPU count, clamped to [1, MaxWorkers].
func DefaultWorkers() int {
	return clampWorkers(2 * runtime.NumCPU())
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("directories.input", "")
	v.SetDefault("directories.output", "")
	v.SetDefault("conversion.workers", 0)
	v.SetDefault("conversion.max_collisions", output.DefaultMaxAttempts)
	v.SetDefault("defaults.viewbox", types.DefaultViewBox.String())
	v.SetDefault("defaults.class", "")
	v.SetDefault("defaults.fill", "")
	v.SetDefault("defaults.prefix", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("open_output", false)
}

// LoadFrom unmarshals, normalizes, and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.NewConfigError("cannot decode configuration", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Conversion.Workers == 0 {
		config.Conversion.Workers = DefaultWorkers()
	}
	config.Conversion.Workers = clampWorkers(config.Conversion.Workers)
	if config.Watch.Debounce <= 0 {
		config.Watch.Debounce = DefaultDebounce
	}

	return &config, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Conversion.Workers < 0 {
		return configError("conversion.workers", fmt.Errorf("must not be negative, got %d", c.Conversion.Workers))
	}
	if c.Conversion.MaxCollisions < 0 {
		return configError("conversion.max_collisions", fmt.Errorf("must not be negative, got %d", c.Conversion.MaxCollisions))
	}
	if _, err := types.ParseViewBox(c.Defaults.ViewBox); err != nil {
		return configError("defaults.viewbox", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return configError("logging.level", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return configError("logging.format", fmt.Errorf("unknown format %q, want text or json", c.Logging.Format))
	}
	if c.Watch.Debounce < 0 {
		return configError("watch.debounce", fmt.Errorf("must not be negative, got %s", c.Watch.Debounce))
	}
	return nil
}

func configError(key string, cause error) error {
	return errors.NewConfigError("invalid "+key, cause).WithContext("key", key)
}

// DefaultSettings returns the defaults section as an edit that is merged into
// every scanned file.
func (c *Config) DefaultSettings() (types.BulkEditSettings, error) {
	vb, err := types.ParseViewBox(c.Defaults.ViewBox)
	if err != nil {
		return types.BulkEditSettings{}, configError("defaults.viewbox", err)
	}
	return types.BulkEditSettings{
		ViewBox:   vb,
		ClassName: c.Defaults.Class,
		Fill:      c.Defaults.Fill,
		Prefix:    c.Defaults.Prefix,
	}, nil
}

// LoggerConfig builds the logger configuration for the logging section.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = strings.ToLower(c.Logging.Format)
	return cfg
}
