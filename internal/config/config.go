// Package config loads riffle settings from config file, environment
// and command-line flags, in ascending precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/billie-coop/riffle/internal/gesture"
	"github.com/billie-coop/riffle/internal/review"
	"github.com/billie-coop/riffle/internal/transform"
)

// Rotation stability values accepted in configuration.
const (
	StabilityPerItem = "per-item"
	StabilityPerSlot = "per-slot"
)

// Config represents the riffle configuration
type Config struct {
	// Queue settings
	WindowSize int `mapstructure:"window_size"`

	// Gesture thresholds
	DismissThreshold  float64 `mapstructure:"dismiss_threshold"`
	VelocityThreshold float64 `mapstructure:"velocity_threshold"`
	Epsilon           float64 `mapstructure:"epsilon"`

	// Stack appearance
	ScaleRatio        float64 `mapstructure:"scale_ratio"`
	BaseOffset        float64 `mapstructure:"base_offset"`
	MinRotation       float64 `mapstructure:"min_rotation"`
	MaxRotation       float64 `mapstructure:"max_rotation"`
	RotationStability string  `mapstructure:"rotation_stability"`

	// UI preferences
	Theme string `mapstructure:"theme"`

	// Logging
	LogFile string `mapstructure:"log_file"`
	Debug   bool   `mapstructure:"debug"`
}

// Default returns a config with the standard values.
func Default() *Config {
	return &Config{
		WindowSize:        review.DefaultWindowSize,
		DismissThreshold:  0.75,
		VelocityThreshold: 500,
		Epsilon:           0.01,
		ScaleRatio:        0.85,
		BaseOffset:        2,
		MinRotation:       1,
		MaxRotation:       3,
		RotationStability: StabilityPerItem,
		Theme:             "riffle",
	}
}

// Load builds the configuration. An empty configPath falls back to the
// user config directory; a missing config file is fine, flags and
// defaults still apply.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("window_size", defaults.WindowSize)
	v.SetDefault("dismiss_threshold", defaults.DismissThreshold)
	v.SetDefault("velocity_threshold", defaults.VelocityThreshold)
	v.SetDefault("epsilon", defaults.Epsilon)
	v.SetDefault("scale_ratio", defaults.ScaleRatio)
	v.SetDefault("base_offset", defaults.BaseOffset)
	v.SetDefault("min_rotation", defaults.MinRotation)
	v.SetDefault("max_rotation", defaults.MaxRotation)
	v.SetDefault("rotation_stability", defaults.RotationStability)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("debug", defaults.Debug)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "riffle"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RIFFLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Flag names use dashes, config keys use underscores; bind each
	// key to its flag explicitly.
	if flags != nil {
		for key, flag := range map[string]string{
			"window_size":        "window-size",
			"dismiss_threshold":  "dismiss-threshold",
			"velocity_threshold": "velocity-threshold",
			"scale_ratio":        "scale-ratio",
			"rotation_stability": "rotation-stability",
			"theme":              "theme",
			"log_file":           "log-file",
			"debug":              "debug",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(err, "bind flags")
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// An explicitly named file must exist; the default search
			// path is allowed to come up empty.
			if configPath != "" && os.IsNotExist(errors.Cause(err)) {
				return nil, errors.Wrapf(err, "config file %q", configPath)
			}
			if configPath != "" {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the queue or policy cannot run with.
func (c *Config) Validate() error {
	if c.WindowSize < 1 {
		return errors.Wrapf(review.ErrInvalidWindowSize, "window_size %d", c.WindowSize)
	}
	if c.ScaleRatio <= 0 || c.ScaleRatio > 1 {
		return errors.Errorf("config: scale_ratio %v must be in (0, 1]", c.ScaleRatio)
	}
	if c.MinRotation > c.MaxRotation {
		return errors.Errorf("config: min_rotation %v exceeds max_rotation %v",
			c.MinRotation, c.MaxRotation)
	}
	if c.DismissThreshold <= 0 || c.DismissThreshold > 1 {
		return errors.Errorf("config: dismiss_threshold %v must be in (0, 1]", c.DismissThreshold)
	}
	switch c.RotationStability {
	case StabilityPerItem, StabilityPerSlot:
	default:
		return errors.Errorf("config: unknown rotation_stability %q", c.RotationStability)
	}
	return nil
}

// GestureConfig maps the configuration onto classifier thresholds.
func (c *Config) GestureConfig() gesture.Config {
	return gesture.Config{
		DismissThreshold:  c.DismissThreshold,
		VelocityThreshold: c.VelocityThreshold,
		Epsilon:           c.Epsilon,
	}
}

// TransformConfig maps the configuration onto the slot policy.
func (c *Config) TransformConfig() transform.Config {
	stability := transform.StabilityPerItem
	if c.RotationStability == StabilityPerSlot {
		stability = transform.StabilityPerSlot
	}
	return transform.Config{
		BaseOffset:  c.BaseOffset,
		ScaleRatio:  c.ScaleRatio,
		MinRotation: c.MinRotation,
		MaxRotation: c.MaxRotation,
		Stability:   stability,
	}
}
