// Package config loads goruler settings from defaults, an optional YAML
// file and GORULER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration struct
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Tracking TrackingConfig `mapstructure:"tracking"`
	Scene    SceneConfig    `mapstructure:"scene"`
	Window   WindowConfig   `mapstructure:"window"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// TrackingConfig holds hit-test and overlay settings
type TrackingConfig struct {
	HitTolerance      float64 `mapstructure:"hitTolerance"`
	ShowFeaturePoints bool    `mapstructure:"showFeaturePoints"`
}

// SceneConfig holds scanned-scene loading settings
type SceneConfig struct {
	UnitsPerMeter float64       `mapstructure:"unitsPerMeter"`
	Watch         bool          `mapstructure:"watch"`
	Debounce      time.Duration `mapstructure:"debounce"`
}

// WindowConfig holds the initial window size
type WindowConfig struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("tracking.hitTolerance", 12.0)
	v.SetDefault("tracking.showFeaturePoints", true)
	v.SetDefault("scene.unitsPerMeter", 1000.0)
	v.SetDefault("scene.watch", true)
	v.SetDefault("scene.debounce", 200*time.Millisecond)
	v.SetDefault("window.width", 1200)
	v.SetDefault("window.height", 800)
}

// Load reads configuration from cfgFile, or from goruler.yaml in the working
// directory or $HOME/.config/goruler when cfgFile is empty.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("goruler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/goruler")
	}

	v.SetEnvPrefix("GORULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.Tracking.HitTolerance <= 0 {
		errs = append(errs, fmt.Errorf("tracking.hitTolerance must be positive, got %v", c.Tracking.HitTolerance))
	}
	if c.Scene.UnitsPerMeter <= 0 {
		errs = append(errs, fmt.Errorf("scene.unitsPerMeter must be positive, got %v", c.Scene.UnitsPerMeter))
	}
	if c.Scene.Debounce < 0 {
		errs = append(errs, fmt.Errorf("scene.debounce must not be negative, got %v", c.Scene.Debounce))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
