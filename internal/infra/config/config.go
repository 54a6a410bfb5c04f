// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvMusicDir    = "TUNEBOX_MUSIC_DIR"
	EnvAudioDriver = "TUNEBOX_AUDIO_DRIVER"
	EnvLogLevel    = "TUNEBOX_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Playback PlaybackConfig `yaml:"playback"`
	Audio    AudioConfig    `yaml:"audio"`
	Log      LogConfig      `yaml:"log"`
}

// LibraryConfig represents where tracks are found.
type LibraryConfig struct {
	Dir       string `yaml:"dir" default:"Music" validate:"required"`
	Extension string `yaml:"extension" default:".mp3" validate:"required,startswith=.,excludes=/"`
}

// PlaybackConfig represents playback loop configuration.
type PlaybackConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms" default:"50" validate:"gte=1,lte=1000"`
}

// AudioConfig represents audio engine configuration.
type AudioConfig struct {
	Driver   string         `yaml:"driver" default:"speaker" validate:"oneof=speaker null"`
	Settings map[string]any `yaml:"settings"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level string `yaml:"level" default:"warn" validate:"oneof=debug info warn warning error disabled"`
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	var cfg Config
	return finalize(&cfg)
}

// Load loads configuration from a YAML file.
// An empty path yields the defaults. Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	cfg.overrideFromEnv()

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvMusicDir); v != "" {
		c.Library.Dir = v
	}
	if v := os.Getenv(EnvAudioDriver); v != "" {
		c.Audio.Driver = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// TickInterval returns the playback polling interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Playback.TickIntervalMs) * time.Millisecond
}
