// Package config loads assetprobe settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Keys shared between the config file, ASSETPROBE_* variables and flags.
const (
	KeyPublisher         = "publisher"
	KeyKeyFile           = "key_file"
	KeyResourceMap       = "resource_map"
	KeyWorkers           = "workers"
	KeyUnwrapEnvelopes   = "unwrap_envelopes"
	KeyMaxUnwrappedBytes = "max_unwrapped_bytes"
	KeyFingerprint       = "fingerprint"
)

// DefaultPublisher is the display name of the publisher without obfuscation.
const DefaultPublisher = "正常"

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings for a classification run.
type Config struct {
	Publisher         string `mapstructure:"publisher" json:"publisher" yaml:"publisher"`
	KeyFile           string `mapstructure:"key_file" json:"key_file" yaml:"key_file"`
	ResourceMap       string `mapstructure:"resource_map" json:"resource_map" yaml:"resource_map"`
	Workers           int    `mapstructure:"workers" json:"workers" yaml:"workers"`
	UnwrapEnvelopes   bool   `mapstructure:"unwrap_envelopes" json:"unwrap_envelopes" yaml:"unwrap_envelopes"`
	MaxUnwrappedBytes int64  `mapstructure:"max_unwrapped_bytes" json:"max_unwrapped_bytes" yaml:"max_unwrapped_bytes"`
	Fingerprint       bool   `mapstructure:"fingerprint" json:"fingerprint" yaml:"fingerprint"`
}

// New returns a viper instance with defaults applied and the config file
// read. An empty configFile searches the standard locations for
// assetprobe-config.yaml; a missing file there is not an error.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("assetprobe-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.assetprobe")
		v.AddConfigPath("/etc/assetprobe")
	}

	v.SetDefault(KeyPublisher, DefaultPublisher)
	v.SetDefault(KeyKeyFile, "")
	v.SetDefault(KeyResourceMap, "")
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyUnwrapEnvelopes, true)
	v.SetDefault(KeyMaxUnwrappedBytes, int64(512<<20))
	v.SetDefault(KeyFingerprint, false)

	v.SetEnvPrefix("ASSETPROBE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration without flag overrides.
func Load(configFile string) (*Config, error) {
	v, err := New(configFile)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Publisher == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalid, KeyPublisher)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalid, KeyWorkers, c.Workers)
	}
	if c.MaxUnwrappedBytes < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, KeyMaxUnwrappedBytes, c.MaxUnwrappedBytes)
	}
	return nil
}
