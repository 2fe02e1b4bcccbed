// Package config loads bspec settings: an optional .bspec.yaml in the
// working directory layered over defaults, with BSPEC_* environment
// variables taking precedence over both.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	FeaturesDir string `mapstructure:"features_dir"`
	Language    string `mapstructure:"language"`
	Database    string `mapstructure:"database"`
}

// Load reads .bspec.yaml from the working directory when present and
// applies environment overrides. A missing config file is fine; a
// malformed one is an error. Database defaults to bspec.db inside the
// features directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".bspec")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("features_dir", "features")
	v.SetDefault("language", "en")
	v.SetDefault("database", "")

	v.SetEnvPrefix("BSPEC")
	for _, key := range []string{"features_dir", "language", "database"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading .bspec.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Database == "" {
		cfg.Database = filepath.Join(cfg.FeaturesDir, "bspec.db")
	}
	return cfg, nil
}
