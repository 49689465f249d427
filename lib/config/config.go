// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the dispatch tooling configuration.
type Config struct {
	// TargetSpec is the target specification string handed to the
	// target list builder: semicolon-separated entries, comma-
	// separated feature toggles ("native;sifive-u74-mc,+v,clone_all").
	TargetSpec string `yaml:"target_spec"`

	// ImageDir is where compiled images are read from and written to.
	ImageDir string `yaml:"image_dir"`

	// BackendFeatures are backend-reported feature strings appended
	// verbatim to every resolved target (capabilities the backend
	// knows that have no bit in the feature table).
	BackendFeatures []string `yaml:"backend_features,omitempty"`

	// LogLevel is the slog level name: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the default configuration. Fields set here are
// overwritten by whatever the config file specifies.
func Default() *Config {
	return &Config{
		TargetSpec: "native",
		ImageDir:   "${HOME}/.cache/tessera/images",
		LogLevel:   "info",
	}
}

// Load loads configuration from the TESSERA_CONFIG environment
// variable. There are no fallbacks: if TESSERA_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	path := os.Getenv("TESSERA_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("TESSERA_CONFIG environment variable not set; " +
			"set it to the path of your tessera.yaml config file, or use --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Environment
// variables do not override config values; the only expansion
// performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.ImageDir = expandVars(cfg.ImageDir)
	return cfg, nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TargetSpec == "" {
		return fmt.Errorf("target_spec is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	return nil
}
