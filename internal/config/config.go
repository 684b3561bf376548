// Package config loads client settings from files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "todoview.toml"

// Default values.
const (
	DefaultBaseURL        = "http://127.0.0.1:8080"
	DefaultTimeoutSeconds = 10
	DefaultLogLevel       = "info"
)

// Config holds the client configuration.
type Config struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	LogLevel       string `toml:"log_level"`
}

// Timeout returns the HTTP request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load builds the configuration in priority order:
// defaults, user config file, project config file, environment.
// A base URL flag, when set, is applied on top by the CLI.
func Load() (*Config, error) {
	return load(userConfigPath(), configFileName)
}

func load(userFile, projectFile string) (*Config, error) {
	cfg := &Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       DefaultLogLevel,
	}

	for _, path := range []string{userFile, projectFile} {
		if path == "" {
			continue
		}
		if err := mergeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	return cfg, nil
}

// mergeFile overlays values from path onto cfg. A missing file is fine.
func mergeFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TODOVIEW_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TODOVIEW_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODOVIEW_TIMEOUT: not a number: %q", v)
		}
		cfg.TimeoutSeconds = n
	}
	if v := os.Getenv("TODOVIEW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todoview", configFileName)
}
