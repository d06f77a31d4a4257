// Package config resolves client configuration from defaults, the user
// config file, and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"taskdeck-cli/internal/session"
)

const (
	// DefaultAPIBase is the backend the browser app was wired to.
	DefaultAPIBase = "http://localhost:8011"

	defaultTimeoutSeconds = 30
)

// Config holds the client settings.
type Config struct {
	// APIBase is the backend base URL, without a trailing slash.
	APIBase string `toml:"api_base"`
	// TimeoutSeconds bounds each HTTP request. 0 disables the bound, which
	// matches the original client (a hung request simply stays pending).
	TimeoutSeconds int `toml:"timeout_seconds"`

	// File is the config file the values were read from, if any. Not a
	// setting; filled by Load for display.
	File string `toml:"-"`
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Path returns the user config file location (<config dir>/config.toml).
func Path() (string, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load resolves configuration in priority order:
// 1. Defaults
// 2. User config file (~/.taskdeck/config.toml)
// 3. Environment variables (TASKDECK_API, TASKDECK_TIMEOUT_SECONDS)
func Load() (Config, error) {
	cfg := Config{
		APIBase:        DefaultAPIBase,
		TimeoutSeconds: defaultTimeoutSeconds,
	}

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	if v := strings.TrimSpace(os.Getenv("TASKDECK_API")); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKDECK_TIMEOUT_SECONDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid TASKDECK_TIMEOUT_SECONDS: %q", v)
		}
		cfg.TimeoutSeconds = n
	}

	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	return cfg, nil
}
