// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for tickertalk.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.tickertalk/config.toml. A missing file is
// not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variable overrides. These win over the config file.
const (
	EnvBaseURL = "TICKERTALK_BASE_URL"
)

// ErrInvalidBaseURL indicates the configured backend URL does not parse.
var ErrInvalidBaseURL = errors.New("invalid base_url")

// Config represents the complete tickertalk configuration.
type Config struct {
	// BaseURL is the backend service location. Fixed for the lifetime of
	// the process; not user-configurable at runtime.
	BaseURL string `toml:"base_url"`

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// SidebarWidth is the thread sidebar width in columns.
	SidebarWidth int `toml:"sidebar_width"`

	// NarrowWidth is the terminal width below which the sidebar collapses.
	NarrowWidth int `toml:"narrow_width"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		BaseURL:     "http://localhost:8000",
		TimeoutSecs: 90,
		UI: UIConfig{
			SidebarWidth: 28,
			NarrowWidth:  80,
		},
	}
}

// Load reads the config file at path, applies environment overrides, and
// validates. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads from the standard location (~/.tickertalk/config.toml).
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: run on defaults.
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, cfg.Validate()
	}
	return Load(filepath.Join(home, ".tickertalk", "config.toml"))
}

// applyEnvOverrides applies environment variables over file values.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
}

// Validate checks the configuration for usable values, clamping the UI
// numbers rather than failing on them.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = Default().TimeoutSecs
	}
	if c.UI.SidebarWidth < 16 {
		c.UI.SidebarWidth = Default().UI.SidebarWidth
	}
	if c.UI.NarrowWidth <= 0 {
		c.UI.NarrowWidth = Default().UI.NarrowWidth
	}
	return nil
}

// DataDir returns the directory for tickertalk's own files (log output),
// creating it if needed.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tickertalk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
