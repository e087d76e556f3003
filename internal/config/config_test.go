// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault verifies the built-in defaults are valid.
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
}

// TestLoadMissingFile verifies a missing file yields defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().TimeoutSecs, cfg.TimeoutSecs)
}

// TestLoadFile verifies TOML parsing and partial overrides.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
base_url = "http://analysis.example.com:9000"

[ui]
sidebar_width = 36
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://analysis.example.com:9000", cfg.BaseURL)
	assert.Equal(t, 36, cfg.UI.SidebarWidth)
	// Unset values keep defaults.
	assert.Equal(t, Default().TimeoutSecs, cfg.TimeoutSecs)
}

// TestEnvOverride verifies the environment wins over the file.
func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`base_url = "http://file.example.com"`), 0o600))

	t.Setenv(EnvBaseURL, "http://env.example.com")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", cfg.BaseURL)
}

// TestValidateBadURL verifies an unusable base URL is rejected.
func TestValidateBadURL(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "not a url"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidBaseURL)
}

// TestValidateClampsUI verifies out-of-range UI values are clamped, not
// fatal.
func TestValidateClampsUI(t *testing.T) {
	cfg := Default()
	cfg.UI.SidebarWidth = 2
	cfg.TimeoutSecs = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default().UI.SidebarWidth, cfg.UI.SidebarWidth)
	assert.Equal(t, Default().TimeoutSecs, cfg.TimeoutSecs)
}
