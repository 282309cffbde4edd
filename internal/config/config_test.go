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

// withHome points the home directory at a fresh temp dir.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	home := withHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".fsh_history"), cfg.Shell.HistoryFile)
	assert.Equal(t, filepath.Join(home, ".fsh", "journal.db"), cfg.Journal.Path)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, ColorAuto, cfg.UI.Color)
	assert.Equal(t, DefaultPromptWidth, cfg.UI.PromptWidth)
	assert.True(t, cfg.Shell.SyncProcessDir)
	assert.False(t, cfg.Safety.AutoConfirm)
	assert.Empty(t, cfg.Safety.SandboxRoot)
}

func TestLoad_TOML(t *testing.T) {
	home := withHome(t)
	writeConfig(t, filepath.Join(home, ".fsh", "config.toml"), `
[shell]
history_file = "~/hist"
sync_process_dir = false

[safety]
sandbox_root = "/srv/jail"

[ui]
color = "NEVER"
prompt_width = 20
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "hist"), cfg.Shell.HistoryFile)
	assert.False(t, cfg.Shell.SyncProcessDir)
	assert.Equal(t, "/srv/jail", cfg.Safety.SandboxRoot)
	assert.Equal(t, ColorNever, cfg.UI.Color)
	assert.Equal(t, 20, cfg.UI.PromptWidth)
	assert.True(t, cfg.Journal.Enabled, "keys missing from the file keep their defaults")
}

func TestLoad_JSONFallback(t *testing.T) {
	home := withHome(t)
	writeConfig(t, filepath.Join(home, ".fsh", "config.json"), `{"ui": {"color": "always"}, "journal": {"enabled": false}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.UI.Color)
	assert.False(t, cfg.Journal.Enabled)
}

func TestLoad_TOMLWinsOverJSON(t *testing.T) {
	home := withHome(t)
	writeConfig(t, filepath.Join(home, ".fsh", "config.toml"), "[ui]\ncolor = \"never\"\n")
	writeConfig(t, filepath.Join(home, ".fsh", "config.json"), `{"ui": {"color": "always"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.UI.Color)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "config.toml", "[shell]\nhistroy_file = \"x\"\n"},
		{"bad toml", "config.toml", "[shell\n"},
		{"bad json", "config.json", "{"},
		{"invalid color", "config.toml", "[ui]\ncolor = \"rainbow\"\n"},
		{"relative sandbox", "config.toml", "[safety]\nsandbox_root = \"jail\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name, tt.file)
			writeConfig(t, path, tt.content)
			_, err := LoadFromPath(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

// =============================================================================
// ENVIRONMENT TESTS
// =============================================================================

func TestEnvOverrides(t *testing.T) {
	home := withHome(t)
	writeConfig(t, filepath.Join(home, ".fsh", "config.toml"), "[ui]\ncolor = \"never\"\n")

	t.Setenv("FSH_COLOR", "always")
	t.Setenv("FSH_PROMPT_WIDTH", "30")
	t.Setenv("FSH_JOURNAL", "false")
	t.Setenv("FSH_AUTO_CONFIRM", "true")
	t.Setenv("FSH_SANDBOX", "~/jail")
	t.Setenv("FSH_SYNC_PROCESS_DIR", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ColorAlways, cfg.UI.Color)
	assert.Equal(t, 30, cfg.UI.PromptWidth)
	assert.False(t, cfg.Journal.Enabled)
	assert.True(t, cfg.Safety.AutoConfirm)
	assert.Equal(t, filepath.Join(home, "jail"), cfg.Safety.SandboxRoot)
	assert.False(t, cfg.Shell.SyncProcessDir)
}

func TestEnvOverrides_Invalid(t *testing.T) {
	withHome(t)
	t.Setenv("FSH_PROMPT_WIDTH", "wide")

	_, err := Load()
	assert.Error(t, err)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad color", mutate: func(c *Config) { c.UI.Color = "sometimes" }, wantErr: "ui.color"},
		{name: "narrow prompt", mutate: func(c *Config) { c.UI.PromptWidth = 2 }, wantErr: "ui.prompt_width"},
		{name: "relative sandbox", mutate: func(c *Config) { c.Safety.SandboxRoot = "jail" }, wantErr: "safety.sandbox_root"},
		{name: "journal without path", mutate: func(c *Config) { c.Journal.Path = "" }, wantErr: "journal.path"},
		{name: "disabled journal without path", mutate: func(c *Config) { c.Journal.Enabled = false; c.Journal.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateErrors_Joined(t *testing.T) {
	cfg := Default()
	cfg.UI.Color = "x"
	cfg.UI.PromptWidth = 1

	err := cfg.Validate()
	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.SetDefaults()
	cfg.UI.Color = ColorNever
	cfg.Safety.AutoConfirm = true
	cfg.Log.Debug = true

	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(configPerm), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInit(t *testing.T) {
	home := withHome(t)

	path, err := Init("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".fsh", "config.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# fsh configuration file")
	assert.Contains(t, string(data), `history_file = "~/.fsh_history"`)

	cfg, err := Load()
	require.NoError(t, err)
	want, err := finish(Default())
	require.NoError(t, err)
	assert.Equal(t, want, cfg)

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncolor = \"never\"\n"), 0o600))
	_, err = Init("")
	assert.ErrorContains(t, err, "already exists")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[ui]\ncolor = \"never\"\n", string(data), "an existing file is left alone")
}

func TestInit_ExplicitPath(t *testing.T) {
	withHome(t)
	path := filepath.Join(t.TempDir(), "conf", "fsh.toml")

	got, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, cfg.Journal.Enabled)
}

func TestExpandHome(t *testing.T) {
	home := withHome(t)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandHome("~/a/b"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "", ExpandHome(""))
}
