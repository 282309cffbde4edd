// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/afero"

	"github.com/jeranaias/fsh/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete fsh configuration.
type Config struct {
	Shell   ShellConfig   `toml:"shell" json:"shell"`
	Safety  SafetyConfig  `toml:"safety" json:"safety"`
	Journal JournalConfig `toml:"journal" json:"journal"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ShellConfig contains session settings.
type ShellConfig struct {
	// HistoryFile is the append-only line history ("" disables persistence)
	HistoryFile string `toml:"history_file" json:"history_file" env:"FSH_HISTORY_FILE"`
	// StartDir is the initial working directory ("" = process cwd)
	StartDir string `toml:"start_dir" json:"start_dir" env:"FSH_START_DIR"`
	// SyncProcessDir chdirs the process to the session cwd before each command
	// and each prompt. On for the CLI; embeddings hosting several sessions in
	// one process turn it off.
	SyncProcessDir bool `toml:"sync_process_dir" json:"sync_process_dir" env:"FSH_SYNC_PROCESS_DIR"`
}

// SafetyConfig controls destructive operations.
type SafetyConfig struct {
	// AutoConfirm answers yes to every rm prompt
	AutoConfirm bool `toml:"auto_confirm" json:"auto_confirm" env:"FSH_AUTO_CONFIRM"`
	// SandboxRoot clamps every path inside this directory ("" = no sandbox)
	SandboxRoot string `toml:"sandbox_root" json:"sandbox_root" env:"FSH_SANDBOX"`
}

// JournalConfig controls the command journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled" env:"FSH_JOURNAL"`
	Path    string `toml:"path" json:"path" env:"FSH_JOURNAL_PATH"`
}

// UIConfig contains terminal presentation settings.
type UIConfig struct {
	// Color is "auto", "always" or "never"
	Color string `toml:"color" json:"color" env:"FSH_COLOR"`
	// PromptWidth is how many trailing characters of the cwd the prompt shows
	PromptWidth int `toml:"prompt_width" json:"prompt_width" env:"FSH_PROMPT_WIDTH"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// File receives the log ("" = discard unless Debug is set)
	File string `toml:"file" json:"file" env:"FSH_LOG_FILE"`
	// Debug sends the log to stderr when no file is configured
	Debug bool `toml:"debug" json:"debug" env:"FSH_DEBUG"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	// DefaultPromptWidth is the cwd tail length shown in the prompt.
	DefaultPromptWidth = 63
	minPromptWidth     = 8

	configPerm = 0o600
	dirPerm    = 0o700
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			HistoryFile:    "~/.fsh_history",
			SyncProcessDir: true,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.fsh/journal.db",
		},
		UI: UIConfig{
			Color:       ColorAuto,
			PromptWidth: DefaultPromptWidth,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.fsh).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".fsh"), nil
}

// ConfigPathTOML returns the TOML config path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.fsh/config.toml, falling back to config.json, then to
// defaults. Environment overrides apply on top of whichever was found.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil && fileExists(tomlPath) {
		return LoadFromPath(tomlPath)
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil && fileExists(jsonPath) {
		return LoadFromPath(jsonPath)
	}

	return finish(Default())
}

// LoadFromPath loads configuration from a specific file. The format follows
// the extension: .json is JSON, anything else is TOML. Keys missing from the
// file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// ApplyEnvOverrides applies FSH_* environment variables on top of the
// current values. Unset variables leave fields alone.
//
// Supported variables:
//   - FSH_HISTORY_FILE, FSH_START_DIR, FSH_SYNC_PROCESS_DIR
//   - FSH_AUTO_CONFIRM, FSH_SANDBOX
//   - FSH_JOURNAL, FSH_JOURNAL_PATH
//   - FSH_COLOR, FSH_PROMPT_WIDTH
//   - FSH_LOG_FILE, FSH_DEBUG
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SetDefaults fills zero values and expands "~" in paths.
func (c *Config) SetDefaults() {
	if c.UI.Color == "" {
		c.UI.Color = ColorAuto
	}
	c.UI.Color = strings.ToLower(c.UI.Color)
	if c.UI.PromptWidth == 0 {
		c.UI.PromptWidth = DefaultPromptWidth
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		c.Journal.Path = "~/.fsh/journal.db"
	}

	c.Shell.HistoryFile = ExpandHome(c.Shell.HistoryFile)
	c.Shell.StartDir = ExpandHome(c.Shell.StartDir)
	c.Safety.SandboxRoot = ExpandHome(c.Safety.SandboxRoot)
	c.Journal.Path = ExpandHome(c.Journal.Path)
	c.Log.File = ExpandHome(c.Log.File)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Init writes the default configuration to path, or to ~/.fsh/config.toml
// when path is empty, and returns the path written. An existing file is
// never overwritten.
func Init(path string) (string, error) {
	if path == "" {
		p, err := ConfigPathTOML()
		if err != nil {
			return "", err
		}
		path = p
	}
	if fileExists(path) {
		return path, fmt.Errorf("config file %s already exists", path)
	}
	return path, SaveTOML(Default(), path)
}

// SaveTOML writes the configuration as TOML with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# fsh configuration file\n")
	buf.WriteString("# Environment variables (FSH_*) override these values.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(afero.NewOsFs(), path, buf.Bytes(), configPerm, dirPerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks value ranges. It does not touch the filesystem.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch strings.ToLower(c.UI.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if c.UI.PromptWidth < minPromptWidth {
		errs = append(errs, ValidationError{
			Field:   "ui.prompt_width",
			Message: fmt.Sprintf("must be at least %d, got %d", minPromptWidth, c.UI.PromptWidth),
		})
	}

	if c.Safety.SandboxRoot != "" && !filepath.IsAbs(c.Safety.SandboxRoot) {
		errs = append(errs, ValidationError{
			Field:   "safety.sandbox_root",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Safety.SandboxRoot),
		})
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "journal.path",
			Message: "required when the journal is enabled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
