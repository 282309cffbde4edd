// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for fsh.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: the complete configuration
//   - ShellConfig: history file, start directory, process cwd syncing
//   - SafetyConfig: auto-confirm and the sandbox root
//   - JournalConfig: the SQLite command journal
//   - UIConfig: color mode and prompt width
//   - LogConfig: diagnostic log destination
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (FSH_*)
//   - ~/.fsh/config.toml
//   - ~/.fsh/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	width := cfg.UI.PromptWidth
package config
