// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the fsh front end.
//
// Interactive terminals get line editing, colors and prompts. Piped input
// gets a plain line reader and no colors. NO_COLOR and FORCE_COLOR are
// honored in "auto" mode.

package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/fsh/internal/config"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width ls packs columns into
	MinTerminalWidth = 20
)

// GetTerminalWidth returns the current stdout width, or
// DefaultTerminalWidth when it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// ColorsEnabled decides whether to color output for the given mode
// ("auto", "always" or "never"). In auto mode NO_COLOR wins over
// FORCE_COLOR, which wins over TTY detection.
// See https://no-color.org/ for the NO_COLOR specification.
func ColorsEnabled(mode string, stdoutTTY bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return stdoutTTY
}

// ColorProfile returns the termenv profile for the given mode. Ascii means
// no escape sequences at all.
func ColorProfile(mode string) termenv.Profile {
	if !ColorsEnabled(mode, IsStdoutTTY()) {
		return termenv.Ascii
	}
	if p := termenv.ColorProfile(); p != termenv.Ascii {
		return p
	}
	// Forced color on a non-terminal; ANSI is the safe floor.
	return termenv.ANSI
}
