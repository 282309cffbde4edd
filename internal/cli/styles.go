// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Centralized styling for the fsh front end.

package cli

import (
	"io"
	"io/fs"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the shell's lipgloss styles, bound to one renderer so the
// color decision is made once per process rather than per call.
type Styles struct {
	renderer *lipgloss.Renderer

	// Dir is used for directory names in listings
	// Color: Blue (#12)
	Dir lipgloss.Style

	// Exec is used for executable files in listings
	// Color: Green (#10)
	Exec lipgloss.Style

	// Link is used for symlinks in listings
	// Color: Cyan (#14)
	Link lipgloss.Style

	// Banner is used for the startup line
	// Color: Dim gray (#242)
	Banner lipgloss.Style

	// Error is used for the fatal error label
	// Color: Red (#196)
	Error lipgloss.Style
}

// NewStyles creates styles rendered with the given color profile.
// termenv.Ascii disables all coloring.
func NewStyles(w io.Writer, profile termenv.Profile) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Styles{
		renderer: r,
		Dir:      r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Exec:     r.NewStyle().Foreground(lipgloss.Color("10")),
		Link:     r.NewStyle().Foreground(lipgloss.Color("14")),
		Banner:   r.NewStyle().Foreground(lipgloss.Color("242")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Enabled reports whether the styles emit any escape sequences.
func (s *Styles) Enabled() bool {
	return s.renderer.ColorProfile() != termenv.Ascii
}

// Style colors a listing name by file type. It implements fsops.Styler and
// never changes the printed width.
func (s *Styles) Style(name string, info fs.FileInfo) string {
	if !s.Enabled() || info == nil {
		return name
	}
	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		return s.Link.Render(name)
	case mode.IsDir():
		return s.Dir.Render(name)
	case mode.IsRegular() && mode.Perm()&0o111 != 0:
		return s.Exec.Render(name)
	}
	return name
}
