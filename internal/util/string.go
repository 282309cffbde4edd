// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks elided text.
const Ellipsis = "…"

// TruncateLeft keeps the last maxRunes runes of s, prefixed with an
// ellipsis when anything was cut. Used for long prompt paths where the tail
// is the interesting part.
func TruncateLeft(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return Ellipsis + string(runes[len(runes)-maxRunes:])
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
