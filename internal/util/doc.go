// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the shell's packages.
//
//   - AtomicWriteFile: crash-safe file replacement on an afero filesystem
//   - TruncateLeft: keep the tail of a long path for the prompt
//   - StringWidth: terminal column width for ls column packing
//   - SplitWords: shell-word splitting that rejects unquoted operators
package util
