// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records every dispatched command line with its status,
// working directory and time in a SQLite database (modernc.org/sqlite, no
// cgo). The shell's journal command reads it back.
package journal
