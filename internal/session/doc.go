// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds per-shell state: the working directory and the
// append-only command history.
//
// # Key Types
//
//   - Session: working directory, session ID and history for one shell
//   - History: newline-delimited history stream, on disk or in memory
//
// # Usage
//
//	sess, err := session.New(session.Config{
//	    HistoryFile:    filepath.Join(home, ".fsh_history"),
//	    SyncProcessDir: true,
//	})
//	sess.History().Append("ls -la")
//	entries, _ := sess.History().Tail(50)
//
// Only the cd command changes the working directory. Before each dispatch
// the caller runs SyncProcessDir so the process agrees with the session.
package session
