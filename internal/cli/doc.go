// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the terminal front end of fsh: process arguments, terminal
// detection, styles, line readers and the REPL loop.
//
// # Key Types
//
//   - Args: parsed process arguments (-c, --config, --sandbox, ...)
//   - LineReader: LinerReader on a terminal, ScannerReader on a pipe
//   - Styles: lipgloss styles; also the ls name colorizer
//   - REPL: prompt, history append, per-command Ctrl+C context, dispatch
//
// # Usage
//
//	reader := cli.NewLinerReader(lines, completer.Complete)
//	defer reader.Close()
//	repl := cli.NewREPL(dispatcher, reader, os.Stdout)
//	os.Exit(repl.Run(ctx))
package cli
