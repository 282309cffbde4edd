// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry, dispatcher and
// built-in commands.
//
// # Key Types
//
//   - Command: name, aliases, usage, description and Handler
//   - Registry: name and alias lookup with collision checks
//   - Dispatcher: tokenizes a line, resolves the command, runs it and maps
//     the outcome to a status
//   - Env: session, filesystem verbs and output streams handed to handlers
//   - Completer: tab completion for command names and paths
//
// # Statuses
//
//	0    success
//	1    failure
//	2    usage or parse error
//	127  unknown command
//	130  interrupted
//
// The exit command returns status.ErrSessionEnd, which Dispatch hands back
// to its caller instead of converting it.
//
// # Usage
//
//	d := commands.NewDispatcher(commands.NewDefaultRegistry(), &commands.Env{
//	    Session:    sess,
//	    Ops:        fsops.New(),
//	    Translator: nl.New(),
//	})
//	code, err := d.Dispatch(ctx, `ai "create a folder demo and then go to demo"`)
//	if errors.Is(err, status.ErrSessionEnd) {
//	    return
//	}
package commands
