// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fsops implements the shell's filesystem verbs: list, make-directory,
// remove, move, copy, touch and read-file.
//
// Every verb takes the session working directory and raw user paths, resolves
// them through a Resolver, and reports per-target failures on the error writer
// while continuing with the remaining targets. Destructive actions go through
// a Confirmer.
//
// # Seams
//
//   - Fs: an afero.Fs. The OS filesystem in production, MemMapFs in tests.
//   - Resolver: ExpandResolver or JailResolver for a sandboxed root.
//   - Confirmer: PromptConfirmer for interactive use, PolicyConfirmer for
//     headless embeddings.
//
// # Usage
//
//	ops := fsops.New(
//	    fsops.WithResolver(fsops.NewJailResolver("/srv/sandbox")),
//	    fsops.WithConfirmer(fsops.PolicyConfirmer{Allow: true}),
//	)
//	code, err := ops.MakeDirs(ctx, "/srv/sandbox", []string{"demo"}, false)
package fsops
