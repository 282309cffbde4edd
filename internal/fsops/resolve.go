// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// PATH RESOLUTION
// =============================================================================

// Resolver turns a user-supplied path into an absolute, cleaned path.
// Every verb resolves its arguments through one, so swapping the Resolver
// changes where the shell can reach.
type Resolver interface {
	Resolve(cwd, raw string) string
}

// ExpandResolver expands "~" and environment variables, then resolves
// relative paths against the session working directory.
type ExpandResolver struct {
	// HomeDir returns the home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)

	// Getenv looks up variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Resolve implements Resolver.
func (r ExpandResolver) Resolve(cwd, raw string) string {
	p := r.expand(raw)
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return filepath.Clean(p)
}

// expand applies home then environment substitution.
func (r ExpandResolver) expand(raw string) string {
	home := r.HomeDir
	if home == nil {
		home = os.UserHomeDir
	}
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	p := raw
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if h, err := home(); err == nil {
			p = h + p[1:]
		}
	}
	return os.Expand(p, getenv)
}

// JailResolver confines every path beneath Root. Absolute paths are
// re-rooted under Root; anything that would land outside it after cleaning is
// clamped to Root itself.
type JailResolver struct {
	Root string

	// Expand performs home and environment expansion before jailing.
	Expand ExpandResolver
}

// NewJailResolver creates a resolver rooted at root.
func NewJailResolver(root string) JailResolver {
	return JailResolver{Root: filepath.Clean(root)}
}

// Resolve implements Resolver.
func (j JailResolver) Resolve(cwd, raw string) string {
	root := filepath.Clean(j.Root)
	p := j.Expand.expand(raw)

	var target string
	if filepath.IsAbs(p) {
		rel := strings.TrimLeft(p, string(filepath.Separator))
		target = filepath.Join(root, rel)
	} else {
		base := cwd
		if !Within(root, base) {
			base = root
		}
		target = filepath.Join(base, p)
	}
	target = filepath.Clean(target)

	if !Within(root, target) {
		return root
	}
	return target
}

// Within reports whether path equals root or lies beneath it.
func Within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
