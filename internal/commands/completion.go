// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/jeranaias/fsh/internal/fsops"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion: command names for the first word, paths
// for the rest.
type Completer struct {
	registry *Registry
	env      *Env
}

// NewCompleter creates a completer over the dispatcher's registry and
// environment.
func NewCompleter(d *Dispatcher) *Completer {
	return &Completer{registry: d.registry, env: d.env}
}

// Complete returns whole-line candidates for the input typed so far.
func (c *Completer) Complete(line string) []string {
	idx := strings.LastIndexAny(line, " \t")
	if idx < 0 {
		return c.completeCommands(line)
	}

	head, partial := line[:idx+1], line[idx+1:]
	paths := c.completePaths(partial)
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = head + p
	}
	return out
}

// completeCommands returns names and aliases starting with partial.
func (c *Completer) completeCommands(partial string) []string {
	var out []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}

// completePaths lists entries of partial's directory whose names start with
// its last element. Directories get a trailing slash.
func (c *Completer) completePaths(partial string) []string {
	if c.env == nil || c.env.Ops == nil || c.env.Session == nil {
		return nil
	}

	dirPart, base := "", partial
	if i := strings.LastIndex(partial, "/"); i >= 0 {
		dirPart, base = partial[:i+1], partial[i+1:]
	}

	lookup := dirPart
	if lookup == "" {
		lookup = "."
	}
	dir := c.env.Ops.Resolver.Resolve(c.env.Session.Cwd(), lookup)

	infos, err := afero.ReadDir(c.env.Ops.Fs, dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, fi := range infos {
		name := fi.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if fsops.IsHidden(name) && !fsops.IsHidden(base) {
			continue
		}
		if fi.IsDir() {
			name += "/"
		}
		out = append(out, dirPart+name)
	}
	sort.Strings(out)
	return out
}
