// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"sort"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler executes a command with its arguments (the command name removed).
// It returns the status to report. An error is printed by the dispatcher
// and its status comes from status.Code, except status.ErrSessionEnd which
// is passed back to the dispatcher's caller.
type Handler interface {
	Execute(ctx context.Context, env *Env, args []string) (int, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, env *Env, args []string) (int, error)

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx context.Context, env *Env, args []string) (int, error) {
	return f(ctx, env, args)
}

// Command is a named, immutable command descriptor.
type Command struct {
	// Name is the canonical command name (e.g., "exit")
	Name string

	// Aliases are alternative names (e.g., "quit", "q")
	Aliases []string

	// Description is the one-line help text
	Description string

	// Usage shows argument syntax (e.g., "rm [-r] [-f] target ...")
	Usage string

	// Handler runs the command
	Handler Handler
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps names and aliases to commands. Names and aliases share one
// namespace. Lookups are exact and case-sensitive.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command. It fails if the name or any alias is already
// taken by another name or alias.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}

	seen := map[string]bool{cmd.Name: true}
	if r.taken(cmd.Name) {
		return fmt.Errorf("command %q: name already registered", cmd.Name)
	}
	for _, alias := range cmd.Aliases {
		if alias == "" {
			return fmt.Errorf("command %q: empty alias", cmd.Name)
		}
		if seen[alias] || r.taken(alias) {
			return fmt.Errorf("command %q: alias %q collides with an existing name or alias", cmd.Name, alias)
		}
		seen[alias] = true
	}

	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd.Name
	}
	return nil
}

// MustRegister is Register for static tables; it panics on collision.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

func (r *Registry) taken(name string) bool {
	_, isCmd := r.commands[name]
	_, isAlias := r.aliases[name]
	return isCmd || isAlias
}

// Resolve maps a name or alias to the canonical name.
func (r *Registry) Resolve(name string) (string, bool) {
	if _, ok := r.commands[name]; ok {
		return name, true
	}
	canonical, ok := r.aliases[name]
	return canonical, ok
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	canonical, ok := r.Resolve(name)
	if !ok {
		return nil
	}
	return r.commands[canonical]
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Names returns every canonical name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
