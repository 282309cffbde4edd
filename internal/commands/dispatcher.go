// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/jeranaias/fsh/internal/fsops"
	"github.com/jeranaias/fsh/internal/journal"
	"github.com/jeranaias/fsh/internal/nl"
	"github.com/jeranaias/fsh/internal/session"
	"github.com/jeranaias/fsh/internal/status"
	"github.com/jeranaias/fsh/internal/util"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env is what handlers can reach: the session, the filesystem verbs, the
// translator and the output streams.
//
// Journal and Logger are optional.
type Env struct {
	Session    *session.Session
	Ops        *fsops.Ops
	Translator *nl.Translator

	// Journal records dispatched lines (nil when disabled)
	Journal *journal.Journal

	Out io.Writer
	Err io.Writer

	// LookPath searches PATH for the which command
	LookPath func(string) (string, error)

	Logger *log.Logger

	registry   *Registry
	dispatcher *Dispatcher
}

// Registry returns the registry the environment is dispatching from.
func (e *Env) Registry() *Registry {
	return e.registry
}

// Run dispatches a pre-split command vector through the same dispatcher.
func (e *Env) Run(ctx context.Context, argv []string) (int, error) {
	return e.dispatcher.Run(ctx, argv)
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

func (e *Env) warnf(format string, args ...any) {
	fmt.Fprintf(e.Err, format, args...)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher turns input lines into handler calls and statuses.
type Dispatcher struct {
	registry *Registry
	env      *Env
}

// NewDispatcher binds a registry to an environment. Missing output streams
// default to the process streams, a missing logger discards.
func NewDispatcher(registry *Registry, env *Env) *Dispatcher {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Err == nil {
		env.Err = os.Stderr
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard, "", 0)
	}
	if env.LookPath == nil {
		env.LookPath = exec.LookPath
	}

	d := &Dispatcher{registry: registry, env: env}
	env.registry = registry
	env.dispatcher = d
	return d
}

// Env returns the dispatcher's environment.
func (d *Dispatcher) Env() *Env {
	return d.env
}

// Dispatch tokenizes and runs one input line. An unquoted shell operator is
// a parse error, never a silent end of the line. The returned error is only
// ever status.ErrSessionEnd; every other failure is already reported and
// folded into the status.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return status.OK, nil
	}

	argv, err := util.SplitWords(line)
	if err != nil {
		perr := &status.ParseError{Line: line, Err: err}
		d.env.warnf("Parse error: %v\n", err)
		d.env.Logger.Printf("DISPATCH: %v", perr)
		d.record(ctx, line, status.Usage)
		return status.Code(perr), nil
	}

	code, err := d.Run(ctx, argv)
	d.record(ctx, line, code)
	return code, err
}

// Run executes a pre-split command vector.
func (d *Dispatcher) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return status.OK, nil
	}

	if d.env.Session != nil {
		if err := d.env.Session.SyncProcessDir(); err != nil {
			d.env.Logger.Printf("DISPATCH: %v", err)
		}
	}

	name, args := argv[0], argv[1:]
	cmd := d.registry.Get(name)
	if cmd == nil {
		d.unknown(name)
		return status.UnknownCommand, nil
	}

	d.env.Logger.Printf("DISPATCH: %s %d args", cmd.Name, len(args))

	code, err := d.execute(ctx, cmd, args)
	if errors.Is(err, status.ErrSessionEnd) {
		return status.OK, err
	}
	if err != nil {
		return d.report(cmd, err), nil
	}
	return code, nil
}

// execute runs the handler, converting a panic into a failure.
func (d *Dispatcher) execute(ctx context.Context, cmd *Command, args []string) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.env.Logger.Printf("DISPATCH: panic in %s: %v", cmd.Name, r)
			d.env.warnf("Error: %v\n", r)
			code, err = status.Failure, nil
		}
	}()
	return cmd.Handler.Execute(ctx, d.env, args)
}

// report prints a handler error and maps it to a status.
func (d *Dispatcher) report(cmd *Command, err error) int {
	code := status.Code(err)
	d.env.Logger.Printf("DISPATCH: %s failed with %d: %v", cmd.Name, code, err)

	var usage *status.UsageError
	switch {
	case code == status.Interrupted:
		d.env.warnf("\nInterrupted.\n")
	case errors.As(err, &usage):
		d.env.warnf("%v\n", err)
	default:
		d.env.warnf("Error: %v\n", err)
	}
	return code
}

func (d *Dispatcher) unknown(name string) {
	msg := "Unknown command: " + name
	if s := Suggest(name, d.registry.Names(), MaxSuggestions); len(s) > 0 {
		msg += " (did you mean: " + strings.Join(s, ", ") + "?)"
	}
	d.env.warnf("%s\n", msg)
}

// record writes the line to the journal. Journal failures never change the
// command's status.
func (d *Dispatcher) record(ctx context.Context, line string, code int) {
	if d.env.Journal == nil {
		return
	}
	cwd := ""
	if d.env.Session != nil {
		cwd = d.env.Session.Cwd()
	}
	if err := d.env.Journal.Record(context.WithoutCancel(ctx), line, cwd, code); err != nil {
		d.env.Logger.Printf("JOURNAL: %v", err)
	}
}
