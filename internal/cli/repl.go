// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - The read-dispatch loop.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/jeranaias/fsh/internal/commands"
	"github.com/jeranaias/fsh/internal/config"
	"github.com/jeranaias/fsh/internal/session"
	"github.com/jeranaias/fsh/internal/status"
	"github.com/jeranaias/fsh/internal/util"
)

// REPL reads lines, records them in history and dispatches them until
// end of input or the exit command.
type REPL struct {
	dispatcher *commands.Dispatcher
	session    *session.Session
	reader     LineReader
	out        io.Writer
	logger     *log.Logger

	// PromptWidth is how many trailing runes of the cwd the prompt shows
	PromptWidth int

	// Banner is printed once before the first prompt when non-empty
	Banner string

	// notify derives the per-command context that Ctrl+C cancels
	notify func(context.Context) (context.Context, context.CancelFunc)
}

// NewREPL creates a loop over the dispatcher's session.
func NewREPL(d *commands.Dispatcher, reader LineReader, out io.Writer) *REPL {
	env := d.Env()
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &REPL{
		dispatcher:  d,
		session:     env.Session,
		reader:      reader,
		out:         out,
		logger:      logger,
		PromptWidth: config.DefaultPromptWidth,
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Prompt renders "<cwd> $ ", keeping only the tail of a long cwd.
func (r *REPL) Prompt() string {
	return util.TruncateLeft(r.session.Cwd(), r.PromptWidth) + " $ "
}

// Run loops until end of input, the exit command or ctx cancellation. It
// returns the status of the last dispatched line.
func (r *REPL) Run(ctx context.Context) int {
	if r.Banner != "" {
		fmt.Fprintln(r.out, r.Banner)
	}

	last := status.OK
	for ctx.Err() == nil {
		r.sync()
		line, err := r.reader.Prompt(r.Prompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return last
		case errors.Is(err, status.ErrInterrupted):
			// Ctrl+C at the prompt discards the line.
			fmt.Fprintln(r.out)
			last = status.Interrupted
			continue
		case err != nil:
			r.logger.Printf("REPL: read failed: %v", err)
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return status.Failure
		}

		r.record(line)

		code, err := r.dispatch(ctx, line)
		last = code
		if errors.Is(err, status.ErrSessionEnd) {
			return code
		}
	}
	return last
}

// RunLine dispatches a single line without touching history, for -c.
func (r *REPL) RunLine(ctx context.Context, line string) int {
	code, _ := r.dispatch(ctx, line)
	return code
}

// record appends a non-blank line to the history file and the editor's
// recall list. History failures are logged, never fatal.
func (r *REPL) record(line string) {
	if err := r.session.History().Append(line); err != nil {
		r.logger.Printf("HISTORY: %v", err)
	}
	if strings.TrimSpace(line) != "" {
		r.reader.AppendHistory(line)
	}
}

// sync moves the process to the session cwd so anything resolving against
// the process cwd agrees with the prompt.
func (r *REPL) sync() {
	if err := r.session.SyncProcessDir(); err != nil {
		r.logger.Printf("SESSION: %v", err)
	}
}

func (r *REPL) dispatch(ctx context.Context, line string) (int, error) {
	dctx, stop := r.notify(ctx)
	defer stop()
	return r.dispatcher.Dispatch(dctx, line)
}
