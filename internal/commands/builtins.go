// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/jeranaias/fsh/internal/flags"
	"github.com/jeranaias/fsh/internal/fsops"
	"github.com/jeranaias/fsh/internal/session"
	"github.com/jeranaias/fsh/internal/status"
)

const (
	defaultHistoryCount = 50
	defaultJournalCount = 20
)

var (
	lsFlags = flags.Spec{
		"-a": "-a", "--all": "-a",
		"-l": "-l", "--long": "-l",
		"-h": "-h", "--human": "-h",
		"-1": "-1", "--one": "-1",
	}
	mkdirFlags = flags.Spec{"-p": "-p", "--parents": "-p"}
	rmFlags    = flags.Spec{
		"-r": "-r", "-R": "-r", "--recursive": "-r",
		"-f": "-f", "--force": "-f",
	}
	cpFlags = flags.Spec{"-r": "-r", "-R": "-r", "--recursive": "-r"}
)

// Builtins returns the shell's built-in command table.
func Builtins() []*Command {
	return []*Command{
		{Name: "help", Usage: "help [command]", Description: "Show help for commands.", Handler: HandlerFunc(handleHelp)},
		{Name: "exit", Aliases: []string{"quit", "q"}, Usage: "exit", Description: "Exit the shell.", Handler: HandlerFunc(handleExit)},
		{Name: "pwd", Usage: "pwd", Description: "Print current working directory.", Handler: HandlerFunc(handlePwd)},
		{Name: "cd", Usage: "cd [path]", Description: "Change directory. Use without args to go to home.", Handler: HandlerFunc(handleCd)},
		{Name: "ls", Usage: "ls [-a] [-l] [-h] [-1] [path ...]", Description: "List files. -a show hidden, -l long format, -h human sizes, -1 one per line.", Handler: HandlerFunc(handleLs)},
		{Name: "mkdir", Usage: "mkdir [-p] path ...", Description: "Create directories. -p creates parents if needed.", Handler: HandlerFunc(handleMkdir)},
		{Name: "rm", Usage: "rm [-r] [-f] target ...", Description: "Remove files or directories. -r recursive, -f force (no prompt).", Handler: HandlerFunc(handleRm)},
		{Name: "mv", Usage: "mv src ... dest", Description: "Move/rename files or directories.", Handler: HandlerFunc(handleMv)},
		{Name: "cp", Usage: "cp [-r] src ... dest", Description: "Copy files or directories. -r for directories.", Handler: HandlerFunc(handleCp)},
		{Name: "touch", Usage: "touch file ...", Description: "Create empty file(s) or update modified time.", Handler: HandlerFunc(handleTouch)},
		{Name: "cat", Usage: "cat file ...", Description: "Print file contents.", Handler: HandlerFunc(handleCat)},
		{Name: "clear", Usage: "clear", Description: "Clear the screen.", Handler: HandlerFunc(handleClear)},
		{Name: "which", Usage: "which command", Description: "Locate a command in PATH.", Handler: HandlerFunc(handleWhich)},
		{Name: "ai", Aliases: []string{"do"}, Usage: `ai "instruction sentence..."`, Description: "Translate a natural sentence to commands and run it.", Handler: HandlerFunc(handleAI)},
		{Name: "history", Usage: "history [n]", Description: "Show the last n commands (default 50).", Handler: HandlerFunc(handleHistory)},
		{Name: "journal", Usage: "journal [n]", Description: "Show the last n journaled commands with status (default 20).", Handler: HandlerFunc(handleJournal)},
	}
}

// NewDefaultRegistry returns a registry holding the built-in commands.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range Builtins() {
		r.MustRegister(cmd)
	}
	return r
}

// =============================================================================
// SHELL COMMANDS
// =============================================================================

func handleHelp(_ context.Context, env *Env, args []string) (int, error) {
	if len(args) == 0 {
		env.printf("Available commands:\n")
		for _, c := range env.Registry().All() {
			aliases := ""
			if len(c.Aliases) > 0 {
				aliases = " (aliases: " + strings.Join(c.Aliases, ", ") + ")"
			}
			env.printf("  %-8s - %s%s\n", c.Name, c.Description, aliases)
		}
		env.printf("\nType 'help <command>' for usage.\n")
		return status.OK, nil
	}

	c := env.Registry().Get(args[0])
	if c == nil {
		env.warnf("No such command: %s\n", args[0])
		return status.Failure, nil
	}
	env.printf("Usage: %s\n%s\n", c.Usage, c.Description)
	return status.OK, nil
}

func handleExit(context.Context, *Env, []string) (int, error) {
	return status.OK, status.ErrSessionEnd
}

func handleClear(_ context.Context, env *Env, _ []string) (int, error) {
	termenv.NewOutput(env.Out).ClearScreen()
	return status.OK, nil
}

func handleWhich(_ context.Context, env *Env, args []string) (int, error) {
	if len(args) != 1 {
		return status.Usage, status.NewUsage("which command")
	}
	path, err := env.LookPath(args[0])
	if err != nil {
		env.printf("%s not found in PATH\n", args[0])
		return status.Failure, nil
	}
	env.printf("%s\n", path)
	return status.OK, nil
}

func handleAI(ctx context.Context, env *Env, args []string) (int, error) {
	if len(args) == 0 {
		return status.Usage, status.NewUsage(`ai "instruction sentence..."`)
	}

	plan := env.Translator.Translate(strings.Join(args, " "))
	if len(plan) == 0 {
		env.printf("Could not parse instruction.\n")
		return status.Failure, nil
	}
	env.printf("Plan: %s\n", plan.String())

	for _, vec := range plan {
		code, err := env.Run(ctx, vec)
		if err != nil {
			return code, err
		}
		if code != status.OK {
			return code, nil
		}
	}
	return status.OK, nil
}

func handleHistory(_ context.Context, env *Env, args []string) (int, error) {
	n := countArg(args, defaultHistoryCount)
	entries, err := env.Session.History().Tail(n)
	if err != nil {
		return status.Failure, err
	}
	for _, e := range entries {
		env.printf("%5d  %s\n", e.Number, e.Line)
	}
	return status.OK, nil
}

func handleJournal(ctx context.Context, env *Env, args []string) (int, error) {
	if env.Journal == nil {
		env.warnf("journal disabled\n")
		return status.Failure, nil
	}
	n := countArg(args, defaultJournalCount)
	recs, err := env.Journal.Recent(ctx, n)
	if err != nil {
		return status.Failure, err
	}
	for _, r := range recs {
		marker := " "
		if r.SessionID == env.Journal.SessionID() {
			marker = "*"
		}
		age := session.FormatDuration(time.Since(r.Time).Truncate(time.Second))
		env.printf("%5d %s %3d  %s (%s ago)  %s\n",
			r.ID, marker, r.Status, r.Time.Local().Format(time.DateTime), age, r.Line)
	}
	return status.OK, nil
}

// countArg reads an optional positive count. Non-numeric input keeps def;
// values below 1 become 1.
func countArg(args []string, def int) int {
	if len(args) == 0 {
		return def
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return def
	}
	return max(1, n)
}

// =============================================================================
// FILESYSTEM COMMANDS
// =============================================================================

func handlePwd(_ context.Context, env *Env, _ []string) (int, error) {
	env.printf("%s\n", env.Session.Cwd())
	return status.OK, nil
}

func handleCd(_ context.Context, env *Env, args []string) (int, error) {
	if len(args) > 1 {
		return status.Usage, status.NewUsage("cd [path]")
	}
	target := ""
	if len(args) == 1 {
		target = args[0]
	}
	dir, err := env.Ops.ChangeDir(env.Session.Cwd(), target)
	if err != nil {
		return status.Failure, err
	}
	env.Session.SetCwd(dir)
	return status.OK, nil
}

func handleLs(ctx context.Context, env *Env, args []string) (int, error) {
	set, rest := flags.Parse(args, lsFlags)
	opts := fsops.ListOptions{
		All:   set.Has("-a"),
		Long:  set.Has("-l"),
		Human: set.Has("-h"),
		One:   set.Has("-1"),
	}
	cwd := env.Session.Cwd()

	if len(rest) <= 1 {
		target := ""
		if len(rest) == 1 {
			target = rest[0]
		}
		return env.Ops.List(ctx, cwd, target, opts)
	}

	code := status.OK
	for i, target := range rest {
		if i > 0 {
			env.printf("\n")
		}
		env.printf("%s:\n", target)
		c, err := env.Ops.List(ctx, cwd, target, opts)
		if err != nil {
			return c, err
		}
		if c != status.OK {
			code = c
		}
	}
	return code, nil
}

func handleMkdir(ctx context.Context, env *Env, args []string) (int, error) {
	set, rest := flags.Parse(args, mkdirFlags)
	if len(rest) == 0 {
		return status.Usage, status.NewUsage("mkdir [-p] path ...")
	}
	return env.Ops.MakeDirs(ctx, env.Session.Cwd(), rest, set.Has("-p"))
}

func handleRm(ctx context.Context, env *Env, args []string) (int, error) {
	set, rest := flags.Parse(args, rmFlags)
	if len(rest) == 0 {
		return status.Usage, status.NewUsage("rm [-r] [-f] target ...")
	}
	return env.Ops.Remove(ctx, env.Session.Cwd(), rest, fsops.RemoveOptions{
		Recursive: set.Has("-r"),
		Force:     set.Has("-f"),
	})
}

func handleMv(ctx context.Context, env *Env, args []string) (int, error) {
	_, rest := flags.Parse(args, nil)
	if len(rest) < 2 {
		return status.Usage, status.NewUsage("mv src ... dest")
	}
	return env.Ops.Move(ctx, env.Session.Cwd(), rest[:len(rest)-1], rest[len(rest)-1])
}

func handleCp(ctx context.Context, env *Env, args []string) (int, error) {
	set, rest := flags.Parse(args, cpFlags)
	if len(rest) < 2 {
		return status.Usage, status.NewUsage("cp [-r] src ... dest")
	}
	return env.Ops.Copy(ctx, env.Session.Cwd(), rest[:len(rest)-1], rest[len(rest)-1], set.Has("-r"))
}

func handleTouch(ctx context.Context, env *Env, args []string) (int, error) {
	_, rest := flags.Parse(args, nil)
	if len(rest) == 0 {
		return status.Usage, status.NewUsage("touch file ...")
	}
	return env.Ops.Touch(ctx, env.Session.Cwd(), rest)
}

func handleCat(ctx context.Context, env *Env, args []string) (int, error) {
	_, rest := flags.Parse(args, nil)
	if len(rest) == 0 {
		return status.Usage, status.NewUsage("cat file ...")
	}
	return env.Ops.ReadFiles(ctx, env.Session.Cwd(), rest)
}
