// fsh - a small interactive shell for everyday file work.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/fsh/internal/cli"
	"github.com/jeranaias/fsh/internal/commands"
	"github.com/jeranaias/fsh/internal/config"
	"github.com/jeranaias/fsh/internal/fsops"
	"github.com/jeranaias/fsh/internal/journal"
	"github.com/jeranaias/fsh/internal/nl"
	"github.com/jeranaias/fsh/internal/session"
	"github.com/jeranaias/fsh/internal/status"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		cli.PrintUsage(os.Stderr)
		return status.Usage
	}
	if args.ShowHelp {
		cli.PrintUsage(os.Stdout)
		return status.OK
	}
	if args.ShowVersion {
		cli.PrintVersion(os.Stdout)
		return status.OK
	}
	if args.InitConfig {
		path, err := config.Init(config.ExpandHome(args.ConfigPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return status.Failure
		}
		fmt.Printf("Wrote %s\n", path)
		return status.OK
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return status.Failure
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return status.Failure
	}
	defer closeLog()

	styles := cli.NewStyles(os.Stdout, cli.ColorProfile(cfg.UI.Color))

	sess, resolver, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.Error.Render("Error:"), err)
		return status.Failure
	}
	logger.Printf("SESSION: %s started in %s", sess.ID(), sess.Cwd())

	// The reader exists before the dispatcher it completes for.
	var completer *commands.Completer
	reader := newReader(sess, func(line string) []string {
		if completer == nil {
			return nil
		}
		return completer.Complete(line)
	})
	defer reader.Close()

	var confirmer fsops.Confirmer = fsops.PromptConfirmer{Source: reader}
	if cfg.Safety.AutoConfirm {
		confirmer = fsops.PolicyConfirmer{Allow: true}
	}

	ops := fsops.New(
		fsops.WithResolver(resolver),
		fsops.WithConfirmer(confirmer),
		fsops.WithOutput(os.Stdout, os.Stderr),
		fsops.WithWidth(cli.GetTerminalWidth),
		fsops.WithStyler(styles),
	)

	env := &commands.Env{
		Session:    sess,
		Ops:        ops,
		Translator: nl.New(),
		Out:        os.Stdout,
		Err:        os.Stderr,
		Logger:     logger,
	}
	if j := openJournal(cfg, sess, logger); j != nil {
		defer j.Close()
		env.Journal = j
	}

	dispatcher := commands.NewDispatcher(commands.NewDefaultRegistry(), env)
	completer = commands.NewCompleter(dispatcher)

	repl := cli.NewREPL(dispatcher, reader, os.Stdout)
	repl.PromptWidth = cfg.UI.PromptWidth

	ctx := context.Background()
	if args.Command != "" {
		return repl.RunLine(ctx, args.Command)
	}
	if cli.IsTTY() {
		repl.Banner = styles.Banner.Render(fmt.Sprintf("fsh %s - type 'help' for commands, 'exit' to quit.", cli.Version))
	}
	code := repl.Run(ctx)
	logger.Printf("SESSION: %s ended with %d after %s", sess.ID(), code,
		session.FormatDuration(time.Since(sess.StartTime()).Truncate(time.Second)))
	return code
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(config.ExpandHome(args.ConfigPath))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.Sandbox != "" {
		abs, err := filepath.Abs(config.ExpandHome(args.Sandbox))
		if err != nil {
			return nil, fmt.Errorf("invalid sandbox %q: %w", args.Sandbox, err)
		}
		cfg.Safety.SandboxRoot = abs
	}
	if args.HistoryFile != "" {
		cfg.Shell.HistoryFile = config.ExpandHome(args.HistoryFile)
	}
	if args.Yes {
		cfg.Safety.AutoConfirm = true
	}
	if args.NoColor {
		cfg.UI.Color = config.ColorNever
	}
	if args.Verbose {
		cfg.Log.Debug = true
	}
	return cfg, cfg.Validate()
}

// newLogger opens the diagnostic log: the configured file, stderr in debug
// mode, or nowhere.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	switch {
	case cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return log.New(f, "fsh: ", log.LstdFlags), func() { f.Close() }, nil
	case cfg.Log.Debug:
		return log.New(os.Stderr, "fsh: ", log.LstdFlags), func() {}, nil
	}
	return log.New(io.Discard, "", 0), func() {}, nil
}

// newSession builds the session and the resolver. With a sandbox, "~" means
// the sandbox root and a start directory outside it moves to the root.
func newSession(cfg *config.Config) (*session.Session, fsops.Resolver, error) {
	var resolver fsops.Resolver = fsops.ExpandResolver{}
	start := cfg.Shell.StartDir

	if root := cfg.Safety.SandboxRoot; root != "" {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, fmt.Errorf("sandbox: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("sandbox: %s is not a directory", root)
		}

		jail := fsops.NewJailResolver(root)
		jail.Expand = fsops.ExpandResolver{HomeDir: func() (string, error) { return string(filepath.Separator), nil }}
		resolver = jail

		if start == "" {
			start, _ = os.Getwd()
		}
		if !fsops.Within(jail.Root, start) {
			start = jail.Root
		}
	}

	sess, err := session.New(session.Config{
		StartDir:       start,
		HistoryFile:    cfg.Shell.HistoryFile,
		SyncProcessDir: cfg.Shell.SyncProcessDir,
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, resolver, nil
}

// newReader picks line editing on a terminal and a plain reader otherwise.
// Plain-reader prompts go to stderr so piped output stays clean.
func newReader(sess *session.Session, complete func(string) []string) cli.LineReader {
	if !cli.IsTTY() {
		return cli.NewScannerReader(os.Stdin, os.Stderr)
	}
	lines, err := sess.History().Lines()
	if err != nil {
		lines = nil
	}
	return cli.NewLinerReader(lines, complete)
}

// openJournal opens the command journal. Failure disables the journal for
// this session instead of stopping the shell.
func openJournal(cfg *config.Config, sess *session.Session, logger *log.Logger) *journal.Journal {
	if !cfg.Journal.Enabled {
		return nil
	}
	j, err := journal.Open(cfg.Journal.Path, sess.ID())
	if err != nil {
		logger.Printf("JOURNAL: disabled: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: journal disabled: %v\n", err)
		return nil
	}
	return j
}
