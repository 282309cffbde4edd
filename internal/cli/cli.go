// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Version and usage text for fsh.

package cli

import (
	"fmt"
	"io"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const usageText = `fsh - a small interactive shell for everyday file work

Usage:
  fsh                      Start the interactive shell
  fsh -c "line"            Run one line and exit with its status

Options:
  -c LINE                  Run LINE instead of starting the shell
  --config PATH            Read configuration from PATH
  --sandbox DIR            Confine every path to DIR
  --history PATH           Use PATH as the history file
  -y, --yes                Answer yes to every confirmation
  --no-color               Disable colored output
  -v, --verbose            Write the diagnostic log to stderr
  --init-config            Write a default config file and exit
  --version                Show version information
  -h, --help               Show this help

Inside the shell, type 'help' for the command list.

Configuration: ~/.fsh/config.toml (FSH_* environment variables override)

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "fsh version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}
