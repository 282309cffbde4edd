// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Process argument parsing for fsh.

package cli

import (
	"fmt"
	"strings"
)

// Args holds parsed process arguments.
type Args struct {
	// Command is the line given with -c; empty starts the REPL
	Command string

	ConfigPath  string // --config
	Sandbox     string // --sandbox
	HistoryFile string // --history
	Yes         bool   // --yes: answer yes to every confirmation
	NoColor     bool   // --no-color
	Verbose     bool   // -v/--verbose: diagnostic log to stderr

	// InitConfig writes a default config file (to ConfigPath when set)
	InitConfig bool

	ShowVersion bool
	ShowHelp    bool
}

// valueFlags take an argument, either as the next word or after "=".
var valueFlags = map[string]bool{
	"-c":        true,
	"--config":  true,
	"--sandbox": true,
	"--history": true,
}

// ParseArgs parses process arguments (without the program name).
// Unknown flags and stray positional arguments are errors.
func ParseArgs(args []string) (Args, error) {
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, value, hasValue := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "--") {
			name, value, hasValue = arg, "", false
		}

		if valueFlags[name] {
			if !hasValue {
				if i+1 >= len(args) {
					return Args{}, fmt.Errorf("flag %s requires a value", name)
				}
				i++
				value = args[i]
			}
			switch name {
			case "-c":
				parsed.Command = value
			case "--config":
				parsed.ConfigPath = value
			case "--sandbox":
				parsed.Sandbox = value
			case "--history":
				parsed.HistoryFile = value
			}
			continue
		}

		switch arg {
		case "--yes", "-y":
			parsed.Yes = true
		case "--no-color":
			parsed.NoColor = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--init-config":
			parsed.InitConfig = true
		case "--version":
			parsed.ShowVersion = true
		case "-h", "--help":
			parsed.ShowHelp = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Args{}, fmt.Errorf("unknown flag: %s", arg)
			}
			return Args{}, fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	return parsed, nil
}
