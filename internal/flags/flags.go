// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flags splits a command's arguments into canonical boolean flags and
// positional arguments.
//
// Flags never take values. Every per-command value is positional.
//
//	set, rest := flags.Parse([]string{"-lah", "docs"}, flags.Spec{
//	    "-l": "l", "--long": "l",
//	    "-a": "a", "--all": "a",
//	    "-h": "h", "--human": "h",
//	})
//	set.Has("l") // true
//	rest         // ["docs"]
package flags

import "strings"

// Spec maps every accepted spelling (e.g. "-r", "--recursive") to the
// canonical flag the command checks for.
type Spec map[string]string

// EndOfFlags stops flag interpretation; later tokens are positional.
const EndOfFlags = "--"

// Set is the set of canonical flags found in one invocation.
type Set map[string]struct{}

// Has reports whether the canonical flag was given.
func (s Set) Has(canonical string) bool {
	_, ok := s[canonical]
	return ok
}

// Parse splits args into a flag set and the remainder.
//
//   - "--name" matches only as a whole token; unknown long flags are kept in
//     the remainder for the command to reject or use.
//   - "-abc" is read one character at a time. On the first unknown character
//     the whole token goes to the remainder and the rest of it is ignored.
//   - "-" is a plain argument.
//   - "--" ends flag parsing.
func Parse(args []string, spec Spec) (Set, []string) {
	set := make(Set)
	rest := make([]string, 0, len(args))

	for i, arg := range args {
		switch {
		case arg == EndOfFlags:
			return set, append(rest, args[i+1:]...)

		case strings.HasPrefix(arg, "--"):
			if canon, ok := spec[arg]; ok {
				set[canon] = struct{}{}
			} else {
				rest = append(rest, arg)
			}

		case strings.HasPrefix(arg, "-") && arg != "-":
			found, ok := expandShort(arg, spec)
			if !ok {
				rest = append(rest, arg)
				continue
			}
			for _, canon := range found {
				set[canon] = struct{}{}
			}

		default:
			rest = append(rest, arg)
		}
	}

	return set, rest
}

// expandShort looks up every character of a combined short-flag token.
// A token with any unknown character yields nothing.
func expandShort(token string, spec Spec) ([]string, bool) {
	found := make([]string, 0, len(token)-1)
	for _, ch := range token[1:] {
		canon, ok := spec["-"+string(ch)]
		if !ok {
			return nil, false
		}
		found = append(found, canon)
	}
	return found, true
}
