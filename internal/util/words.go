// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// shellOperators end a word list in the tokenizer when unquoted.
const shellOperators = ";&|<>"

// OperatorError reports an unquoted shell operator. fsh runs one command per
// line and has no pipes or redirection.
type OperatorError struct {
	Op rune
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("unexpected '%c'", e.Op)
}

// SplitWords splits line into words with shell quoting and escaping.
// Environment variables and backticks are left as written. An unquoted
// ; & | < or > returns an *OperatorError instead of truncating the line.
func SplitWords(line string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false

	words, err := p.Parse(line)
	if err != nil {
		return nil, err
	}
	// Position is the rune index where parsing stopped, -1 when it read
	// the whole line.
	if p.Position >= 0 {
		return nil, &OperatorError{Op: operatorAt(line, p.Position)}
	}
	return words, nil
}

func operatorAt(line string, pos int) rune {
	runes := []rune(line)
	for i := max(pos, 0); i < len(runes); i++ {
		if strings.ContainsRune(shellOperators, runes[i]) {
			return runes[i]
		}
	}
	return rune(shellOperators[0])
}
