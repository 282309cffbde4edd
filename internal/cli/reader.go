// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// reader.go - Line input for the REPL and for confirmation prompts.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/fsh/internal/status"
)

// LineReader reads one line after showing a prompt. It returns io.EOF at
// end of input and status.ErrInterrupted when the user aborts the line.
// Every LineReader is also an fsops.LineSource.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// =============================================================================
// INTERACTIVE READER
// =============================================================================

// LinerReader is the interactive reader: line editing, history recall and
// tab completion on a terminal.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader puts the terminal into line-editing mode. history seeds
// the up-arrow recall; complete may be nil.
func NewLinerReader(history []string, complete func(string) []string) *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	if complete != nil {
		state.SetCompleter(complete)
	}
	for _, line := range history {
		state.AppendHistory(line)
	}
	return &LinerReader{state: state}
}

// Prompt implements LineReader.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", status.ErrInterrupted
	}
	return line, err
}

// AppendHistory implements LineReader.
func (r *LinerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal.
func (r *LinerReader) Close() error {
	return r.state.Close()
}

// =============================================================================
// PLAIN READER
// =============================================================================

// ScannerReader reads lines from a non-terminal input such as a pipe.
// Prompts go to w, which may be io.Discard.
type ScannerReader struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewScannerReader creates a reader over in.
func NewScannerReader(in io.Reader, w io.Writer) *ScannerReader {
	if w == nil {
		w = io.Discard
	}
	return &ScannerReader{scanner: bufio.NewScanner(in), w: w}
}

// Prompt implements LineReader.
func (r *ScannerReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.w, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

// AppendHistory is a no-op; there is nothing to recall on a pipe.
func (r *ScannerReader) AppendHistory(string) {}

// Close implements LineReader.
func (r *ScannerReader) Close() error { return nil }
