// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// historyPerm keeps history private; it can contain paths and arguments.
const historyPerm = 0o600

// Entry is one numbered history line. Numbers start at 1 and count every
// line ever written to the stream.
type Entry struct {
	Number int
	Line   string
}

// History is an append-only line log, on disk when a path is set.
type History struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
	mem  []string
}

// OpenHistory returns a history stream at path. Nothing is read or created
// until first use.
func OpenHistory(fsys afero.Fs, path string) *History {
	return &History{fs: fsys, path: path}
}

// Path returns the backing file, or "" for in-memory history.
func (h *History) Path() string {
	return h.path
}

// Append records a line. Blank lines are ignored.
func (h *History) Append(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	line = strings.ReplaceAll(line, "\n", " ")

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		h.mem = append(h.mem, line)
		return nil
	}

	if err := h.fs.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := h.fs.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, historyPerm)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if _, err := f.Write([]byte(line + "\n")); err != nil {
		f.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	return f.Close()
}

// Lines returns every recorded line, oldest first.
func (h *History) Lines() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return append([]string(nil), h.mem...), nil
	}

	data, err := afero.ReadFile(h.fs, h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var lines []string
	for _, ln := range strings.Split(string(data), "\n") {
		ln = strings.TrimRight(ln, "\r")
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines, nil
}

// Tail returns the last n entries. n below 1 is treated as 1.
func (h *History) Tail(n int) ([]Entry, error) {
	if n < 1 {
		n = 1
	}
	lines, err := h.Lines()
	if err != nil {
		return nil, err
	}

	start := len(lines) - n
	if start < 0 {
		start = 0
	}
	entries := make([]Entry, 0, len(lines)-start)
	for i := start; i < len(lines); i++ {
		entries = append(entries, Entry{Number: i + 1, Line: lines[i]})
	}
	return entries, nil
}
