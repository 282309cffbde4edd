// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is one shell instance's mutable state: the working directory and
// the history stream. Sessions share nothing with each other.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time
	cwd       string

	history        *History
	syncProcessDir bool
	chdir          func(string) error
}

// Config holds configuration for a session.
type Config struct {
	// StartDir is the initial working directory (default: process cwd).
	StartDir string

	// HistoryFile is the append-only history path. Empty keeps history in
	// memory only.
	HistoryFile string

	// SyncProcessDir makes SyncProcessDir chdir the process.
	SyncProcessDir bool

	// Fs backs the history file (default: OS filesystem).
	Fs afero.Fs
}

// New creates a session.
func New(cfg Config) (*Session, error) {
	start := cfg.StartDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		start = wd
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start directory %q: %w", start, err)
	}

	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return &Session{
		id:             uuid.New().String(),
		startTime:      time.Now(),
		cwd:            filepath.Clean(abs),
		history:        OpenHistory(fsys, cfg.HistoryFile),
		syncProcessDir: cfg.SyncProcessDir,
		chdir:          os.Chdir,
	}, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// StartTime returns when the session started.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// Cwd returns the working directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// SetCwd replaces the working directory. The caller has already checked
// that dir is an existing directory.
func (s *Session) SetCwd(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cwd = filepath.Clean(dir)
}

// History returns the session's history stream.
func (s *Session) History() *History {
	return s.history
}

// SyncProcessDir moves the process to the session working directory so
// relative paths outside fsops agree with it. No-op when syncing is off.
func (s *Session) SyncProcessDir() error {
	if !s.syncProcessDir {
		return nil
	}
	cwd := s.Cwd()
	if err := s.chdir(cwd); err != nil {
		return fmt.Errorf("failed to sync working directory to %s: %w", cwd, err)
	}
	return nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
