// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("journal closed")

// Record is one journaled dispatch.
type Record struct {
	ID        int64
	SessionID string
	Line      string
	Status    int
	Cwd       string
	Time      time.Time
}

// Journal is a sqlite log of dispatched lines and their statuses, shared by
// all sessions that open the same file.
type Journal struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

// Open opens or creates the journal at path for one session.
func Open(path, sessionID string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{db: db, sessionID: sessionID, now: time.Now}, nil
}

// SessionID returns the session this journal writes under.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record appends one dispatched line.
func (j *Journal) Record(ctx context.Context, line, cwd string, status int) error {
	if j.db == nil {
		return ErrClosed
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO entries (session_id, line, status, cwd, created_at) VALUES (?, ?, ?, ?, ?)`,
		j.sessionID, line, status, cwd, j.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	return nil
}

// Recent returns the last n entries across all sessions, oldest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Record, error) {
	if j.db == nil {
		return nil, ErrClosed
	}
	if n < 1 {
		n = 1
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session_id, line, status, cwd, created_at FROM (
			SELECT id, session_id, line, status, cwd, created_at
			FROM entries ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Line, &r.Status, &r.Cwd, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		r.Time = time.Unix(0, ts)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
