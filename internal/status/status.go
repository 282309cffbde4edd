// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package status defines the shell's exit codes and the error taxonomy that
// maps onto them.
package status

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// OK indicates successful execution
	OK = 0
	// Failure indicates a generic or operational failure
	Failure = 1
	// Usage indicates wrong argument count/shape or a malformed input line
	Usage = 2
	// UnknownCommand indicates the command name did not resolve
	UnknownCommand = 127
	// Interrupted indicates the user cancelled the in-flight command
	Interrupted = 130
)

// =============================================================================
// SENTINELS
// =============================================================================

var (
	// ErrSessionEnd is the exit command's termination signal. It is never
	// converted to a status; the dispatcher hands it back to its caller.
	ErrSessionEnd = errors.New("session ended")

	// ErrInterrupted is returned when a blocking prompt or a long operation is
	// aborted by the user.
	ErrInterrupted = errors.New("interrupted")
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports wrong argument count or shape.
type UsageError struct {
	Usage string // Usage line for the command
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// ParseError reports a malformed input line.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing path or command.
type NotFoundError struct {
	Resource string // "file", "directory", "command"
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such %s: %s", e.Resource, e.Name)
}

// PermissionError reports an access failure on a path.
type PermissionError struct {
	Op   string
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: %s: permission denied", e.Op, e.Path)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// ConflictError reports a destination that exists, or a relation between
// paths that makes the operation impossible.
type ConflictError struct {
	Path   string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// =============================================================================
// CONSTRUCTION HELPERS
// =============================================================================

// NewUsage creates a usage error for the given usage line.
func NewUsage(usage string) error {
	return &UsageError{Usage: usage}
}

// NewNotFound creates a not found error.
func NewNotFound(resource, name string) error {
	return &NotFoundError{Resource: resource, Name: name}
}

// NewConflict creates a conflict error.
func NewConflict(path, reason string) error {
	return &ConflictError{Path: path, Reason: reason}
}

// Classify converts filesystem errors into the taxonomy. Errors that already
// belong to it, or that do not match a known class, are returned unchanged.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Resource: "file or directory", Name: path}
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Op: op, Path: path, Err: err}
	case errors.Is(err, fs.ErrExist):
		return &ConflictError{Path: path, Reason: "already exists"}
	}
	return err
}

// =============================================================================
// STATUS MAPPING
// =============================================================================

// Code determines the status for an error.
// ErrSessionEnd is not a status; callers must check for it first.
func Code(err error) int {
	if err == nil {
		return OK
	}

	if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
		return Interrupted
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return Usage
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return Usage
	}

	return Failure
}
