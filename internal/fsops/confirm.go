// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/fsh/internal/status"
)

// =============================================================================
// CONFIRMATION
// =============================================================================

// Confirmer decides whether a destructive action may proceed.
// An error means the prompt itself was aborted (status.ErrInterrupted).
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// LineSource reads one line of user input after showing a prompt.
// Implementations return io.EOF at end of input and status.ErrInterrupted
// when the user aborts the prompt.
type LineSource interface {
	Prompt(prompt string) (string, error)
}

// PromptConfirmer asks on a LineSource. Only "y" or "yes" authorize; empty
// input and EOF mean no.
type PromptConfirmer struct {
	Source LineSource
}

// Confirm implements Confirmer.
func (c PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, status.ErrInterrupted
	}

	input, err := c.Source.Prompt(fmt.Sprintf("%s [y/N]: ", prompt))

	if ctx.Err() != nil || errors.Is(err, status.ErrInterrupted) {
		return false, status.ErrInterrupted
	}
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	return IsYes(input), nil
}

// PolicyConfirmer answers every prompt from a fixed policy, for embeddings
// that cannot block on input.
type PolicyConfirmer struct {
	Allow bool
}

// Confirm implements Confirmer.
func (c PolicyConfirmer) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, status.ErrInterrupted
	}
	return c.Allow, nil
}

// IsYes reports whether a response authorizes the action.
func IsYes(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
