// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/jeranaias/fsh/internal/status"
)

// DefaultWidth is the column budget used when the terminal width is unknown.
const DefaultWidth = 80

// Styler decorates an entry name for display. It must not change the
// display width of the name.
type Styler interface {
	Style(name string, info fs.FileInfo) string
}

// Ops is the filesystem verb set. All paths go through Resolver; all
// destructive prompts go through Confirmer.
type Ops struct {
	Fs        afero.Fs
	Resolver  Resolver
	Confirmer Confirmer

	// Out receives command output, Err receives per-target diagnostics.
	Out io.Writer
	Err io.Writer

	// Width reports the terminal width for column packing.
	Width func() int

	// Styler colors names in listings. Nil prints plain names.
	Styler Styler

	// Now is the clock used by touch.
	Now func() time.Time
}

// Option configures Ops.
type Option func(*Ops)

// WithFs sets the filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *Ops) { o.Fs = fsys }
}

// WithResolver sets the path resolver.
func WithResolver(r Resolver) Option {
	return func(o *Ops) { o.Resolver = r }
}

// WithConfirmer sets the confirmation policy.
func WithConfirmer(c Confirmer) Option {
	return func(o *Ops) { o.Confirmer = c }
}

// WithOutput sets the output and diagnostic writers.
func WithOutput(out, errOut io.Writer) Option {
	return func(o *Ops) {
		o.Out = out
		o.Err = errOut
	}
}

// WithWidth sets the terminal width source.
func WithWidth(width func() int) Option {
	return func(o *Ops) { o.Width = width }
}

// WithStyler sets the name styler.
func WithStyler(s Styler) Option {
	return func(o *Ops) { o.Styler = s }
}

// New creates an Ops on the OS filesystem. Without a Confirmer every
// destructive prompt is declined.
func New(opts ...Option) *Ops {
	o := &Ops{
		Fs:        afero.NewOsFs(),
		Resolver:  ExpandResolver{},
		Confirmer: PolicyConfirmer{Allow: false},
		Out:       os.Stdout,
		Err:       os.Stderr,
		Now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// =============================================================================
// HELPERS
// =============================================================================

func (o *Ops) resolve(cwd, raw string) string {
	return o.Resolver.Resolve(cwd, raw)
}

// lstat does not follow a final symlink when the filesystem supports it.
func (o *Ops) lstat(p string) (fs.FileInfo, error) {
	if l, ok := o.Fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(p)
		return info, err
	}
	return o.Fs.Stat(p)
}

// isDir follows symlinks.
func (o *Ops) isDir(p string) bool {
	ok, err := afero.IsDir(o.Fs, p)
	return err == nil && ok
}

func (o *Ops) width() int {
	if o.Width == nil {
		return DefaultWidth
	}
	if w := o.Width(); w > 0 {
		return w
	}
	return DefaultWidth
}

func (o *Ops) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Ops) printf(format string, args ...any) {
	fmt.Fprintf(o.Out, format, args...)
}

func (o *Ops) warnf(format string, args ...any) {
	fmt.Fprintf(o.Err, format, args...)
}

// fail prints "op: path: reason" for a per-target failure.
func (o *Ops) fail(op, path string, err error) {
	o.warnf("%s: %s: %s\n", op, path, reason(status.Classify(op, path, err)))
}

// reason extracts the human part of a classified error.
func reason(err error) string {
	var nf *status.NotFoundError
	var pe *status.PermissionError
	var ce *status.ConflictError
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case errors.As(err, &nf):
		return "no such file or directory"
	case errors.As(err, &pe):
		return "permission denied"
	case errors.As(err, &ce):
		return ce.Reason
	case errors.As(err, &pathErr):
		return pathErr.Err.Error()
	case errors.As(err, &linkErr):
		return linkErr.Err.Error()
	}
	return err.Error()
}
