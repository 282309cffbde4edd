// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/jeranaias/fsh/internal/status"
)

// ReadFiles streams each file to Out. Invalid UTF-8 is written as U+FFFD.
func (o *Ops) ReadFiles(ctx context.Context, cwd string, paths []string) (int, error) {
	code := status.OK
	for _, raw := range paths {
		if ctx.Err() != nil {
			return status.Interrupted, status.ErrInterrupted
		}
		p := o.resolve(cwd, raw)

		info, err := o.Fs.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			o.warnf("cat: %s: no such file or directory\n", p)
			code = status.Failure
			continue
		}
		if err != nil {
			o.fail("cat", p, err)
			code = status.Failure
			continue
		}
		if info.IsDir() {
			o.warnf("cat: %s: is a directory\n", p)
			code = status.Failure
			continue
		}

		if err := o.stream(ctx, p); err != nil {
			if errors.Is(err, status.ErrInterrupted) {
				return status.Interrupted, err
			}
			o.fail("cat", p, err)
			code = status.Failure
		}
	}
	return code, nil
}

func (o *Ops) stream(ctx context.Context, p string) error {
	f, err := o.Fs.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	r := transform.NewReader(ctxReader{ctx: ctx, r: f}, runes.ReplaceIllFormed())
	_, err = io.Copy(o.Out, r)
	return err
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if c.ctx.Err() != nil {
		return 0, status.ErrInterrupted
	}
	return c.r.Read(p)
}
