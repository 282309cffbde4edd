// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jeranaias/fsh/internal/status"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// RemoveOptions are the rm flags.
type RemoveOptions struct {
	Recursive bool
	Force     bool
}

// MakeDirs creates each directory. Failures are per-target.
func (o *Ops) MakeDirs(ctx context.Context, cwd string, paths []string, parents bool) (int, error) {
	code := status.OK
	for _, raw := range paths {
		if ctx.Err() != nil {
			return code, status.ErrInterrupted
		}
		p := o.resolve(cwd, raw)
		if err := o.makeDir(p, parents); err != nil {
			o.fail("mkdir", p, err)
			code = status.Failure
		}
	}
	return code, nil
}

func (o *Ops) makeDir(p string, parents bool) error {
	if parents {
		if err := o.Fs.MkdirAll(p, dirPerm); err != nil {
			return err
		}
		if !o.isDir(p) {
			return status.NewConflict(p, "not a directory")
		}
		return nil
	}

	if _, err := o.lstat(p); err == nil {
		return status.NewConflict(p, "already exists")
	}
	parent := filepath.Dir(p)
	info, err := o.Fs.Stat(parent)
	if err != nil {
		return status.NewConflict(p, "parent directory does not exist (use -p)")
	}
	if !info.IsDir() {
		return status.NewConflict(p, "parent is not a directory")
	}
	return o.Fs.Mkdir(p, dirPerm)
}

// Remove deletes each target under the force/recursive/confirmation policy.
// A declined confirmation skips the target without failing. An aborted
// confirmation stops the batch with status.ErrInterrupted.
func (o *Ops) Remove(ctx context.Context, cwd string, targets []string, opts RemoveOptions) (int, error) {
	code := status.OK
	for _, raw := range targets {
		if ctx.Err() != nil {
			return code, status.ErrInterrupted
		}
		p := o.resolve(cwd, raw)

		info, err := o.lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			if opts.Force {
				continue
			}
			o.warnf("rm: %s: no such file or directory\n", p)
			code = status.Failure
			continue
		}
		if err != nil {
			o.fail("rm", p, err)
			code = status.Failure
			continue
		}

		if filepath.Dir(p) == p {
			o.warnf("rm: %s: refusing to remove root directory\n", p)
			code = status.Failure
			continue
		}

		if info.IsDir() {
			if !opts.Recursive {
				o.warnf("rm: %s: is a directory (use -r)\n", p)
				code = status.Failure
				continue
			}
			ok, err := o.confirm(ctx, opts.Force, fmt.Sprintf("rm -r: delete directory '%s' recursively?", p))
			if err != nil {
				return code, err
			}
			if !ok {
				continue
			}
			err = o.Fs.RemoveAll(p)
			if err != nil {
				o.fail("rm", p, err)
				code = status.Failure
			}
			continue
		}

		ok, err := o.confirm(ctx, opts.Force, fmt.Sprintf("rm: delete file '%s'?", p))
		if err != nil {
			return code, err
		}
		if !ok {
			continue
		}
		if err := o.Fs.Remove(p); err != nil {
			o.fail("rm", p, err)
			code = status.Failure
		}
	}
	return code, nil
}

func (o *Ops) confirm(ctx context.Context, force bool, prompt string) (bool, error) {
	if force {
		return true, nil
	}
	return o.Confirmer.Confirm(ctx, prompt)
}

// Touch creates missing files (and their parents) or bumps their mtime.
func (o *Ops) Touch(ctx context.Context, cwd string, paths []string) (int, error) {
	code := status.OK
	for _, raw := range paths {
		if ctx.Err() != nil {
			return code, status.ErrInterrupted
		}
		p := o.resolve(cwd, raw)
		if err := o.touch(p); err != nil {
			o.fail("touch", p, err)
			code = status.Failure
		}
	}
	return code, nil
}

func (o *Ops) touch(p string) error {
	if err := o.Fs.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return err
	}
	if _, err := o.Fs.Stat(p); err == nil {
		now := o.now()
		return o.Fs.Chtimes(p, now, now)
	}
	f, err := o.Fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

// ChangeDir resolves a cd target and checks it is a directory.
// An empty target means the home directory.
func (o *Ops) ChangeDir(cwd, target string) (string, error) {
	if target == "" {
		target = "~"
	}
	p := o.resolve(cwd, target)

	info, err := o.Fs.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return cwd, status.NewNotFound("directory", p)
	}
	if err != nil {
		return cwd, status.Classify("cd", p, err)
	}
	if !info.IsDir() {
		return cwd, status.NewConflict(p, "not a directory")
	}
	return p, nil
}
