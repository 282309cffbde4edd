// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jeranaias/fsh/internal/status"
)

// Move renames each source onto dest. The first failure ends the batch.
func (o *Ops) Move(ctx context.Context, cwd string, srcs []string, dest string) (int, error) {
	target := o.resolve(cwd, dest)
	destIsDir := o.isDir(target)

	if len(srcs) > 1 && !destIsDir {
		o.warnf("mv: when moving multiple files, destination must be an existing directory\n")
		return status.Failure, nil
	}

	for _, raw := range srcs {
		if ctx.Err() != nil {
			return status.Interrupted, status.ErrInterrupted
		}
		src := o.resolve(cwd, raw)
		info, err := o.lstat(src)
		if err != nil {
			return status.Failure, status.Classify("mv", src, err)
		}

		to := target
		if destIsDir {
			to = filepath.Join(target, filepath.Base(src))
		}
		if to == src {
			continue
		}
		if info.IsDir() && Within(src, to) {
			return status.Failure, status.NewConflict(to, "cannot move a directory into itself")
		}

		if err := o.rename(ctx, src, to, info); err != nil {
			return status.Failure, err
		}
	}
	return status.OK, nil
}

// rename falls back to copy and delete when src and dst are on different
// filesystems.
func (o *Ops) rename(ctx context.Context, src, dst string, info fs.FileInfo) error {
	err := o.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return status.Classify("mv", src, err)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		err = o.copyLink(src, dst)
	case info.IsDir():
		err = o.copyTree(ctx, src, dst, true)
	default:
		err = o.copyFile(src, dst)
	}
	if err != nil {
		return err
	}
	if err := o.Fs.RemoveAll(src); err != nil {
		return fmt.Errorf("mv: copied %s but failed to remove source: %w", src, err)
	}
	return nil
}

// Copy duplicates each source onto dest. Directory sources need recursive;
// without it they are skipped with a warning and the status becomes 1.
// Any other failure ends the batch.
func (o *Ops) Copy(ctx context.Context, cwd string, srcs []string, dest string, recursive bool) (int, error) {
	target := o.resolve(cwd, dest)
	destIsDir := o.isDir(target)

	if len(srcs) > 1 && !destIsDir {
		o.warnf("cp: when copying multiple files, destination must be an existing directory\n")
		return status.Failure, nil
	}

	code := status.OK
	for _, raw := range srcs {
		if ctx.Err() != nil {
			return status.Interrupted, status.ErrInterrupted
		}
		src := o.resolve(cwd, raw)
		info, err := o.Fs.Stat(src)
		if err != nil {
			return status.Failure, status.Classify("cp", src, err)
		}

		to := target
		if destIsDir {
			to = filepath.Join(target, filepath.Base(src))
		}

		if info.IsDir() {
			if !recursive {
				o.warnf("cp: -r not specified; omitting directory '%s'\n", src)
				code = status.Failure
				continue
			}
			if Within(src, to) {
				return status.Failure, status.NewConflict(to, "cannot copy a directory into itself")
			}
			if err := o.copyTree(ctx, src, to, false); err != nil {
				return status.Failure, err
			}
			continue
		}

		if to == src {
			return status.Failure, status.NewConflict(to, "source and destination are the same file")
		}
		if err := o.copyFile(src, to); err != nil {
			return status.Failure, err
		}
	}
	return code, nil
}

// copyFile copies contents, mode and mtime.
func (o *Ops) copyFile(src, dst string) error {
	info, err := o.Fs.Stat(src)
	if err != nil {
		return status.Classify("cp", src, err)
	}

	in, err := o.Fs.Open(src)
	if err != nil {
		return status.Classify("cp", src, err)
	}
	defer in.Close()

	out, err := o.Fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return status.Classify("cp", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("cp: %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cp: %s: %w", dst, err)
	}

	if err := o.Fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return status.Classify("cp", dst, err)
	}
	return o.Fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyTree recreates the directory src at dst. With keepLinks symlinks are
// recreated as links; otherwise links to files are followed and links to
// directories are skipped.
func (o *Ops) copyTree(ctx context.Context, src, dst string, keepLinks bool) error {
	return afero.Walk(o.Fs, src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return status.Classify("cp", path, err)
		}
		if ctx.Err() != nil {
			return status.ErrInterrupted
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		to := filepath.Join(dst, rel)

		isLink := info.Mode()&fs.ModeSymlink != 0
		switch {
		case info.IsDir():
			if err := o.Fs.MkdirAll(to, info.Mode().Perm()|0o700); err != nil {
				return status.Classify("cp", to, err)
			}
			return nil
		case isLink && keepLinks:
			return o.copyLink(path, to)
		case isLink && o.isDir(path):
			o.warnf("cp: %s: skipping symlinked directory\n", path)
			return nil
		}
		return o.copyFile(path, to)
	})
}

// copyLink recreates the symlink src at dst with the same target. A
// filesystem without symlink support gets a copy of the target instead.
func (o *Ops) copyLink(src, dst string) error {
	linker, ok := o.Fs.(afero.Symlinker)
	if !ok {
		return o.copyFile(src, dst)
	}
	target, err := linker.ReadlinkIfPossible(src)
	if err != nil {
		return status.Classify("mv", src, err)
	}
	if info, err := o.lstat(dst); err == nil && !info.IsDir() {
		if err := o.Fs.Remove(dst); err != nil {
			return status.Classify("mv", dst, err)
		}
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return status.Classify("mv", dst, err)
	}
	return nil
}
