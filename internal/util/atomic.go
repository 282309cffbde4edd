// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// AtomicWriteFile writes data through a temp file in the target directory,
// syncs it, then renames it over path. Readers see the old file or the new
// one, never a partial write. Missing parents are created with dirPerm.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm, dirPerm uint32) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, fileMode(dirPerm)); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := afero.TempFile(fsys, dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()

	done := false
	defer func() {
		if !done {
			f.Close()
			fsys.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fsys.Chmod(tmp, fileMode(perm)); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	done = true
	return nil
}

func fileMode(perm uint32) fs.FileMode {
	return fs.FileMode(perm) & fs.ModePerm
}
