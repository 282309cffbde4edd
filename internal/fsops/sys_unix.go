// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package fsops

import (
	"errors"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// linkCount returns the hard-link count. Only the OS filesystem has one;
// everything else reports 1.
func linkCount(fsys afero.Fs, path string) uint64 {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return 1
	}
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 1
	}
	return uint64(st.Nlink)
}

// isCrossDevice reports whether a rename failed because source and
// destination live on different filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
