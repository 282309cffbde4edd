// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/jeranaias/fsh/internal/status"
	"github.com/jeranaias/fsh/internal/util"
)

// ListOptions selects the listing format.
type ListOptions struct {
	All   bool // include hidden entries
	Long  bool // one metadata line per entry
	Human bool // human-scaled sizes in long format
	One   bool // one name per line
}

// entry is one listed path.
type entry struct {
	path  string
	info  fs.FileInfo
	isDir bool
}

// List prints target, or cwd when target is empty.
func (o *Ops) List(ctx context.Context, cwd, target string, opts ListOptions) (int, error) {
	p := cwd
	if target != "" {
		p = o.resolve(cwd, target)
	}

	info, err := o.Fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.warnf("No such file or directory: %s\n", p)
		} else {
			o.fail("ls", p, err)
		}
		return status.Failure, nil
	}

	if !info.IsDir() {
		if opts.Long {
			o.printLong(entry{path: p, info: o.longInfo(p, info)}, opts.Human)
		} else {
			o.printf("%s\n", filepath.Base(p))
		}
		return status.OK, nil
	}

	infos, err := afero.ReadDir(o.Fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			o.warnf("Permission denied: %s\n", p)
		} else {
			o.warnf("Error reading directory: %v\n", err)
		}
		return status.Failure, nil
	}

	entries := make([]entry, 0, len(infos))
	for _, fi := range infos {
		if !opts.All && IsHidden(fi.Name()) {
			continue
		}
		full := filepath.Join(p, fi.Name())
		isDir := fi.IsDir()
		if fi.Mode()&fs.ModeSymlink != 0 {
			isDir = o.isDir(full)
		}
		entries = append(entries, entry{path: full, info: fi, isDir: isDir})
	}
	sortEntries(entries)

	if err := ctx.Err(); err != nil {
		return status.Interrupted, status.ErrInterrupted
	}

	switch {
	case opts.Long:
		for _, e := range entries {
			o.printLong(e, opts.Human)
		}
	case opts.One:
		for _, e := range entries {
			o.printf("%s\n", o.styled(e))
		}
	default:
		o.printColumns(entries)
	}
	return status.OK, nil
}

// IsHidden reports whether a name carries the hidden marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// sortEntries orders directories before files, then by case-insensitive name.
func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].info.Name()) < strings.ToLower(entries[j].info.Name())
	})
}

// longInfo uses lstat metadata for the long line when available.
func (o *Ops) longInfo(p string, fallback fs.FileInfo) fs.FileInfo {
	if info, err := o.lstat(p); err == nil {
		return info
	}
	return fallback
}

func (o *Ops) printLong(e entry, human bool) {
	mtime := e.info.ModTime().Local().Format("2006-01-02 15:04")
	nlink := linkCount(o.Fs, e.path)
	size := FormatBytes(e.info.Size(), human)
	o.printf("%s %2d %8s %s %s\n", ModeString(e.info.Mode()), nlink, size, mtime, o.styled(e))
}

func (o *Ops) styled(e entry) string {
	name := e.info.Name()
	if o.Styler == nil {
		return name
	}
	return o.Styler.Style(name, e.info)
}

// printColumns packs names into fixed-width columns across the terminal.
func (o *Ops) printColumns(entries []entry) {
	if len(entries) == 0 {
		return
	}

	colw := 1
	for _, e := range entries {
		if w := util.StringWidth(e.info.Name()); w > colw {
			colw = w
		}
	}
	colw += 2

	cols := o.width() / colw
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	for i, e := range entries {
		pad := colw - util.StringWidth(e.info.Name())
		b.WriteString(o.styled(e))
		b.WriteString(strings.Repeat(" ", pad))
		if (i+1)%cols == 0 {
			b.WriteString("\n")
		}
	}
	if len(entries)%cols != 0 {
		b.WriteString("\n")
	}
	o.printf("%s", b.String())
}

// =============================================================================
// FORMATTING
// =============================================================================

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count raw, or scaled to one decimal place.
func FormatBytes(n int64, human bool) string {
	if !human {
		return fmt.Sprintf("%d", n)
	}
	size := float64(n)
	for i, unit := range sizeUnits {
		if size < 1024 || i == len(sizeUnits)-1 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%d", n)
}

// ModeString renders permission bits the way ls -l does (e.g. -rw-r--r--).
func ModeString(mode fs.FileMode) string {
	typ := byte('-')
	switch {
	case mode&fs.ModeDir != 0:
		typ = 'd'
	case mode&fs.ModeSymlink != 0:
		typ = 'l'
	case mode&fs.ModeNamedPipe != 0:
		typ = 'p'
	case mode&fs.ModeSocket != 0:
		typ = 's'
	case mode&fs.ModeCharDevice != 0:
		typ = 'c'
	case mode&fs.ModeDevice != 0:
		typ = 'b'
	}
	return string(typ) + mode.Perm().String()[1:]
}
