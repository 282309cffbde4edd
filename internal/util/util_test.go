// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/cfg/deep/config.toml"

	require.NoError(t, AtomicWriteFile(fsys, path, []byte("initial"), 0o600, 0o700))
	require.NoError(t, AtomicWriteFile(fsys, path, []byte("updated"), 0o600, 0o700))

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))

	entries, err := afero.ReadDir(fsys, "/cfg/deep")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "file")
	require.NoError(t, AtomicWriteFile(afero.NewOsFs(), path, nil, 0o600, 0o700))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Zero(t, info.Size())
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "/tmp", 10, "/tmp"},
		{"exact", "/tmp", 4, "/tmp"},
		{"cut", "/home/user/projects", 8, "…projects"},
		{"multibyte", "/données/été", 3, "…été"},
		{"zero", "/tmp", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateLeft(tt.in, tt.max))
		})
	}

	long := "/" + strings.Repeat("a", 100)
	got := TruncateLeft(long, 63)
	assert.Equal(t, 64, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, Ellipsis))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("日本"))
}

// =============================================================================
// WORD SPLITTING TESTS
// =============================================================================

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantOp  rune
		wantErr bool
	}{
		{name: "plain", line: "ls -la docs", want: []string{"ls", "-la", "docs"}},
		{name: "quoted operators", line: `touch 'R&D.txt' "a;b" x\|y`, want: []string{"touch", "R&D.txt", "a;b", "x|y"}},
		{name: "env untouched", line: "cat $HOME/x", want: []string{"cat", "$HOME/x"}},
		{name: "semicolon", line: "touch a; touch b", wantOp: ';'},
		{name: "ampersand in word", line: "rm R&D.txt", wantOp: '&'},
		{name: "pipe", line: "ls | more", wantOp: '|'},
		{name: "fd redirect", line: "cat a 2>err", wantOp: '>'},
		{name: "after multibyte", line: "touch été<x", wantOp: '<'},
		{name: "unbalanced quote", line: `cat "x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitWords(tt.line)
			switch {
			case tt.wantOp != 0:
				var opErr *OperatorError
				require.ErrorAs(t, err, &opErr)
				assert.Equal(t, tt.wantOp, opErr.Op)
				assert.Equal(t, "unexpected '"+string(tt.wantOp)+"'", err.Error())
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
