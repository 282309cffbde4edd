// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestNew(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Config{StartDir: filepath.Join(dir, "a", "..")})
	require.NoError(t, err)

	assert.Equal(t, dir, s.Cwd())
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.StartTime().IsZero())
	assert.Empty(t, s.History().Path())
}

func TestNew_DefaultsToProcessDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	s, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(wd), s.Cwd())
}

func TestSession_IndependentInstances(t *testing.T) {
	a, err := New(Config{StartDir: "/tmp"})
	require.NoError(t, err)
	b, err := New(Config{StartDir: "/tmp"})
	require.NoError(t, err)

	a.SetCwd("/var/")
	require.NoError(t, a.History().Append("cd /var"))

	assert.Equal(t, "/var", a.Cwd())
	assert.Equal(t, "/tmp", b.Cwd())
	assert.NotEqual(t, a.ID(), b.ID())

	lines, err := b.History().Lines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSession_SyncProcessDir(t *testing.T) {
	tests := []struct {
		name      string
		sync      bool
		chdirErr  error
		wantCalls int
		wantErr   bool
	}{
		{name: "disabled", sync: false, wantCalls: 0},
		{name: "enabled", sync: true, wantCalls: 1},
		{name: "chdir fails", sync: true, chdirErr: errors.New("gone"), wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(Config{StartDir: "/srv", SyncProcessDir: tt.sync})
			require.NoError(t, err)

			var calls []string
			s.chdir = func(dir string) error {
				calls = append(calls, dir)
				return tt.chdirErr
			}

			err = s.SyncProcessDir()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.Equal(t, "/srv", calls[0])
			}
		})
	}
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s, err := New(Config{StartDir: "/"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetCwd("/tmp")
		}()
		go func() {
			defer wg.Done()
			_ = s.Cwd()
		}()
	}
	wg.Wait()
	assert.Equal(t, "/tmp", s.Cwd())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{15 * time.Minute, "15m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistory_AppendAndTail(t *testing.T) {
	fsys := afero.NewMemMapFs()
	h := OpenHistory(fsys, "/home/u/.fsh_history")

	for _, line := range []string{"ls", "   ", "", "cd /tmp", "cat a.txt\n"} {
		require.NoError(t, h.Append(line))
	}

	lines, err := h.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "cd /tmp", "cat a.txt"}, lines)

	data, err := afero.ReadFile(fsys, "/home/u/.fsh_history")
	require.NoError(t, err)
	assert.Equal(t, "ls\ncd /tmp\ncat a.txt\n", string(data))

	tail, err := h.Tail(2)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Number: 2, Line: "cd /tmp"}, {Number: 3, Line: "cat a.txt"}}, tail)

	tail, err = h.Tail(0)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Number: 3, Line: "cat a.txt"}}, tail)

	tail, err = h.Tail(50)
	require.NoError(t, err)
	assert.Len(t, tail, 3)
}

func TestHistory_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")
	fsys := afero.NewOsFs()

	require.NoError(t, OpenHistory(fsys, path).Append("first"))
	require.NoError(t, OpenHistory(fsys, path).Append("second"))

	lines, err := OpenHistory(fsys, path).Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(historyPerm), info.Mode().Perm())
}

func TestHistory_MissingFile(t *testing.T) {
	h := OpenHistory(afero.NewMemMapFs(), "/nope/history")

	lines, err := h.Lines()
	require.NoError(t, err)
	assert.Empty(t, lines)

	tail, err := h.Tail(10)
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestHistory_InMemory(t *testing.T) {
	h := OpenHistory(afero.NewMemMapFs(), "")
	require.NoError(t, h.Append("pwd"))

	lines, err := h.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"pwd"}, lines)
}
