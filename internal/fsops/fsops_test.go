// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsops

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fsh/internal/status"
)

const work = "/work"

// memOps builds an Ops on an in-memory filesystem rooted at /work.
func memOps(t *testing.T, c Confirmer) (*Ops, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(work, 0o755))

	var out, errOut bytes.Buffer
	if c == nil {
		c = PolicyConfirmer{Allow: false}
	}
	o := New(
		WithFs(fsys),
		WithResolver(ExpandResolver{HomeDir: func() (string, error) { return "/home/u", nil }}),
		WithConfirmer(c),
		WithOutput(&out, &errOut),
		WithWidth(func() int { return 80 }),
	)
	return o, &out, &errOut
}

// osOps builds an Ops on the OS filesystem rooted at a temp dir.
func osOps(t *testing.T, c Confirmer) (*Ops, string, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	if c == nil {
		c = PolicyConfirmer{Allow: false}
	}
	o := New(WithConfirmer(c), WithOutput(&out, &errOut))
	return o, t.TempDir(), &out, &errOut
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func exists(fsys afero.Fs, path string) bool {
	ok, err := afero.Exists(fsys, path)
	return err == nil && ok
}

// scriptedSource answers prompts from a fixed list.
type scriptedSource struct {
	answers []string
	errs    []error
	prompts []string
}

func (s *scriptedSource) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := len(s.prompts) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.answers) {
		return s.answers[i], nil
	}
	return "", io.EOF
}

type interruptingConfirmer struct{}

func (interruptingConfirmer) Confirm(context.Context, string) (bool, error) {
	return false, status.ErrInterrupted
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestExpandResolver(t *testing.T) {
	r := ExpandResolver{
		HomeDir: func() (string, error) { return "/home/u", nil },
		Getenv: func(k string) string {
			if k == "DATA" {
				return "/data"
			}
			return ""
		},
	}

	tests := []struct {
		name string
		cwd  string
		raw  string
		want string
	}{
		{"relative", "/work", "a.txt", "/work/a.txt"},
		{"dot dot", "/work/sub", "../b", "/work/b"},
		{"absolute", "/work", "/etc/hosts", "/etc/hosts"},
		{"home", "/work", "~", "/home/u"},
		{"home child", "/work", "~/notes", "/home/u/notes"},
		{"tilde user untouched", "/work", "~bob", "/work/~bob"},
		{"env var", "/work", "$DATA/x", "/data/x"},
		{"braced env var", "/work", "${DATA}/y", "/data/y"},
		{"cleaned", "/work", "a//b/./c", "/work/a/b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.cwd, tt.raw))
		})
	}
}

func TestJailResolver(t *testing.T) {
	j := NewJailResolver("/sandbox")
	j.Expand.HomeDir = func() (string, error) { return "/home/u", nil }

	tests := []struct {
		name string
		cwd  string
		raw  string
		want string
	}{
		{"relative inside", "/sandbox/a", "b", "/sandbox/a/b"},
		{"absolute re-rooted", "/sandbox", "/etc/passwd", "/sandbox/etc/passwd"},
		{"escape clamped", "/sandbox/a", "../../../etc", "/sandbox"},
		{"cwd outside jail", "/elsewhere", "x", "/sandbox/x"},
		{"home re-rooted", "/sandbox", "~", "/sandbox/home/u"},
		{"root itself", "/sandbox", "/", "/sandbox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := j.Resolve(tt.cwd, tt.raw)
			assert.Equal(t, tt.want, got)
			assert.True(t, Within("/sandbox", got))
		})
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/a", "/a"))
	assert.True(t, Within("/a", "/a/b/c"))
	assert.False(t, Within("/a", "/ab"))
	assert.False(t, Within("/a/b", "/a"))
	assert.True(t, Within("/", "/anything"))
}

// =============================================================================
// CONFIRMATION TESTS
// =============================================================================

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		err     error
		want    bool
		wantErr error
	}{
		{name: "yes", answer: "y", want: true},
		{name: "full yes mixed case", answer: "  YeS ", want: true},
		{name: "empty is no", answer: "", want: false},
		{name: "anything else is no", answer: "sure", want: false},
		{name: "eof is no", err: io.EOF, want: false},
		{name: "abort interrupts", err: status.ErrInterrupted, wantErr: status.ErrInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{answers: []string{tt.answer}, errs: []error{tt.err}}
			ok, err := PromptConfirmer{Source: src}.Confirm(context.Background(), "rm: delete file 'x'?")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, []string{"rm: delete file 'x'? [y/N]: "}, src.prompts)
		})
	}
}

func TestPromptConfirmer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &scriptedSource{answers: []string{"y"}}
	_, err := PromptConfirmer{Source: src}.Confirm(ctx, "sure?")
	require.ErrorIs(t, err, status.ErrInterrupted)
	assert.Empty(t, src.prompts)
}

// =============================================================================
// LIST TESTS
// =============================================================================

func TestList_HiddenAndOrdering(t *testing.T) {
	o, out, _ := memOps(t, nil)
	writeFile(t, o.Fs, "/work/b.txt", "b")
	writeFile(t, o.Fs, "/work/A.txt", "a")
	writeFile(t, o.Fs, "/work/.hidden", "h")
	require.NoError(t, o.Fs.Mkdir("/work/zdir", 0o755))

	code, err := o.List(context.Background(), work, "", ListOptions{One: true})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, "zdir\nA.txt\nb.txt\n", out.String())

	out.Reset()
	code, err = o.List(context.Background(), work, ".", ListOptions{One: true, All: true})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, "zdir\n.hidden\nA.txt\nb.txt\n", out.String())
}

func TestList_Columns(t *testing.T) {
	o, out, _ := memOps(t, nil)
	o.Width = func() int { return 20 }
	writeFile(t, o.Fs, "/work/a", "")
	writeFile(t, o.Fs, "/work/bb", "")
	writeFile(t, o.Fs, "/work/ccc", "")

	code, err := o.List(context.Background(), work, "", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, "a    bb   ccc  \n", out.String())
}

func TestList_FileTarget(t *testing.T) {
	o, out, _ := memOps(t, nil)
	writeFile(t, o.Fs, "/work/sub/note.md", "12345")

	code, err := o.List(context.Background(), work, "sub/note.md", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, "note.md\n", out.String())

	out.Reset()
	code, err = o.List(context.Background(), work, "sub/note.md", ListOptions{Long: true})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Contains(t, out.String(), "-rw-r--r--")
	assert.Contains(t, out.String(), "       5 ")
	assert.Contains(t, out.String(), " note.md\n")
}

func TestList_Missing(t *testing.T) {
	o, out, errOut := memOps(t, nil)

	code, err := o.List(context.Background(), work, "nope", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.Empty(t, out.String())
	assert.Equal(t, "No such file or directory: /work/nope\n", errOut.String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n     int64
		human bool
		want  string
	}{
		{100, false, "100"},
		{512, true, "512.0 B"},
		{1536, true, "1.5 KB"},
		{5 * 1024 * 1024, true, "5.0 MB"},
		{3 << 40, true, "3.0 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.n, tt.human))
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "drwxr-xr-x", ModeString(fs.ModeDir|0o755))
	assert.Equal(t, "-rw-r--r--", ModeString(0o644))
	assert.Equal(t, "lrwxrwxrwx", ModeString(fs.ModeSymlink|0o777))
}

// =============================================================================
// MKDIR TESTS
// =============================================================================

func TestMakeDirs(t *testing.T) {
	o, _, errOut := memOps(t, nil)
	ctx := context.Background()

	code, err := o.MakeDirs(ctx, work, []string{"a/b"}, false)
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.False(t, exists(o.Fs, "/work/a/b"))

	code, err = o.MakeDirs(ctx, work, []string{"a/b"}, true)
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.True(t, o.isDir("/work/a/b"))

	errOut.Reset()
	code, err = o.MakeDirs(ctx, work, []string{"a", "c"}, false)
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.Equal(t, "mkdir: /work/a: already exists\n", errOut.String())
	assert.True(t, o.isDir("/work/c"), "later targets are still processed")

	code, err = o.MakeDirs(ctx, work, []string{"a"}, true)
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
}

func TestMakeDirs_ParentsOverFile(t *testing.T) {
	o, _, _ := memOps(t, nil)
	writeFile(t, o.Fs, "/work/f", "x")

	code, err := o.MakeDirs(context.Background(), work, []string{"f"}, true)
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
}

// =============================================================================
// RM TESTS
// =============================================================================

func TestRemove(t *testing.T) {
	tests := []struct {
		name      string
		confirmer Confirmer
		targets   []string
		opts      RemoveOptions
		wantCode  int
		wantErr   string
		gone      []string
		kept      []string
	}{
		{
			name:     "force on missing is silent",
			targets:  []string{"missing"},
			opts:     RemoveOptions{Force: true},
			wantCode: status.OK,
		},
		{
			name:     "missing without force",
			targets:  []string{"missing"},
			wantCode: status.Failure,
			wantErr:  "rm: /work/missing: no such file or directory\n",
		},
		{
			name:     "directory needs recursive",
			targets:  []string{"dir"},
			opts:     RemoveOptions{Force: true},
			wantCode: status.Failure,
			wantErr:  "rm: /work/dir: is a directory (use -r)\n",
			kept:     []string{"/work/dir"},
		},
		{
			name:      "declined keeps file",
			confirmer: PolicyConfirmer{Allow: false},
			targets:   []string{"file.txt"},
			wantCode:  status.OK,
			kept:      []string{"/work/file.txt"},
		},
		{
			name:      "confirmed removes file",
			confirmer: PolicyConfirmer{Allow: true},
			targets:   []string{"file.txt"},
			wantCode:  status.OK,
			gone:      []string{"/work/file.txt"},
		},
		{
			name:     "force recursive skips prompt",
			targets:  []string{"dir"},
			opts:     RemoveOptions{Recursive: true, Force: true},
			wantCode: status.OK,
			gone:     []string{"/work/dir", "/work/dir/inner.txt"},
		},
		{
			name:      "declined recursive keeps tree",
			confirmer: PolicyConfirmer{Allow: false},
			targets:   []string{"dir"},
			opts:      RemoveOptions{Recursive: true},
			wantCode:  status.OK,
			kept:      []string{"/work/dir/inner.txt"},
		},
		{
			name:     "failure does not stop the batch",
			targets:  []string{"missing", "file.txt"},
			opts:     RemoveOptions{Recursive: false, Force: false},
			wantCode: status.Failure,
			wantErr:  "rm: /work/missing: no such file or directory\n",
			kept:     []string{"/work/file.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _, errOut := memOps(t, tt.confirmer)
			writeFile(t, o.Fs, "/work/file.txt", "x")
			writeFile(t, o.Fs, "/work/dir/inner.txt", "y")

			code, err := o.Remove(context.Background(), work, tt.targets, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errOut.String())
			}
			for _, p := range tt.gone {
				assert.False(t, exists(o.Fs, p), "%s should be removed", p)
			}
			for _, p := range tt.kept {
				assert.True(t, exists(o.Fs, p), "%s should be kept", p)
			}
		})
	}
}

func TestRemove_PromptText(t *testing.T) {
	src := &scriptedSource{answers: []string{"n", "y"}}
	o, _, _ := memOps(t, PromptConfirmer{Source: src})
	writeFile(t, o.Fs, "/work/a", "")
	writeFile(t, o.Fs, "/work/d/x", "")

	code, err := o.Remove(context.Background(), work, []string{"a", "d"}, RemoveOptions{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, []string{
		"rm: delete file '/work/a'? [y/N]: ",
		"rm -r: delete directory '/work/d' recursively? [y/N]: ",
	}, src.prompts)
	assert.True(t, exists(o.Fs, "/work/a"))
	assert.False(t, exists(o.Fs, "/work/d"))
}

func TestRemove_InterruptedPrompt(t *testing.T) {
	o, _, _ := memOps(t, interruptingConfirmer{})
	writeFile(t, o.Fs, "/work/a", "")
	writeFile(t, o.Fs, "/work/b", "")

	_, err := o.Remove(context.Background(), work, []string{"a", "b"}, RemoveOptions{})
	require.ErrorIs(t, err, status.ErrInterrupted)
	assert.Equal(t, status.Interrupted, status.Code(err))
	assert.True(t, exists(o.Fs, "/work/a"))
	assert.True(t, exists(o.Fs, "/work/b"))
}

func TestRemove_SymlinkIsNotDirectory(t *testing.T) {
	o, dir, _, _ := osOps(t, PolicyConfirmer{Allow: true})
	target := filepath.Join(dir, "real")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "keep"), 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	code, err := o.Remove(context.Background(), dir, []string{"link"}, RemoveOptions{})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)

	_, err = os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
	assert.DirExists(t, filepath.Join(target, "keep"))
}

func TestRemove_PermissionDeniedContinues(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/work/a", "a")
	writeFile(t, base, "/work/b", "b")

	var out, errOut bytes.Buffer
	o := New(WithFs(afero.NewReadOnlyFs(base)), WithOutput(&out, &errOut))

	code, err := o.Remove(context.Background(), work, []string{"a", "b"}, RemoveOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.Equal(t, "rm: /work/a: permission denied\nrm: /work/b: permission denied\n", errOut.String())
	assert.True(t, exists(base, "/work/a"))
	assert.True(t, exists(base, "/work/b"))
}

// =============================================================================
// TOUCH / CAT TESTS
// =============================================================================

func TestTouchAndRead(t *testing.T) {
	o, out, errOut := memOps(t, nil)
	ctx := context.Background()

	code, err := o.Touch(ctx, work, []string{"deep/nested/new.txt"})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.True(t, exists(o.Fs, "/work/deep/nested/new.txt"))

	code, err = o.ReadFiles(ctx, work, []string{"deep/nested/new.txt"})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Empty(t, out.String())

	writeFile(t, o.Fs, "/work/hello.txt", "hello\n")
	code, err = o.ReadFiles(ctx, work, []string{"hello.txt", "missing.txt", "deep"})
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t,
		"cat: /work/missing.txt: no such file or directory\ncat: /work/deep: is a directory\n",
		errOut.String())
}

func TestTouch_UpdatesMtime(t *testing.T) {
	o, _, _ := memOps(t, nil)
	writeFile(t, o.Fs, "/work/old.txt", "keep")
	stamp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	o.Now = func() time.Time { return stamp }

	code, err := o.Touch(context.Background(), work, []string{"old.txt"})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)

	info, err := o.Fs.Stat("/work/old.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))

	data, err := afero.ReadFile(o.Fs, "/work/old.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestReadFiles_InvalidUTF8(t *testing.T) {
	o, out, _ := memOps(t, nil)
	writeFile(t, o.Fs, "/work/bin", "a\xffb")

	code, err := o.ReadFiles(context.Background(), work, []string{"bin"})
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.Equal(t, "a\uFFFDb", out.String())
}

// =============================================================================
// MV / CP TESTS
// =============================================================================

func TestMove(t *testing.T) {
	o, dir, _, errOut := osOps(t, nil)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "box"), 0o755))

	code, err := o.Move(ctx, dir, []string{"a.txt"}, "renamed.txt")
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.FileExists(t, filepath.Join(dir, "renamed.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))

	code, err = o.Move(ctx, dir, []string{"renamed.txt", "b.txt"}, "box")
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.FileExists(t, filepath.Join(dir, "box", "renamed.txt"))
	assert.FileExists(t, filepath.Join(dir, "box", "b.txt"))

	code, err = o.Move(ctx, dir, []string{"box/b.txt", "box/renamed.txt"}, "nowhere")
	require.NoError(t, err)
	assert.Equal(t, status.Failure, code)
	assert.Contains(t, errOut.String(), "destination must be an existing directory")

	code, err = o.Move(ctx, dir, []string{"box"}, "box/inner")
	require.Error(t, err)
	assert.Equal(t, status.Failure, code)
	var conflict *status.ConflictError
	assert.ErrorAs(t, err, &conflict)

	code, err = o.Move(ctx, dir, []string{"ghost"}, "box")
	require.Error(t, err)
	assert.Equal(t, status.Failure, code)
	var nf *status.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCopy(t *testing.T) {
	o, dir, _, _ := osOps(t, nil)
	ctx := context.Background()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))
	old := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, old, old))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tree", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree", "sub", "leaf"), []byte("leaf"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out"), 0o755))

	code, err := o.Copy(ctx, dir, []string{"src.txt"}, "copy.txt", false)
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	info, err := os.Stat(filepath.Join(dir, "copy.txt"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(old))

	code, err = o.Copy(ctx, dir, []string{"src.txt"}, "out", false)
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	assert.FileExists(t, filepath.Join(dir, "out", "src.txt"))

	code, err = o.Copy(ctx, dir, []string{"tree"}, "out", true)
	require.NoError(t, err)
	assert.Equal(t, status.OK, code)
	data, err := os.ReadFile(filepath.Join(dir, "out", "tree", "sub", "leaf"))
	require.NoError(t, err)
	assert.Equal(t, "leaf", string(data))

	code, err = o.Copy(ctx, dir, []string{"tree"}, "tree/sub", true)
	require.Error(t, err)
	assert.Equal(t, status.Failure, code)
	var conflict *status.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "cannot copy a directory into itself", conflict.Reason)
}

func TestCopy_DirectoryWithoutRecursive(t *testing.T) {
	tests := []struct {
		name string
		srcs []string
	}{
		{"single source", []string{"tree"}},
		{"multiple sources", []string{"tree", "f.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, dir, _, errOut := osOps(t, nil)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "tree"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("f"), 0o644))
			require.NoError(t, os.Mkdir(filepath.Join(dir, "out"), 0o755))

			code, err := o.Copy(context.Background(), dir, tt.srcs, "out", false)
			require.NoError(t, err)
			assert.Equal(t, status.Failure, code)
			assert.Equal(t,
				"cp: -r not specified; omitting directory '"+filepath.Join(dir, "tree")+"'\n",
				errOut.String())
			assert.NoDirExists(t, filepath.Join(dir, "out", "tree"))
			if len(tt.srcs) > 1 {
				assert.FileExists(t, filepath.Join(dir, "out", "f.txt"))
			}
		})
	}
}

// =============================================================================
// CD TESTS
// =============================================================================

func TestChangeDir(t *testing.T) {
	o, _, _ := memOps(t, nil)
	require.NoError(t, o.Fs.MkdirAll("/work/sub", 0o755))
	require.NoError(t, o.Fs.MkdirAll("/home/u", 0o755))
	writeFile(t, o.Fs, "/work/file", "")

	got, err := o.ChangeDir(work, "sub")
	require.NoError(t, err)
	assert.Equal(t, "/work/sub", got)

	got, err = o.ChangeDir(work, "")
	require.NoError(t, err)
	assert.Equal(t, "/home/u", got)

	got, err = o.ChangeDir(work, "missing")
	var nf *status.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, work, got)

	got, err = o.ChangeDir(work, "file")
	var ce *status.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, work, got)
}
