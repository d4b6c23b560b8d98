package fsguard

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newGuard() *Guard {
	return New(logging.Nop())
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chmod(path, mode))
}

func TestLockUnlock_RoundTrip(t *testing.T) {
	g := newGuard()
	p := filepath.Join(t.TempDir(), "fonts.conf")
	writeFile(t, p, "x", 0o644)

	require.True(t, g.Lock(p))
	require.True(t, IsLocked(p))
	info, err := os.Stat(p)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o444), info.Mode().Perm())

	require.NoError(t, g.Unlock(p))
	require.False(t, IsLocked(p))
}

func TestUnlock_MissingFileIsNoop(t *testing.T) {
	require.NoError(t, newGuard().Unlock(filepath.Join(t.TempDir(), "nope")))
}

func TestLock_MissingFileReturnsFalseWithoutWarning(t *testing.T) {
	var buf bytes.Buffer
	g := New(zerolog.New(&buf))

	require.False(t, g.Lock(filepath.Join(t.TempDir(), "nope")))
	require.Empty(t, buf.String())
}

func TestWriteFile_ReplacesLockedFile(t *testing.T) {
	g := newGuard()
	p := filepath.Join(t.TempDir(), "fonts.conf")
	writeFile(t, p, "old", 0o444)

	require.NoError(t, g.WriteFile(p, []byte("new")))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestCopy_OverwritesLockedDestination(t *testing.T) {
	g := newGuard()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.ttf")
	dst := filepath.Join(dir, "dst.ttf")
	writeFile(t, src, "font-bytes", 0o640)
	writeFile(t, dst, "stale", 0o444)
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	require.NoError(t, g.Copy(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "font-bytes", string(data))
	info, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	require.True(t, info.ModTime().Equal(stamp))
}

func TestCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := newGuard().Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
}

func TestRemove_LockedFile(t *testing.T) {
	g := newGuard()
	p := filepath.Join(t.TempDir(), "font.ttf")
	writeFile(t, p, "x", 0o444)

	require.NoError(t, g.Remove(p))
	require.False(t, Exists(p))
	require.NoError(t, g.Remove(p))
}

func TestRename_ReplacesDestination(t *testing.T) {
	g := newGuard()
	dir := t.TempDir()
	src := filepath.Join(dir, "stratum2.uifont.old")
	dst := filepath.Join(dir, "stratum2.uifont")
	writeFile(t, src, "original", 0o644)
	writeFile(t, dst, "custom", 0o444)

	require.NoError(t, g.Rename(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "original", string(data))
	require.False(t, Exists(src))
}

// denyChmod makes every attribute change fail with err until the test ends.
func denyChmod(t *testing.T, err error) {
	t.Helper()
	chmod = func(string, os.FileMode) error { return err }
	t.Cleanup(func() { chmod = os.Chmod })
}

func TestUnlock_DeniedChmodIsPermissionDenied(t *testing.T) {
	g := newGuard()
	dir := t.TempDir()
	p := filepath.Join(dir, "42-repl-global.conf")
	src := filepath.Join(dir, "backup.conf")
	writeFile(t, p, "x", 0o444)
	writeFile(t, src, "y", 0o644)
	denyChmod(t, &fs.PathError{Op: "chmod", Path: p, Err: fs.ErrPermission})

	tests := []struct {
		name string
		op   func() error
	}{
		{"unlock", func() error { return g.Unlock(p) }},
		{"write", func() error { return g.WriteFile(p, []byte("y")) }},
		{"remove", func() error { return g.Remove(p) }},
		{"copy over", func() error { return g.Copy(src, p) }},
		{"rename over", func() error { return g.Rename(src, p) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			require.ErrorIs(t, err, fserr.ErrPermissionDenied)
			require.ErrorIs(t, err, fs.ErrPermission)
			msg := fserr.UserMessage(err)
			require.Contains(t, msg, p)
			require.Contains(t, msg, "game is closed")
			require.Contains(t, msg, "administrator")
		})
	}

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "x", string(data))
}

func TestUnlock_OtherChmodFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	g := New(zerolog.New(&buf))
	p := filepath.Join(t.TempDir(), "fonts.conf")
	writeFile(t, p, "x", 0o444)
	denyChmod(t, errors.New("attribute store offline"))

	require.NoError(t, g.Unlock(p))
	require.Contains(t, buf.String(), "could not remove read-only flag")

	buf.Reset()
	require.False(t, g.Lock(p))
	require.Contains(t, buf.String(), "could not set read-only flag")
}
