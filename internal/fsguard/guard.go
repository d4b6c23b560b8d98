// Package fsguard wraps file mutations in the game directory with read-only
// attribute management. Documents are kept read-only between runs so the
// game cannot silently overwrite the customization; fontswap unlocks them
// only for the duration of its own writes.
package fsguard

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"

	"github.com/rs/zerolog"
)

const (
	ownerWrite = 0o200
	allWrite   = 0o222
)

// chmod is replaced in tests to simulate an OS refusing attribute changes.
var chmod = os.Chmod

// Guard performs permission-aware file operations.
type Guard struct {
	log zerolog.Logger
}

// New creates a Guard that reports non-fatal problems to log.
func New(log zerolog.Logger) *Guard {
	return &Guard{log: log}
}

// Unlock clears the read-only attribute of path. A missing file is not an
// error. When the OS refuses the change a PermissionDenied error is returned;
// any other failure is logged and ignored so the following write can report it.
func (g *Guard) Unlock(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		g.log.Warn().Err(err).Str("path", path).Msg("could not stat file to remove read-only flag")
		return nil
	}
	if info.Mode().Perm()&ownerWrite != 0 {
		return nil
	}
	if err := chmod(path, info.Mode().Perm()|ownerWrite); err != nil {
		if isDenied(err) {
			return fserr.PermissionDenied(path, err)
		}
		g.log.Warn().Err(err).Str("path", path).Msg("could not remove read-only flag")
	}
	return nil
}

// Lock sets the read-only attribute on path. Failure is logged, never
// returned: the document content is already correct at this point.
// It reports whether the file is now read-only.
func (g *Guard) Lock(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			g.log.Warn().Err(err).Str("path", path).Msg("could not set read-only flag")
		}
		return false
	}
	if err := chmod(path, info.Mode().Perm()&^allWrite); err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("could not set read-only flag")
		return false
	}
	return true
}

// IsLocked reports whether path exists and carries no owner write permission.
func IsLocked(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&ownerWrite == 0
}

// WriteFile unlocks path if needed and replaces its content. The caller is
// responsible for locking it again.
func (g *Guard) WriteFile(path string, data []byte) error {
	if err := g.Unlock(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if isDenied(err) {
			return fserr.PermissionDenied(path, err)
		}
		return fserr.WriteFailed(path, err)
	}
	return nil
}

// Copy copies src to dst, overwriting dst. Permission bits and the
// modification time of src are carried over.
func (g *Guard) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fserr.WriteFailed(src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fserr.WriteFailed(src, err)
	}

	if err := g.Remove(dst); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|ownerWrite)
	if err != nil {
		return fserr.WriteFailed(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fserr.WriteFailed(dst, err)
	}
	if err := out.Close(); err != nil {
		return fserr.WriteFailed(dst, err)
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		g.log.Debug().Err(err).Str("path", dst).Msg("could not copy permission bits")
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		g.log.Debug().Err(err).Str("path", dst).Msg("could not copy modification time")
	}
	return nil
}

// Remove unlocks and deletes path. A missing file is not an error.
func (g *Guard) Remove(path string) error {
	if err := g.Unlock(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if isDenied(err) {
			return fserr.PermissionDenied(path, err)
		}
		return fserr.WriteFailed(path, err)
	}
	return nil
}

// Rename moves src to dst, replacing dst if it exists.
func (g *Guard) Rename(src, dst string) error {
	if err := g.Remove(dst); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		if isDenied(err) {
			return fserr.PermissionDenied(src, err)
		}
		return fserr.WriteFailed(src, err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission) || isSharingViolation(err)
}
