// Package state persists the small amount of tool state kept between runs:
// the game install root and whether the first-install step is still pending.
// Both are single-line plain text files in the tool's setup directory.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	GamePathFile     = "path.txt"
	FirstInstallFile = "first_install.txt"

	markerTrue  = "TRUE"
	markerFalse = "FALSE"
)

// Store reads and writes state files under Dir.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// GamePath returns the persisted install root, or "" when none was saved.
func (s *Store) GamePath() (string, error) {
	v, err := s.read(GamePathFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return v, err
}

// SetGamePath persists root.
func (s *Store) SetGamePath(root string) error {
	return s.write(GamePathFile, root)
}

// FirstInstallPending reports whether the first-install step still has to
// run. A missing marker counts as pending.
func (s *Store) FirstInstallPending() (bool, error) {
	v, err := s.read(FirstInstallFile)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(v) {
	case markerTrue:
		return true, nil
	case markerFalse:
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s value %q: expected TRUE or FALSE", FirstInstallFile, v)
	}
}

// SetFirstInstallPending writes the marker.
func (s *Store) SetFirstInstallPending(pending bool) error {
	v := markerFalse
	if pending {
		v = markerTrue
	}
	return s.write(FirstInstallFile, v)
}

// EnsureFirstInstallMarker creates the marker as pending when it is missing.
func (s *Store) EnsureFirstInstallMarker() error {
	_, err := os.Stat(filepath.Join(s.Dir, FirstInstallFile))
	if errors.Is(err, fs.ErrNotExist) {
		return s.SetFirstInstallPending(true)
	}
	return err
}

func (s *Store) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) write(name, value string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
