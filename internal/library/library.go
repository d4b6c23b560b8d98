// Package library manages the tool's own collection of font files. Fonts
// are applied from the library, and fonts the library knows about are the
// ones cleaned out of the game's asset directory on restore or re-apply.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontmeta"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"

	"github.com/flopp/go-findfont"
	"github.com/gobwas/glob"
)

// DefaultPatterns select TrueType and OpenType files.
var DefaultPatterns = []string{"*.ttf", "*.otf"}

// ErrNotFound is returned when a font cannot be located.
var ErrNotFound = errors.New("font not found")

type rule struct {
	pattern string
	g       glob.Glob
}

// Library is a directory of font files.
type Library struct {
	Dir string

	allowed []rule
	ignored []rule
	guard   *fsguard.Guard
}

// New returns a Library over dir. Patterns are matched against lower-cased
// file names; a leading "!" excludes matching files.
func New(dir string, patterns []string, guard *fsguard.Guard) (*Library, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	l := &Library{Dir: dir, guard: guard}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ignore := strings.HasPrefix(p, "!")
		p = strings.ToLower(strings.TrimPrefix(p, "!"))

		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid library pattern %q: %w", p, err)
		}
		if ignore {
			l.ignored = append(l.ignored, rule{pattern: p, g: g})
		} else {
			l.allowed = append(l.allowed, rule{pattern: p, g: g})
		}
	}
	if len(l.allowed) == 0 {
		return nil, fmt.Errorf("library patterns select no files")
	}
	return l, nil
}

// Matches reports whether name is a library font file name.
func (l *Library) Matches(name string) bool {
	name = strings.ToLower(name)
	for _, r := range l.ignored {
		if r.g.Match(name) {
			return false
		}
	}
	for _, r := range l.allowed {
		if r.g.Match(name) {
			return true
		}
	}
	return false
}

// List returns the font file names in the library, sorted.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read font library: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !l.Matches(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Names returns the lower-cased library file names as a set.
func (l *Library) Names() (map[string]struct{}, error) {
	list, err := l.List()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(list))
	for _, n := range list {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set, nil
}

// Path returns the library path for a file name.
func (l *Library) Path(name string) string {
	return filepath.Join(l.Dir, filepath.Base(name))
}

// Contains reports whether path is a file directly inside the library.
func (l *Library) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(l.Dir)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir
}

// Add copies the font at src into the library, replacing a file of the same
// name. It returns the library path. A font already in the library is left
// untouched.
func (l *Library) Add(src string) (string, error) {
	if !l.Matches(filepath.Base(src)) {
		return "", fmt.Errorf("%s is not a supported font file", filepath.Base(src))
	}
	if l.Contains(src) {
		return src, nil
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fserr.WriteFailed(l.Dir, err)
	}
	dst := l.Path(src)
	if err := l.guard.Copy(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// AddSystem locates an installed system font by file name and adds it.
func (l *Library) AddSystem(name string) (string, error) {
	src, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}
	return l.Add(src)
}

// Remove deletes a font from the library.
func (l *Library) Remove(name string) error {
	path := l.Path(name)
	if !fsguard.Exists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return l.guard.Remove(path)
}

// FindByFamily returns the path of the first library font whose family name
// equals family, ignoring case. Unreadable fonts are skipped.
func (l *Library) FindByFamily(family string) (string, error) {
	names, err := l.List()
	if err != nil {
		return "", err
	}
	for _, n := range names {
		f, err := fontmeta.Family(l.Path(n))
		if err != nil {
			continue
		}
		if strings.EqualFold(f, family) {
			return l.Path(n), nil
		}
	}
	return "", fmt.Errorf("%w: no library font with family %q", ErrNotFound, family)
}
