// Package paths maps a game install root onto the locations of the two font
// substitution documents and the font asset directory.
package paths

import (
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
)

// Layout is the directory layout of a game install.
type Layout int

const (
	// LayoutFlat keeps csgo/ and core/ directly under the root.
	LayoutFlat Layout = iota
	// LayoutNested keeps them under a game/ subfolder.
	LayoutNested
)

func (l Layout) String() string {
	switch l {
	case LayoutFlat:
		return "Flat"
	case LayoutNested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// File names inside the game tree.
const (
	CatalogFileName = "fonts.conf"
	GlobalFileName  = "42-repl-global.conf"
	UIFontFileName  = "stratum2.uifont"

	// BackupSuffix marks backup copies of documents and of the built-in font data.
	BackupSuffix = ".old"
)

// Paths holds every location derived from an install root.
type Paths struct {
	Root   string
	Layout Layout

	// GlobalReplacement is the 42-repl-global.conf document.
	GlobalReplacement string
	// FontsCatalog is the fonts.conf document.
	FontsCatalog string
	// AssetDir is the directory holding active font files.
	AssetDir string
}

// Resolve determines the document paths for root. Root must exist.
// None of the returned paths are guaranteed to exist.
func Resolve(root string) (Paths, error) {
	if root == "" {
		return Paths{}, fserr.PathNotSet("")
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return Paths{}, fserr.PathNotSet(root)
	}

	base := root
	layout := LayoutFlat
	if fi, err := os.Stat(filepath.Join(root, "game")); err == nil && fi.IsDir() {
		base = filepath.Join(root, "game")
		layout = LayoutNested
	}

	return Paths{
		Root:              root,
		Layout:            layout,
		GlobalReplacement: filepath.Join(base, "core", "panorama", "fonts", "conf.d", GlobalFileName),
		FontsCatalog:      filepath.Join(base, "csgo", "panorama", "fonts", CatalogFileName),
		AssetDir:          filepath.Join(base, "csgo", "panorama", "fonts"),
	}, nil
}

// UIFont is the game's built-in font data file.
func (p Paths) UIFont() string {
	return filepath.Join(p.AssetDir, UIFontFileName)
}

// UIFontBackup is where the built-in font data is parked while a custom font is active.
func (p Paths) UIFontBackup() string {
	return p.UIFont() + BackupSuffix
}

// StrayBackups lists in-game backup copies of the two documents.
func (p Paths) StrayBackups() []string {
	return []string{
		p.FontsCatalog + BackupSuffix,
		p.GlobalReplacement + BackupSuffix,
	}
}

// Documents returns both document paths, catalog first.
func (p Paths) Documents() []string {
	return []string{p.FontsCatalog, p.GlobalReplacement}
}

// EnsureDirs creates the parent directories of both documents and the asset directory.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{
		filepath.Dir(p.FontsCatalog),
		filepath.Dir(p.GlobalReplacement),
		p.AssetDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fserr.WriteFailed(dir, err)
		}
	}
	return nil
}
