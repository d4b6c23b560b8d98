// Package testutil provides helpers for creating temporary game installs
// and font files for end-to-end testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/templates"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// UIFontData is the placeholder content written as built-in font data.
const UIFontData = "stratum2 built-in font data"

// TestGame is a builder for temporary game install trees.
type TestGame struct {
	t     testing.TB
	root  string
	paths paths.Paths
}

// NewTestGame creates an empty install root. With nested set, the game
// content lives under a game/ subfolder.
func NewTestGame(t testing.TB, nested bool) *TestGame {
	t.Helper()
	root := t.TempDir()
	if nested {
		if err := os.MkdirAll(filepath.Join(root, "game"), 0o755); err != nil {
			t.Fatalf("creating game dir: %v", err)
		}
	}

	p, err := paths.Resolve(root)
	if err != nil {
		t.Fatalf("resolving paths: %v", err)
	}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("creating dirs: %v", err)
	}
	return &TestGame{t: t, root: root, paths: p}
}

// Root returns the install root.
func (g *TestGame) Root() string {
	return g.root
}

// Paths returns the resolved document paths.
func (g *TestGame) Paths() paths.Paths {
	return g.paths
}

// WithStockDocuments writes the documents the game ships with, plus its
// built-in font data.
func (g *TestGame) WithStockDocuments() *TestGame {
	g.t.Helper()
	g.write(g.paths.FontsCatalog, templates.MustRead(templates.CatalogBackup))
	g.write(g.paths.GlobalReplacement, templates.MustRead(templates.GlobalBackup))
	return g.WithUIFont()
}

// WithDocuments writes both documents verbatim.
func (g *TestGame) WithDocuments(global, catalog string) *TestGame {
	g.t.Helper()
	g.write(g.paths.GlobalReplacement, []byte(global))
	g.write(g.paths.FontsCatalog, []byte(catalog))
	return g
}

// WithUIFont writes the built-in font data file.
func (g *TestGame) WithUIFont() *TestGame {
	g.t.Helper()
	g.write(g.paths.UIFont(), []byte(UIFontData))
	return g
}

// WithAssetFile writes a file into the asset directory.
func (g *TestGame) WithAssetFile(name string, data []byte) *TestGame {
	g.t.Helper()
	g.write(filepath.Join(g.paths.AssetDir, name), data)
	return g
}

// Read returns the content of path.
func (g *TestGame) Read(path string) string {
	g.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		g.t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func (g *TestGame) write(path string, data []byte) {
	g.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		g.t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		g.t.Fatalf("writing %s: %v", path, err)
	}
}

// FontFile writes a real TrueType font (family "Go") under a fresh temporary
// directory and returns its path.
func FontFile(t testing.TB, name string) string {
	t.Helper()
	return writeFont(t, name, goregular.TTF)
}

// MonoFontFile is FontFile for the "Go Mono" family.
func MonoFontFile(t testing.TB, name string) string {
	t.Helper()
	return writeFont(t, name, gomono.TTF)
}

// BrokenFontFile writes a file with a font extension that is not a font.
func BrokenFontFile(t testing.TB, name string) string {
	t.Helper()
	return writeFont(t, name, []byte("this is not a font"))
}

func writeFont(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing font: %v", err)
	}
	return path
}
