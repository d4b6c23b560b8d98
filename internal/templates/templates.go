// Package templates embeds the stock font documents fontswap installs into
// the game and keeps as restore sources.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed data/*
var data embed.FS

// File names of the embedded documents.
const (
	Catalog       = "fonts.conf"
	CatalogBackup = "fonts.conf.old"
	Global        = "42-repl-global.conf"
	GlobalBackup  = "42-repl-global.conf.old"
)

// Placeholders used by the installable templates before a font is applied.
const (
	PlaceholderFamily   = "FONTNAME"
	PlaceholderFileName = "FONTFILENAME.ttf"
)

// Names lists every embedded document.
var Names = []string{Catalog, CatalogBackup, Global, GlobalBackup}

// Read returns the content of the named template.
func Read(name string) ([]byte, error) {
	b, err := data.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	return b, nil
}

// MustRead is Read for names known at compile time.
func MustRead(name string) []byte {
	b, err := Read(name)
	if err != nil {
		panic(err)
	}
	return b
}

// WriteMissing writes every embedded document into dir unless a file of the
// same name already exists. It returns the names written.
func WriteMissing(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	var written []string
	for _, name := range Names {
		dst := filepath.Join(dir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := os.WriteFile(dst, MustRead(name), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", dst, err)
		}
		written = append(written, name)
	}
	return written, nil
}
