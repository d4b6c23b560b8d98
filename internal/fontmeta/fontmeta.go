// Package fontmeta reads naming metadata from TrueType and OpenType files.
package fontmeta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"

	"golang.org/x/image/font/sfnt"
)

// ErrNoFamilyName is wrapped into FontMetadataUnreadable when a font parses
// but carries none of the family name records.
var ErrNoFamilyName = errors.New("font has no family name record")

// Info describes a font file.
type Info struct {
	Path     string `json:"path"`
	FileName string `json:"fileName"`
	Family   string `json:"family"`
	FullName string `json:"fullName,omitempty"`
	Glyphs   int    `json:"glyphs"`
}

// Family returns the family name stored in the font at path.
func Family(path string) (string, error) {
	info, err := Read(path)
	if err != nil {
		return "", err
	}
	return info.Family, nil
}

// Read parses the font at path. Any failure is reported as
// fserr.FontMetadataUnreadable.
func Read(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fserr.FontMetadataUnreadable(path, err)
	}
	info, err := Parse(data)
	if err != nil {
		return Info{}, fserr.FontMetadataUnreadable(path, err)
	}
	info.Path = path
	info.FileName = filepath.Base(path)
	return info, nil
}

// Parse extracts naming metadata from a font binary.
func Parse(data []byte) (Info, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return Info{}, err
	}

	var buf sfnt.Buffer
	family := firstName(f, &buf, sfnt.NameIDFamily, sfnt.NameIDTypographicFamily)
	if family == "" {
		return Info{}, ErrNoFamilyName
	}
	return Info{
		Family:   family,
		FullName: firstName(f, &buf, sfnt.NameIDFull),
		Glyphs:   f.NumGlyphs(),
	}, nil
}

func firstName(f *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		name, err := f.Name(buf, id)
		if err != nil {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return ""
}

// IsFontFile reports whether name has a TrueType or OpenType extension.
func IsFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}
