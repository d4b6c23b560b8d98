package fontconf

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
)

// Counts reports how many entries a rewrite changed. Purely informational:
// zero is not an error.
type Counts struct {
	Global           int  `json:"global"`
	Catalog          int  `json:"catalog"`
	FilePatterns     int  `json:"filePatterns"`
	ExtensionSwapped bool `json:"extensionSwapped"`
}

// Changed reports whether any entry was rewritten.
func (c Counts) Changed() bool {
	return c.Global+c.Catalog+c.FilePatterns > 0 || c.ExtensionSwapped
}

// replaceGroup rewrites the family group (submatch 2) of every match of re
// for which fn returns a replacement. Bytes outside replaced groups are
// copied verbatim.
func replaceGroup(content string, re *regexp.Regexp, fn func(old string) (string, bool)) string {
	matches := re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		start, end := m[4], m[5]
		repl, ok := fn(content[start:end])
		if !ok {
			continue
		}
		b.WriteString(content[last:start])
		b.WriteString(repl)
		last = end
	}
	b.WriteString(content[last:])
	return b.String()
}

// retarget returns a replacement function that maps eligible current family
// names to newFamily and counts each rewritten rule.
func retarget(state InstalledFontState, newFamily string, count *int) func(string) (string, bool) {
	return func(old string) (string, bool) {
		if !state.HasFamily(old) || IsBuiltinFamily(old) || old == newFamily {
			return "", false
		}
		*count++
		return newFamily, true
	}
}

// RewriteGlobal retargets assign and prepend rules of the global replacement
// document to newFamily. It returns the new text and the number of rules changed.
// A newFamily rejected by ValidateName leaves content unchanged.
func RewriteGlobal(content string, state InstalledFontState, newFamily string) (string, int) {
	if ValidateName(newFamily) != nil {
		return content, 0
	}
	n := 0
	content = replaceGroup(content, assignPattern, retarget(state, newFamily, &n))
	content = replaceGroup(content, prependPattern, retarget(state, newFamily, &n))
	return content, n
}

// RewriteCatalog retargets append rules of the fonts catalog to newFamily,
// replaces current custom file patterns with newFileName, retargets
// <fontpattern> entries naming a current family, and flips the generic
// extension placeholder to the extension class of newFileName. Names
// rejected by ValidateName leave content unchanged.
func RewriteCatalog(content string, state InstalledFontState, newFamily, newFileName string) (string, Counts) {
	var c Counts
	if ValidateName(newFamily) != nil || ValidateName(newFileName) != nil {
		return content, c
	}
	content = replaceGroup(content, appendPattern, retarget(state, newFamily, &c.Catalog))

	oldFiles := make(map[string]struct{}, len(state.CurrentFilePatterns))
	for _, f := range state.CurrentFilePatterns {
		oldFiles[f] = struct{}{}
	}
	newExt := strings.ToLower(filepath.Ext(newFileName))

	seenFiles := make(map[string]struct{})
	seenNames := make(map[string]struct{})
	content = replaceGroup(content, fontPatternPattern, func(old string) (string, bool) {
		if _, ok := oldFiles[old]; ok {
			if old == newFileName {
				return "", false
			}
			if _, dup := seenFiles[old]; !dup {
				seenFiles[old] = struct{}{}
				c.FilePatterns++
			}
			return newFileName, true
		}
		if state.HasFamily(old) && !IsBuiltinFamily(old) && old != newFamily {
			if _, dup := seenNames[old]; !dup {
				seenNames[old] = struct{}{}
				c.Catalog++
			}
			return newFamily, true
		}
		if swapped, ok := swapExtension(old, newExt); ok {
			c.ExtensionSwapped = true
			return swapped, true
		}
		return "", false
	})
	return content, c
}

// swapExtension maps a bare extension placeholder to newExt when the two
// belong to opposite classes.
func swapExtension(placeholder, newExt string) (string, bool) {
	switch {
	case placeholder == ExtTTF && newExt == ExtOTF:
		return ExtOTF, true
	case placeholder == ExtOTF && newExt == ExtTTF:
		return ExtTTF, true
	default:
		return "", false
	}
}

// Rewriter applies RewriteGlobal and RewriteCatalog to the documents on disk.
type Rewriter struct {
	guard *fsguard.Guard
}

// NewRewriter creates a Rewriter that mutates documents through guard.
func NewRewriter(guard *fsguard.Guard) *Rewriter {
	return &Rewriter{guard: guard}
}

// Rewrite retargets both documents at p to newFamily / newFileName. The
// global document is written first; a failure on the catalog leaves the
// global document already rewritten.
func (r *Rewriter) Rewrite(ctx context.Context, p paths.Paths, state InstalledFontState, newFamily, newFileName string) (Counts, error) {
	log := logging.FromContext(ctx)
	var counts Counts

	err := r.rewriteFile(p.GlobalReplacement, func(s string) string {
		out, n := RewriteGlobal(s, state, newFamily)
		counts.Global = n
		return out
	})
	if err != nil {
		return counts, err
	}

	err = r.rewriteFile(p.FontsCatalog, func(s string) string {
		out, c := RewriteCatalog(s, state, newFamily, newFileName)
		counts.Catalog, counts.FilePatterns, counts.ExtensionSwapped = c.Catalog, c.FilePatterns, c.ExtensionSwapped
		return out
	})
	if err != nil {
		return counts, err
	}

	log.Info().
		Int("global_rules", counts.Global).
		Int("catalog_rules", counts.Catalog).
		Int("file_patterns", counts.FilePatterns).
		Bool("extension_swapped", counts.ExtensionSwapped).
		Msg("font configuration updated")
	return counts, nil
}

// rewriteFile unlocks path, applies fn to its content, writes it back when it
// changed, and locks it again on every exit path.
func (r *Rewriter) rewriteFile(path string, fn func(string) string) error {
	if err := r.guard.Unlock(path); err != nil {
		return err
	}
	defer r.guard.Lock(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fserr.WriteFailed(path, err)
	}
	updated := fn(string(data))
	if updated == string(data) {
		return nil
	}
	return r.guard.WriteFile(path, []byte(updated))
}
