package fontswap

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontconf"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontmeta"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/templates"
)

// ApplyRequest selects the font to apply.
type ApplyRequest struct {
	// FontPath is the font file. Files outside the library are imported first.
	FontPath string
	// Family overrides the family name read from the font file.
	Family string
}

// ApplyResult describes a completed Apply.
type ApplyResult struct {
	Family       string          `json:"family"`
	FileName     string          `json:"fileName"`
	LibraryPath  string          `json:"libraryPath"`
	Counts       fontconf.Counts `json:"counts"`
	RemovedFonts []string        `json:"removedFonts,omitempty"`
}

// Apply makes the game render its UI with the requested font.
//
// The family name is resolved before anything is touched, so a font without
// readable metadata leaves the game tree unmodified. If rewriting the
// documents fails, both are put back to their content from before the call.
func (m *Manager) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = m.withLogger(ctx)

	if _, err := os.Stat(req.FontPath); err != nil {
		return ApplyResult{}, fserr.FontMetadataUnreadable(req.FontPath, err)
	}
	family := strings.TrimSpace(req.Family)
	if family == "" {
		var err error
		if family, err = fontmeta.Family(req.FontPath); err != nil {
			return ApplyResult{}, err
		}
	}
	fileName := filepath.Base(req.FontPath)
	for _, name := range []string{family, fileName} {
		if err := fontconf.ValidateName(name); err != nil {
			return ApplyResult{}, fserr.FontMetadataUnreadable(req.FontPath, err)
		}
	}

	p, err := m.Paths()
	if err != nil {
		return ApplyResult{}, err
	}
	if err := p.EnsureDirs(); err != nil {
		return ApplyResult{}, err
	}
	if err := m.seedDocuments(p); err != nil {
		return ApplyResult{}, err
	}

	src, err := m.library.Add(req.FontPath)
	if err != nil {
		return ApplyResult{}, err
	}
	removed := m.cleanAssetDir(p)

	if err := m.guard.Copy(src, filepath.Join(p.AssetDir, fileName)); err != nil {
		return ApplyResult{}, err
	}

	snapshot := m.snapshot(p)
	analysis := fontconf.AnalyzeFiles(ctx, p)
	counts, err := m.rewriter.Rewrite(ctx, p, analysis.State, family, fileName)
	if err != nil {
		m.rollback(snapshot)
		return ApplyResult{}, err
	}

	m.log.Info().
		Str("family", family).
		Str("file", fileName).
		Int("removed_fonts", len(removed)).
		Msg("font applied")

	return ApplyResult{
		Family:       family,
		FileName:     fileName,
		LibraryPath:  src,
		Counts:       counts,
		RemovedFonts: removed,
	}, nil
}

// seedDocuments installs a managed template for any document missing from
// the game tree so there is always something to rewrite.
func (m *Manager) seedDocuments(p paths.Paths) error {
	seeds := []struct {
		template string
		dst      string
	}{
		{templates.Catalog, p.FontsCatalog},
		{templates.Global, p.GlobalReplacement},
	}
	for _, s := range seeds {
		if fsguard.Exists(s.dst) {
			continue
		}
		if err := m.guard.WriteFile(s.dst, templates.MustRead(s.template)); err != nil {
			return err
		}
		m.guard.Lock(s.dst)
		m.log.Warn().Str("path", s.dst).Msg("document was missing; installed template")
	}
	return nil
}

// cleanAssetDir deletes font files from the asset directory that have the
// same name as a library font. Built-in .uifont data is never touched.
// Failures are logged and skipped.
func (m *Manager) cleanAssetDir(p paths.Paths) []string {
	known, err := m.library.Names()
	if err != nil {
		m.log.Warn().Err(err).Msg("could not list font library")
		return nil
	}
	entries, err := os.ReadDir(p.AssetDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.log.Warn().Err(err).Str("path", p.AssetDir).Msg("could not list asset directory")
		}
		return nil
	}

	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.EqualFold(filepath.Ext(name), ".uifont") || !fontmeta.IsFontFile(name) {
			continue
		}
		if _, ok := known[strings.ToLower(name)]; !ok {
			continue
		}
		if err := m.guard.Remove(filepath.Join(p.AssetDir, name)); err != nil {
			m.log.Warn().Err(err).Str("font", name).Msg("could not remove old font")
			continue
		}
		m.log.Debug().Str("font", name).Msg("removed old font from asset directory")
		removed = append(removed, name)
	}
	return removed
}

type documentSnapshot map[string][]byte

func (m *Manager) snapshot(p paths.Paths) documentSnapshot {
	s := make(documentSnapshot, 2)
	for _, doc := range p.Documents() {
		if data, err := os.ReadFile(doc); err == nil {
			s[doc] = data
		}
	}
	return s
}

// rollback writes the snapshotted documents back. Best-effort: a failure is
// logged and the original error is what the caller sees.
func (m *Manager) rollback(s documentSnapshot) {
	for doc, data := range s {
		current, err := os.ReadFile(doc)
		if err == nil && string(current) == string(data) {
			continue
		}
		if err := m.guard.WriteFile(doc, data); err != nil {
			m.log.Error().Err(err).Str("path", doc).Msg("could not roll back document")
			continue
		}
		m.guard.Lock(doc)
		m.log.Warn().Str("path", doc).Msg("rolled back document")
	}
}
