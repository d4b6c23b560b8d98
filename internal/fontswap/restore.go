package fontswap

import (
	"context"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/templates"
)

// RestoreResult describes a completed Restore.
type RestoreResult struct {
	Restored       []string `json:"restored"`
	UIFontRestored bool     `json:"uiFontRestored"`
	RemovedFonts   []string `json:"removedFonts,omitempty"`
}

// Restore puts the stock documents from the setup directory back into the
// game, brings back the built-in font data and removes library fonts from
// the asset directory. Both backups are checked before anything is deleted.
func (m *Manager) Restore(ctx context.Context) (RestoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.Paths()
	if err != nil {
		return RestoreResult{}, err
	}

	restores := []struct {
		backup string
		dst    string
	}{
		{filepath.Join(m.SetupDir(), templates.CatalogBackup), p.FontsCatalog},
		{filepath.Join(m.SetupDir(), templates.GlobalBackup), p.GlobalReplacement},
	}
	for _, r := range restores {
		if !fsguard.Exists(r.backup) {
			return RestoreResult{}, fserr.BackupMissing(r.backup)
		}
	}

	for _, path := range append(p.Documents(), p.StrayBackups()...) {
		if err := m.guard.Remove(path); err != nil {
			return RestoreResult{}, err
		}
	}
	if err := p.EnsureDirs(); err != nil {
		return RestoreResult{}, err
	}

	var res RestoreResult
	for _, r := range restores {
		if err := m.guard.Copy(r.backup, r.dst); err != nil {
			return res, err
		}
		res.Restored = append(res.Restored, r.dst)
		m.log.Debug().Str("path", r.dst).Msg("restored document")
	}

	if fsguard.Exists(p.UIFontBackup()) {
		if err := m.guard.Rename(p.UIFontBackup(), p.UIFont()); err != nil {
			return res, err
		}
		res.UIFontRestored = true
	}

	res.RemovedFonts = m.cleanAssetDir(p)

	if err := m.state.SetFirstInstallPending(true); err != nil {
		m.log.Warn().Err(err).Msg("could not reset first install marker")
	}
	m.log.Info().
		Int("documents", len(res.Restored)).
		Bool("ui_font", res.UIFontRestored).
		Int("removed_fonts", len(res.RemovedFonts)).
		Msg("stock fonts restored")
	return res, nil
}
