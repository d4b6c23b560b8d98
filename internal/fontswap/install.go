package fontswap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/templates"
)

// SetupResult lists what Setup created.
type SetupResult struct {
	Templates []string `json:"templates"`
}

// Setup prepares the application directory: its subdirectories, the
// template and backup documents, and the first-install marker. Existing
// files are never overwritten.
func (m *Manager) Setup(ctx context.Context) (SetupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setup(ctx)
}

func (m *Manager) setup(ctx context.Context) (SetupResult, error) {
	for _, d := range AppDirs {
		dir := filepath.Join(m.env.AppDir, d)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return SetupResult{}, fserr.WriteFailed(dir, err)
		}
	}

	written, err := templates.WriteMissing(m.SetupDir())
	if err != nil {
		return SetupResult{}, fserr.WriteFailed(m.SetupDir(), err)
	}
	for _, name := range written {
		m.log.Debug().Str("template", name).Msg("wrote template")
	}

	if err := m.state.EnsureFirstInstallMarker(); err != nil {
		return SetupResult{}, fserr.WriteFailed(m.SetupDir(), err)
	}
	return SetupResult{Templates: written}, nil
}

// FirstInstall takes over the game install at root: it records root,
// keeps copies of the game's current documents next to them, installs the
// managed template documents read-only, and parks the built-in font data so
// the game falls back to the substitution rules.
func (m *Manager) FirstInstall(ctx context.Context, root string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := paths.Resolve(root)
	if err != nil {
		return err
	}
	if _, err := m.setup(ctx); err != nil {
		return err
	}
	if err := m.state.SetGamePath(root); err != nil {
		return fserr.WriteFailed(filepath.Join(m.SetupDir(), "path.txt"), err)
	}
	m.setGameRoot(root)
	m.log.Info().Str("root", root).Str("layout", p.Layout.String()).Msg("installing into game")

	if err := p.EnsureDirs(); err != nil {
		return err
	}

	installs := []struct {
		template string
		dst      string
	}{
		{templates.Catalog, p.FontsCatalog},
		{templates.Global, p.GlobalReplacement},
	}
	for _, in := range installs {
		if fsguard.Exists(in.dst) {
			if err := m.guard.Copy(in.dst, in.dst+paths.BackupSuffix); err != nil {
				return err
			}
			m.log.Debug().Str("path", in.dst).Msg("kept copy of existing document")
		}
		if err := m.guard.Copy(filepath.Join(m.SetupDir(), in.template), in.dst); err != nil {
			return err
		}
		m.guard.Lock(in.dst)
	}

	if fsguard.Exists(p.UIFont()) {
		if err := m.guard.Rename(p.UIFont(), p.UIFontBackup()); err != nil {
			return err
		}
		m.log.Debug().Str("path", p.UIFontBackup()).Msg("parked built-in font data")
	}

	if err := m.state.SetFirstInstallPending(false); err != nil {
		return fserr.WriteFailed(m.SetupDir(), err)
	}
	m.log.Info().Msg("first install completed")
	return nil
}

// EnsureInstalled runs FirstInstall against the known game root when the
// first-install marker says it has not happened yet. It reports whether it
// installed. Without a known root it does nothing, so the next operation
// reports the missing path.
func (m *Manager) EnsureInstalled(ctx context.Context) (bool, error) {
	pending, err := m.state.FirstInstallPending()
	if err != nil {
		return false, err
	}
	if !pending {
		return false, nil
	}
	root, err := m.GameRoot()
	if err != nil || root == "" {
		return false, err
	}
	m.log.Info().Str("root", root).Msg("first install has not run yet; running it now")
	if err := m.FirstInstall(ctx, root); err != nil {
		return false, err
	}
	return true, nil
}
