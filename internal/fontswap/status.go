package fontswap

import (
	"context"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontconf"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
)

// Status is a read-only report on the game install.
type Status struct {
	GameRoot            string                     `json:"gameRoot"`
	Layout              string                     `json:"layout"`
	InstalledFamily     string                     `json:"installedFamily,omitempty"`
	Families            []string                   `json:"families"`
	FilePatterns        []string                   `json:"filePatterns"`
	Rules               []fontconf.FontRule        `json:"rules"`
	Patterns            []fontconf.FontFilePattern `json:"patterns"`
	LibraryFile         string                     `json:"libraryFile,omitempty"`
	DocumentsLocked     bool                       `json:"documentsLocked"`
	UIFontParked        bool                       `json:"uiFontParked"`
	FirstInstallPending bool                       `json:"firstInstallPending"`
}

// Status analyzes the documents in the game tree. It never modifies anything.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	p, err := m.Paths()
	if err != nil {
		return Status{}, err
	}

	a := fontconf.AnalyzeFiles(m.withLogger(ctx), p)
	s := Status{
		GameRoot:        p.Root,
		Layout:          p.Layout.String(),
		InstalledFamily: a.InstalledFamily(),
		Families:        a.State.FamilyNames(),
		FilePatterns:    a.State.CurrentFilePatterns,
		Rules:           a.Rules,
		Patterns:        a.FilePatterns,
		DocumentsLocked: fsguard.IsLocked(p.FontsCatalog) && fsguard.IsLocked(p.GlobalReplacement),
		UIFontParked:    fsguard.Exists(p.UIFontBackup()),
	}

	if s.InstalledFamily != "" {
		if path, err := m.library.FindByFamily(s.InstalledFamily); err == nil {
			s.LibraryFile = filepath.Base(path)
		}
	}

	pending, err := m.state.FirstInstallPending()
	if err != nil {
		m.log.Warn().Err(err).Msg("could not read first install marker")
	}
	s.FirstInstallPending = pending
	return s, nil
}
