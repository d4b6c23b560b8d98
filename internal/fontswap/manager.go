// Package fontswap orchestrates replacing the game's UI font: installing the
// managed documents, applying a font, and restoring the stock configuration.
//
// All operations on a Manager are serialized. The documents in the game tree
// are kept read-only between operations and unlocked only while a Manager
// writes them.
package fontswap

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontconf"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fsguard"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/library"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/state"

	"github.com/rs/zerolog"
)

// Subdirectories of the application directory.
const (
	DownloadDir = "dl"
	AutoDir     = "auto"
	FontsDir    = "fonts"
	SetupDir    = "setup"
)

// AppDirs lists every application subdirectory Setup creates.
var AppDirs = []string{DownloadDir, AutoDir, FontsDir, SetupDir}

// Environment is everything a Manager needs to know about where it runs.
type Environment struct {
	// AppDir is the tool's own directory holding the library and setup files.
	AppDir string
	// GameRoot overrides the install root persisted in the setup directory.
	GameRoot string
	// LibraryPatterns select font files in the library. Empty means *.ttf and *.otf.
	LibraryPatterns []string
	Logger          zerolog.Logger
}

// Manager performs font swapping operations against one game install.
type Manager struct {
	mu sync.Mutex
	// rootMu guards env.GameRoot, which readers take without holding mu.
	rootMu sync.RWMutex

	env      Environment
	log      zerolog.Logger
	guard    *fsguard.Guard
	rewriter *fontconf.Rewriter
	library  *library.Library
	state    *state.Store
}

// NewManager creates a Manager for env.
func NewManager(env Environment) (*Manager, error) {
	if env.AppDir == "" {
		return nil, fmt.Errorf("application directory is required")
	}
	log := logging.Component(env.Logger, "fontswap")
	guard := fsguard.New(log)

	lib, err := library.New(filepath.Join(env.AppDir, FontsDir), env.LibraryPatterns, guard)
	if err != nil {
		return nil, err
	}

	return &Manager{
		env:      env,
		log:      log,
		guard:    guard,
		rewriter: fontconf.NewRewriter(guard),
		library:  lib,
		state:    state.New(filepath.Join(env.AppDir, SetupDir)),
	}, nil
}

// Library returns the tool's font library.
func (m *Manager) Library() *library.Library {
	return m.library
}

// State returns the persisted tool state.
func (m *Manager) State() *state.Store {
	return m.state
}

// SetupDir returns the directory holding templates, backups and state files.
func (m *Manager) SetupDir() string {
	return filepath.Join(m.env.AppDir, SetupDir)
}

// GameRoot returns the install root: the Environment override when set,
// otherwise the persisted one. It may be empty.
func (m *Manager) GameRoot() (string, error) {
	m.rootMu.RLock()
	root := m.env.GameRoot
	m.rootMu.RUnlock()
	if root != "" {
		return root, nil
	}
	return m.state.GamePath()
}

func (m *Manager) setGameRoot(root string) {
	m.rootMu.Lock()
	m.env.GameRoot = root
	m.rootMu.Unlock()
}

// Paths resolves the document locations of the current game root.
func (m *Manager) Paths() (paths.Paths, error) {
	root, err := m.GameRoot()
	if err != nil {
		return paths.Paths{}, err
	}
	return paths.Resolve(root)
}

func (m *Manager) withLogger(ctx context.Context) context.Context {
	return logging.WithContext(ctx, m.log)
}
