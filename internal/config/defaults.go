package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultUpdateOwner = "MyCarrier-DevOps"
	DefaultUpdateRepo  = "go-fontswap"
	DefaultDebounce    = 500 * time.Millisecond
)

// CreateDefaultConfiguration returns a Config with all default values
// populated. GamePath stays nil: the install root persisted by `install`
// is used unless one is configured.
func CreateDefaultConfiguration() *Config {
	return &Config{
		AppDir:    stringPtr(DefaultAppDir()),
		LogLevel:  stringPtr("info"),
		LogFormat: logFormatPtr(LogFormatConsole),
		Update: UpdateConfig{
			Owner:  stringPtr(DefaultUpdateOwner),
			Repo:   stringPtr(DefaultUpdateRepo),
			APIURL: stringPtr(""),
		},
		Library: LibraryConfig{
			Patterns: []string{"*.ttf", "*.otf"},
		},
		Watch: WatchConfig{
			Debounce: durationPtr(DefaultDebounce),
		},
	}
}

// DefaultAppDir is the per-user application directory, falling back to
// ./fontswap when the OS reports none.
func DefaultAppDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "fontswap"
	}
	return filepath.Join(dir, "fontswap")
}
