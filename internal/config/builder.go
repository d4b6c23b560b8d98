package config

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"

	"github.com/gobwas/glob"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.AppDir != nil {
		dst.AppDir = src.AppDir
	}
	if src.GamePath != nil {
		dst.GamePath = src.GamePath
	}
	if src.LogLevel != nil {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != nil {
		dst.LogFormat = src.LogFormat
	}

	if src.Update.Owner != nil {
		dst.Update.Owner = src.Update.Owner
	}
	if src.Update.Repo != nil {
		dst.Update.Repo = src.Update.Repo
	}
	if src.Update.APIURL != nil {
		dst.Update.APIURL = src.Update.APIURL
	}

	// Library patterns replace the defaults as a whole.
	if src.Library.Patterns != nil {
		dst.Library.Patterns = append([]string(nil), src.Library.Patterns...)
	}

	if src.Watch.Debounce != nil {
		dst.Watch.Debounce = src.Watch.Debounce
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.AppDir == nil || strings.TrimSpace(*cfg.AppDir) == "" {
		return fmt.Errorf("app-dir must not be empty")
	}
	if _, err := logging.ParseVerbosity(*cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}
	if *cfg.Update.Owner == "" || *cfg.Update.Repo == "" {
		return fmt.Errorf("update.owner and update.repo must not be empty")
	}
	if len(cfg.Library.Patterns) == 0 {
		return fmt.Errorf("library.patterns must list at least one pattern")
	}
	for _, p := range cfg.Library.Patterns {
		if _, err := glob.Compile(strings.ToLower(strings.TrimPrefix(p, "!"))); err != nil {
			return fmt.Errorf("invalid library pattern %q: %w", p, err)
		}
	}
	if *cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}
