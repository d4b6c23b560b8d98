// Package config provides YAML configuration loading, defaults and
// configuration layering for fontswap.
package config

import "time"

// DefaultFileName is the configuration file looked up in the application directory.
const DefaultFileName = "fontswap.yml"

// Config is the root configuration for fontswap. Optional fields are
// pointers to support merge semantics during configuration building.
type Config struct {
	AppDir    *string    `yaml:"app-dir"`
	GamePath  *string    `yaml:"game-path"`
	LogLevel  *string    `yaml:"log-level"`
	LogFormat *LogFormat `yaml:"log-format"`

	Update  UpdateConfig  `yaml:"update"`
	Library LibraryConfig `yaml:"library"`
	Watch   WatchConfig   `yaml:"watch"`
}

// UpdateConfig selects the repository whose releases the update check queries.
type UpdateConfig struct {
	Owner  *string `yaml:"owner"`
	Repo   *string `yaml:"repo"`
	APIURL *string `yaml:"api-url"`
}

// LibraryConfig controls which files count as library fonts.
type LibraryConfig struct {
	Patterns []string `yaml:"patterns"`
}

// WatchConfig tunes the document watcher.
type WatchConfig struct {
	Debounce *time.Duration `yaml:"debounce"`
}
