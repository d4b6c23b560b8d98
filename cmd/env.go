package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/config"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// env is what every command works with once flags and configuration are resolved.
type env struct {
	ctx     context.Context
	cfg     *config.Config
	log     zerolog.Logger
	manager *fontswap.Manager
}

// loadConfig layers the config file and command-line flags over defaults.
func loadConfig() (*config.Config, error) {
	b := config.NewBuilder()

	path := flagConfig
	if path == "" {
		appDir := flagAppDir
		if appDir == "" {
			appDir = config.DefaultAppDir()
		}
		path = config.FindConfigFile(appDir)
	}
	if path != "" {
		fileCfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		b.Add(fileCfg)
	}

	flags := &config.Config{}
	if flagAppDir != "" {
		flags.AppDir = &flagAppDir
	}
	if flagGamePath != "" {
		flags.GamePath = &flagGamePath
	}
	if flagVerbosity != "" {
		flags.LogLevel = &flagVerbosity
	}
	if flagLogFormat != "" {
		f, err := config.ParseLogFormat(flagLogFormat)
		if err != nil {
			return nil, err
		}
		flags.LogFormat = &f
	}
	b.Add(flags)

	return b.Build()
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	lc := logging.DefaultConfig()
	lc.Out = w
	lc.Format = cfg.LogFormat.String()
	// Already validated by the config builder.
	lc.Level, _ = logging.ParseVerbosity(*cfg.LogLevel)
	return logging.New(lc)
}

// newEnv resolves configuration, builds the logger and a Manager, and makes
// sure the application directory is set up.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithContext(ctx, log)

	gamePath := ""
	if cfg.GamePath != nil {
		gamePath = *cfg.GamePath
	}
	m, err := fontswap.NewManager(fontswap.Environment{
		AppDir:          *cfg.AppDir,
		GameRoot:        gamePath,
		LibraryPatterns: cfg.Library.Patterns,
		Logger:          log,
	})
	if err != nil {
		return nil, err
	}
	if _, err := m.Setup(ctx); err != nil {
		return nil, err
	}
	return &env{ctx: ctx, cfg: cfg, log: log, manager: m}, nil
}

// writeResult renders a command result according to --output and
// --show-variable. human renders the default text form.
func writeResult(w io.Writer, v any, vars map[string]string, human func(io.Writer) error) error {
	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}
	switch flagOutput {
	case "json":
		return output.WriteJSON(w, v)
	case "vars":
		return output.WriteAll(w, vars)
	case "":
		return human(w)
	default:
		return fmt.Errorf("unknown output format %q (want json or vars)", flagOutput)
	}
}
