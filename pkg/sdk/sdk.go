// Package sdk provides a public Go API for replacing the CS2 user interface
// font. It drives the same pipeline as the fontswap CLI: first install,
// applying a font, restoring the stock documents, and analysis.
//
// Basic usage:
//
//	opts := sdk.Options{GamePath: `C:\Program Files (x86)\Steam\steamapps\common\Counter-Strike Global Offensive`}
//	if err := sdk.Install(ctx, opts); err != nil { ... }
//	result, err := sdk.Apply(ctx, opts, sdk.ApplyOptions{FontPath: "Inter-Regular.ttf"})
//	fmt.Println(result.Variables["Family"]) // "Inter"
//
//	result, err = sdk.CheckUpdate(ctx, sdk.UpdateOptions{Current: "1.2.0"})
//	fmt.Println(result.Variables["NeedsUpdate"]) // "true"
package sdk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/config"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/logging"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/update"

	"github.com/rs/zerolog"
)

// Options locates the application directory and the game install.
type Options struct {
	// AppDir holds the font library, templates, backups and state. Defaults
	// to the per-user config directory.
	AppDir string

	// GamePath is the game install root. Empty means the root recorded by a
	// previous Install.
	GamePath string

	// ConfigPath is a fontswap.yml file. If empty, <AppDir>/fontswap.yml is
	// used when it exists.
	ConfigPath string

	// Logger receives progress logs. Nil disables logging.
	Logger *zerolog.Logger
}

// ApplyOptions selects the font to apply.
type ApplyOptions struct {
	// FontPath is a .ttf or .otf file (required).
	FontPath string

	// Family overrides the family name read from the font.
	Family string
}

// UpdateOptions configures a release check against GitHub.
type UpdateOptions struct {
	// Current is the running version (required).
	Current string

	// Owner and Repo name the release repository. Default to the fontswap repository.
	Owner string
	Repo  string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string
}

// Result holds the outcome of an operation as output variables.
type Result struct {
	// Variables contains the output variables keyed by name, the same ones
	// the CLI prints with --output vars. Common keys: Family, FileName,
	// InstalledFamily, GlobalRules, CatalogRules, FilePatterns.
	Variables map[string]string

	// Analysis is populated by Analyze.
	Analysis *Analysis
}

// Analysis describes the font configuration found in the game tree.
type Analysis struct {
	// InstalledFamily is the custom family the documents target, if any.
	InstalledFamily string

	// Families lists every non-built-in family the rules target.
	Families []string

	// FilePatterns lists custom font file names the catalog references.
	FilePatterns []string

	// Rules lists every substitution rule in document order.
	Rules []Rule

	// FormattedOutput is the human-readable analysis (same as the CLI).
	FormattedOutput string
}

// Rule is one family substitution rule.
type Rule struct {
	// Scope is "GlobalReplacement" (42-repl-global.conf) or "FontsCatalog" (fonts.conf).
	Scope string

	// Mode is "assign", "prepend" or "append".
	Mode string

	// Family is the family the rule substitutes in.
	Family string
}

// Install takes over the game install at opts.GamePath and records it for
// later operations.
func Install(ctx context.Context, opts Options) error {
	m, _, err := newManager(ctx, opts)
	if err != nil {
		return err
	}
	root, err := m.GameRoot()
	if err != nil {
		return err
	}
	if root == "" {
		return errors.New("game path is required")
	}
	return m.FirstInstall(ctx, root)
}

// Apply makes the game use the font at a.FontPath. The first install runs
// automatically when it is still pending.
func Apply(ctx context.Context, opts Options, a ApplyOptions) (*Result, error) {
	if a.FontPath == "" {
		return nil, errors.New("font path is required")
	}
	m, ctx, err := newManager(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := m.EnsureInstalled(ctx); err != nil {
		return nil, fmt.Errorf("first install: %w", err)
	}

	res, err := m.Apply(ctx, fontswap.ApplyRequest{FontPath: a.FontPath, Family: a.Family})
	if err != nil {
		return nil, err
	}
	return &Result{Variables: output.ApplyVariables(res)}, nil
}

// Restore puts the stock documents and built-in font data back.
func Restore(ctx context.Context, opts Options) (*Result, error) {
	m, ctx, err := newManager(ctx, opts)
	if err != nil {
		return nil, err
	}
	res, err := m.Restore(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Variables: output.RestoreVariables(res)}, nil
}

// Analyze reports the font configuration of the game install without
// modifying it.
func Analyze(ctx context.Context, opts Options) (*Result, error) {
	m, ctx, err := newManager(ctx, opts)
	if err != nil {
		return nil, err
	}
	s, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Variables: output.StatusVariables(s),
		Analysis:  buildAnalysis(s),
	}, nil
}

// CheckUpdate compares opts.Current with the latest published release.
func CheckUpdate(ctx context.Context, opts UpdateOptions) (*Result, error) {
	if opts.Current == "" {
		return nil, errors.New("current version is required")
	}
	owner, repo := opts.Owner, opts.Repo
	if owner == "" {
		owner = config.DefaultUpdateOwner
	}
	if repo == "" {
		repo = config.DefaultUpdateRepo
	}

	client, err := update.NewClient(update.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	res, err := update.NewChecker(client, owner, repo).Check(ctx, opts.Current)
	if err != nil {
		return nil, err
	}
	return &Result{Variables: output.UpdateVariables(res)}, nil
}

// newManager loads configuration the way the CLI does and returns a Manager
// whose application directory is set up, plus ctx carrying the logger.
func newManager(ctx context.Context, opts Options) (*fontswap.Manager, context.Context, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, ctx, fmt.Errorf("loading configuration: %w", err)
	}

	log := logging.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
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
		return nil, ctx, err
	}
	if _, err := m.Setup(ctx); err != nil {
		return nil, ctx, err
	}
	return m, ctx, nil
}

func loadConfig(opts Options) (*config.Config, error) {
	b := config.NewBuilder()

	path := opts.ConfigPath
	if path == "" {
		appDir := opts.AppDir
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

	override := &config.Config{}
	if opts.AppDir != "" {
		override.AppDir = &opts.AppDir
	}
	if opts.GamePath != "" {
		override.GamePath = &opts.GamePath
	}
	b.Add(override)

	return b.Build()
}

func buildAnalysis(s fontswap.Status) *Analysis {
	a := &Analysis{
		InstalledFamily: s.InstalledFamily,
		Families:        s.Families,
		FilePatterns:    s.FilePatterns,
	}
	for _, r := range s.Rules {
		a.Rules = append(a.Rules, Rule{
			Scope:  r.Scope.String(),
			Mode:   r.Mode.String(),
			Family: r.SourceFamily,
		})
	}

	var buf strings.Builder
	if err := output.WriteAnalysis(&buf, s); err == nil {
		a.FormattedOutput = buf.String()
	}
	return a
}
