package cmd

import (
	"fmt"
	"os"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fserr"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagAppDir       string
	flagGamePath     string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
	flagVerbosity    string
	flagLogFormat    string
)

// rootCmd is the top-level command for fontswap.
var rootCmd = &cobra.Command{
	Use:   "fontswap",
	Short: "Replace the CS2 user interface font",
	Long: `fontswap rewrites the game's font substitution documents so the user
interface renders with a font of your choice, and restores the stock
configuration on request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default action is analyze.
	RunE: analyzeRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAppDir, "app-dir", "", "application directory holding the font library and backups")
	rootCmd.PersistentFlags().StringVarP(&flagGamePath, "game-path", "g", "", "game install root (default: the path saved by install)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: <app-dir>/fontswap.yml)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, vars, or empty for default")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single result variable (e.g. Family, InstalledFamily)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "", "log verbosity: quiet, warn, info, debug, trace")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console or json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", fserr.UserMessage(err))
		os.Exit(1)
	}
}
