package cmd

import (
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"status"},
	Short:   "Show which font the game is configured to use",
	Args:    cobra.NoArgs,
	RunE:    analyzeRunE,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeRunE(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	s, err := e.manager.Status(e.ctx)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), s, output.StatusVariables(s), func(w io.Writer) error {
		return output.WriteAnalysis(w, s)
	})
}
