package cmd

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Put the stock game fonts back",
	Args:  cobra.NoArgs,
	RunE:  restoreRunE,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func restoreRunE(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	res, err := e.manager.Restore(e.ctx)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, output.RestoreVariables(res), func(w io.Writer) error {
		fmt.Fprintf(w, "Restored %d documents\n", len(res.Restored))
		if res.UIFontRestored {
			fmt.Fprintln(w, "  built-in font data restored")
		}
		if len(res.RemovedFonts) > 0 {
			fmt.Fprintf(w, "  removed %d custom fonts\n", len(res.RemovedFonts))
		}
		return nil
	})
}
