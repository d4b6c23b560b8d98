package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"

	"github.com/spf13/cobra"
)

var (
	flagFamily string
	flagSystem bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <font-file>",
	Short: "Make the game use a font",
	Long: `Copy a TrueType or OpenType font into the game and retarget every
substitution rule at it. The font is added to the library first when it
lives elsewhere.

Examples:
  fontswap apply ~/Downloads/Inter-Regular.ttf
  fontswap apply --system "Comic Sans MS.ttf"
  fontswap apply MyFont.otf --family "My Font Display"`,
	Args: cobra.ExactArgs(1),
	RunE: applyRunE,
}

func init() {
	applyCmd.Flags().StringVar(&flagFamily, "family", "", "family name to apply (default: read from the font file)")
	applyCmd.Flags().BoolVar(&flagSystem, "system", false, "treat the argument as the file name of an installed system font")

	rootCmd.AddCommand(applyCmd)
}

func applyRunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	fontPath := args[0]
	if flagSystem {
		if fontPath, err = e.manager.Library().AddSystem(args[0]); err != nil {
			return err
		}
	}

	if _, err := e.manager.EnsureInstalled(e.ctx); err != nil {
		return err
	}

	res, err := e.manager.Apply(e.ctx, fontswap.ApplyRequest{FontPath: fontPath, Family: flagFamily})
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, output.ApplyVariables(res), func(w io.Writer) error {
		fmt.Fprintf(w, "Applied %s (%s)\n", res.Family, res.FileName)
		fmt.Fprintf(w, "  42-repl-global.conf: %d rules\n", res.Counts.Global)
		fmt.Fprintf(w, "  fonts.conf:          %d rules, %d file patterns\n", res.Counts.Catalog, res.Counts.FilePatterns)
		if res.Counts.ExtensionSwapped {
			fmt.Fprintln(w, "  extension pattern updated")
		}
		if len(res.RemovedFonts) > 0 {
			fmt.Fprintf(w, "  removed old fonts: %s\n", strings.Join(res.RemovedFonts, ", "))
		}
		fmt.Fprintln(w, "Restart the game to see the new font.")
		return nil
	})
}
