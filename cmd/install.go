package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [game-path]",
	Short: "Take over a game install",
	Long: `Record the game install root, keep copies of the game's font documents,
and install the managed documents read-only. Run it once, and again after
restore or after the game was reinstalled.

The root is the directory that contains csgo/ and core/, or the one that
contains game/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: installRunE,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func installRunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	root := ""
	if len(args) == 1 {
		root = args[0]
	} else if root, err = e.manager.GameRoot(); err != nil {
		return err
	}
	if root == "" {
		return errors.New("no game path given: pass it as an argument or with --game-path")
	}

	if err := e.manager.FirstInstall(e.ctx, root); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Installed into %s\n", root)
	return nil
}
