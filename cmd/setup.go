package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the application directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// newEnv already runs setup.
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Application directory ready: %s\n", *e.cfg.AppDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
