package cmd

import (
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/paths"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved game document locations",
	Args:  cobra.NoArgs,
	RunE:  pathsRunE,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func pathsRunE(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	p, err := e.manager.Paths()
	if err != nil {
		return err
	}

	vars := pathVariables(p)
	return writeResult(cmd.OutOrStdout(), vars, vars, func(w io.Writer) error {
		return output.WriteAll(w, vars)
	})
}

func pathVariables(p paths.Paths) map[string]string {
	return map[string]string{
		"Root":              p.Root,
		"Layout":            p.Layout.String(),
		"GlobalReplacement": p.GlobalReplacement,
		"FontsCatalog":      p.FontsCatalog,
		"AssetDir":          p.AssetDir,
		"UIFont":            p.UIFont(),
	}
}
