package cmd

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontmeta"

	"github.com/spf13/cobra"
)

var flagLibrarySystem bool

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the font library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library fonts with their family names",
	Args:  cobra.NoArgs,
	RunE:  libraryListRunE,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <font-file>",
	Short: "Copy a font into the library",
	Args:  cobra.ExactArgs(1),
	RunE:  libraryAddRunE,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <file-name>",
	Short: "Delete a font from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  libraryRemoveRunE,
}

func init() {
	libraryAddCmd.Flags().BoolVar(&flagLibrarySystem, "system", false, "treat the argument as the file name of an installed system font")

	libraryCmd.AddCommand(libraryListCmd, libraryAddCmd, libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func libraryListRunE(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	lib := e.manager.Library()
	names, err := lib.List()
	if err != nil {
		return err
	}

	infos := make([]fontmeta.Info, 0, len(names))
	vars := make(map[string]string, len(names))
	for _, n := range names {
		info, err := fontmeta.Read(lib.Path(n))
		if err != nil {
			e.log.Warn().Err(err).Str("font", n).Msg("unreadable library font")
			info = fontmeta.Info{Path: lib.Path(n), FileName: n}
		}
		infos = append(infos, info)
		vars[n] = info.Family
	}

	return writeResult(cmd.OutOrStdout(), infos, vars, func(w io.Writer) error {
		if len(infos) == 0 {
			fmt.Fprintf(w, "No fonts in %s\n", lib.Dir)
			return nil
		}
		for _, info := range infos {
			family := info.Family
			if family == "" {
				family = "(unreadable)"
			}
			fmt.Fprintf(w, "%-40s %s\n", info.FileName, family)
		}
		return nil
	})
}

func libraryAddRunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	lib := e.manager.Library()

	var path string
	if flagLibrarySystem {
		path, err = lib.AddSystem(args[0])
	} else {
		path, err = lib.Add(args[0])
	}
	if err != nil {
		return err
	}

	info, err := fontmeta.Read(path)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), info, map[string]string{"Path": path, "Family": info.Family}, func(w io.Writer) error {
		fmt.Fprintf(w, "Added %s (%s)\n", info.FileName, info.Family)
		return nil
	})
}

func libraryRemoveRunE(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.manager.Library().Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
