package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/fontswap"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the applied font in place while the game runs",
	Long: `Watch the game's font documents and apply the current font again
whenever something replaces them, such as a game update or file
verification. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: watchRunE,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchRunE(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	s, err := e.manager.Status(e.ctx)
	if err != nil {
		return err
	}
	if s.LibraryFile == "" {
		return errors.New("no library font is applied; run `fontswap apply` first")
	}
	req := fontswap.ApplyRequest{
		FontPath: e.manager.Library().Path(s.LibraryFile),
		Family:   s.InstalledFamily,
	}

	p, err := e.manager.Paths()
	if err != nil {
		return err
	}
	w, err := watch.New(p.Documents(), *e.cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(e.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.log.Info().Str("family", req.Family).Str("file", s.LibraryFile).Msg("watching font documents")
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		if _, err := e.manager.Reapply(ctx, req); err != nil {
			e.log.Error().Err(err).Strs("files", changed).Msg("could not apply font again")
		}
	})
}
