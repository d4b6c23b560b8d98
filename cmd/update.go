package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-fontswap/internal/config"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/output"
	"github.com/MyCarrier-DevOps/go-fontswap/internal/update"

	"github.com/spf13/cobra"
)

var (
	flagToken      string
	flagAppID      int64
	flagAppKeyPath string
	flagGitHubURL  string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check GitHub for a newer release",
	Long: `Compare this binary's version with the latest published release.
Nothing is downloaded.

Authentication is optional for public repositories (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key-path or GH_APP_ID + GH_APP_PRIVATE_KEY env vars`,
	Args: cobra.NoArgs,
	RunE: updateRunE,
}

func init() {
	updateCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	updateCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	updateCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	updateCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")

	rootCmd.AddCommand(updateCmd)
}

func updateRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	checker, err := newChecker(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := checker.Check(ctx, Version)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, output.UpdateVariables(res), func(w io.Writer) error {
		if !res.NeedsUpdate {
			fmt.Fprintf(w, "fontswap %s is up to date (latest: %s)\n", Version, res.Latest.Tag)
			return nil
		}
		fmt.Fprintf(w, "fontswap %s is available (running %s)\n", res.Latest.Tag, Version)
		fmt.Fprintf(w, "Download: %s\n", res.Latest.URL)
		return nil
	})
}

func newChecker(cfg *config.Config) (*update.Checker, error) {
	baseURL := flagGitHubURL
	if baseURL == "" {
		baseURL = *cfg.Update.APIURL
	}
	client, err := update.NewClient(update.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    baseURL,
		Owner:      *cfg.Update.Owner,
	})
	if err != nil {
		return nil, err
	}
	return update.NewChecker(client, *cfg.Update.Owner, *cfg.Update.Repo), nil
}
