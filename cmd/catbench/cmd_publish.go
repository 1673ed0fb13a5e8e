package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/publish"
)

func newPublishCommand() *cobra.Command {
	var (
		accountURL string
		container  string
		prefix     string
		sourceDir  string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload generated artifacts to Azure Blob Storage",
		Long: `Upload generated artifacts to Azure Blob Storage.

Uploads every file under the output directory to the configured container,
preserving the directory layout. Authentication uses the default Azure
credential chain (environment variables, managed identity, or an az login
session).

The account URL, container, and prefix can be set in ` + projectconfig.ConfigFileName + `
under the publish section, or overridden with flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := projectconfig.Load(wd)
			if err != nil {
				return err
			}

			opts := publish.Options{
				AccountURL: firstNonEmpty(accountURL, cfg.Publish.AccountURL),
				Container:  firstNonEmpty(container, cfg.Publish.Container),
				Prefix:     firstNonEmpty(prefix, cfg.Publish.Prefix),
				SourceDir:  firstNonEmpty(sourceDir, cfg.Paths.Output),
				Logger:     slog.Default(),
			}
			if opts.AccountURL == "" {
				return fmt.Errorf("%w: set publish.account_url in %s or pass --account-url",
					publish.ErrNoAccountURL, projectconfig.ConfigFileName)
			}

			n, err := publish.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d file(s) to %s/%s\n",
				n, opts.AccountURL, opts.Container)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountURL, "account-url", "", "Storage account URL (e.g. https://acct.blob.core.windows.net)")
	cmd.Flags().StringVar(&container, "container", "", "Blob container name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Blob name prefix")
	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Directory to upload (default: configured output directory)")

	return cmd
}
