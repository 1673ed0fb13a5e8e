package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/catbench/leaderboard/internal/projectconfig"
	"github.com/catbench/leaderboard/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a catbench project configuration",
		Long: `Create a catbench project configuration.

Walks through the project settings interactively and writes a ` + projectconfig.ConfigFileName + `
file in the current directory. Pass --yes to skip the prompts and write the
defaults directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := projectconfig.New()

			if !yes {
				var err error
				cfg, err = wizard.RunInitWizard(os.Stdin, cmd.OutOrStdout(), cfg)
				if err != nil {
					return err
				}
			}

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			path, err := wizard.WriteConfig(cfg, wd, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: catbench generate")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept all defaults without prompting")

	return cmd
}
