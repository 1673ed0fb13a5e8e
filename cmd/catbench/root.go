package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catbench",
		Short: "CatBench - leaderboard generator for MLIP benchmarks",
		Long: `CatBench builds and serves leaderboards for machine-learned interatomic
potential (MLIP) benchmark results.

It ingests per-dataset result files, aggregates metrics across datasets,
ranks models, computes Pareto frontiers, and serves an interactive
dashboard.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newFrontierCommand())
	cmd.AddCommand(newRankingsCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newPublishCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
