package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/rotosim/internal/config"
)

var version = "0.1.0-dev"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rotosim",
		Short: "Monte Carlo roto league simulator producing training data",
		Long: `rotosim simulates randomly drafted rotisserie fantasy basketball leagues
for historical seasons and writes one CSV of team feature vectors and
season-total fantasy points per season.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $"+config.EnvFile+")")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Run seed; 0 derives one from the clock")
	rootCmd.PersistentFlags().Int("workers", 0, "Number of simulation workers")
	rootCmd.PersistentFlags().Int("simulations", 0, "Leagues simulated per season")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSplitsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rotosim version %s\n", version)
		},
	}
}
