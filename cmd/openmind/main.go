package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openmind",
		Short: "Model the accuracy of open-minded agents",
		Long: `openmind computes how often an agent that consults peers through
source and content filters ends up with the right belief, where the
benefit of open-mindedness tips over, and grids of those quantities.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("yaml", false, "Output as YAML")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine activity to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInformationCmd(),
		newAccuracyCmd(),
		newTippingCmd(),
		newTippingSourceCmd(),
		newSweepCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a development logger with --verbose and a no-op
// logger otherwise.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
