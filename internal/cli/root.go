// Package cli provides the command-line interface for arestools.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aardalath/arestools/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "arestools",
	Short: "Data file import tools for the ARES server",
	Long: `Arestools imports batches of data files into a running ARES server.

Files are classified by name against an ordered type catalog, dropped into
the watched import tree of the runtime folder, and the server log is polled
until each import is confirmed or rejected.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for help and completion commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		// Load config
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close the log file
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(watchCmd)
}
