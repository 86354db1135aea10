package cmd

import (
	"fmt"
	"os"

	"ez-sync/internal/logger"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	// debug enables [DEBUG] log lines, set with --debug.
	debug bool
	// configPath overrides the default profile store, set with --config.
	configPath string
	// rsyncPath is the transfer tool run for every push and pull, set with --rsync.
	rsyncPath string
)

// rootCmd is the base command; every subcommand works on the same profile store.
var rootCmd = &cobra.Command{
	Use:     "ez-sync",
	Short:   "Push and pull named local/remote folder pairs with rsync",
	Version: version,

	SilenceUsage:  true,
	SilenceErrors: true,

	// Initialize logging before any subcommand runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ez-sync version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "ez-sync", version)
	},
}

// Execute runs the CLI and exits non-zero when the command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Use this profile store instead of the default one (must exist)")
	rootCmd.PersistentFlags().StringVar(&rsyncPath, "rsync", "rsync", "rsync binary used for push and pull")

	rootCmd.AddCommand(versionCmd)
}
