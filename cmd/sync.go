package cmd

import (
	"ez-sync/internal/resolver"

	"github.com/spf13/cobra"
)

// pushCmd copies local onto remote for a profile, a group, or "all".
var pushCmd = &cobra.Command{
	Use:   "push <name|all>",
	Short: "Push profiles from local to remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, resolver.Push{Name: args[0]})
	},
}

// pullCmd copies remote onto local for a profile, a group, or "all".
var pullCmd = &cobra.Command{
	Use:   "pull <name|all>",
	Short: "Pull profiles from remote to local",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, resolver.Pull{Name: args[0]})
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}
