package cmd

import (
	"ez-sync/internal/resolver"

	"github.com/spf13/cobra"
)

// addCmd stores a new profile or overwrites an existing one.
var addCmd = &cobra.Command{
	Use:   "add <name> <local> <remote>",
	Short: "Add a profile, use group.name to add it to a group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, resolver.Add{Name: args[0], Local: args[1], Remote: args[2]})
	},
}

// removeCmd deletes a profile, or a whole group with its profiles.
var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a profile or a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, resolver.Remove{Name: args[0]})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, resolver.List{})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}
