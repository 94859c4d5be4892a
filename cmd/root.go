package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hubswitch",
	Short: "Switch between GitHub CLI accounts",
	Long: `hubswitch: Manage multiple gh-authenticated GitHub accounts.

Lists the accounts known to the GitHub CLI, switches between them, and
applies a per-account git identity (user.name/user.email) on switch.
Per-account colors, labels and identity profiles are remembered in
~/.hubswitch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo external commands as they run")
}
