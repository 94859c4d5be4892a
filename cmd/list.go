package cmd

import (
	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gh-authenticated accounts",
	Long:    `Fetch the accounts known to the GitHub CLI and display them with their assigned colors and labels, active account first.`,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	ui.PrintAccounts(ctx.coordinator.Accounts(), ctx.coordinator)
	return nil
}
