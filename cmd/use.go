package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/ui"
)

var useHostname string

var useCmd = &cobra.Command{
	Use:   "use <login>",
	Short: "Switch to a different GitHub account",
	Long: `Switch the GitHub CLI to a different account, reconfigure git
credential helpers for it, and apply the account's assigned git identity
profile if one is set.`,
	Args: cobra.ExactArgs(1),
	Example: `  hubswitch use octocat
  hubswitch use octocat --hostname github.example.com`,
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.Flags().StringVar(&useHostname, "hostname", "", "Host of the account to switch to")
}

func runUse(cmd *cobra.Command, args []string) error {
	login := args[0]

	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	if err := ctx.coordinator.Refresh(cmd.Context()); err != nil {
		finishOp(ctx, err)
		return reportError(err)
	}

	account, err := findAccount(ctx.coordinator.Accounts(), login, useHostname)
	if err != nil {
		return err
	}

	if account.Active {
		ui.Info(fmt.Sprintf("%s is already active", account.DefaultDisplayName()))
		return nil
	}

	fmt.Fprintf(ui.Out, "Switching to: %s\n", ctx.coordinator.DisplayName(account))

	switchErr := ctx.coordinator.SwitchTo(cmd.Context(), account)
	finishOp(ctx, switchErr)
	if switchErr != nil {
		return reportError(switchErr)
	}

	ui.Success("Account switched successfully")
	return nil
}
