package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active account and its preferences",
	Long: `Display the currently active GitHub account along with its
assigned color, label and git identity profile.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	var active *gh.Account
	accounts := ctx.coordinator.Accounts()
	for i := range accounts {
		if accounts[i].Active {
			active = &accounts[i]
			break
		}
	}

	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, "Active Account")
	fmt.Fprintln(ui.Out, "──────────────")

	if active == nil {
		fmt.Fprintln(ui.Out, "  No active account")
		fmt.Fprintln(ui.Out, "  Run 'hubswitch use <login>' to activate one")
		return nil
	}

	colorIdx := ctx.coordinator.ColorIndex(*active)
	fmt.Fprintf(ui.Out, "  Account:  %s %s\n", ui.Colorize("●", colorIdx), active.DefaultDisplayName())
	if label := ctx.store.Label(active.ID()); label != "" {
		fmt.Fprintf(ui.Out, "  Label:    %s\n", label)
	}

	profile := ctx.store.Profile(active.ID())
	if profile.IsEmpty() {
		fmt.Fprintln(ui.Out, "  Profile:  none (git identity unchanged on switch)")
	} else {
		fmt.Fprintf(ui.Out, "  Profile:  %s\n", profile.DisplayLabel())
	}

	fmt.Fprintf(ui.Out, "  Accounts: %d authenticated\n", len(accounts))
	return nil
}
