package cmd

import (
	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/app"
	"github.com/byterings/hubswitch/internal/ui"
)

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Re-issue the last failed operation",
	Long: `Re-run the operation that failed most recently, either a refresh
or a switch to a specific account.`,
	RunE: runRetry,
}

func init() {
	rootCmd.AddCommand(retryCmd)
}

func runRetry(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	op, ok := loadRetryState(ctx.configDir)
	if !ok {
		ui.Info("Nothing to retry")
		return nil
	}

	var opErr error
	switch op.Kind {
	case app.OpSwitch:
		ui.Info("Retrying switch to " + op.Login + "@" + op.Host)
		if opErr = ctx.coordinator.Refresh(cmd.Context()); opErr == nil {
			account, findErr := findAccount(ctx.coordinator.Accounts(), op.Login, op.Host)
			if findErr != nil {
				finishOp(ctx, nil)
				return findErr
			}
			opErr = ctx.coordinator.SwitchTo(cmd.Context(), account)
		}
	default:
		ui.Info("Retrying refresh")
		opErr = ctx.coordinator.Refresh(cmd.Context())
	}

	finishOp(ctx, opErr)
	if opErr != nil {
		return reportError(opErr)
	}

	ui.Success("Done")
	ui.PrintAccounts(ctx.coordinator.Accounts(), ctx.coordinator)
	return nil
}
