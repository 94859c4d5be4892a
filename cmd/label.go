package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/ui"
)

var labelHostname string

var labelCmd = &cobra.Command{
	Use:   "label <login> [text]",
	Short: "Set or clear an account's display label",
	Long: `Set a display label for an account. The label replaces the default
"login@host" name in listings. Omitting the text clears the label.`,
	Args: cobra.RangeArgs(1, 2),
	Example: `  hubswitch label octocat "Work"
  hubswitch label octocat          # clear`,
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.Flags().StringVar(&labelHostname, "hostname", "", "Host of the account")
}

func runLabel(cmd *cobra.Command, args []string) error {
	login := args[0]
	label := ""
	if len(args) > 1 {
		label = args[1]
	}

	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	account, err := findAccount(ctx.coordinator.Accounts(), login, labelHostname)
	if err != nil {
		return err
	}

	if err := ctx.store.SetLabel(account.ID(), label); err != nil {
		return fmt.Errorf("failed to save label: %w", err)
	}

	if strings.TrimSpace(label) == "" {
		ui.Success(fmt.Sprintf("Cleared label for %s", account.DefaultDisplayName()))
	} else {
		ui.Success(fmt.Sprintf("Labeled %s as %q", account.DefaultDisplayName(), label))
	}
	return nil
}
