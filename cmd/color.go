package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/prefs"
	"github.com/byterings/hubswitch/internal/ui"
)

var colorHostname string

var colorCmd = &cobra.Command{
	Use:   "color <login> [index]",
	Short: "Assign a palette color to an account",
	Long: `Assign one of the palette colors to an account. Without an index,
prints the palette with each color's number. Accounts without an assigned
color get a stable default derived from their identity.`,
	Args: cobra.RangeArgs(1, 2),
	Example: `  hubswitch color octocat 3
  hubswitch color octocat    # show palette and current assignment`,
	RunE: runColor,
}

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.Flags().StringVar(&colorHostname, "hostname", "", "Host of the account")
}

func runColor(cmd *cobra.Command, args []string) error {
	login := args[0]

	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	account, err := findAccount(ctx.coordinator.Accounts(), login, colorHostname)
	if err != nil {
		return err
	}

	if len(args) < 2 {
		current := ctx.store.ColorIndex(account.ID())
		fmt.Fprintf(ui.Out, "Current: %s %d\n\n", ui.Colorize("●", current), current)
		for i := range prefs.Palette {
			fmt.Fprintf(ui.Out, "  %s %d\n", ui.Colorize("●", i), i)
		}
		return nil
	}

	index, err := strconv.Atoi(args[1])
	if err != nil || index < 0 || index >= prefs.PaletteSize() {
		return fmt.Errorf("color index must be between 0 and %d", prefs.PaletteSize()-1)
	}

	if err := ctx.store.SetColorIndex(account.ID(), index); err != nil {
		return fmt.Errorf("failed to save color: %w", err)
	}

	ui.Success(fmt.Sprintf("Set color %s %d for %s", ui.Colorize("●", index), index, account.DefaultDisplayName()))
	return nil
}
