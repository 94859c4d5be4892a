package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/ui"
)

var (
	profileHostname string
	profileName     string
	profileEmail    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage git identity profiles",
	Long: `Manage the git identity profiles (user.name/user.email pairs)
that can be applied when switching accounts. Profiles are discovered from
your git config files; additional ones can be added manually.`,
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List discovered and manually added profiles",
	RunE:    runProfileList,
}

var profileAssignCmd = &cobra.Command{
	Use:   "assign <login>",
	Short: "Assign a profile to an account",
	Long: `Assign a git identity profile to an account. The profile is
applied to the global git config every time the account is activated.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileAssign,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear <login>",
	Short: "Remove an account's profile assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileClear,
}

var profileAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a profile manually",
	Long:  `Add a git identity profile that is not present in any git config file. Prompts for name and email unless given via flags.`,
	RunE:  runProfileAdd,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a manually added profile",
	RunE:  runProfileRemove,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAssignCmd)
	profileCmd.AddCommand(profileClearCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)

	profileAssignCmd.Flags().StringVar(&profileHostname, "hostname", "", "Host of the account")
	profileClearCmd.Flags().StringVar(&profileHostname, "hostname", "", "Host of the account")
	profileAddCmd.Flags().StringVar(&profileName, "name", "", "Profile name")
	profileAddCmd.Flags().StringVar(&profileEmail, "email", "", "Profile email")
}

// allProfiles merges discovered and manual profiles, deduplicated by
// equality (a manual profile that also exists in a config file is shown
// once) and sorted by display label.
func allProfiles(ctx *appContext) []git.IdentityProfile {
	discovered := ctx.scanner.Discover()
	seen := make(map[git.IdentityProfile]bool, len(discovered))
	for _, p := range discovered {
		seen[p] = true
	}

	merged := discovered
	for _, p := range ctx.store.ManualProfiles() {
		if !seen[p] {
			merged = append(merged, p)
		}
	}
	git.SortProfiles(merged)
	return merged
}

func runProfileList(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	discovered := make(map[git.IdentityProfile]bool)
	for _, p := range ctx.scanner.Discover() {
		discovered[p] = true
	}

	profiles := allProfiles(ctx)
	if len(profiles) == 0 {
		fmt.Fprintln(ui.Out, "No profiles found.")
		fmt.Fprintln(ui.Out, "\nAdd one with: hubswitch profile add")
		return nil
	}

	fmt.Fprintln(ui.Out)
	for _, p := range profiles {
		origin := ""
		if !discovered[p] {
			origin = " (manual)"
		}
		fmt.Fprintf(ui.Out, "  %s%s\n", p.DisplayLabel(), origin)
	}
	fmt.Fprintln(ui.Out)
	return nil
}

func runProfileAssign(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	account, err := findAccount(ctx.coordinator.Accounts(), args[0], profileHostname)
	if err != nil {
		return err
	}

	profiles := allProfiles(ctx)
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles to assign\nAdd one with: hubswitch profile add")
	}

	choice, err := ui.PromptProfileChoice(
		fmt.Sprintf("Profile for %s:", account.DefaultDisplayName()), profiles)
	if err != nil {
		return err
	}

	if err := ctx.store.SetProfile(account.ID(), profiles[choice]); err != nil {
		return fmt.Errorf("failed to save profile assignment: %w", err)
	}

	ui.Success(fmt.Sprintf("Assigned %s to %s", profiles[choice].DisplayLabel(), account.DefaultDisplayName()))
	return nil
}

func runProfileClear(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	refreshErr := ctx.coordinator.Refresh(cmd.Context())
	finishOp(ctx, refreshErr)
	if refreshErr != nil {
		return reportError(refreshErr)
	}

	account, err := findAccount(ctx.coordinator.Accounts(), args[0], profileHostname)
	if err != nil {
		return err
	}

	if err := ctx.store.SetProfile(account.ID(), git.IdentityProfile{}); err != nil {
		return fmt.Errorf("failed to clear profile assignment: %w", err)
	}

	ui.Success(fmt.Sprintf("Cleared profile for %s", account.DefaultDisplayName()))
	return nil
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	profile := git.IdentityProfile{Name: profileName, Email: profileEmail}
	if profile.IsEmpty() {
		profile, err = ui.PromptProfileInfo()
		if err != nil {
			return err
		}
	}
	if profile.IsEmpty() {
		return fmt.Errorf("profile needs a name or an email")
	}

	if err := ctx.store.AddManualProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	ui.Success(fmt.Sprintf("Added profile %s", profile.DisplayLabel()))
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	manual := ctx.store.ManualProfiles()
	if len(manual) == 0 {
		fmt.Fprintln(ui.Out, "No manually added profiles.")
		return nil
	}

	choice, err := ui.PromptProfileChoice("Remove which profile?", manual)
	if err != nil {
		return err
	}

	confirmed, err := ui.PromptConfirmation(
		fmt.Sprintf("Remove %s?", manual[choice].DisplayLabel()))
	if err != nil {
		return err
	}
	if !confirmed {
		ui.Info("Cancelled")
		return nil
	}

	if err := ctx.store.RemoveManualProfile(manual[choice]); err != nil {
		return fmt.Errorf("failed to remove profile: %w", err)
	}

	ui.Success(fmt.Sprintf("Removed profile %s", manual[choice].DisplayLabel()))
	return nil
}
