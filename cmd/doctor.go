package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/platform"
	"github.com/byterings/hubswitch/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose setup issues",
	Long: `Check hubswitch setup health and diagnose common issues.

Runs checks on:
- gh CLI availability and authenticated accounts
- git availability for identity application
- Preference directory writability
- Git config profile discovery`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "Checking hubswitch setup on %s...\n", platform.GetPlatformName())
	fmt.Fprintln(ui.Out)

	ctx, err := newAppContext()
	if err != nil {
		ui.Error(fmt.Sprintf("Cannot continue: %v", err))
		return nil
	}

	problems := 0

	fmt.Fprintln(ui.Out, "GitHub CLI")
	fmt.Fprintln(ui.Out, "──────────")
	for _, r := range checkGh(cmd, ctx) {
		printCheckResult(r)
		if !r.passed {
			problems++
		}
	}

	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, "Git")
	fmt.Fprintln(ui.Out, "───")
	for _, r := range checkGit(ctx) {
		printCheckResult(r)
		if !r.passed {
			problems++
		}
	}

	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, "Preferences")
	fmt.Fprintln(ui.Out, "───────────")
	for _, r := range checkPrefs(ctx) {
		printCheckResult(r)
		if !r.passed {
			problems++
		}
	}

	fmt.Fprintln(ui.Out)
	if problems == 0 {
		ui.Success("All checks passed")
	} else {
		ui.Warning(fmt.Sprintf("%d problem(s) found", problems))
	}
	return nil
}

func checkGh(cmd *cobra.Command, ctx *appContext) []checkResult {
	var results []checkResult

	if platform.HasCommand("gh") {
		results = append(results, checkResult{passed: true, message: "gh found in PATH"})
	} else {
		results = append(results, checkResult{
			passed:  false,
			message: "gh not found in PATH",
			fix:     "brew install gh",
		})
		return results
	}

	accounts, err := ctx.client.Accounts(cmd.Context())
	switch {
	case err == nil:
		results = append(results, checkResult{
			passed:  true,
			message: fmt.Sprintf("%d authenticated account(s)", len(accounts)),
		})
	case errors.Is(err, gh.ErrNoAccounts):
		results = append(results, checkResult{
			passed:  false,
			message: "no authenticated accounts",
			fix:     "gh auth login",
		})
	default:
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("account listing failed: %v", err),
		})
	}

	return results
}

func checkGit(ctx *appContext) []checkResult {
	var results []checkResult

	if _, err := os.Stat(git.DefaultGitPath); err == nil {
		results = append(results, checkResult{passed: true, message: "git found at " + git.DefaultGitPath})
	} else if platform.HasCommand("git") {
		results = append(results, checkResult{
			passed:  true,
			message: "git found in PATH (not at " + git.DefaultGitPath + ")",
		})
	} else {
		results = append(results, checkResult{
			passed:  false,
			message: "git not found; identity profiles cannot be applied",
			fix:     "xcode-select --install",
		})
	}

	profiles := ctx.scanner.Discover()
	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("%d identity profile(s) discovered from git config", len(profiles)),
	})

	return results
}

func checkPrefs(ctx *appContext) []checkResult {
	var results []checkResult

	probe := filepath.Join(ctx.configDir, ".doctor-probe")
	if err := platform.CreateFileSecure(probe, []byte("ok")); err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("preference directory not writable: %v", err),
		})
	} else {
		os.Remove(probe)
		results = append(results, checkResult{passed: true, message: "preference directory writable: " + ctx.configDir})
	}

	return results
}

func printCheckResult(r checkResult) {
	if r.passed {
		fmt.Fprintf(ui.Out, "  ✓ %s\n", r.message)
		return
	}
	fmt.Fprintf(ui.Out, "  ✗ %s\n", r.message)
	if r.fix != "" {
		fmt.Fprintf(ui.Out, "    Fix: %s\n", r.fix)
	}
}
