// Package gh lists and switches GitHub CLI accounts by shelling out to gh.
package gh

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/byterings/hubswitch/internal/runner"
	"github.com/kballard/go-shellquote"
)

// EnvCommand overrides the gh executable, e.g. "mise exec -- gh". The value
// is split with shell quoting rules.
const EnvCommand = "HUBSWITCH_GH_COMMAND"

// Client invokes the gh CLI for account listing and switching.
type Client struct {
	runner runner.Runner
	exe    string
	prefix []string
}

// NewClient builds a Client around the given runner, honoring EnvCommand.
func NewClient(r runner.Runner) *Client {
	c := &Client{runner: r, exe: "gh"}
	if override := os.Getenv(EnvCommand); override != "" {
		if words, err := shellquote.Split(override); err == nil && len(words) > 0 {
			c.exe = words[0]
			c.prefix = words[1:]
		}
	}
	return c
}

func (c *Client) run(ctx context.Context, args ...string) (runner.Result, string, error) {
	full := append(append([]string{}, c.prefix...), args...)
	res, err := c.runner.Run(ctx, c.exe, full...)
	return res, runner.CommandLine(c.exe, full), err
}

// authPayload matches `gh auth status --json hosts`. Active is kept raw so
// a non-boolean value degrades to false instead of failing the decode.
type authPayload struct {
	Hosts map[string][]authEntry `json:"hosts"`
}

type authEntry struct {
	Host   string          `json:"host"`
	Login  string          `json:"login"`
	Active json.RawMessage `json:"active"`
}

// Accounts runs `gh auth status --json hosts` and returns the authenticated
// accounts sorted active-first, then by host and login case-insensitively.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	res, cmdline, err := c.run(ctx, "auth", "status", "--json", "hosts")
	if err != nil {
		if errors.Is(err, runner.ErrLaunchFailed) {
			return nil, ErrToolNotInstalled
		}
		return nil, err
	}
	if isNotFoundOutput(res) {
		return nil, ErrToolNotInstalled
	}
	if res.ExitCode != 0 {
		return nil, &CommandError{Command: cmdline, Details: outputDetails(res)}
	}

	var payload authPayload
	if err := json.Unmarshal([]byte(res.Stdout), &payload); err != nil {
		return nil, ErrInvalidPayload
	}
	if payload.Hosts == nil {
		return nil, ErrInvalidPayload
	}

	var accounts []Account
	for host, entries := range payload.Hosts {
		for _, e := range entries {
			if e.Login == "" {
				continue
			}
			h := e.Host
			if h == "" {
				h = host
			}
			accounts = append(accounts, Account{
				Host:   h,
				Login:  e.Login,
				Active: string(e.Active) == "true",
			})
		}
	}

	sortAccounts(accounts)

	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}
	return accounts, nil
}

// Switch activates the account and reconfigures git credential helpers.
// The setup step is skipped when the switch itself fails.
func (c *Client) Switch(ctx context.Context, host, login string) error {
	if err := c.runChecked(ctx, "auth", "switch", "--hostname", host, "--user", login); err != nil {
		return err
	}
	return c.runChecked(ctx, "auth", "setup-git", "--hostname", host)
}

func (c *Client) runChecked(ctx context.Context, args ...string) error {
	res, cmdline, err := c.run(ctx, args...)
	if err != nil {
		if errors.Is(err, runner.ErrLaunchFailed) {
			return ErrToolNotInstalled
		}
		return err
	}
	if res.ExitCode != 0 {
		return &CommandError{Command: cmdline, Details: outputDetails(res)}
	}
	return nil
}

// isNotFoundOutput recognizes shells and wrappers reporting a missing gh
// binary on a non-zero exit.
func isNotFoundOutput(res runner.Result) bool {
	if res.ExitCode == 0 {
		return false
	}
	out := strings.ToLower(res.Stdout + res.Stderr)
	return strings.Contains(out, "not found")
}

func outputDetails(res runner.Result) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(res.Stdout); s != "" {
		return s
	}
	return "no output"
}
