package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/byterings/hubswitch/internal/app"
	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/platform"
	"github.com/byterings/hubswitch/internal/prefs"
	"github.com/byterings/hubswitch/internal/runner"
	"github.com/byterings/hubswitch/internal/ui"
)

// appContext wires the collaborators every command needs.
type appContext struct {
	store       *prefs.Store
	client      *gh.Client
	coordinator *app.Coordinator
	scanner     *git.Scanner
	configDir   string
}

// newAppContext builds the command runner, gh client, preference store and
// coordinator, creating the config directory on first use.
func newAppContext() (*appContext, error) {
	configDir, err := prefs.DefaultDir()
	if err != nil {
		return nil, err
	}

	store, err := prefs.New(configDir)
	if err != nil {
		return nil, err
	}

	run := &runner.ExecRunner{}
	if verbose {
		run.Trace = func(cmd string) { ui.Info("running: " + cmd) }
	}

	client := gh.NewClient(run)
	applier := &git.Applier{Runner: run, Warnf: ui.Warningf}
	scanner := git.NewScanner()
	scanner.Warnf = func(format string, args ...any) {
		if verbose {
			ui.Warningf(format, args...)
		}
	}

	return &appContext{
		store:       store,
		client:      client,
		coordinator: app.New(client, applier, store),
		scanner:     scanner,
		configDir:   configDir,
	}, nil
}

// findAccount resolves a login (optionally qualified by --hostname) against
// the fetched account list.
func findAccount(accounts []gh.Account, login, hostname string) (gh.Account, error) {
	var matches []gh.Account
	for _, a := range accounts {
		if !strings.EqualFold(a.Login, login) {
			continue
		}
		if hostname != "" && !strings.EqualFold(a.Host, hostname) {
			continue
		}
		matches = append(matches, a)
	}

	switch len(matches) {
	case 0:
		if hostname != "" {
			return gh.Account{}, fmt.Errorf("no account '%s' on %s\nRun: hubswitch list", login, hostname)
		}
		return gh.Account{}, fmt.Errorf("no account '%s'\nRun: hubswitch list", login)
	case 1:
		return matches[0], nil
	default:
		hosts := make([]string, len(matches))
		for i, m := range matches {
			hosts[i] = m.Host
		}
		return gh.Account{}, fmt.Errorf("'%s' exists on multiple hosts (%s), use --hostname", login, strings.Join(hosts, ", "))
	}
}

// reportError prints a mapped error title plus details and returns a bare
// error so cobra exits non-zero without re-printing.
func reportError(err error) error {
	title, details := app.UserMessage(err)
	ui.Error(title)
	if details != "" {
		fmt.Fprintln(ui.Out, "  "+details)
	}
	return fmt.Errorf("%s", strings.ToLower(title))
}

const retryStateFileName = "last_failure.toml"

// retryState records the last failed operation so `hubswitch retry` can
// re-issue it from a fresh process.
type retryState struct {
	Operation string `toml:"operation"`
	Host      string `toml:"host,omitempty"`
	Login     string `toml:"login,omitempty"`
}

func saveRetryState(configDir string, op app.Operation) {
	path := filepath.Join(configDir, retryStateFileName)
	if op.Kind == app.OpNone {
		_ = os.Remove(path)
		return
	}
	f, err := platform.OpenFileSecure(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return
	}
	defer f.Close()
	_ = toml.NewEncoder(f).Encode(retryState{
		Operation: string(op.Kind),
		Host:      op.Host,
		Login:     op.Login,
	})
}

func loadRetryState(configDir string) (app.Operation, bool) {
	var st retryState
	if _, err := toml.DecodeFile(filepath.Join(configDir, retryStateFileName), &st); err != nil {
		return app.Operation{}, false
	}
	kind := app.OperationKind(st.Operation)
	if kind != app.OpRefresh && kind != app.OpSwitch {
		return app.Operation{}, false
	}
	return app.Operation{Kind: kind, Host: st.Host, Login: st.Login}, true
}

// finishOp persists or clears the retry state after an operation so the
// next `hubswitch retry` does the right thing.
func finishOp(ctx *appContext, err error) {
	if err != nil {
		saveRetryState(ctx.configDir, ctx.coordinator.LastOperation())
	} else {
		saveRetryState(ctx.configDir, app.Operation{})
	}
}
