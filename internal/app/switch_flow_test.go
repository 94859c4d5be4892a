package app

import (
	"context"
	"strings"
	"testing"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/prefs"
	"github.com/byterings/hubswitch/internal/runner"
)

// scriptedRunner serves real gh.Client and git.Applier invocations by
// matching on the argument list, recording every call.
type scriptedRunner struct {
	calls      []string
	gitFails   bool
	statusJSON string
}

func (r *scriptedRunner) Run(ctx context.Context, exe string, args ...string) (runner.Result, error) {
	call := strings.Join(append([]string{exe}, args...), " ")
	r.calls = append(r.calls, call)

	switch {
	case strings.Contains(call, "auth status"):
		return runner.Result{Stdout: r.statusJSON}, nil
	case strings.HasSuffix(exe, "git") && r.gitFails:
		return runner.Result{Stderr: "lock held", ExitCode: 1}, nil
	default:
		return runner.Result{}, nil
	}
}

func newSwitchFlowCoordinator(t *testing.T, r *scriptedRunner) (*Coordinator, *prefs.Store) {
	t.Helper()
	t.Setenv(gh.EnvCommand, "")
	store, err := prefs.New(t.TempDir())
	if err != nil {
		t.Fatalf("prefs.New: %v", err)
	}
	client := gh.NewClient(r)
	applier := &git.Applier{Runner: r}
	return New(client, applier, store), store
}

const twoAccountsJSON = `{"hosts": {"github.com": [
	{"login": "alice", "active": true},
	{"login": "bob"}
]}}`

func TestSwitchFlow_WithoutProfile(t *testing.T) {
	r := &scriptedRunner{statusJSON: twoAccountsJSON}
	c, _ := newSwitchFlowCoordinator(t, r)

	err := c.SwitchTo(context.Background(), gh.Account{Host: "github.com", Login: "bob"})
	if err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}

	// Exactly switch, setup, then the refetch.
	want := []string{
		"gh auth switch --hostname github.com --user bob",
		"gh auth setup-git --hostname github.com",
		"gh auth status --json hosts",
	}
	assertLog(t, r.calls, want)
}

func TestSwitchFlow_WithProfileBestEffortFailure(t *testing.T) {
	r := &scriptedRunner{statusJSON: twoAccountsJSON, gitFails: true}
	c, store := newSwitchFlowCoordinator(t, r)

	profile := git.IdentityProfile{Name: "Bob Work", Email: "bob@work.example"}
	if err := store.SetProfile("github.com|bob", profile); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	// Both identity invocations fail, yet the switch still succeeds.
	err := c.SwitchTo(context.Background(), gh.Account{Host: "github.com", Login: "bob"})
	if err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}

	want := []string{
		"gh auth switch --hostname github.com --user bob",
		"gh auth setup-git --hostname github.com",
		"/usr/bin/git config --global user.name Bob Work",
		"/usr/bin/git config --global user.email bob@work.example",
		"gh auth status --json hosts",
	}
	assertLog(t, r.calls, want)
}
