package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/prefs"
	"github.com/byterings/hubswitch/internal/runner"
)

// fakeSource scripts account listings and records the call sequence shared
// with fakeApplier so ordering can be asserted.
type fakeSource struct {
	accounts  []gh.Account
	fetchErr  error
	switchErr error
	log       *[]string

	// release, when set, blocks Accounts until the channel is closed.
	release chan struct{}
}

func (f *fakeSource) Accounts(ctx context.Context) ([]gh.Account, error) {
	if f.release != nil {
		<-f.release
	}
	*f.log = append(*f.log, "fetch")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]gh.Account, len(f.accounts))
	copy(out, f.accounts)
	return out, nil
}

func (f *fakeSource) Switch(ctx context.Context, host, login string) error {
	*f.log = append(*f.log, "switch "+login+"@"+host)
	return f.switchErr
}

type fakeApplier struct {
	log *[]string
}

func (f *fakeApplier) Apply(ctx context.Context, profile git.IdentityProfile) {
	*f.log = append(*f.log, "apply "+profile.DisplayLabel())
}

func newTestCoordinator(t *testing.T, source *fakeSource) (*Coordinator, *prefs.Store, *[]string) {
	t.Helper()
	store, err := prefs.New(t.TempDir())
	if err != nil {
		t.Fatalf("prefs.New: %v", err)
	}
	log := &[]string{}
	source.log = log
	return New(source, &fakeApplier{log: log}, store), store, log
}

var testAccounts = []gh.Account{
	{Host: "github.com", Login: "alice", Active: true},
	{Host: "github.com", Login: "bob"},
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	c, _, _ := newTestCoordinator(t, &fakeSource{accounts: testAccounts})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got := c.Accounts()
	if len(got) != 2 || got[0].Login != "alice" {
		t.Errorf("accounts = %+v", got)
	}
	if c.Busy() {
		t.Error("busy should be cleared after refresh")
	}
	if c.LastError() != nil {
		t.Errorf("lastErr = %v, want nil", c.LastError())
	}
}

func TestRefresh_RecordsErrorAndClearsBusy(t *testing.T) {
	c, _, _ := newTestCoordinator(t, &fakeSource{fetchErr: gh.ErrNoAccounts})

	err := c.Refresh(context.Background())
	if !errors.Is(err, gh.ErrNoAccounts) {
		t.Fatalf("err = %v, want ErrNoAccounts", err)
	}
	if c.Busy() {
		t.Error("busy must clear on the failure path")
	}
	if !errors.Is(c.LastError(), gh.ErrNoAccounts) {
		t.Errorf("lastErr = %v", c.LastError())
	}
	if c.LastOperation().Kind != OpRefresh {
		t.Errorf("lastOp = %+v, want refresh", c.LastOperation())
	}
}

func TestRefresh_DroppedWhileInFlight(t *testing.T) {
	source := &fakeSource{accounts: testAccounts, release: make(chan struct{})}
	c, _, _ := newTestCoordinator(t, source)

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()

	// Wait for the first refresh to claim the busy flag.
	for !c.Busy() {
		time.Sleep(time.Millisecond)
	}

	if err := c.Refresh(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent refresh err = %v, want ErrBusy", err)
	}

	close(source.release)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if c.Busy() {
		t.Error("busy should clear once the first refresh finishes")
	}
}

func TestSwitchTo_AlreadyActiveIsNoop(t *testing.T) {
	source := &fakeSource{accounts: testAccounts}
	c, _, log := newTestCoordinator(t, source)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	*log = nil

	if err := c.SwitchTo(context.Background(), testAccounts[0]); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if len(*log) != 0 {
		t.Errorf("log = %v, want no external calls for the active account", *log)
	}
}

func TestSwitchTo_NoProfileAssigned(t *testing.T) {
	source := &fakeSource{accounts: testAccounts}
	c, _, log := newTestCoordinator(t, source)

	if err := c.SwitchTo(context.Background(), testAccounts[1]); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}

	want := []string{"switch bob@github.com", "fetch"}
	assertLog(t, *log, want)
}

func TestSwitchTo_AppliesAssignedProfileThenRefetches(t *testing.T) {
	source := &fakeSource{accounts: testAccounts}
	c, store, log := newTestCoordinator(t, source)

	profile := git.IdentityProfile{Name: "Bob Work", Email: "bob@work.example"}
	if err := store.SetProfile("github.com|bob", profile); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	if err := c.SwitchTo(context.Background(), testAccounts[1]); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}

	want := []string{"switch bob@github.com", "apply Bob Work <bob@work.example>", "fetch"}
	assertLog(t, *log, want)
}

func TestSwitchTo_FailureRecordedForRetry(t *testing.T) {
	source := &fakeSource{accounts: testAccounts, switchErr: &gh.CommandError{Command: "gh auth switch", Details: "boom"}}
	c, _, log := newTestCoordinator(t, source)

	err := c.SwitchTo(context.Background(), testAccounts[1])
	var cmdErr *gh.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("err = %v, want *CommandError", err)
	}
	if c.Busy() {
		t.Error("busy must clear on the failure path")
	}

	op := c.LastOperation()
	if op.Kind != OpSwitch || op.Login != "bob" || op.Host != "github.com" {
		t.Errorf("lastOp = %+v", op)
	}

	// No profile application or refetch after a failed switch.
	assertLog(t, *log, []string{"switch bob@github.com"})

	// Retry re-issues exactly the failed switch.
	source.switchErr = nil
	*log = nil
	if err := c.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	assertLog(t, *log, []string{"switch bob@github.com", "fetch"})
}

func TestRetry_NothingToRetry(t *testing.T) {
	c, _, log := newTestCoordinator(t, &fakeSource{})
	if err := c.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if len(*log) != 0 {
		t.Errorf("log = %v, want no calls", *log)
	}
}

func TestDisplayNameAndColor(t *testing.T) {
	c, store, _ := newTestCoordinator(t, &fakeSource{})
	account := gh.Account{Host: "github.com", Login: "alice"}

	if got := c.DisplayName(account); got != "alice@github.com" {
		t.Errorf("DisplayName = %q, want fallback", got)
	}

	if err := store.SetLabel(account.ID(), "Work"); err != nil {
		t.Fatalf("SetLabel: %v", err)
	}
	if got := c.DisplayName(account); got != "Work" {
		t.Errorf("DisplayName = %q, want label", got)
	}

	if got := c.ColorIndex(account); got != prefs.DefaultColorIndex(account.ID()) {
		t.Errorf("ColorIndex = %d, want derived default", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
	}{
		{"nil", nil, ""},
		{"tool missing", gh.ErrToolNotInstalled, "GitHub CLI not found"},
		{"bad payload", gh.ErrInvalidPayload, "Unexpected gh output"},
		{"no accounts", gh.ErrNoAccounts, "No authenticated accounts"},
		{"timeout", runner.ErrTimedOut, "Command timed out"},
		{"busy", ErrBusy, "Busy"},
		{"command failed", &gh.CommandError{Command: "gh", Details: "boom"}, "Command failed"},
		{"unknown", errors.New("weird"), "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, _ := UserMessage(tt.err)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
		})
	}

	// CommandError details are surfaced verbatim.
	_, details := UserMessage(&gh.CommandError{Command: "gh", Details: "boom"})
	if details != "boom" {
		t.Errorf("details = %q, want boom", details)
	}
}

func assertLog(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log[%d] = %q, want %q (full log %v)", i, got[i], want[i], got)
		}
	}
}
