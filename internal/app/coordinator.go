// Package app coordinates account state: the current snapshot, in-flight
// operation tracking and user-facing error mapping.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/prefs"
	"github.com/byterings/hubswitch/internal/runner"
)

// ErrBusy indicates another operation is in flight. Requests arriving while
// busy are dropped, not queued.
var ErrBusy = errors.New("another operation is in progress")

// AccountSource lists and switches accounts.
type AccountSource interface {
	Accounts(ctx context.Context) ([]gh.Account, error)
	Switch(ctx context.Context, host, login string) error
}

// IdentityApplier applies a git identity, best-effort.
type IdentityApplier interface {
	Apply(ctx context.Context, profile git.IdentityProfile)
}

// Operation describes the last attempted account operation, so a single
// retry action can re-issue exactly it.
type Operation struct {
	Kind  OperationKind
	Host  string
	Login string
}

type OperationKind string

const (
	OpNone    OperationKind = ""
	OpRefresh OperationKind = "refresh"
	OpSwitch  OperationKind = "switch"
)

// Coordinator owns all mutable account state. State transitions happen
// under one mutex; external commands run outside it so a slow tool never
// blocks readers.
type Coordinator struct {
	source  AccountSource
	applier IdentityApplier
	store   *prefs.Store

	mu       sync.Mutex
	accounts []gh.Account
	busy     bool
	lastErr  error
	lastOp   Operation
}

// New builds a Coordinator over the given collaborators.
func New(source AccountSource, applier IdentityApplier, store *prefs.Store) *Coordinator {
	return &Coordinator{source: source, applier: applier, store: store}
}

// Accounts returns the current snapshot.
func (c *Coordinator) Accounts() []gh.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]gh.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Busy reports whether an operation is in flight.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// LastError returns the error recorded by the most recent operation.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastOperation returns the most recent attempted operation.
func (c *Coordinator) LastOperation() Operation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOp
}

// Refresh fetches a fresh account list, replacing the snapshot wholesale.
// Dropped with ErrBusy while another operation is in flight.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.begin(Operation{Kind: OpRefresh}) {
		return ErrBusy
	}
	err := c.fetch(ctx)
	c.finish(err)
	return err
}

// SwitchTo activates the account, applies its assigned identity profile if
// any, then refetches. Switching to the already-active account is a no-op.
func (c *Coordinator) SwitchTo(ctx context.Context, account gh.Account) error {
	c.mu.Lock()
	for _, a := range c.accounts {
		if a.Host == account.Host && a.Login == account.Login && a.Active {
			c.mu.Unlock()
			return nil
		}
	}
	c.mu.Unlock()

	if !c.begin(Operation{Kind: OpSwitch, Host: account.Host, Login: account.Login}) {
		return ErrBusy
	}
	err := c.doSwitch(ctx, account.Host, account.Login)
	c.finish(err)
	return err
}

// Retry re-issues the last attempted operation.
func (c *Coordinator) Retry(ctx context.Context) error {
	c.mu.Lock()
	op := c.lastOp
	c.mu.Unlock()

	switch op.Kind {
	case OpRefresh:
		return c.Refresh(ctx)
	case OpSwitch:
		return c.SwitchTo(ctx, gh.Account{Host: op.Host, Login: op.Login})
	default:
		return nil
	}
}

// DisplayName resolves the account's display name: the stored label, or
// "login@host" when none is set.
func (c *Coordinator) DisplayName(account gh.Account) string {
	if label := c.store.Label(account.ID()); label != "" {
		return label
	}
	return account.DefaultDisplayName()
}

// ColorIndex resolves the account's palette index.
func (c *Coordinator) ColorIndex(account gh.Account) int {
	return c.store.ColorIndex(account.ID())
}

func (c *Coordinator) doSwitch(ctx context.Context, host, login string) error {
	if err := c.source.Switch(ctx, host, login); err != nil {
		return err
	}

	profile := c.store.Profile(host + "|" + login)
	if !profile.IsEmpty() && c.applier != nil {
		c.applier.Apply(ctx, profile)
	}

	return c.fetch(ctx)
}

func (c *Coordinator) fetch(ctx context.Context) error {
	accounts, err := c.source.Accounts(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.accounts = accounts
	c.mu.Unlock()
	return nil
}

// begin claims the busy flag, recording the operation. Returns false when
// an operation is already in flight.
func (c *Coordinator) begin(op Operation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	c.lastOp = op
	return true
}

// finish clears the busy flag on every path so the coordinator never gets
// stuck reporting busy.
func (c *Coordinator) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.lastErr = err
}

// UserMessage maps an operation error to a short title plus optional
// details for display.
func UserMessage(err error) (title, details string) {
	var cmdErr *gh.CommandError
	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, gh.ErrToolNotInstalled):
		return "GitHub CLI not found", "Install gh (https://cli.github.com) or adjust your PATH."
	case errors.Is(err, gh.ErrInvalidPayload):
		return "Unexpected gh output", "Your gh version may be incompatible."
	case errors.Is(err, gh.ErrNoAccounts):
		return "No authenticated accounts", "Run: gh auth login"
	case errors.Is(err, runner.ErrTimedOut):
		return "Command timed out", err.Error()
	case errors.Is(err, ErrBusy):
		return "Busy", "Another operation is in progress."
	case errors.As(err, &cmdErr):
		return "Command failed", cmdErr.Details
	default:
		return "Something went wrong", err.Error()
	}
}
