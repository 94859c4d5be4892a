package gh

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotInstalled indicates the gh binary could not be launched or
	// reported a not-found condition.
	ErrToolNotInstalled = errors.New("gh is not installed")

	// ErrInvalidPayload indicates gh produced output that does not match
	// the expected JSON shape, usually a version mismatch.
	ErrInvalidPayload = errors.New("unexpected gh output")

	// ErrNoAccounts indicates gh ran successfully but reported zero
	// authenticated accounts.
	ErrNoAccounts = errors.New("no authenticated accounts")
)

// CommandError reports a command that ran but exited non-zero. Details
// carries the captured stderr (or stdout) verbatim to aid debugging.
type CommandError struct {
	Command string
	Details string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s: %s", e.Command, e.Details)
}
