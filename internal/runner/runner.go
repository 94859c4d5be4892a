// Package runner executes external commands and captures their full output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// FallbackPath is appended to PATH so tools installed by Homebrew or into
// the standard system locations are found even when the process inherits a
// minimal environment (launchd, GUI sessions).
const FallbackPath = "/opt/homebrew/bin:/usr/local/bin:/usr/bin:/bin:/usr/sbin:/sbin"

// DefaultTimeout bounds a single command invocation. A hung external tool
// surfaces as ErrTimedOut instead of blocking forever.
const DefaultTimeout = 30 * time.Second

// waitGrace bounds how long Run waits for output pipes to close after the
// deadline kills the child. A forked grandchild can inherit the pipe write
// ends and outlive the kill; without this, Run would block until it exits.
const waitGrace = 500 * time.Millisecond

var (
	// ErrLaunchFailed indicates the process could not be started at all
	// (executable missing or not runnable), as opposed to a non-zero exit.
	ErrLaunchFailed = errors.New("failed to launch command")

	// ErrTimedOut indicates the command did not finish within the timeout.
	ErrTimedOut = errors.New("command timed out")
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs one external command to completion. A non-zero exit is not an
// error; it is reported through Result.ExitCode. Errors are reserved for
// launch failures and timeouts.
type Runner interface {
	Run(ctx context.Context, exe string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec with the PATH fallback applied.
type ExecRunner struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// Trace, if set, receives a shell-quoted echo of every command before
	// it runs.
	Trace func(cmd string)
}

// Run executes exe with args, waits for completion and captures all output.
// No retries; retry policy belongs to the caller.
func (r *ExecRunner) Run(ctx context.Context, exe string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if r.Trace != nil {
		r.Trace(CommandLine(exe, args))
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Env = augmentEnv(os.Environ())
	cmd.WaitDelay = waitGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, fmt.Errorf("%w after %s: %s", ErrTimedOut, timeout, CommandLine(exe, args))
		}
		// The command exited zero but a forked child kept the output
		// pipes open past the grace period. Treat as success with
		// whatever output was captured.
		if errors.Is(err, exec.ErrWaitDelay) {
			return res, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("%w: %s: %v", ErrLaunchFailed, CommandLine(exe, args), err)
	}

	return res, nil
}

// CommandLine renders an executable and its arguments as a single
// shell-quoted string for display in errors and traces.
func CommandLine(exe string, args []string) string {
	return shellquote.Join(append([]string{exe}, args...)...)
}

// augmentEnv appends the fallback PATH to the ambient PATH, or substitutes
// it entirely when PATH is unset or empty.
func augmentEnv(environ []string) []string {
	env := make([]string, 0, len(environ)+1)
	found := false
	for _, e := range environ {
		if strings.HasPrefix(e, "PATH=") {
			found = true
			if val := strings.TrimPrefix(e, "PATH="); val != "" {
				env = append(env, "PATH="+val+":"+FallbackPath)
			} else {
				env = append(env, "PATH="+FallbackPath)
			}
			continue
		}
		env = append(env, e)
	}
	if !found {
		env = append(env, "PATH="+FallbackPath)
	}
	return env
}
