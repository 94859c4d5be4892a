package runner

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRun_CapturesOutputAndExitCode(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{}

	res, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("stderr = %q", res.Stderr)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
}

func TestRun_ZeroExit(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{}

	res, err := r.Run(context.Background(), "sh", "-c", "true")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	r := &ExecRunner{}

	_, err := r.Run(context.Background(), "/nonexistent/definitely-not-a-binary")
	if !errors.Is(err, ErrLaunchFailed) {
		t.Errorf("err = %v, want ErrLaunchFailed", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := r.Run(context.Background(), "sh", "-c", "sleep 5")
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("err = %v, want ErrTimedOut", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout took %s, the process was not killed", elapsed)
	}
}

func TestRun_TimeoutWithForkedChild(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{Timeout: 100 * time.Millisecond}

	// The backgrounded sleep inherits the output pipes and survives the
	// kill of the direct child; the wait must still be bounded.
	start := time.Now()
	_, err := r.Run(context.Background(), "sh", "-c", "sleep 5 & wait")
	if !errors.Is(err, ErrTimedOut) {
		t.Fatalf("err = %v, want ErrTimedOut", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout took %s, pipes held by the grandchild were not abandoned", elapsed)
	}
}

func TestRun_BackgroundChildDoesNotBlockSuccess(t *testing.T) {
	skipOnWindows(t)
	r := &ExecRunner{}

	// Exits zero immediately while a background child keeps the pipes
	// open; Run must return the captured output as a success.
	start := time.Now()
	res, err := r.Run(context.Background(), "sh", "-c", "echo ready; sleep 5 &")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "ready" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("success path took %s, should not wait for the background child", elapsed)
	}
}

func TestRun_Trace(t *testing.T) {
	skipOnWindows(t)
	var traced []string
	r := &ExecRunner{Trace: func(cmd string) { traced = append(traced, cmd) }}

	if _, err := r.Run(context.Background(), "sh", "-c", "true"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(traced) != 1 || !strings.HasPrefix(traced[0], "sh -c ") {
		t.Errorf("trace = %v", traced)
	}
}

func TestCommandLine_QuotesArguments(t *testing.T) {
	got := CommandLine("git", []string{"config", "--global", "user.name", "Jane Doe"})
	if !strings.Contains(got, "'Jane Doe'") && !strings.Contains(got, `"Jane Doe"`) {
		t.Errorf("CommandLine = %q, spaces should be quoted", got)
	}
}

func TestAugmentEnv(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		want    string
	}{
		{
			name:    "appends to existing PATH",
			environ: []string{"HOME=/home/u", "PATH=/custom/bin"},
			want:    "PATH=/custom/bin:" + FallbackPath,
		},
		{
			name:    "substitutes empty PATH",
			environ: []string{"PATH="},
			want:    "PATH=" + FallbackPath,
		},
		{
			name:    "adds missing PATH",
			environ: []string{"HOME=/home/u"},
			want:    "PATH=" + FallbackPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := augmentEnv(tt.environ)
			found := false
			for _, e := range env {
				if e == tt.want {
					found = true
				} else if strings.HasPrefix(e, "PATH=") {
					t.Errorf("unexpected PATH entry %q", e)
				}
			}
			if !found {
				t.Errorf("augmentEnv(%v) = %v, missing %q", tt.environ, env, tt.want)
			}
		})
	}
}
