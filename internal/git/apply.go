package git

import (
	"context"
	"strings"

	"github.com/byterings/hubswitch/internal/runner"
)

// DefaultGitPath is the absolute path used for identity application so it
// works even when the inherited PATH is minimal.
const DefaultGitPath = "/usr/bin/git"

// Applier writes user.name and user.email to the global git config.
// Application is best-effort: failures go to Warnf and are never returned,
// since a switch is still successful without the identity change.
type Applier struct {
	Runner  runner.Runner
	GitPath string

	// Warnf receives best-effort failures. Nil means they are dropped.
	Warnf func(format string, args ...any)
}

// Apply sets the global git identity from the profile. An empty profile is
// a no-op. Each field is set independently; one failing does not stop the
// other.
func (a *Applier) Apply(ctx context.Context, profile IdentityProfile) {
	if profile.IsEmpty() {
		return
	}

	if name := strings.TrimSpace(profile.Name); name != "" {
		a.setConfig(ctx, "user.name", name)
	}
	if email := strings.TrimSpace(profile.Email); email != "" {
		a.setConfig(ctx, "user.email", email)
	}
}

func (a *Applier) setConfig(ctx context.Context, key, value string) {
	gitPath := a.GitPath
	if gitPath == "" {
		gitPath = DefaultGitPath
	}

	res, err := a.Runner.Run(ctx, gitPath, "config", "--global", key, value)
	if err != nil {
		a.warnf("failed to set git %s: %v", key, err)
		return
	}
	if res.ExitCode != 0 {
		a.warnf("git config --global %s exited %d: %s", key, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
}

func (a *Applier) warnf(format string, args ...any) {
	if a.Warnf != nil {
		a.Warnf(format, args...)
	}
}
