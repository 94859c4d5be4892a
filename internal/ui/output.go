package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/byterings/hubswitch/internal/gh"
	"github.com/byterings/hubswitch/internal/prefs"
)

// Out is the writer for all user-facing output. Colorable so ansi codes
// render on Windows consoles too.
var Out io.Writer = colorable.NewColorableStdout()

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

// Success prints a success message with checkmark
func Success(message string) {
	fmt.Fprintf(Out, "✓ %s\n", message)
}

// Error prints an error message
func Error(message string) {
	fmt.Fprintf(Out, "✗ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	fmt.Fprintf(Out, "ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Fprintf(Out, "⚠ %s\n", message)
}

// Warningf prints a formatted warning message
func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

// Colorize wraps s in the ansi code for the given palette index. Plain text
// when stdout is not a terminal or the index is out of range.
func Colorize(s string, paletteIndex int) string {
	if !colorEnabled || paletteIndex < 0 || paletteIndex >= prefs.PaletteSize() {
		return s
	}
	return ansi.Color(s, prefs.Palette[paletteIndex])
}

// AccountResolver supplies the display name and color for an account.
type AccountResolver interface {
	DisplayName(account gh.Account) string
	ColorIndex(account gh.Account) int
}

// PrintAccounts prints the account list with a colored bullet per account
// and an arrow on the active one.
func PrintAccounts(accounts []gh.Account, resolver AccountResolver) {
	if len(accounts) == 0 {
		fmt.Fprintln(Out, "No accounts.")
		return
	}

	fmt.Fprintln(Out)
	for _, account := range accounts {
		indicator := " "
		if account.Active {
			indicator = "→"
		}

		fmt.Fprintf(Out, "%s %s %-30s %s\n",
			indicator,
			Colorize("●", resolver.ColorIndex(account)),
			resolver.DisplayName(account),
			account.Host+"/"+account.Login,
		)
	}
	fmt.Fprintln(Out)
}
