package detect

import (
	"context"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalDetector asks the terminal for its background color. Each Detect queries the terminal again,
// so a watcher sees background changes.
type TerminalDetector struct {
	IsTerminal        func() bool
	HasDarkBackground func() bool
}

// NewTerminalDetector makes a detector for stdout.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{
		IsTerminal:        func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }, //nolint:gosec // fd fits int
		HasDarkBackground: func() bool { return termenv.NewOutput(os.Stdout).HasDarkBackground() },
	}
}

// Name returns the detector name.
func (t *TerminalDetector) Name() string { return "terminal" }

// Detect returns nothing if stdout is not a terminal, since the background query needs one.
func (t *TerminalDetector) Detect(context.Context) (prefersDark, ok bool) {
	if !t.IsTerminal() {
		return false, false
	}
	return t.HasDarkBackground(), true
}
