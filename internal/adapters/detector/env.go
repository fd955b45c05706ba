// Package detector provides environment detection for execution and
// output decisions.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Environment describes the detected execution environment.
type Environment struct {
	// Interactive is true when stdout is a TTY and no CI marker is set.
	// Interactive runs allocate a PTY for delegated tools so they render
	// progress output normally.
	Interactive bool
}

// Detect inspects the process environment.
func Detect() Environment {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	return Environment{Interactive: isTTY && !isCI}
}
