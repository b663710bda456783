// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the CLI.
type OutputMode int

const (
	// ModeStyled renders colored, human oriented output.
	ModeStyled OutputMode = iota
	// ModePlain renders undecorated output suitable for CI logs and pipes.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the
// environment. Non-TTY stdout, CI environments and NO_COLOR all select
// plain output.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	return ModeStyled
}
