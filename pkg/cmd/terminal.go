package cmd

import (
	"os"

	"github.com/erikgeiser/promptkit/confirmation"
	"golang.org/x/term"
)

const defaultWidth = 100

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or a default when it is not a
// terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}
