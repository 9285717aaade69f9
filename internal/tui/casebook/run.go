package casebook

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run blocks until the user quits.
func Run(backend Backend, opts Options) error {
	p := tea.NewProgram(New(backend, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running casebook: %w", err)
	}
	return nil
}
