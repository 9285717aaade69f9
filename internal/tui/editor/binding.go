// Package editor binds the markdown body of a note to a text area and
// reports edits made by the user, never those made by the program.
package editor

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding wraps a text area holding note content.
type Binding struct {
	area   textarea.Model
	onEdit func()
}

func New() Binding {
	ta := textarea.New()
	ta.Placeholder = "Write your note in markdown..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Cursor.SetMode(cursor.CursorStatic)

	return Binding{area: ta}
}

// OnUserEdit registers fn to run after every edit that came from the user.
func (b *Binding) OnUserEdit(fn func()) {
	b.onEdit = fn
}

// SetContent replaces the content without signalling an edit.
func (b *Binding) SetContent(markdown string) {
	b.area.SetValue(markdown)
	b.area.CursorStart()
}

func (b Binding) Content() string {
	return b.area.Value()
}

// Update forwards msg to the text area and signals an edit when the content
// changed. Only input events reach Update; SetContent never goes through it.
func (b Binding) Update(msg tea.Msg) (Binding, tea.Cmd) {
	before := b.area.Value()

	var cmd tea.Cmd
	b.area, cmd = b.area.Update(msg)

	if b.area.Value() != before {
		b.signal()
	}
	return b, cmd
}

// Copy puts the whole content on the clipboard.
func (b Binding) Copy() error {
	if err := clipboard.WriteAll(b.area.Value()); err != nil {
		log.Printf("editor: copy to clipboard failed: %v", err)
		return err
	}
	return nil
}

func (b *Binding) signal() {
	if b.onEdit != nil {
		b.onEdit()
	}
}

func (b *Binding) Focus() tea.Cmd {
	return b.area.Focus()
}

func (b *Binding) Blur() {
	b.area.Blur()
}

func (b Binding) Focused() bool {
	return b.area.Focused()
}

func (b *Binding) SetSize(width, height int) {
	b.area.SetWidth(width)
	b.area.SetHeight(height)
}

func (b Binding) View() string {
	return b.area.View()
}
