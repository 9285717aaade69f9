package casebook

import (
	"hash/fnv"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/utils"
)

type previewKey struct {
	ref   note.Ref
	width int
	sum   uint64
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	fw, fh := appStyle.GetFrameSize()
	inner := width - fw
	// header, status and help lines plus pane borders
	bodyHeight := max(height-fh-6, 5)

	clientsWidth := inner / 4
	notesWidth := inner / 3
	editorWidth := inner - clientsWidth - notesWidth

	m.layout = layout{
		clients: max(clientsWidth-4, 10),
		notes:   max(notesWidth-4, 10),
		editor:  max(editorWidth-4, 20),
		height:  bodyHeight,
	}

	m.search.Width = m.layout.clients - 4
	m.clients.SetSize(m.layout.clients, bodyHeight-2)
	m.notes.SetSize(m.layout.notes, bodyHeight)
	m.form.SetSize(m.layout.editor, bodyHeight)
	m.previews.Purge()
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	var body string
	if m.clientForm != nil {
		body = focusedPaneStyle.Render(m.clientForm.View())
	} else {
		left := paneFrame(m.focus == paneClients || m.focus == paneSearch).
			Width(m.layout.clients).
			Height(m.layout.height).
			Render(searchStyle.Render(m.search.View()) + "\n" + m.clients.View())
		middle := paneFrame(m.focus == paneNotes).
			Width(m.layout.notes).
			Height(m.layout.height).
			Render(m.notes.View())
		right := paneFrame(m.focus == paneEditor).
			Width(m.layout.editor).
			Height(m.layout.height).
			Render(m.editorView())
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
	if m.dialog.active() {
		out = lipgloss.Place(
			m.width-2,
			m.height-2,
			lipgloss.Center,
			lipgloss.Center,
			m.dialog.View(m.width),
		)
	}
	return appStyle.Render(out)
}

func (m *Model) headerView() string {
	parts := []string{
		titleStyle.Render("casebook"),
		mutedStyle.Render("[" + string(m.view.Filter) + "]"),
		m.view.Totals.String(),
	}
	if t := m.view.ClientTotals; t != nil {
		parts = append(parts, mutedStyle.Render(m.view.SelectionLabel()+": "+t.String()))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) footerView() string {
	status := statusStyle(m.status)
	if m.busy != "" {
		status = statusStyle(m.busy)
	}
	if !m.showHelp {
		return status + "\n" + renderHelpWithinWidth(m.width-4, []key.Binding{m.keys.toggleHelp, m.keys.forceQuit})
	}

	var bindings []key.Binding
	switch m.focus {
	case paneEditor:
		bindings = m.keys.editorHelp()
	case paneNotes:
		bindings = m.keys.noteHelp()
	default:
		bindings = m.keys.clientHelp()
	}
	return status + "\n" + renderHelpWithinWidth(m.width-4, bindings)
}

func (m *Model) editorView() string {
	ref, open := m.tracker.Current()
	if !open {
		return titleStyle.Render("Preview") + "\n\n" + m.preview()
	}

	heading := ref.Kind.Label()
	if rec, ok := m.view.Note(ref); ok {
		heading = rec.Heading()
	}
	header := titleStyle.Render(heading)
	switch state := m.guard.EditorState(); state {
	case EditorDirty, EditorNewUnsaved:
		header += " " + dirtyStyle.Render("● "+state.String())
	}
	return header + "\n\n" + m.form.View()
}

// preview renders the highlighted note. Renders are cached by note, width
// and content so scrolling the list does not re-run glamour.
func (m *Model) preview() string {
	item, ok := m.notes.SelectedItem().(NoteItem)
	if !ok {
		return mutedStyle.Render("Select a note to preview it.")
	}

	h := fnv.New64a()
	h.Write([]byte(item.rec.Content))
	k := previewKey{ref: item.Ref(), width: m.layout.editor, sum: h.Sum64()}
	if out, ok := m.previews.Get(k); ok {
		return out
	}

	out, err := utils.RenderMarkdown(item.rec.Content, m.layout.editor)
	if err != nil {
		log.Printf("casebook: preview of %s failed: %v", item.Ref(), err)
		return item.rec.Content
	}
	m.previews.Put(k, out)
	return out
}
