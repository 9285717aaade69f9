package casebook

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/casebook/internal/note"
)

func navigationTo(sel Selection) Navigation {
	switch sel.Kind {
	case ClientContext:
		return Navigation{Kind: NavSelectClient, ClientID: sel.ClientID}
	case CPDContext:
		return Navigation{Kind: NavSelectCPD}
	case SupervisionContext:
		return Navigation{Kind: NavSelectSupervision}
	}
	return Navigation{Kind: NavClearSelection}
}

// navigate runs every selection, filter, open, new and quit action. When the
// open note has unsaved work the action waits behind a discard prompt.
// While a create or discard is in flight only quitting is allowed; no note is
// open then, so there is nothing to confirm.
func (m *Model) navigate(nav Navigation) tea.Cmd {
	if m.busy != "" {
		if nav.Kind == NavQuit {
			return tea.Quit
		}
		m.status = m.busy
		return nil
	}
	if m.guard.Request(nav) {
		return m.apply(nav)
	}
	_, prompt, _ := m.guard.Pending()
	m.dialog = dialog{kind: dialogDiscard, title: prompt.Title, message: prompt.Message}
	return nil
}

// acceptDiscard drops the open note and continues with the held navigation.
// A new note is deleted first; the navigation is applied only once the
// delete succeeds.
func (m *Model) acceptDiscard() tea.Cmd {
	nav, ok := m.guard.Accept()
	if !ok {
		return nil
	}
	ref, open := m.tracker.Current()
	if open && m.tracker.IsNew() {
		m.busy = "Deleting unsaved " + ref.Kind.Label() + "…"
		m.status = m.busy
		return m.discardNew(ref, nav)
	}
	m.closeNote()
	return m.apply(nav)
}

func (m *Model) onDiscarded(msg discardedMsg) tea.Cmd {
	m.busy = ""
	if msg.err != nil {
		m.fail("Could not discard note", msg.err)
		return nil
	}
	m.status = "Discarded new " + msg.ref.Kind.Label()
	m.removeNote(msg.ref)
	if cur, open := m.tracker.Current(); open && cur == msg.ref {
		m.closeNote()
	}
	return tea.Batch(m.apply(msg.nav), m.fetchTotals())
}

func (m *Model) apply(nav Navigation) tea.Cmd {
	log.Printf("casebook: %s", nav.Kind)

	switch nav.Kind {
	case NavSelectClient:
		return m.selectContext(SelectClient(nav.ClientID))
	case NavSelectCPD:
		return m.selectContext(Selection{Kind: CPDContext})
	case NavSelectSupervision:
		return m.selectContext(Selection{Kind: SupervisionContext})
	case NavClearSelection:
		return m.selectContext(Selection{})

	case NavChangeFilter:
		m.closeNote()
		m.view.Filter = nav.Filter
		m.view.Clients = nil
		m.search.SetValue("")
		m.view.Search = ""
		m.setSelection(Selection{})
		m.focus = paneClients
		m.status = "Showing " + string(nav.Filter) + " clients"
		return tea.Batch(m.fetchClients(), m.fetchTotals())

	case NavOpenNote:
		return m.openNote(nav.Ref)

	case NavNewNote:
		m.closeNote()
		m.busy = "Creating " + nav.NewKind.Label() + "…"
		m.status = m.busy
		return m.createNote(nav.NewKind)

	case NavQuit:
		return tea.Quit
	}
	return nil
}

func (m *Model) selectContext(sel Selection) tea.Cmd {
	m.closeNote()
	m.setSelection(sel)
	if sel.Kind == ClientContext {
		m.view.LastClientID = sel.ClientID
	}
	if !sel.IsNone() {
		m.focus = paneNotes
	}
	return m.fetchNotes()
}

// setSelection switches context and empties the note pane. Bumping the
// generation drops any list still in flight for the previous context.
func (m *Model) setSelection(sel Selection) {
	m.view.Selection = sel
	m.view.Notes = nil
	m.view.ClientTotals = nil
	m.view.notesGen++
	m.refreshClientItems()
	m.refreshNoteItems()
}

func (m *Model) openNote(ref note.Ref) tea.Cmd {
	rec, ok := m.view.Note(ref)
	if !ok {
		m.fail("Note unavailable", &missingNoteError{ref: ref})
		return nil
	}
	return m.load(rec, false)
}

// load projects rec into the editor without marking it modified.
func (m *Model) load(rec note.Record, isNew bool) tea.Cmd {
	if isNew {
		rec = note.WithoutPlaceholders(rec)
	}
	m.tracker.Open(rec.Ref(), isNew)
	m.form.ProjectToForm(rec.Kind, rec, m.tracker)
	m.form.SetSize(m.layout.editor, m.layout.height)
	m.focus = paneEditor
	m.refreshNoteItems()
	return m.form.Focus()
}

func (m *Model) closeNote() {
	if !m.tracker.IsOpen() {
		return
	}
	m.tracker.Close()
	m.form.Blur()
	m.form.Clear()
	if m.focus == paneEditor {
		m.focus = paneNotes
	}
	m.refreshNoteItems()
}

type missingNoteError struct {
	ref note.Ref
}

func (e *missingNoteError) Error() string {
	return e.ref.String() + " is not in the current list"
}
