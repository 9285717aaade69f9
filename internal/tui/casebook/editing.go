package casebook

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/casebook/internal/note"
)

func (m *Model) onClientsLoaded(msg clientsLoadedMsg) tea.Cmd {
	if msg.gen != m.view.clientsGen || msg.filter != m.view.Filter {
		log.Printf("casebook: dropping stale client list (%s)", msg.filter)
		return nil
	}
	if msg.err != nil {
		m.fail("Could not load clients", msg.err)
		return nil
	}
	m.view.Clients = msg.clients
	m.refreshClientItems()
	m.notes.Title = m.view.SelectionLabel()
	return nil
}

func (m *Model) onTotalsLoaded(msg totalsLoadedMsg) tea.Cmd {
	if msg.gen != m.view.totalsGen {
		return nil
	}
	if msg.err != nil {
		m.fail("Could not load totals", msg.err)
		return nil
	}
	m.view.Totals = msg.totals
	return nil
}

func (m *Model) onNotesLoaded(msg notesLoadedMsg) tea.Cmd {
	if msg.gen != m.view.notesGen || msg.sel != m.view.Selection {
		log.Printf("casebook: dropping stale notes for %s", msg.sel)
		return nil
	}
	if msg.err != nil {
		m.fail("Could not load notes", msg.err)
		return nil
	}
	m.view.Notes = msg.notes
	m.view.ClientTotals = msg.clientTotals
	m.refreshNoteItems()
	return nil
}

func (m *Model) onNoteCreated(msg noteCreatedMsg) tea.Cmd {
	m.busy = ""
	if msg.err != nil {
		m.fail("Could not create note", msg.err)
		return nil
	}
	if msg.sel != m.view.Selection {
		return m.dropOrphan(msg.rec.Ref())
	}

	m.view.Notes = append([]note.Record{msg.rec}, m.view.Notes...)
	cmd := m.load(msg.rec, true)
	m.status = "New " + msg.rec.Kind.Label() + " created"
	return tea.Batch(cmd, m.fetchNotes(), m.fetchTotals())
}

// save validates the form locally. Nothing is sent unless it passes.
func (m *Model) save() tea.Cmd {
	ref, open := m.tracker.Current()
	if !open {
		return nil
	}
	p, err := m.form.ProjectFromForm(ref.Kind)
	if err != nil {
		m.fail("Cannot save "+ref.Kind.Label(), err)
		return nil
	}
	m.status = "Saving…"
	return m.saveNote(ref, m.tracker.Revision(), p)
}

func (m *Model) onNoteSaved(msg noteSavedMsg) tea.Cmd {
	if msg.err != nil {
		m.fail("Save failed", msg.err)
		return nil
	}
	m.tracker.Saved(msg.ref, msg.rev)
	if msg.rec.ID != 0 {
		m.replaceNote(msg.rec)
	}
	m.status = "Saved " + msg.ref.Kind.Label()
	return tea.Batch(m.fetchNotes(), m.fetchTotals())
}

func (m *Model) confirmDeleteNote(ref note.Ref) {
	title := ref.Kind.Label()
	if rec, ok := m.view.Note(ref); ok {
		title = rec.Heading()
	}
	m.dialog = dialog{
		kind:    dialogDeleteNote,
		title:   "Delete " + title + "?",
		message: "The note is removed permanently.",
		ref:     ref,
	}
}

func (m *Model) onNoteDeleted(msg noteDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.fail("Delete failed", msg.err)
		return nil
	}
	if cur, open := m.tracker.Current(); open && cur == msg.ref {
		m.closeNote()
	}
	m.removeNote(msg.ref)
	m.status = "Deleted " + msg.ref.Kind.Label()
	return tea.Batch(m.fetchNotes(), m.fetchTotals())
}

func (m *Model) removeNote(ref note.Ref) {
	notes := m.view.Notes[:0:0]
	for _, rec := range m.view.Notes {
		if rec.Ref() != ref {
			notes = append(notes, rec)
		}
	}
	m.view.Notes = notes
	m.refreshNoteItems()
}

func (m *Model) replaceNote(rec note.Record) {
	for i := range m.view.Notes {
		if m.view.Notes[i].Ref() == rec.Ref() {
			m.view.Notes[i] = rec
			m.refreshNoteItems()
			return
		}
	}
}

func (m *Model) confirmDeleteClient() {
	c, ok := m.highlightedClient()
	if !ok {
		return
	}
	if m.view.Selection == SelectClient(c.ID) && m.tracker.NeedsConfirmation() {
		m.dialog = dialog{
			kind:    dialogAlert,
			title:   "Client has unsaved work",
			message: "Save or discard the open note before deleting " + c.Label() + ".",
		}
		return
	}
	m.dialog = dialog{
		kind:    dialogDeleteClient,
		title:   "Delete " + c.Label() + "?",
		message: "The client and all of their notes are removed permanently.",
		client:  c,
	}
}

func (m *Model) onClientSaved(msg clientSavedMsg) tea.Cmd {
	if msg.err != nil {
		m.fail("Client not saved", msg.err)
		return nil
	}
	m.status = msg.action + " " + msg.client.Label()
	return tea.Batch(m.fetchClients(), m.fetchTotals())
}

func (m *Model) onClientDeleted(msg clientDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.fail("Client not deleted", msg.err)
		return nil
	}
	if m.view.Selection == SelectClient(msg.id) {
		m.closeNote()
		m.setSelection(Selection{})
	}
	if m.view.LastClientID == msg.id {
		m.view.LastClientID = 0
	}
	m.status = "Deleted client"
	return tea.Batch(m.fetchClients(), m.fetchTotals())
}
