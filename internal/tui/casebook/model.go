// Package casebook is the interactive client, note list and editor.
package casebook

import (
	"log"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/casebook/internal/cache"
	"github.com/Paintersrp/casebook/internal/lifecycle"
	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/tui/casebook/submodels"
)

const previewCacheSize = 64

type pane int

const (
	paneClients pane = iota
	paneSearch
	paneNotes
	paneEditor
)

// Options seed a new Model.
type Options struct {
	Filter   note.ClientFilter
	ClientID int
	Defaults note.Defaults
}

type layout struct {
	clients int
	notes   int
	editor  int
	height  int
}

// Model owns the view state, the open note and every pending request.
type Model struct {
	backend    Backend
	keys       keyMap
	view       ViewState
	tracker    *lifecycle.Tracker
	guard      *Guard
	form       submodels.NoteForm
	clientForm *submodels.ClientForm
	clients    list.Model
	notes      list.Model
	search     textinput.Model
	previews   *cache.LRU[previewKey, string]
	dialog     dialog
	focus      pane
	defaults   note.Defaults
	initial    int
	status     string
	busy       string
	showHelp   bool
	width      int
	height     int
	layout     layout
}

func New(backend Backend, opts Options) *Model {
	filter := opts.Filter
	if filter == "" {
		filter = note.FilterActive
	}

	tracker := &lifecycle.Tracker{}
	form := submodels.NewNoteForm()
	form.OnEdit(tracker.MarkDirty)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search clients"
	search.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		backend:  backend,
		keys:     newKeyMap(),
		view:     ViewState{Filter: filter},
		tracker:  tracker,
		guard:    NewGuard(tracker),
		form:     form,
		clients:  newList("Clients"),
		notes:    newList("Notes"),
		search:   search,
		previews: cache.NewLRU[previewKey, string](previewCacheSize),
		defaults: opts.Defaults,
		initial:  opts.ClientID,
	}
}

func newList(title string) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	l := list.New([]list.Item{}, d, 0, 0)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchClients(), m.fetchTotals()}
	if m.initial > 0 {
		cmds = append(cmds, m.selectContext(SelectClient(m.initial)))
		m.focus = paneNotes
	}
	return tea.Batch(cmds...)
}

// View state accessors, mostly for callers embedding the model.

func (m *Model) State() ViewState {
	return m.view
}

func (m *Model) EditorState() EditorState {
	return m.guard.EditorState()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case clientsLoadedMsg:
		return m, m.onClientsLoaded(msg)
	case notesLoadedMsg:
		return m, m.onNotesLoaded(msg)
	case totalsLoadedMsg:
		return m, m.onTotalsLoaded(msg)
	case noteCreatedMsg:
		return m, m.onNoteCreated(msg)
	case noteSavedMsg:
		return m, m.onNoteSaved(msg)
	case noteDeletedMsg:
		return m, m.onNoteDeleted(msg)
	case discardedMsg:
		return m, m.onDiscarded(msg)
	case clientSavedMsg:
		return m, m.onClientSaved(msg)
	case clientDeletedMsg:
		return m, m.onClientDeleted(msg)

	case submodels.ClientSubmitMsg:
		m.clientForm = nil
		return m, m.saveClient(msg.ID, msg.Input)
	case submodels.ClientCancelMsg:
		m.clientForm = nil
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.forward(msg)
}

// forward hands any other message, e.g. a clipboard paste, to whatever has
// focus.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.clientForm != nil:
		*m.clientForm, cmd = m.clientForm.Update(msg)
	case m.focus == paneEditor && m.tracker.IsOpen():
		m.form, cmd = m.form.Update(msg)
	case m.focus == paneSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog.active() {
		return m.handleDialogKey(msg)
	}
	if key.Matches(msg, m.keys.forceQuit) {
		return m.navigate(Navigation{Kind: NavQuit})
	}
	if m.clientForm != nil {
		var cmd tea.Cmd
		*m.clientForm, cmd = m.clientForm.Update(msg)
		return cmd
	}

	switch m.focus {
	case paneSearch:
		return m.handleSearchKey(msg)
	case paneNotes:
		return m.handleNoteKey(msg)
	case paneEditor:
		return m.handleEditorKey(msg)
	}
	return m.handleClientKey(msg)
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	d := m.dialog

	if !d.confirms() {
		if key.Matches(msg, m.keys.selectItem, m.keys.back) || msg.String() == " " {
			m.dialog = dialog{}
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.confirm):
		m.dialog = dialog{}
		switch d.kind {
		case dialogDiscard:
			return m.acceptDiscard()
		case dialogDeleteNote:
			m.status = "Deleting " + d.title + "…"
			return m.deleteNote(d.ref)
		case dialogDeleteClient:
			m.status = "Deleting " + d.client.Label() + "…"
			return m.deleteClient(d.client.ID)
		}
	case key.Matches(msg, m.keys.decline):
		m.dialog = dialog{}
		if d.kind == dialogDiscard {
			m.guard.Decline()
			m.status = "Kept your changes"
		}
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.search.Blur()
		m.focus = paneClients
		m.setSearch("")
		return nil
	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		m.search.Blur()
		m.focus = paneClients
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return cmd
}

func (m *Model) setSearch(query string) {
	if query == m.view.Search {
		return
	}
	m.view.Search = query
	m.refreshClientItems()
	if query != "" {
		m.clients.ResetSelected()
	}
}

func (m *Model) handleClientKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.navigate(Navigation{Kind: NavQuit})

	case key.Matches(msg, m.keys.selectItem):
		item, ok := m.clients.SelectedItem().(ClientItem)
		if !ok {
			return nil
		}
		return m.navigate(navigationTo(item.Selection()))

	case key.Matches(msg, m.keys.search):
		m.focus = paneSearch
		return m.search.Focus()

	case key.Matches(msg, m.keys.cycleFilter):
		return m.navigate(Navigation{Kind: NavChangeFilter, Filter: m.view.Filter.Next()})

	case key.Matches(msg, m.keys.clearSel):
		return m.navigate(Navigation{Kind: NavClearSelection})

	case key.Matches(msg, m.keys.reload):
		return tea.Batch(m.fetchClients(), m.fetchTotals(), m.fetchNotes())

	case key.Matches(msg, m.keys.addClient):
		f := submodels.NewClientForm()
		m.clientForm = &f
		return nil

	case key.Matches(msg, m.keys.editClient):
		if c, ok := m.highlightedClient(); ok {
			f := submodels.EditClientForm(c)
			m.clientForm = &f
		}
		return nil

	case key.Matches(msg, m.keys.archive):
		if c, ok := m.highlightedClient(); ok {
			return m.setArchived(c, !c.Archived())
		}
		return nil

	case key.Matches(msg, m.keys.deleteClient):
		m.confirmDeleteClient()
		return nil

	case key.Matches(msg, m.keys.nextPane):
		m.focus = paneNotes
		return nil

	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		return nil
	}

	var cmd tea.Cmd
	m.clients, cmd = m.clients.Update(msg)
	return cmd
}

func (m *Model) handleNoteKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.navigate(Navigation{Kind: NavQuit})

	case key.Matches(msg, m.keys.selectItem):
		item, ok := m.notes.SelectedItem().(NoteItem)
		if !ok {
			return nil
		}
		if cur, open := m.tracker.Current(); open && cur == item.Ref() {
			m.focus = paneEditor
			return m.form.Focus()
		}
		return m.navigate(Navigation{Kind: NavOpenNote, Ref: item.Ref()})

	case key.Matches(msg, m.keys.newNote):
		kinds := m.view.Selection.NewKinds()
		if len(kinds) == 0 {
			m.status = "Select a client, Supervision or CPD first"
			return nil
		}
		if kinds[0] == note.Supervision && m.view.LastClientID == 0 {
			m.status = "Select a client first; supervision is recorded against one"
			return nil
		}
		return m.navigate(Navigation{Kind: NavNewNote, NewKind: kinds[0]})

	case key.Matches(msg, m.keys.newAssessment):
		if m.view.Selection.Kind != ClientContext {
			m.status = "Assessments belong to a client"
			return nil
		}
		return m.navigate(Navigation{Kind: NavNewNote, NewKind: note.Assessment})

	case key.Matches(msg, m.keys.deleteNote):
		if item, ok := m.notes.SelectedItem().(NoteItem); ok {
			m.confirmDeleteNote(item.Ref())
		}
		return nil

	case key.Matches(msg, m.keys.reload):
		return tea.Batch(m.fetchNotes(), m.fetchTotals())

	case key.Matches(msg, m.keys.nextPane):
		if m.tracker.IsOpen() {
			m.focus = paneEditor
			return m.form.Focus()
		}
		return nil

	case key.Matches(msg, m.keys.prevPane, m.keys.back):
		m.focus = paneClients
		return nil

	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		return nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return cmd
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.save):
		return m.save()

	case key.Matches(msg, m.keys.copy):
		if err := m.form.CopyContent(); err != nil {
			m.dialog = alert("Copy failed", err)
			return nil
		}
		m.status = "Copied note content"
		return nil

	case key.Matches(msg, m.keys.editorDelete):
		if ref, open := m.tracker.Current(); open {
			m.confirmDeleteNote(ref)
		}
		return nil

	case key.Matches(msg, m.keys.back):
		m.form.Blur()
		m.focus = paneNotes
		return nil
	}

	if !m.tracker.IsOpen() {
		return nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) highlightedClient() (note.Client, bool) {
	item, ok := m.clients.SelectedItem().(ClientItem)
	if !ok || item.pseudo != NoSelection {
		return note.Client{}, false
	}
	return item.client, true
}

func (m *Model) refreshClientItems() {
	items := clientItems(m.view)
	m.clients.SetItems(items)
	for i, it := range items {
		if ci, ok := it.(ClientItem); ok && ci.selected {
			m.clients.Select(i)
			return
		}
	}
	if m.clients.Index() >= len(items) {
		m.clients.Select(max(len(items)-1, 0))
	}
}

func (m *Model) refreshNoteItems() {
	ref, open := m.tracker.Current()
	items := noteItems(m.view.Notes, ref, open)
	m.notes.SetItems(items)
	m.notes.Title = m.view.SelectionLabel()
	if m.notes.Index() >= len(items) {
		m.notes.Select(max(len(items)-1, 0))
	}
}

func (m *Model) fail(title string, err error) {
	log.Printf("casebook: %s: %v", title, err)
	m.status = ""
	m.dialog = alert(title, err)
}
