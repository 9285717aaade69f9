package casebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/tui/casebook/submodels"
)

type fakeBackend struct {
	mu      sync.Mutex
	clients []note.Client
	notes   []note.Record
	nextID  int
	calls   []string

	failList   error
	failDelete error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID: 100,
		clients: []note.Client{
			{ID: 1, Code: "ADA", FirstName: "Ada", LastName: "Lovelace", Status: note.StatusActive},
			{ID: 2, Code: "BEN", FirstName: "Ben", LastName: "Okri", Status: note.StatusActive},
			{ID: 3, Code: "CAL", FirstName: "Cal", LastName: "Reyes", Status: note.StatusArchived},
		},
		notes: []note.Record{
			{ID: 7, Kind: note.Session, ClientID: 1, Date: note.NewDate(2024, 3, 5), DurationMinutes: 50, SessionType: note.InPerson, Content: "first session"},
			{ID: 8, Kind: note.Session, ClientID: 1, Date: note.NewDate(2024, 3, 12), DurationMinutes: 50, SessionType: note.Online, Content: "second session"},
			{ID: 2, Kind: note.Assessment, ClientID: 1, Date: note.NewDate(2024, 1, 10), DurationMinutes: 90, SessionType: note.InPerson},
			{ID: 11, Kind: note.Session, ClientID: 2, Date: note.NewDate(2024, 4, 1), DurationMinutes: 50, SessionType: note.InPerson},
			{ID: 4, Kind: note.Supervision, ClientID: 1, Date: note.NewDate(2024, 2, 1), DurationMinutes: 60, SessionType: note.InPerson},
			{ID: 9, Kind: note.CPD, Date: note.NewDate(2024, 4, 20), DurationHours: 2, Organisation: "BACP", Title: "Ethics"},
		},
	}
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) ListClients(_ context.Context, filter note.ClientFilter) ([]note.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET clients?filter=%s", filter)
	if f.failList != nil {
		return nil, f.failList
	}
	var out []note.Client
	for _, c := range f.clients {
		switch {
		case filter == note.FilterAll,
			filter == note.FilterArchived && c.Archived(),
			filter == note.FilterActive && !c.Archived():
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateClient(_ context.Context, in note.ClientInput) (note.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST clients")
	f.nextID++
	c := note.Client{ID: f.nextID, Code: in.Code, FirstName: in.FirstName, LastName: in.LastName, Status: note.StatusActive}
	f.clients = append(f.clients, c)
	return c, nil
}

func (f *fakeBackend) UpdateClient(_ context.Context, id int, in note.ClientInput) (note.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PUT clients/%d", id)
	for i, c := range f.clients {
		if c.ID == id {
			f.clients[i].Code, f.clients[i].FirstName, f.clients[i].LastName = in.Code, in.FirstName, in.LastName
			return f.clients[i], nil
		}
	}
	return note.Client{}, errors.New("not found")
}

func (f *fakeBackend) SetArchived(_ context.Context, id int, archive bool) (note.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST clients/%d/archive", id)
	for i, c := range f.clients {
		if c.ID == id {
			f.clients[i].Status = note.StatusActive
			if archive {
				f.clients[i].Status = note.StatusArchived
			}
			return f.clients[i], nil
		}
	}
	return note.Client{}, errors.New("not found")
}

func (f *fakeBackend) DeleteClient(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE clients/%d", id)
	for i, c := range f.clients {
		if c.ID == id {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeBackend) ListNotes(_ context.Context, kind note.Kind, clientID int) ([]note.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind.ClientScoped() {
		f.record("GET %s/client/%d", kind.Collection(), clientID)
	} else {
		f.record("GET %s", kind.Collection())
	}
	if f.failList != nil {
		return nil, f.failList
	}
	var out []note.Record
	for _, rec := range f.notes {
		if rec.Kind != kind {
			continue
		}
		if kind.ClientScoped() && rec.ClientID != clientID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeBackend) CreateNote(_ context.Context, p note.Payload) (note.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST %s", p.Kind().Collection())
	f.nextID++
	rec, err := recordFrom(f.nextID, p)
	if err != nil {
		return note.Record{}, err
	}
	f.notes = append(f.notes, rec)
	return rec, nil
}

func (f *fakeBackend) UpdateNote(_ context.Context, id int, p note.Payload) (note.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PUT %s/%d", p.Kind().Collection(), id)
	rec, err := recordFrom(id, p)
	if err != nil {
		return note.Record{}, err
	}
	for i, existing := range f.notes {
		if existing.Ref() == rec.Ref() {
			if rec.ClientID == 0 {
				rec.ClientID = existing.ClientID
			}
			f.notes[i] = rec
		}
	}
	return rec, nil
}

func (f *fakeBackend) DeleteNote(_ context.Context, ref note.Ref) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE %s/%d", ref.Kind.Collection(), ref.ID)
	if f.failDelete != nil {
		return f.failDelete
	}
	for i, rec := range f.notes {
		if rec.Ref() == ref {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) Totals(_ context.Context, filter note.ClientFilter) (note.Totals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET reports/totals?filter=%s", filter)
	return note.Totals{SessionCount: 3, SessionMinutes: 150}, nil
}

func (f *fakeBackend) ClientTotals(_ context.Context, clientID int) (note.Totals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET reports/client/%d/totals", clientID)
	return note.Totals{SessionCount: 2, SessionMinutes: 100}, nil
}

// recordFrom stores a payload the way the backend echoes it back.
func recordFrom(id int, p note.Payload) (note.Record, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return note.Record{}, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return note.Record{}, err
	}
	fields["id"] = id
	if _, ok := fields["client_id"]; !ok && p.Kind().ClientScoped() {
		fields["client_id"] = 1
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return note.Record{}, err
	}
	return note.DecodeRecord(p.Kind(), data)
}

func (f *fakeBackend) countCalls(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

// drain runs cmd and everything it produces, feeding the model only its own
// messages. It reports whether the program asked to quit.
func drain(t *testing.T, m *Model, cmd tea.Cmd) (quit bool) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			quit = true
		case clientsLoadedMsg, notesLoadedMsg, totalsLoadedMsg,
			noteCreatedMsg, noteSavedMsg, noteDeletedMsg, discardedMsg,
			clientSavedMsg, clientDeletedMsg,
			submodels.ClientSubmitMsg, submodels.ClientCancelMsg:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
	return quit
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, keys ...string) bool {
	t.Helper()
	quit := false
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		if drain(t, m, cmd) {
			quit = true
		}
	}
	return quit
}

func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drain(t, m, cmd)
	}
}

func newTestModel(t *testing.T, fb *fakeBackend) *Model {
	t.Helper()
	m := New(fb, Options{Defaults: note.Defaults{SessionType: note.InPerson, DurationMinutes: 50}})
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	drain(t, m, m.Init())
	return m
}

func openSession7(t *testing.T, m *Model) {
	t.Helper()
	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1}))
	drain(t, m, m.navigate(Navigation{Kind: NavOpenNote, Ref: note.Ref{ID: 7, Kind: note.Session}}))
	if got := m.EditorState(); got != EditorClean {
		t.Fatalf("editor state after open = %s, want open", got)
	}
}

func makeDirty(t *testing.T, m *Model) {
	t.Helper()
	drain(t, m, m.form.FocusField(note.FieldContent))
	typeText(t, m, " edited")
	if got := m.EditorState(); got != EditorDirty {
		t.Fatalf("editor state after typing = %s, want modified", got)
	}
}

func TestInitLoadsClientsAndPseudoEntries(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)

	items := m.clients.Items()
	if len(items) != 4 {
		t.Fatalf("expected 2 active clients plus 2 pseudo-entries, got %d items", len(items))
	}
	last := items[len(items)-2:]
	if last[0].(ClientItem).pseudo != SupervisionContext || last[1].(ClientItem).pseudo != CPDContext {
		t.Fatalf("pseudo-entries missing or out of order: %+v", last)
	}
	if m.view.Totals.SessionCount != 3 {
		t.Fatalf("totals not loaded: %+v", m.view.Totals)
	}
}

func TestClientItemsPseudoEntries(t *testing.T) {
	clients := []note.Client{{ID: 1, Code: "ADA", FirstName: "Ada", Status: note.StatusActive}}

	tests := []struct {
		name       string
		view       ViewState
		wantPseudo bool
	}{
		{"active", ViewState{Filter: note.FilterActive, Clients: clients}, true},
		{"all", ViewState{Filter: note.FilterAll, Clients: clients}, true},
		{"archived", ViewState{Filter: note.FilterArchived, Clients: clients}, false},
		{"searching", ViewState{Filter: note.FilterActive, Clients: clients, Search: "ada"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pseudo := 0
			for _, it := range clientItems(tt.view) {
				if it.(ClientItem).pseudo != NoSelection {
					pseudo++
				}
			}
			if tt.wantPseudo && pseudo != 2 {
				t.Errorf("expected both pseudo-entries, got %d", pseudo)
			}
			if !tt.wantPseudo && pseudo != 0 {
				t.Errorf("expected no pseudo-entries, got %d", pseudo)
			}
		})
	}
}

func TestSelectingClientListsAssessmentsFirst(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)

	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1}))

	var kinds []note.Kind
	for _, it := range m.notes.Items() {
		kinds = append(kinds, it.(NoteItem).rec.Kind)
	}
	want := []note.Kind{note.Assessment, note.Session, note.Session}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("note order = %v, want %v", kinds, want)
	}
	if m.view.ClientTotals == nil || m.view.ClientTotals.SessionCount != 2 {
		t.Fatalf("client totals not loaded: %+v", m.view.ClientTotals)
	}
	if m.view.LastClientID != 1 {
		t.Fatalf("LastClientID = %d, want 1", m.view.LastClientID)
	}
}

func TestDirtyNoteConfirmedDiscardMovesOn(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)

	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 2}))
	if m.dialog.kind != dialogDiscard {
		t.Fatalf("expected discard prompt, got dialog kind %d", m.dialog.kind)
	}
	if m.view.Selection != SelectClient(1) {
		t.Fatalf("selection changed before confirmation: %s", m.view.Selection)
	}

	press(t, m, "y")

	if m.view.Selection != SelectClient(2) {
		t.Fatalf("selection = %s, want client/2", m.view.Selection)
	}
	if got := m.EditorState(); got != EditorEmpty {
		t.Fatalf("editor state = %s, want empty", got)
	}
	if n := fb.countCalls("DELETE"); n != 0 {
		t.Fatalf("discarding a saved note must not delete it, saw %d deletes", n)
	}
	if len(m.notes.Items()) != 1 {
		t.Fatalf("expected client 2's single session, got %d items", len(m.notes.Items()))
	}
}

func TestDeclinedDiscardKeepsEverything(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)
	before := m.form.Value(note.FieldContent)

	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))
	press(t, m, "n")

	if m.dialog.active() {
		t.Fatal("dialog still showing after decline")
	}
	if m.view.Selection != SelectClient(1) {
		t.Fatalf("selection = %s, want client/1", m.view.Selection)
	}
	if got := m.EditorState(); got != EditorDirty {
		t.Fatalf("editor state = %s, want modified", got)
	}
	if got := m.form.Value(note.FieldContent); got != before {
		t.Fatalf("content changed on decline: %q", got)
	}
	if _, _, pending := m.guard.Pending(); pending {
		t.Fatal("navigation still pending after decline")
	}
}

func TestCleanNoteNavigatesWithoutPrompt(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)

	drain(t, m, m.navigate(Navigation{Kind: NavSelectSupervision}))

	if m.dialog.active() {
		t.Fatal("clean note should not prompt")
	}
	if m.view.Selection.Kind != SupervisionContext {
		t.Fatalf("selection = %s, want supervision", m.view.Selection)
	}
}

func TestNewSupervisionIsDeletedBeforeNavigation(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1}))
	drain(t, m, m.navigate(Navigation{Kind: NavSelectSupervision}))

	m.focus = paneNotes
	press(t, m, "n")

	ref, open := m.tracker.Current()
	if !open || ref.Kind != note.Supervision {
		t.Fatalf("new supervision not opened: %+v open=%v", ref, open)
	}
	if got := m.EditorState(); got != EditorNewUnsaved {
		t.Fatalf("editor state = %s, want new, unsaved", got)
	}
	rec, ok := m.view.Note(ref)
	if !ok || rec.ClientID != 1 {
		t.Fatalf("draft should carry the last selected client, got %+v", rec)
	}

	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))
	if m.dialog.kind != dialogDiscard || !strings.Contains(m.dialog.title, "new") {
		t.Fatalf("expected discard-new prompt, got %q", m.dialog.title)
	}
	press(t, m, "y")

	calls := fb.Calls()
	del := indexOf(calls, fmt.Sprintf("DELETE %s/%d", note.Supervision.Collection(), ref.ID))
	list := indexOf(calls, "GET cpd")
	if del < 0 {
		t.Fatalf("draft was not deleted: %v", calls)
	}
	if list < 0 || list < del {
		t.Fatalf("navigation ran before the delete: %v", calls)
	}
	if m.view.Selection.Kind != CPDContext {
		t.Fatalf("selection = %s, want cpd", m.view.Selection)
	}
	if got := m.EditorState(); got != EditorEmpty {
		t.Fatalf("editor state = %s, want empty", got)
	}
}

func TestFailedDiscardDeleteCancelsNavigation(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1}))
	drain(t, m, m.navigate(Navigation{Kind: NavSelectSupervision}))
	m.focus = paneNotes
	press(t, m, "n")
	ref, _ := m.tracker.Current()

	fb.failDelete = errors.New("backend down")
	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))
	press(t, m, "y")

	if m.dialog.kind != dialogAlert {
		t.Fatalf("expected an alert, got dialog kind %d", m.dialog.kind)
	}
	if m.view.Selection.Kind != SupervisionContext {
		t.Fatalf("selection = %s, want supervision", m.view.Selection)
	}
	if cur, open := m.tracker.Current(); !open || cur != ref || !m.tracker.IsNew() {
		t.Fatalf("new note should still be open, got %+v open=%v", cur, open)
	}
}

func TestNewSupervisionNeedsAClient(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectSupervision}))

	m.focus = paneNotes
	press(t, m, "n")

	if n := fb.countCalls("POST"); n != 0 {
		t.Fatalf("supervision without a client was sent: %v", fb.Calls())
	}
	if _, open := m.tracker.Current(); open {
		t.Fatal("no note should be open")
	}
	if !strings.Contains(m.status, "client") {
		t.Fatalf("status = %q, want a hint to select a client", m.status)
	}
}

func TestDeclinedClientSelectionKeepsFocus(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)

	m.focus = paneClients
	press(t, m, "down", "enter")
	if m.dialog.kind != dialogDiscard {
		t.Fatalf("expected discard prompt, got dialog kind %d", m.dialog.kind)
	}
	press(t, m, "n")

	if m.focus != paneClients {
		t.Fatalf("focus = %d, want the client pane", m.focus)
	}
	if m.view.Selection != SelectClient(1) {
		t.Fatalf("selection = %s, want client/1", m.view.Selection)
	}
	if got := m.EditorState(); got != EditorDirty {
		t.Fatalf("editor state = %s, want modified", got)
	}
}

func TestBusyKeepsFocusButAllowsQuit(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))

	create := m.navigate(Navigation{Kind: NavNewNote, NewKind: note.CPD})
	if create == nil || m.busy == "" {
		t.Fatal("expected a create in flight")
	}

	m.focus = paneClients
	press(t, m, "down", "enter")
	if m.focus != paneClients {
		t.Fatalf("focus = %d, want the client pane while busy", m.focus)
	}
	if m.view.Selection.Kind != CPDContext {
		t.Fatalf("selection = %s, want cpd", m.view.Selection)
	}

	if !press(t, m, "ctrl+c") {
		t.Fatal("ctrl+c should quit while a request is in flight")
	}
}

func TestNavigationBlockedWhileCreating(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))

	create := m.navigate(Navigation{Kind: NavNewNote, NewKind: note.CPD})
	if cmd := m.navigate(Navigation{Kind: NavSelectSupervision}); cmd != nil {
		t.Fatal("navigation should wait for the pending create")
	}
	if m.view.Selection.Kind != CPDContext {
		t.Fatalf("selection = %s, want cpd", m.view.Selection)
	}

	drain(t, m, create)
	if got := m.EditorState(); got != EditorNewUnsaved {
		t.Fatalf("editor state = %s, want new, unsaved", got)
	}
}

func TestDoubleFilterChangeKeepsLatest(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)

	first := m.navigate(Navigation{Kind: NavChangeFilter, Filter: note.FilterAll})
	second := m.navigate(Navigation{Kind: NavChangeFilter, Filter: note.FilterArchived})

	drain(t, m, second)
	drain(t, m, first)

	if m.view.Filter != note.FilterArchived {
		t.Fatalf("filter = %s, want archived", m.view.Filter)
	}
	if len(m.view.Clients) != 1 || m.view.Clients[0].ID != 3 {
		t.Fatalf("stale client list applied: %+v", m.view.Clients)
	}
	if !m.view.Selection.IsNone() {
		t.Fatalf("filter change should clear the selection, got %s", m.view.Selection)
	}
}

func TestStaleNotesAreDropped(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)

	first := m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1})
	second := m.navigate(Navigation{Kind: NavSelectClient, ClientID: 2})

	drain(t, m, second)
	drain(t, m, first)

	for _, rec := range m.view.Notes {
		if rec.ClientID != 2 {
			t.Fatalf("notes for client %d leaked into client 2's list", rec.ClientID)
		}
	}
	if len(m.view.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(m.view.Notes))
	}
}

func TestLoadErrorKeepsPreviousState(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 1}))
	before := len(m.view.Notes)

	fb.failList = errors.New("connection refused")
	m.focus = paneNotes
	press(t, m, "r")

	if m.dialog.kind != dialogAlert {
		t.Fatalf("expected an alert, got dialog kind %d", m.dialog.kind)
	}
	if !strings.Contains(m.dialog.message, "connection refused") {
		t.Fatalf("alert should carry the cause, got %q", m.dialog.message)
	}
	if len(m.view.Notes) != before {
		t.Fatalf("notes changed on error: %d, want %d", len(m.view.Notes), before)
	}

	press(t, m, "enter")
	if m.dialog.active() {
		t.Fatal("alert not dismissed")
	}
}

func TestSaveClearsDirtyAndRefetches(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)

	press(t, m, "ctrl+s")

	if n := fb.countCalls("PUT sessions/7"); n != 1 {
		t.Fatalf("expected one PUT, got %d: %v", n, fb.Calls())
	}
	if got := m.EditorState(); got != EditorClean {
		t.Fatalf("editor state = %s, want open", got)
	}
	rec, _ := m.view.Note(note.Ref{ID: 7, Kind: note.Session})
	if !strings.Contains(rec.Content, "edited") {
		t.Fatalf("saved content not reflected in the list: %q", rec.Content)
	}
}

func TestInvalidCPDIsNotSent(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))
	drain(t, m, m.navigate(Navigation{Kind: NavOpenNote, Ref: note.Ref{ID: 9, Kind: note.CPD}}))

	drain(t, m, m.form.FocusField(note.FieldOrganisation))
	press(t, m, "ctrl+u", "ctrl+k")
	if got := m.form.Value(note.FieldOrganisation); got != "" {
		t.Fatalf("organisation not cleared: %q", got)
	}

	press(t, m, "ctrl+s")

	if m.dialog.kind != dialogAlert || !strings.Contains(m.dialog.message, "organisation") {
		t.Fatalf("expected an organisation validation alert, got %+v", m.dialog)
	}
	if n := fb.countCalls("PUT") + fb.countCalls("POST"); n != 0 {
		t.Fatalf("invalid note reached the backend: %v", fb.Calls())
	}
	if got := m.EditorState(); got != EditorDirty {
		t.Fatalf("editor state = %s, want modified", got)
	}
}

func TestNewCPDCannotBeSavedWithDraftPlaceholders(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectCPD}))

	m.focus = paneNotes
	press(t, m, "n")

	ref, open := m.tracker.Current()
	if !open || ref.Kind != note.CPD {
		t.Fatalf("new cpd not opened: %+v open=%v", ref, open)
	}
	if org, title := m.form.Value(note.FieldOrganisation), m.form.Value(note.FieldTitle); org != "" || title != "" {
		t.Fatalf("new cpd opened with organisation=%q title=%q, want both empty", org, title)
	}
	posts := fb.countCalls("POST")

	press(t, m, "ctrl+s")

	if m.dialog.kind != dialogAlert || !strings.Contains(m.dialog.message, "organisation") {
		t.Fatalf("expected an organisation validation alert, got %+v", m.dialog)
	}
	if n := fb.countCalls("PUT"); n != 0 {
		t.Fatalf("draft placeholders reached the backend: %v", fb.Calls())
	}
	if n := fb.countCalls("POST"); n != posts {
		t.Fatalf("unexpected extra create: %v", fb.Calls())
	}
	if got := m.EditorState(); got != EditorNewUnsaved {
		t.Fatalf("editor state = %s, want new, unsaved", got)
	}
}

func TestDeleteOpenNote(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)

	press(t, m, "ctrl+x")
	if m.dialog.kind != dialogDeleteNote {
		t.Fatalf("expected delete confirmation, got dialog kind %d", m.dialog.kind)
	}
	press(t, m, "y")

	if n := fb.countCalls("DELETE sessions/7"); n != 1 {
		t.Fatalf("expected the delete request, got %v", fb.Calls())
	}
	if got := m.EditorState(); got != EditorEmpty {
		t.Fatalf("editor state = %s, want empty", got)
	}
	if _, ok := m.view.Note(note.Ref{ID: 7, Kind: note.Session}); ok {
		t.Fatal("deleted note still listed")
	}
}

func TestQuitIsGuarded(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)

	if press(t, m, "ctrl+c") {
		t.Fatal("quit with unsaved work should prompt first")
	}
	if !press(t, m, "y") {
		t.Fatal("confirming the prompt should quit")
	}
}

func TestDeletingSelectedClientClearsSelection(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	drain(t, m, m.navigate(Navigation{Kind: NavSelectClient, ClientID: 2}))

	m.focus = paneClients
	press(t, m, "D")
	if m.dialog.kind != dialogDeleteClient || m.dialog.client.ID != 2 {
		t.Fatalf("expected delete confirmation for client 2, got %+v", m.dialog)
	}
	press(t, m, "y")

	if !m.view.Selection.IsNone() {
		t.Fatalf("selection = %s, want none", m.view.Selection)
	}
	if _, ok := m.view.Client(2); ok {
		t.Fatal("deleted client still listed")
	}
}

func TestDeletingClientWithUnsavedWorkIsRefused(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)
	makeDirty(t, m)

	m.focus = paneClients
	m.refreshClientItems()
	press(t, m, "D")

	if m.dialog.kind != dialogAlert {
		t.Fatalf("expected an alert, got dialog kind %d", m.dialog.kind)
	}
	if n := fb.countCalls("DELETE"); n != 0 {
		t.Fatalf("client was deleted: %v", fb.Calls())
	}
}

func TestSearchNarrowsClients(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)

	m.focus = paneClients
	press(t, m, "/")
	typeText(t, m, "ben")

	items := m.clients.Items()
	if len(items) == 0 || items[0].(ClientItem).client.ID != 2 {
		t.Fatalf("expected Ben first, got %+v", items)
	}
	for _, it := range items {
		if it.(ClientItem).pseudo != NoSelection {
			t.Fatal("pseudo-entries shown while searching")
		}
	}

	press(t, m, "esc")
	if m.view.Search != "" || len(m.clients.Items()) != 4 {
		t.Fatalf("esc should clear the search, got %q with %d items", m.view.Search, len(m.clients.Items()))
	}
}

func TestViewFramesEachPane(t *testing.T) {
	fb := newFakeBackend()
	m := newTestModel(t, fb)
	openSession7(t, m)

	out := m.View()
	for _, want := range []string{"Ada", "Session"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view is missing %q:\n%s", want, out)
		}
	}
}
