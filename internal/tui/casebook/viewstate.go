package casebook

import (
	"fmt"

	"github.com/Paintersrp/casebook/internal/note"
)

// ContextKind is what the client pane currently has selected.
type ContextKind int

const (
	NoSelection ContextKind = iota
	ClientContext
	CPDContext
	SupervisionContext
)

// Selection is the selection context. ClientID is set only for
// ClientContext.
type Selection struct {
	Kind     ContextKind
	ClientID int
}

func SelectClient(id int) Selection {
	return Selection{Kind: ClientContext, ClientID: id}
}

func (s Selection) IsNone() bool {
	return s.Kind == NoSelection
}

// NoteKinds lists the kinds shown for the selection, in render order.
func (s Selection) NoteKinds() []note.Kind {
	switch s.Kind {
	case ClientContext:
		return []note.Kind{note.Assessment, note.Session}
	case CPDContext:
		return []note.Kind{note.CPD}
	case SupervisionContext:
		return []note.Kind{note.Supervision}
	}
	return nil
}

// NewKinds lists the kinds a new note may be created as, primary first.
func (s Selection) NewKinds() []note.Kind {
	switch s.Kind {
	case ClientContext:
		return []note.Kind{note.Session, note.Assessment}
	case CPDContext:
		return []note.Kind{note.CPD}
	case SupervisionContext:
		return []note.Kind{note.Supervision}
	}
	return nil
}

func (s Selection) String() string {
	switch s.Kind {
	case ClientContext:
		return fmt.Sprintf("client/%d", s.ClientID)
	case CPDContext:
		return "cpd"
	case SupervisionContext:
		return "supervision"
	}
	return "none"
}

// EditorState is the editor half of the navigation state machine.
type EditorState int

const (
	EditorEmpty EditorState = iota
	EditorClean
	EditorDirty
	EditorNewUnsaved
)

func (e EditorState) String() string {
	switch e {
	case EditorClean:
		return "open"
	case EditorDirty:
		return "modified"
	case EditorNewUnsaved:
		return "new, unsaved"
	}
	return "empty"
}

// ViewState is everything the screen shows that came from the backend, plus
// the selection it was fetched for. It is only touched from Update.
type ViewState struct {
	Filter       note.ClientFilter
	Selection    Selection
	LastClientID int
	Search       string

	Clients      []note.Client
	Notes        []note.Record
	Totals       note.Totals
	ClientTotals *note.Totals

	clientsGen int
	notesGen   int
	totalsGen  int
}

// Client looks up a loaded client by id.
func (v ViewState) Client(id int) (note.Client, bool) {
	for _, c := range v.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return note.Client{}, false
}

// Note looks up a loaded note.
func (v ViewState) Note(ref note.Ref) (note.Record, bool) {
	for _, n := range v.Notes {
		if n.Ref() == ref {
			return n, true
		}
	}
	return note.Record{}, false
}

// SelectionLabel names the current selection for headings.
func (v ViewState) SelectionLabel() string {
	switch v.Selection.Kind {
	case ClientContext:
		if c, ok := v.Client(v.Selection.ClientID); ok {
			return c.Label()
		}
		return fmt.Sprintf("Client %d", v.Selection.ClientID)
	case CPDContext:
		return "CPD"
	case SupervisionContext:
		return "Supervision"
	}
	return "No selection"
}
