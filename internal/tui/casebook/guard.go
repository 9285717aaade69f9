package casebook

import (
	"github.com/Paintersrp/casebook/internal/lifecycle"
	"github.com/Paintersrp/casebook/internal/note"
)

// NavKind is a user action that changes what is selected or open.
type NavKind int

const (
	NavSelectClient NavKind = iota
	NavSelectCPD
	NavSelectSupervision
	NavChangeFilter
	NavOpenNote
	NavNewNote
	NavClearSelection
	NavQuit
)

func (k NavKind) String() string {
	switch k {
	case NavSelectClient:
		return "select client"
	case NavSelectCPD:
		return "select CPD"
	case NavSelectSupervision:
		return "select supervision"
	case NavChangeFilter:
		return "change filter"
	case NavOpenNote:
		return "open note"
	case NavNewNote:
		return "new note"
	case NavClearSelection:
		return "clear selection"
	case NavQuit:
		return "quit"
	}
	return "navigate"
}

// Navigation is a requested transition. Only the fields relevant to Kind
// are set.
type Navigation struct {
	Kind     NavKind
	ClientID int
	Ref      note.Ref
	NewKind  note.Kind
	Filter   note.ClientFilter
}

// Guard interposes the discard confirmation on every navigation made while
// the open note has unsaved work.
type Guard struct {
	tracker *lifecycle.Tracker
	pending *Navigation
	prompt  lifecycle.Prompt
}

func NewGuard(t *lifecycle.Tracker) *Guard {
	return &Guard{tracker: t}
}

// Request returns true when nav may proceed immediately. Otherwise nav is
// held until Accept or Decline.
func (g *Guard) Request(nav Navigation) bool {
	prompt, needed := g.tracker.DiscardPrompt()
	if !needed {
		g.pending = nil
		return true
	}
	g.pending = &nav
	g.prompt = prompt
	return false
}

// Pending returns the held navigation and its prompt.
func (g *Guard) Pending() (Navigation, lifecycle.Prompt, bool) {
	if g.pending == nil {
		return Navigation{}, lifecycle.Prompt{}, false
	}
	return *g.pending, g.prompt, true
}

// Accept releases the held navigation. The caller discards the open note
// before applying it.
func (g *Guard) Accept() (Navigation, bool) {
	if g.pending == nil {
		return Navigation{}, false
	}
	nav := *g.pending
	g.pending = nil
	return nav, true
}

// Decline drops the held navigation and leaves everything as it was.
func (g *Guard) Decline() {
	g.pending = nil
}

func (g *Guard) EditorState() EditorState {
	switch {
	case !g.tracker.IsOpen():
		return EditorEmpty
	case g.tracker.IsNew():
		return EditorNewUnsaved
	case g.tracker.Dirty():
		return EditorDirty
	}
	return EditorClean
}
