package casebook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sahilm/fuzzy"

	"github.com/Paintersrp/casebook/internal/note"
)

const excerptLength = 80

// ClientItem is a client row, or one of the Supervision and CPD
// pseudo-entries when pseudo is set.
type ClientItem struct {
	client   note.Client
	pseudo   ContextKind
	selected bool
}

func (i ClientItem) Selection() Selection {
	if i.pseudo != NoSelection {
		return Selection{Kind: i.pseudo}
	}
	return SelectClient(i.client.ID)
}

func (i ClientItem) Title() string {
	marker := "  "
	if i.selected {
		marker = "● "
	}
	switch i.pseudo {
	case SupervisionContext:
		return marker + "Supervision"
	case CPDContext:
		return marker + "CPD"
	}
	return marker + i.client.Label()
}

func (i ClientItem) Description() string {
	switch i.pseudo {
	case SupervisionContext:
		return "  supervision notes"
	case CPDContext:
		return "  professional development"
	}
	parts := []string{}
	if i.client.Archived() {
		parts = append(parts, "archived")
	}
	if i.client.Email != "" {
		parts = append(parts, i.client.Email)
	}
	if len(parts) == 0 {
		return "  active"
	}
	return "  " + strings.Join(parts, " · ")
}

func (i ClientItem) FilterValue() string {
	return i.Title()
}

// clientSource adapts a client slice to fuzzy.Source.
type clientSource []note.Client

func (s clientSource) String(i int) string {
	c := s[i]
	return c.Code + " " + c.FullName()
}

func (s clientSource) Len() int {
	return len(s)
}

// clientItems builds the client pane. With a search query the clients are
// fuzzy-ranked and the pseudo-entries are left out; without one they follow
// the backend order and the pseudo-entries are appended unless only archived
// clients are listed.
func clientItems(v ViewState) []list.Item {
	clients := v.Clients
	query := strings.TrimSpace(v.Search)
	if query != "" {
		matches := fuzzy.FindFrom(query, clientSource(clients))
		ranked := make([]note.Client, 0, len(matches))
		for _, match := range matches {
			ranked = append(ranked, clients[match.Index])
		}
		clients = ranked
	}

	items := make([]list.Item, 0, len(clients)+2)
	for _, c := range clients {
		items = append(items, ClientItem{
			client:   c,
			selected: v.Selection.Kind == ClientContext && v.Selection.ClientID == c.ID,
		})
	}

	if query == "" && v.Filter != note.FilterArchived {
		for _, pseudo := range []ContextKind{SupervisionContext, CPDContext} {
			items = append(items, ClientItem{pseudo: pseudo, selected: v.Selection.Kind == pseudo})
		}
	}
	return items
}

// NoteItem is a note row.
type NoteItem struct {
	rec     note.Record
	excerpt string
	open    bool
}

func newNoteItem(rec note.Record, open bool) NoteItem {
	return NoteItem{rec: rec, excerpt: note.Excerpt(rec.Content, excerptLength), open: open}
}

func (i NoteItem) Ref() note.Ref {
	return i.rec.Ref()
}

func (i NoteItem) Title() string {
	title := i.rec.Heading()
	if i.open {
		title = "● " + title
	}
	var badges []string
	if i.rec.Kind == note.Session {
		badges = append(badges, "["+string(i.rec.SessionType)+"]")
	}
	if i.rec.HasPayment() {
		if i.rec.IsPaid {
			badges = append(badges, "✓ paid")
		} else {
			badges = append(badges, "✗ unpaid")
		}
	}
	if len(badges) == 0 {
		return title
	}
	return title + "  " + strings.Join(badges, " ")
}

func (i NoteItem) Description() string {
	var parts []string
	switch i.rec.Kind {
	case note.Session, note.Assessment, note.Supervision:
		if i.rec.DurationMinutes > 0 {
			parts = append(parts, fmt.Sprintf("%d min", i.rec.DurationMinutes))
		}
		if i.rec.Kind == note.Supervision && i.rec.Summary != "" {
			parts = append(parts, i.rec.Summary)
		}
	case note.CPD:
		parts = append(parts, fmt.Sprintf("%s · %gh", i.rec.Organisation, i.rec.DurationHours))
	}
	if i.excerpt != "" {
		parts = append(parts, i.excerpt)
	}
	return strings.Join(parts, " · ")
}

func (i NoteItem) FilterValue() string {
	return i.rec.Heading() + " " + i.excerpt
}

func noteItems(notes []note.Record, open note.Ref, isOpen bool) []list.Item {
	items := make([]list.Item, 0, len(notes))
	for _, rec := range notes {
		items = append(items, newNoteItem(rec, isOpen && rec.Ref() == open))
	}
	return items
}
