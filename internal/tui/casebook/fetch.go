package casebook

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/casebook/internal/note"
)

type clientsLoadedMsg struct {
	gen     int
	filter  note.ClientFilter
	clients []note.Client
	err     error
}

type notesLoadedMsg struct {
	gen          int
	sel          Selection
	notes        []note.Record
	clientTotals *note.Totals
	err          error
}

type totalsLoadedMsg struct {
	gen    int
	totals note.Totals
	err    error
}

type noteCreatedMsg struct {
	sel Selection
	rec note.Record
	err error
}

type noteSavedMsg struct {
	ref note.Ref
	rev int
	rec note.Record
	err error
}

type noteDeletedMsg struct {
	ref note.Ref
	err error
}

// discardedMsg reports the delete of an unsaved new note made on the way to
// nav.
type discardedMsg struct {
	ref note.Ref
	nav Navigation
	err error
}

type clientSavedMsg struct {
	client note.Client
	action string
	err    error
}

type clientDeletedMsg struct {
	id  int
	err error
}

func (m *Model) fetchClients() tea.Cmd {
	m.view.clientsGen++
	gen, filter, backend := m.view.clientsGen, m.view.Filter, m.backend

	return func() tea.Msg {
		clients, err := backend.ListClients(context.Background(), filter)
		if err != nil {
			err = fmt.Errorf("failed to load %s clients: %w", filter, err)
		}
		return clientsLoadedMsg{gen: gen, filter: filter, clients: clients, err: err}
	}
}

func (m *Model) fetchTotals() tea.Cmd {
	m.view.totalsGen++
	gen, filter, backend := m.view.totalsGen, m.view.Filter, m.backend

	return func() tea.Msg {
		totals, err := backend.Totals(context.Background(), filter)
		if err != nil {
			err = fmt.Errorf("failed to load totals: %w", err)
		}
		return totalsLoadedMsg{gen: gen, totals: totals, err: err}
	}
}

// fetchNotes loads the note list for the current selection. A client
// selection issues its sessions, assessments and totals requests
// concurrently; the list is always assessments first, then sessions.
func (m *Model) fetchNotes() tea.Cmd {
	sel := m.view.Selection
	if sel.IsNone() {
		return nil
	}
	m.view.notesGen++
	gen, backend := m.view.notesGen, m.backend

	return func() tea.Msg {
		msg := notesLoadedMsg{gen: gen, sel: sel}

		switch sel.Kind {
		case ClientContext:
			var sessions, assessments []note.Record
			var totals note.Totals

			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() error {
				var err error
				sessions, err = backend.ListNotes(ctx, note.Session, sel.ClientID)
				return err
			})
			g.Go(func() error {
				var err error
				assessments, err = backend.ListNotes(ctx, note.Assessment, sel.ClientID)
				return err
			})
			g.Go(func() error {
				var err error
				totals, err = backend.ClientTotals(ctx, sel.ClientID)
				return err
			})
			if err := g.Wait(); err != nil {
				msg.err = fmt.Errorf("failed to load notes: %w", err)
				return msg
			}

			msg.notes = make([]note.Record, 0, len(assessments)+len(sessions))
			msg.notes = append(msg.notes, assessments...)
			msg.notes = append(msg.notes, sessions...)
			msg.clientTotals = &totals

		case CPDContext, SupervisionContext:
			kind := sel.NoteKinds()[0]
			notes, err := backend.ListNotes(context.Background(), kind, 0)
			if err != nil {
				msg.err = fmt.Errorf("failed to load %s notes: %w", kind, err)
				return msg
			}
			msg.notes = notes
		}
		return msg
	}
}

func (m *Model) createNote(kind note.Kind) tea.Cmd {
	sel := m.view.Selection
	clientID := 0
	switch sel.Kind {
	case ClientContext:
		clientID = sel.ClientID
	case SupervisionContext:
		clientID = m.view.LastClientID
	}
	p := note.Draft(kind, clientID, note.Today(), m.defaults)
	backend := m.backend

	return func() tea.Msg {
		rec, err := backend.CreateNote(context.Background(), p)
		if err != nil {
			err = fmt.Errorf("failed to create %s: %w", kind.Label(), err)
		}
		return noteCreatedMsg{sel: sel, rec: rec, err: err}
	}
}

func (m *Model) saveNote(ref note.Ref, rev int, p note.Payload) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		rec, err := backend.UpdateNote(context.Background(), ref.ID, p)
		if err != nil {
			err = fmt.Errorf("failed to save %s: %w", ref.Kind.Label(), err)
		}
		return noteSavedMsg{ref: ref, rev: rev, rec: rec, err: err}
	}
}

func (m *Model) deleteNote(ref note.Ref) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.DeleteNote(context.Background(), ref)
		if err != nil {
			err = fmt.Errorf("failed to delete %s: %w", ref.Kind.Label(), err)
		}
		return noteDeletedMsg{ref: ref, err: err}
	}
}

// discardNew deletes an unsaved new note. nav is applied only once the
// record is gone.
func (m *Model) discardNew(ref note.Ref, nav Navigation) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.DeleteNote(context.Background(), ref)
		if err != nil {
			err = fmt.Errorf("failed to delete unsaved %s: %w", ref.Kind.Label(), err)
		}
		return discardedMsg{ref: ref, nav: nav, err: err}
	}
}

// dropOrphan removes a draft whose creation finished after the user had
// already moved elsewhere.
func (m *Model) dropOrphan(ref note.Ref) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		if err := backend.DeleteNote(context.Background(), ref); err != nil {
			log.Printf("casebook: failed to remove orphaned draft %s: %v", ref, err)
		}
		return nil
	}
}

func (m *Model) saveClient(id int, in note.ClientInput) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		var (
			c      note.Client
			err    error
			action = "Created"
		)
		if id == 0 {
			c, err = backend.CreateClient(context.Background(), in)
		} else {
			action = "Updated"
			c, err = backend.UpdateClient(context.Background(), id, in)
		}
		if err != nil {
			err = fmt.Errorf("failed to save client: %w", err)
		}
		return clientSavedMsg{client: c, action: action, err: err}
	}
}

func (m *Model) setArchived(c note.Client, archive bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		action := "Archived"
		if !archive {
			action = "Restored"
		}
		updated, err := backend.SetArchived(context.Background(), c.ID, archive)
		if err != nil {
			err = fmt.Errorf("failed to update %s: %w", c.Label(), err)
		}
		return clientSavedMsg{client: updated, action: action, err: err}
	}
}

func (m *Model) deleteClient(id int) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.DeleteClient(context.Background(), id)
		if err != nil {
			err = fmt.Errorf("failed to delete client: %w", err)
		}
		return clientDeletedMsg{id: id, err: err}
	}
}
