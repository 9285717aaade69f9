// Package export takes a full snapshot of the caseload and writes it to a
// file or an S3 bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/casebook/internal/constants"
	"github.com/Paintersrp/casebook/internal/note"
)

// concurrent per-client fetches
const fetchLimit = 4

// Lister is the read side of the backend.
type Lister interface {
	ListClients(ctx context.Context, filter note.ClientFilter) ([]note.Client, error)
	ListNotes(ctx context.Context, kind note.Kind, clientID int) ([]note.Record, error)
	Totals(ctx context.Context, filter note.ClientFilter) (note.Totals, error)
}

type ClientNotes struct {
	Client      note.Client   `json:"client"`
	Assessments []note.Record `json:"assessments"`
	Sessions    []note.Record `json:"sessions"`
}

type Snapshot struct {
	Version     string        `json:"version"`
	TakenAt     time.Time     `json:"taken_at"`
	Clients     []ClientNotes `json:"clients"`
	Supervision []note.Record `json:"supervision"`
	CPD         []note.Record `json:"cpd"`
	Totals      note.Totals   `json:"totals"`
}

// Counts returns the number of clients and notes in the snapshot.
func (s Snapshot) Counts() (clients, notes int) {
	notes = len(s.Supervision) + len(s.CPD)
	for _, c := range s.Clients {
		notes += len(c.Assessments) + len(c.Sessions)
	}
	return len(s.Clients), notes
}

// Collect reads every client, archived ones included, with all of their
// notes, plus the global supervision and CPD lists.
func Collect(ctx context.Context, l Lister, now time.Time) (Snapshot, error) {
	clients, err := l.ListClients(ctx, note.FilterAll)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list clients: %w", err)
	}

	snap := Snapshot{
		Version: constants.Version,
		TakenAt: now.UTC(),
		Clients: make([]ClientNotes, len(clients)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)

	for i, c := range clients {
		i, c := i, c
		snap.Clients[i].Client = c
		g.Go(func() error {
			assessments, err := l.ListNotes(gctx, note.Assessment, c.ID)
			if err != nil {
				return fmt.Errorf("assessments for %s: %w", c.Label(), err)
			}
			sessions, err := l.ListNotes(gctx, note.Session, c.ID)
			if err != nil {
				return fmt.Errorf("sessions for %s: %w", c.Label(), err)
			}
			snap.Clients[i].Assessments = assessments
			snap.Clients[i].Sessions = sessions
			return nil
		})
	}
	g.Go(func() error {
		var err error
		snap.Supervision, err = l.ListNotes(gctx, note.Supervision, 0)
		return err
	})
	g.Go(func() error {
		var err error
		snap.CPD, err = l.ListNotes(gctx, note.CPD, 0)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Totals, err = l.Totals(gctx, note.FilterAll)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to collect snapshot: %w", err)
	}
	return snap, nil
}

func Encode(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// WriteFile writes the snapshot readable by the owner only.
func WriteFile(path string, snap Snapshot) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}

// FileName is the default name for a snapshot taken at t.
func FileName(t time.Time) string {
	return "casebook-" + t.UTC().Format("20060102T150405Z") + ".json"
}
