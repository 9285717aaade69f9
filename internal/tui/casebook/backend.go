package casebook

import (
	"context"

	"github.com/Paintersrp/casebook/internal/note"
)

// Backend is the subset of the API client the TUI uses. *api.Client
// implements it.
type Backend interface {
	ListClients(ctx context.Context, filter note.ClientFilter) ([]note.Client, error)
	CreateClient(ctx context.Context, in note.ClientInput) (note.Client, error)
	UpdateClient(ctx context.Context, id int, in note.ClientInput) (note.Client, error)
	SetArchived(ctx context.Context, id int, archive bool) (note.Client, error)
	DeleteClient(ctx context.Context, id int) error

	ListNotes(ctx context.Context, kind note.Kind, clientID int) ([]note.Record, error)
	CreateNote(ctx context.Context, p note.Payload) (note.Record, error)
	UpdateNote(ctx context.Context, id int, p note.Payload) (note.Record, error)
	DeleteNote(ctx context.Context, ref note.Ref) error

	Totals(ctx context.Context, filter note.ClientFilter) (note.Totals, error)
	ClientTotals(ctx context.Context, clientID int) (note.Totals, error)
}
