package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Paintersrp/casebook/internal/note"
)

type ClientLister interface {
	ListClients(ctx context.Context, filter note.ClientFilter) ([]note.Client, error)
}

// ResolveClient finds a client by numeric id or, failing that, by client
// code. Archived clients are included.
func ResolveClient(ctx context.Context, l ClientLister, arg string) (note.Client, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return note.Client{}, fmt.Errorf("a client id or code is required")
	}

	clients, err := l.ListClients(ctx, note.FilterAll)
	if err != nil {
		return note.Client{}, fmt.Errorf("failed to list clients: %w", err)
	}

	if id, err := strconv.Atoi(arg); err == nil {
		for _, c := range clients {
			if c.ID == id {
				return c, nil
			}
		}
	}
	for _, c := range clients {
		if strings.EqualFold(c.Code, arg) {
			return c, nil
		}
	}

	return note.Client{}, fmt.Errorf("no client with id or code %q", arg)
}
