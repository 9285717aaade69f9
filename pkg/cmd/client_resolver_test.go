package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/Paintersrp/casebook/internal/note"
)

type listerFunc func(ctx context.Context, filter note.ClientFilter) ([]note.Client, error)

func (f listerFunc) ListClients(ctx context.Context, filter note.ClientFilter) ([]note.Client, error) {
	return f(ctx, filter)
}

func TestResolveClient(t *testing.T) {
	clients := []note.Client{
		{ID: 1, Code: "ADA", Status: note.StatusActive},
		{ID: 2, Code: "ben.o", Status: note.StatusArchived},
		{ID: 3, Code: "7", Status: note.StatusActive},
	}
	lister := listerFunc(func(_ context.Context, filter note.ClientFilter) ([]note.Client, error) {
		if filter != note.FilterAll {
			t.Errorf("filter = %q, want all", filter)
		}
		return clients, nil
	})

	tests := map[string]struct {
		input   string
		wantID  int
		wantErr bool
	}{
		"by id":                 {input: "2", wantID: 2},
		"by code":               {input: "ada", wantID: 1},
		"archived by code":      {input: "BEN.O", wantID: 2},
		"numeric code fallback": {input: "7", wantID: 3},
		"unknown":               {input: "zed", wantErr: true},
		"blank":                 {input: "  ", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveClient(context.Background(), lister, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Fatalf("resolved id %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveClientListError(t *testing.T) {
	boom := errors.New("boom")
	lister := listerFunc(func(context.Context, note.ClientFilter) ([]note.Client, error) {
		return nil, boom
	})
	if _, err := ResolveClient(context.Background(), lister, "1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
}
