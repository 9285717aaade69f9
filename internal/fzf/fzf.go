package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/utils"
)

// ErrNoSelection is returned when the user aborts the picker.
var ErrNoSelection = errors.New("no client selected")

// ClientFinder picks one client with an interactive fuzzy finder.
type ClientFinder struct {
	Header  string
	clients []note.Client
}

func NewClientFinder(clients []note.Client, header string) *ClientFinder {
	return &ClientFinder{clients: clients, Header: header}
}

func (f *ClientFinder) Run() (note.Client, error) {
	return f.RunWithQuery("")
}

func (f *ClientFinder) RunWithQuery(query string) (note.Client, error) {
	if len(f.clients) == 0 {
		return note.Client{}, fmt.Errorf("there are no clients to choose from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.preview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.clients, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return note.Client{}, ErrNoSelection
	}
	if err != nil {
		return note.Client{}, fmt.Errorf("error selecting client: %w", err)
	}
	return f.clients[idx], nil
}

func (f *ClientFinder) label(i int) string {
	c := f.clients[i]
	if c.Archived() {
		return c.Label() + " [archived]"
	}
	return c.Label()
}

func (f *ClientFinder) preview(i, w, _ int) string {
	if i == -1 {
		return ""
	}
	out, err := utils.RenderMarkdown(clientCard(f.clients[i]), w)
	if err != nil {
		return "Error rendering client"
	}
	return out
}

// clientCard is the markdown shown in the preview pane.
func clientCard(c note.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.FullName())
	fmt.Fprintf(&b, "- **Code:** %s\n", c.Code)
	fmt.Fprintf(&b, "- **Status:** %s\n", c.Status)
	if !c.DateOfBirth.IsZero() {
		fmt.Fprintf(&b, "- **Date of birth:** %s\n", c.DateOfBirth.Display())
	}
	if c.Email != "" {
		fmt.Fprintf(&b, "- **Email:** %s\n", c.Email)
	}
	if c.Phone != "" {
		fmt.Fprintf(&b, "- **Phone:** %s\n", c.Phone)
	}
	return b.String()
}
