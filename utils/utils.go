package utils

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// RenderMarkdown styles note content for the terminal, wrapped at width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(content) == "" {
		content = "_No content yet._"
	}
	return r.Render(content)
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Pluralize returns word with an "s" unless n is one.
func Pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
