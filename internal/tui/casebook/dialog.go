package casebook

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/casebook/internal/note"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAlert
	dialogDiscard
	dialogDeleteNote
	dialogDeleteClient
)

// dialog is a blocking notice or confirmation. While one is showing, keys
// go nowhere else.
type dialog struct {
	kind    dialogKind
	title   string
	message string
	ref     note.Ref
	client  note.Client
}

func (d dialog) active() bool {
	return d.kind != dialogNone
}

func (d dialog) confirms() bool {
	return d.kind == dialogDiscard || d.kind == dialogDeleteNote || d.kind == dialogDeleteClient
}

func alert(title string, err error) dialog {
	return dialog{kind: dialogAlert, title: title, message: err.Error()}
}

func (d dialog) View(width int) string {
	hint := "enter to dismiss"
	if d.confirms() {
		hint = "y to confirm · n to cancel"
	}
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		dialogTitleStyle.Render(d.title),
		"",
		lipgloss.NewStyle().Width(min(max(width-12, 20), 60)).Render(d.message),
		"",
		mutedStyle.Render(hint),
	)
	return dialogStyle.Render(body)
}
