package submodels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/casebook/internal/note"
	"github.com/Paintersrp/casebook/internal/tui/editor"
)

// LoadGuard suppresses dirty tracking while the form is populated.
type LoadGuard interface {
	BeginLoad()
	EndLoad()
}

var textFields = []note.Field{
	note.FieldDate,
	note.FieldDurationMinutes,
	note.FieldDurationHours,
	note.FieldSummary,
	note.FieldOrganisation,
	note.FieldTitle,
	note.FieldMedium,
	note.FieldLinkURL,
	note.FieldPersonalNotes,
}

var fieldLabels = map[note.Field]string{
	note.FieldDate:            "Date",
	note.FieldDurationMinutes: "Duration (minutes)",
	note.FieldDurationHours:   "Duration (hours)",
	note.FieldSessionType:     "Session type",
	note.FieldPaid:            "Paid",
	note.FieldSummary:         "Summary",
	note.FieldOrganisation:    "Organisation",
	note.FieldTitle:           "Title",
	note.FieldMedium:          "Medium",
	note.FieldLinkURL:         "Link",
	note.FieldPersonalNotes:   "Personal notes",
	note.FieldContent:         "Content",
}

// NoteForm is the single form shared by every note kind. Which fields are
// shown and required follows the kind it was last projected with.
type NoteForm struct {
	kind        note.Kind
	fields      []note.Field
	inputs      map[note.Field]textinput.Model
	sessionType note.SessionType
	paid        bool
	body        editor.Binding
	focused     int
	onEdit      func()
	width       int
}

func NewNoteForm() NoteForm {
	inputs := make(map[note.Field]textinput.Model, len(textFields))
	for _, f := range textFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.Placeholder = fieldLabels[f]
		inputs[f] = ti
	}

	date := inputs[note.FieldDate]
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 32
	inputs[note.FieldDate] = date

	summary := inputs[note.FieldSummary]
	summary.CharLimit = note.SummaryLimit
	inputs[note.FieldSummary] = summary

	f := NoteForm{
		inputs:      inputs,
		sessionType: note.InPerson,
		body:        editor.New(),
		width:       80,
	}
	f.setKind(note.Session)
	return f
}

// OnEdit registers fn to run on every user edit of any field.
func (f *NoteForm) OnEdit(fn func()) {
	f.onEdit = fn
	f.body.OnUserEdit(fn)
}

func (f NoteForm) Kind() note.Kind {
	return f.kind
}

// Visible reports whether field is shown for the current kind.
func (f NoteForm) Visible(field note.Field) bool {
	return f.kind.Shows(field)
}

// Required reports whether field blocks submission when empty. Hidden
// fields are never required.
func (f NoteForm) Required(field note.Field) bool {
	return f.Visible(field) && f.kind.Requires(field)
}

// Value returns the raw text of a field.
func (f NoteForm) Value(field note.Field) string {
	switch field {
	case note.FieldSessionType:
		return string(f.sessionType)
	case note.FieldPaid:
		return strconv.FormatBool(f.paid)
	case note.FieldContent:
		return f.body.Content()
	}
	return f.inputs[field].Value()
}

func (f *NoteForm) setKind(k note.Kind) {
	f.kind = k
	f.fields = k.FormFields()
	if f.focused >= len(f.fields) {
		f.focused = 0
	}
}

func (f *NoteForm) set(field note.Field, value string) {
	in := f.inputs[field]
	in.SetValue(value)
	in.CursorEnd()
	f.inputs[field] = in
}

// Clear empties every field.
func (f *NoteForm) Clear() {
	for _, field := range textFields {
		f.set(field, "")
	}
	f.sessionType = note.InPerson
	f.paid = false
	f.body.SetContent("")
	f.focused = 0
}

// ProjectToForm loads rec into the form for kind. The guard is held for the
// whole span so nothing set here counts as a user edit.
func (f *NoteForm) ProjectToForm(kind note.Kind, rec note.Record, guard LoadGuard) {
	guard.BeginLoad()
	defer guard.EndLoad()

	f.Clear()
	f.setKind(kind)
	f.set(note.FieldDate, formDate(rec.Date))
	f.set(note.FieldPersonalNotes, rec.PersonalNotes)

	switch kind {
	case note.Session, note.Assessment:
		f.set(note.FieldDurationMinutes, formInt(rec.DurationMinutes))
		f.sessionType = sessionTypeOrDefault(rec.SessionType)
		f.paid = rec.IsPaid
	case note.Supervision:
		f.set(note.FieldDurationMinutes, formInt(rec.DurationMinutes))
		f.sessionType = sessionTypeOrDefault(rec.SessionType)
		f.set(note.FieldSummary, note.TruncateSummary(rec.Summary))
	case note.CPD:
		f.set(note.FieldDurationHours, formFloat(rec.DurationHours))
		f.set(note.FieldOrganisation, rec.Organisation)
		f.set(note.FieldTitle, rec.Title)
		f.set(note.FieldMedium, rec.Medium)
		f.set(note.FieldLinkURL, rec.LinkURL)
	}

	f.body.SetContent(rec.Content)
}

// ProjectFromForm builds the update payload for kind from the current field
// values. Invalid or missing required values are rejected here, before any
// request is made.
func (f NoteForm) ProjectFromForm(kind note.Kind) (note.Payload, error) {
	date, err := f.date()
	if err != nil {
		return nil, err
	}
	content := f.body.Content()
	personal := f.text(note.FieldPersonalNotes)

	var p note.Payload
	switch kind {
	case note.Session:
		minutes, err := f.minutes()
		if err != nil {
			return nil, err
		}
		p = note.SessionPayload{
			SessionDate:     date,
			DurationMinutes: minutes,
			IsPaid:          f.paid,
			SessionType:     f.sessionType,
			Content:         content,
			PersonalNotes:   personal,
		}
	case note.Assessment:
		minutes, err := f.minutes()
		if err != nil {
			return nil, err
		}
		p = note.AssessmentPayload{
			AssessmentDate:  date,
			DurationMinutes: minutes,
			IsPaid:          f.paid,
			SessionType:     f.sessionType,
			Content:         content,
			PersonalNotes:   personal,
		}
	case note.Supervision:
		minutes, err := f.minutes()
		if err != nil {
			return nil, err
		}
		p = note.SupervisionPayload{
			SupervisionDate: date,
			DurationMinutes: minutes,
			SessionType:     f.sessionType,
			Summary:         note.TruncateSummary(f.text(note.FieldSummary)),
			Content:         content,
			PersonalNotes:   personal,
		}
	case note.CPD:
		hours, err := f.hours()
		if err != nil {
			return nil, err
		}
		p = note.CPDPayload{
			CPDDate:       date,
			DurationHours: hours,
			Organisation:  f.text(note.FieldOrganisation),
			Title:         f.text(note.FieldTitle),
			Medium:        f.text(note.FieldMedium),
			LinkURL:       f.text(note.FieldLinkURL),
			Content:       content,
			PersonalNotes: personal,
		}
	default:
		return nil, fmt.Errorf("unknown note kind %v", kind)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (f NoteForm) text(field note.Field) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

func (f NoteForm) date() (note.Date, error) {
	raw := f.text(note.FieldDate)
	if raw == "" {
		return note.Date{}, &note.ValidationError{Field: note.FieldDate, Message: "is required"}
	}
	d, err := note.ParseInput(raw)
	if err != nil {
		return note.Date{}, &note.ValidationError{Field: note.FieldDate, Message: err.Error()}
	}
	return d, nil
}

func (f NoteForm) minutes() (int, error) {
	raw := f.text(note.FieldDurationMinutes)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &note.ValidationError{Field: note.FieldDurationMinutes, Message: "must be a whole number"}
	}
	return n, nil
}

func (f NoteForm) hours() (float64, error) {
	raw := f.text(note.FieldDurationHours)
	if raw == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &note.ValidationError{Field: note.FieldDurationHours, Message: "must be a number"}
	}
	return h, nil
}

func formDate(d note.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func formInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sessionTypeOrDefault(st note.SessionType) note.SessionType {
	if st.Valid() {
		return st
	}
	return note.InPerson
}

func (f NoteForm) current() note.Field {
	if len(f.fields) == 0 {
		return note.FieldContent
	}
	return f.fields[f.focused]
}

// Focus gives keyboard focus to the current field.
func (f *NoteForm) Focus() tea.Cmd {
	f.Blur()
	field := f.current()
	if field == note.FieldContent {
		return f.body.Focus()
	}
	if in, ok := f.inputs[field]; ok {
		cmd := in.Focus()
		f.inputs[field] = in
		return cmd
	}
	return nil
}

func (f *NoteForm) Blur() {
	for field, in := range f.inputs {
		in.Blur()
		f.inputs[field] = in
	}
	f.body.Blur()
}

// FocusField moves focus to field if it is visible.
func (f *NoteForm) FocusField(field note.Field) tea.Cmd {
	for i, visible := range f.fields {
		if visible == field {
			f.focused = i
			return f.Focus()
		}
	}
	return nil
}

func (f NoteForm) Focused() note.Field {
	return f.current()
}

func (f *NoteForm) SetSize(width, height int) {
	f.width = width
	for field, in := range f.inputs {
		in.Width = max(width-22, 10)
		f.inputs[field] = in
	}
	rows := 2*len(f.fields) + 2
	f.body.SetSize(width, max(height-rows, 3))
}

func (f NoteForm) Update(msg tea.Msg) (NoteForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			f.focused = (f.focused + 1) % len(f.fields)
			return f, f.Focus()
		case "shift+tab":
			f.focused = (f.focused - 1 + len(f.fields)) % len(f.fields)
			return f, f.Focus()
		}

		switch field := f.current(); field {
		case note.FieldSessionType, note.FieldPaid:
			switch key.String() {
			case " ", "enter", "left", "right":
				f.toggle(field)
			}
			return f, nil
		}
	}

	field := f.current()
	if field == note.FieldContent {
		var cmd tea.Cmd
		f.body, cmd = f.body.Update(msg)
		return f, cmd
	}

	in, ok := f.inputs[field]
	if !ok {
		return f, nil
	}
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	f.inputs[field] = in
	if in.Value() != before {
		f.edited()
	}
	return f, cmd
}

func (f *NoteForm) toggle(field note.Field) {
	switch field {
	case note.FieldSessionType:
		f.sessionType = f.sessionType.Toggle()
	case note.FieldPaid:
		f.paid = !f.paid
	}
	f.edited()
}

func (f *NoteForm) edited() {
	if f.onEdit != nil {
		f.onEdit()
	}
}

func (f NoteForm) label(field note.Field) string {
	text := fieldLabels[field]
	if f.Required(field) {
		text += requiredStyle.Render(" *")
	}
	if field == f.current() {
		return focusedLabel.Render("> ") + focusedLabel.Render(text)
	}
	return labelStyle.Render("  " + text)
}

func (f NoteForm) fieldView(field note.Field) string {
	switch field {
	case note.FieldSessionType:
		return radio(f.sessionType == note.InPerson, string(note.InPerson)) + "  " +
			radio(f.sessionType == note.Online, string(note.Online))
	case note.FieldPaid:
		if f.paid {
			return "[x] paid"
		}
		return "[ ] unpaid"
	case note.FieldContent:
		return f.body.View()
	}
	return f.inputs[field].View()
}

func radio(on bool, label string) string {
	if on {
		return "(•) " + label
	}
	return "( ) " + label
}

func (f NoteForm) View() string {
	var rows []string
	for _, field := range f.fields {
		if field == note.FieldContent {
			rows = append(rows, "", f.label(field), f.fieldView(field))
			continue
		}
		label := lipgloss.NewStyle().Width(22).Render(f.label(field))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, f.fieldView(field)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CopyContent puts the note body on the clipboard.
func (f NoteForm) CopyContent() error {
	return f.body.Copy()
}
