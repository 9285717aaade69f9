package submodels

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/casebook/internal/note"
)

const (
	clientCode = iota
	firstName
	lastName
	email
	phone
	dateOfBirth
)

var clientLabels = []string{
	"Client code",
	"First name",
	"Last name",
	"Email",
	"Phone",
	"Date of birth",
}

// ClientSubmitMsg is sent when the client form is submitted with valid input.
// ID is zero for a new client.
type ClientSubmitMsg struct {
	ID    int
	Input note.ClientInput
}

// ClientCancelMsg is sent when the client form is dismissed.
type ClientCancelMsg struct{}

type ClientForm struct {
	Inputs  []textinput.Model
	Focused int
	id      int
	btn     Button
	Err     error
}

// NewClientForm returns an empty form for creating a client.
func NewClientForm() ClientForm {
	inputs := make([]textinput.Model, len(clientLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].Width = 40
		inputs[i].CharLimit = 128
		inputs[i].Placeholder = clientLabels[i]
		inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
	inputs[clientCode].CharLimit = 32
	inputs[dateOfBirth].Placeholder = "DD/MM/YYYY"
	inputs[clientCode].Focus()

	return ClientForm{
		Inputs: inputs,
		btn:    NewButton("Save"),
	}
}

// EditClientForm returns a form prefilled with c.
func EditClientForm(c note.Client) ClientForm {
	f := NewClientForm()
	f.id = c.ID
	f.Inputs[clientCode].SetValue(c.Code)
	f.Inputs[firstName].SetValue(c.FirstName)
	f.Inputs[lastName].SetValue(c.LastName)
	f.Inputs[email].SetValue(c.Email)
	f.Inputs[phone].SetValue(c.Phone)
	if !c.DateOfBirth.IsZero() {
		f.Inputs[dateOfBirth].SetValue(c.DateOfBirth.Display())
	}
	return f
}

func (f ClientForm) Editing() bool {
	return f.id != 0
}

// Input validates the form and returns the request body.
func (f ClientForm) Input() (note.ClientInput, error) {
	in := note.ClientInput{
		Code:      strings.TrimSpace(f.Inputs[clientCode].Value()),
		FirstName: strings.TrimSpace(f.Inputs[firstName].Value()),
		LastName:  strings.TrimSpace(f.Inputs[lastName].Value()),
		Email:     strings.TrimSpace(f.Inputs[email].Value()),
		Phone:     strings.TrimSpace(f.Inputs[phone].Value()),
	}
	if raw := strings.TrimSpace(f.Inputs[dateOfBirth].Value()); raw != "" {
		dob, err := note.ParseInput(raw)
		if err != nil {
			return note.ClientInput{}, &note.ValidationError{Field: "date_of_birth", Message: err.Error()}
		}
		in.DateOfBirth = &dob
	}
	if err := in.Validate(); err != nil {
		return note.ClientInput{}, err
	}
	return in, nil
}

func (f ClientForm) Update(msg tea.Msg) (ClientForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return f, func() tea.Msg { return ClientCancelMsg{} }
		case tea.KeyEnter:
			if f.btn.Focused() {
				return f.submit()
			}
			f.nextInput()
			return f, f.focus()
		case tea.KeyShiftTab, tea.KeyUp:
			f.prevInput()
			return f, f.focus()
		case tea.KeyTab, tea.KeyDown:
			f.nextInput()
			return f, f.focus()
		}
	}

	if f.Focused >= len(f.Inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.Inputs[f.Focused], cmd = f.Inputs[f.Focused].Update(msg)
	return f, cmd
}

func (f ClientForm) submit() (ClientForm, tea.Cmd) {
	in, err := f.Input()
	if err != nil {
		f.Err = err
		return f, nil
	}
	f.Err = nil
	id := f.id
	return f, func() tea.Msg { return ClientSubmitMsg{ID: id, Input: in} }
}

func (f *ClientForm) nextInput() {
	f.Focused = (f.Focused + 1) % (len(f.Inputs) + 1)
}

func (f *ClientForm) prevInput() {
	f.Focused--
	if f.Focused < 0 {
		f.Focused = len(f.Inputs)
	}
}

func (f *ClientForm) focus() tea.Cmd {
	for i := range f.Inputs {
		f.Inputs[i].Blur()
	}
	f.btn.Blur()
	if f.Focused == len(f.Inputs) {
		f.btn.Focus()
		return nil
	}
	return f.Inputs[f.Focused].Focus()
}

func (f ClientForm) View() string {
	heading := "New client"
	if f.Editing() {
		heading = "Edit client"
	}

	rows := []string{titleStyle.Render(heading)}
	for i, in := range f.Inputs {
		label := labelStyle.Render("  " + clientLabels[i])
		if i == f.Focused {
			label = focusedLabel.Render("> " + clientLabels[i])
		}
		if i <= lastName {
			label += requiredStyle.Render(" *")
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.NewStyle().Width(18).Render(label),
			in.View(),
		))
	}
	rows = append(rows, "", f.btn.View())
	if f.Err != nil {
		rows = append(rows, "", requiredStyle.Render(f.Err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
