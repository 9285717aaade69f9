package submodels

type Button struct {
	label   string
	focused bool
}

func NewButton(label string) Button {
	return Button{label: label}
}

func (b *Button) Focus() {
	b.focused = true
}

func (b *Button) Blur() {
	b.focused = false
}

func (b Button) Focused() bool {
	return b.focused
}

func (b Button) View() string {
	text := "[ " + b.label + " ]"
	if b.focused {
		return focusedButtonStyle.Render(text)
	}
	return buttonStyle.Render(text)
}
