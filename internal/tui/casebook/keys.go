package casebook

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit          key.Binding
	forceQuit     key.Binding
	nextPane      key.Binding
	prevPane      key.Binding
	selectItem    key.Binding
	back          key.Binding
	search        key.Binding
	cycleFilter   key.Binding
	clearSel      key.Binding
	reload        key.Binding
	newNote       key.Binding
	newAssessment key.Binding
	deleteNote    key.Binding
	addClient     key.Binding
	editClient    key.Binding
	archive       key.Binding
	deleteClient  key.Binding
	save          key.Binding
	copy          key.Binding
	editorDelete  key.Binding
	confirm       key.Binding
	decline       key.Binding
	toggleHelp    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		nextPane: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pane"),
		),
		prevPane: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		selectItem: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search clients"),
		),
		cycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		clearSel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		newNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		newAssessment: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new assessment"),
		),
		deleteNote: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete note"),
		),
		addClient: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add client"),
		),
		editClient: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit client"),
		),
		archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "archive/restore"),
		),
		deleteClient: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete client"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy content"),
		),
		editorDelete: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "delete note"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) clientHelp() []key.Binding {
	return []key.Binding{k.selectItem, k.search, k.cycleFilter, k.addClient, k.editClient, k.archive, k.deleteClient, k.nextPane, k.quit}
}

func (k keyMap) noteHelp() []key.Binding {
	return []key.Binding{k.selectItem, k.newNote, k.newAssessment, k.deleteNote, k.reload, k.prevPane, k.quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.save, k.copy, k.editorDelete, k.back, k.forceQuit}
}
