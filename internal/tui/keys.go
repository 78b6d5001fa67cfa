package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browse-mode bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Add      key.Binding
	Rename   key.Binding
	Sort     key.Binding
	Hide     key.Binding
	Notes    key.Binding
	Done     key.Binding
	Publish  key.Binding
	Clear    key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move down")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Hide:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		Done:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Publish:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear done")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MoveUp, k.Add, k.Rename, k.Sort, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Rename, k.Delete, k.Clear},
		{k.Sort, k.Hide, k.Notes, k.Done, k.Publish},
		{k.Quit},
	}
}
