package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
type KeyMap struct {
	Tab        key.Binding
	ShiftTab   key.Binding
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Escape     key.Binding
	Search     key.Binding
	Refresh    key.Binding
	RefreshAll key.Binding
	Remove     key.Binding
	Copy       key.Binding
	Open       key.Binding
	Log        key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		ShiftTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search/add repo")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh repo")),
		RefreshAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh all")),
		Remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove repo")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy run URL")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Log:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "job log")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns a short list of key bindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Search, k.Refresh, k.Quit, k.Help}
}

// FullHelp returns the full list of key bindings for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down},
		{k.Enter, k.Escape, k.Search, k.Remove},
		{k.Refresh, k.RefreshAll, k.Copy, k.Open, k.Log},
		{k.Quit, k.Help},
	}
}
