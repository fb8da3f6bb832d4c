package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev, Next, First, Last key.Binding
	Toggle, Stop, Rewind    key.Binding
	Faster, Slower          key.Binding
	Insert, Update, Delete  key.Binding
	Linear, Binary, Bubble  key.Binding
	New, Mode, Theme        key.Binding
	Help, Quit              key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev step")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next step")),
		First:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first step")),
		Last:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last step")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Rewind: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rewind")),
		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Insert: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
		Update: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Linear: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "linear search")),
		Binary: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "binary search")),
		Bubble: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "bubble sort")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new array")),
		Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "switch mode")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.New, k.Mode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Toggle, k.Stop, k.Rewind, k.Faster, k.Slower},
		{k.Insert, k.Update, k.Delete, k.Linear, k.Binary, k.Bubble},
		{k.New, k.Mode, k.Theme, k.Help, k.Quit},
	}
}
