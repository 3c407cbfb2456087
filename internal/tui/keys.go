package tui

import "github.com/charmbracelet/bubbles/key"

type labelKeyMap struct {
	Back       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ToggleFact key.Binding
	Save       key.Binding
	Copy       key.Binding
	Editor     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

var labelKeys = labelKeyMap{
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	ToggleFact: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "fact/quote")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save+next")),
	Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
	Editor:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "$EDITOR")),
	PageUp:     key.NewBinding(key.WithKeys("pgup")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown")),
	ScrollUp:   key.NewBinding(key.WithKeys("ctrl+up")),
	ScrollDown: key.NewBinding(key.WithKeys("ctrl+down")),
}

func (k labelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.ToggleFact, k.Save, k.Copy, k.Editor, k.Back}
}

func (k labelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.PrevField, k.PageUp, k.PageDown, k.ScrollUp, k.ScrollDown},
	}
}

type postingsKeyMap struct {
	Open   key.Binding
	Filter key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var postingsKeys = postingsKeyMap{
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "label")),
	Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (k postingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Filter, k.Reload, k.Quit}
}

func (k postingsKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
