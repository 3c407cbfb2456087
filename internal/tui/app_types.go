package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewPostings view = iota
	viewLabel
)

type reloadTickMsg struct{}

const (
	reloadInterval           = 1500 * time.Millisecond
	minibufferAutoClearAfter = 4 * time.Second
)

func tickReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

// Label view layout: header, document, separator, field tabs, quote (3
// rows), fact, footer.
const (
	headerRows    = 1
	editorRows    = 1 + 1 + 3 + 1
	footerRows    = 1
	minDocRows    = 3
	listPaneRatio = 0.4
)
