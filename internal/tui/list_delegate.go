package tui

import (
	"fmt"
	"io"

	"quotemark-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// postingDelegate renders one posting per row: name on the left, labeled
// progress right-aligned.
type postingDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
}

func newPostingDelegate() postingDelegate {
	return postingDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		done: lipgloss.NewStyle().Foreground(colorAccent),
	}
}

func (d postingDelegate) Height() int                             { return 1 }
func (d postingDelegate) Spacing() int                            { return 0 }
func (d postingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d postingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(postingItem)
	if !ok || contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	progress := fmt.Sprintf("%d/%d", it.labeled, len(model.Fields()))
	nameW := contentW - xansi.StringWidth(progress) - 1
	line := fitLine(" "+it.info.Name, max(nameW, 1)) + " "
	if it.labeled == len(model.Fields()) && index != m.Index() {
		line += d.done.Render(progress)
	} else {
		line += progress
	}
	fmt.Fprint(w, style.Render(fitLine(line, contentW)))
}
