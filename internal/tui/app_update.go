package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		m.layoutLabel()
		m.updatePreview()
		return m, nil

	case reloadTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		// Pick up postings imported or labeled from another terminal.
		if m.view == viewPostings && m.postingsList.FilterState() == list.Unfiltered {
			m.refreshPostings()
			m.updatePreview()
		}
		return m, tickReload()

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case tea.MouseMsg:
		if m.view == viewLabel {
			m.handleLabelMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.saveState()
			return m, tea.Quit
		}
		if m.view == viewLabel {
			return m.updateLabel(msg)
		}
		return m.updatePostings(msg)
	}
	return m, nil
}

func (m appModel) updatePostings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.postingsList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, postingsKeys.Quit):
			m.saveState()
			return m, tea.Quit
		case key.Matches(msg, postingsKeys.Reload):
			m.refreshPostings()
			m.previewName = ""
			m.updatePreview()
			m.showMinibuffer("Reloaded")
			return m, nil
		case key.Matches(msg, postingsKeys.Open):
			if it, ok := m.selectedPosting(); ok {
				if err := m.openPosting(it.info.Name); err != nil {
					m.showError(err)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.postingsList, cmd = m.postingsList.Update(msg)
	m.updatePreview()
	return m, cmd
}

func (m appModel) updateLabel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.label
	ed := m.activeEditor()
	if s == nil || ed == nil {
		m.closePosting()
		return m, nil
	}

	switch {
	case key.Matches(msg, labelKeys.Back):
		m.closePosting()
		return m, nil
	case key.Matches(msg, labelKeys.NextField):
		m.activateField(s.active + 1)
		return m, nil
	case key.Matches(msg, labelKeys.PrevField):
		m.activateField(s.active - 1)
		return m, nil
	case key.Matches(msg, labelKeys.ToggleFact):
		s.focusFact = !s.focusFact
		ed.focus(s.focusFact)
		return m, nil
	case key.Matches(msg, labelKeys.Save):
		m.saveActive()
		return m, nil
	case key.Matches(msg, labelKeys.Copy):
		m.copyQuote()
		return m, nil
	case key.Matches(msg, labelKeys.Editor):
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.showError(err)
			return m, nil
		}
		return m, cmd
	case key.Matches(msg, labelKeys.PageUp):
		s.pane.pageUp()
		return m, nil
	case key.Matches(msg, labelKeys.PageDown):
		s.pane.pageDown()
		return m, nil
	case key.Matches(msg, labelKeys.ScrollUp):
		s.pane.scrollBy(-1)
		return m, nil
	case key.Matches(msg, labelKeys.ScrollDown):
		s.pane.scrollBy(1)
		return m, nil
	}

	var cmd tea.Cmd
	if s.focusFact {
		ed.fact, cmd = ed.fact.Update(msg)
		return m, cmd
	}
	before := ed.quote.Value()
	ed.quote, cmd = ed.quote.Update(msg)
	if after := ed.quote.Value(); after != before {
		s.sync.OnFieldEdit(after)
	}
	return m, cmd
}

func (m *appModel) handleLabelMouse(msg tea.MouseMsg) {
	s := m.label
	if s == nil {
		return
	}
	selection, done := s.pane.handleMouse(msg)
	if !done {
		return
	}
	if !s.sync.OnSelectionEnd(selection) {
		return
	}
	ed := m.activeEditor()
	s.focusFact = false
	ed.focus(false)
	ed.quote.CursorEnd()
	m.showMinibuffer("Quoted into " + ed.name.Label())
}

// copyQuote copies the highlighted text, or the raw field value when nothing
// is highlighted.
func (m *appModel) copyQuote() {
	s := m.label
	ed := m.activeEditor()
	text := s.sync.State().Text
	if text == "" {
		text = strings.TrimSpace(ed.Value())
	}
	if text == "" {
		m.showMinibuffer("Nothing to copy")
		return
	}
	if err := copyToClipboard(text); err != nil {
		m.showError(err)
		return
	}
	m.showMinibuffer("Copied " + ed.name.Label() + " quote")
}
