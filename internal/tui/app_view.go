package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	var body string
	if m.view == viewLabel && m.label != nil {
		body = m.viewLabel()
	} else {
		body = m.viewPostings()
	}
	return body + "\n" + m.viewFooter()
}

func (m appModel) viewPostings() string {
	header := fitLine(styleTitle().Render("quotemark")+styleMuted().Render("  "+m.store.Dir), m.width)
	h := max(m.height-headerRows-footerRows, 1)

	var left string
	if len(m.postingsList.Items()) == 0 {
		left = styleMuted().Render(" No postings. Import one with: quotemark postings import <file>")
	} else {
		left = m.postingsList.View()
	}
	if !m.previewVisible() {
		return header + "\n" + normalizePane(left, m.width, h)
	}

	listW := m.postingsList.Width()
	sep := lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("│\n", h-1) + "│")
	previewW := m.width - listW - 3
	preview := normalizePane(m.previewText, previewW, h)
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(left, listW, h), " ", sep, " ", preview)
}

func (m appModel) viewLabel() string {
	s := m.label
	ed := m.activeEditor()

	mode := ""
	if m.mode.String() != "replace" {
		mode = " [" + m.mode.String() + "]"
	}
	header := fitLine(styleTitle().Render(s.posting)+styleMuted().Render(mode), m.width)

	var tabs []string
	for i, e := range s.editors {
		name := e.name.Label()
		if strings.TrimSpace(e.Value()) != "" || strings.TrimSpace(e.fact.Value()) != "" {
			name += " •"
		}
		st := lipgloss.NewStyle().Padding(0, 1)
		if i == s.active {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		} else {
			st = st.Inherit(styleMuted())
		}
		tabs = append(tabs, st.Render(name))
	}
	tabLine := fitLine(strings.Join(tabs, ""), m.width)

	sep := lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("─", max(m.width, 1)))

	return strings.Join([]string{
		header,
		s.pane.View(),
		sep,
		tabLine,
		ed.quote.View(),
		ed.fact.View(),
	}, "\n")
}

func (m appModel) viewFooter() string {
	if m.minibufferText != "" {
		st := lipgloss.NewStyle()
		if m.minibufferErr {
			st = st.Foreground(colorError)
		}
		return fitLine(st.Render(m.minibufferText), m.width)
	}
	if m.view == viewLabel {
		state := "no highlight"
		if m.label != nil {
			if st := m.label.sync.State(); st.Highlighted {
				state = fmt.Sprintf("highlight @%d", st.Span.Start)
			}
		}
		return fitLine(newHelp().ShortHelpView(labelKeys.ShortHelp())+styleMuted().Render("  · "+state), m.width)
	}
	return fitLine(newHelp().ShortHelpView(postingsKeys.ShortHelp()), m.width)
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	return h
}
