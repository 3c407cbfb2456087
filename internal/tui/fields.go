package tui

import (
	"strings"

	"quotemark-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// fieldEditor holds the inputs for one extraction field. The quote textarea
// is the selsync.Field that receives selections.
type fieldEditor struct {
	name  model.FieldName
	quote textarea.Model
	fact  textinput.Model
}

func newFieldEditor(name model.FieldName, saved model.Fact) *fieldEditor {
	ta := textarea.New()
	ta.Placeholder = "Drag over the posting to quote it…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.SetValue(saved.SubstringQuote)

	ti := textinput.New()
	ti.Prompt = "Fact: "
	ti.Placeholder = "normalized value"
	ti.CharLimit = 0
	ti.SetValue(saved.Fact)

	return &fieldEditor{name: name, quote: ta, fact: ti}
}

func (e *fieldEditor) Value() string { return e.quote.Value() }

func (e *fieldEditor) SetValue(v string) { e.quote.SetValue(v) }

func (e *fieldEditor) Fact() model.Fact {
	return model.Fact{
		Fact:           strings.TrimSpace(e.fact.Value()),
		SubstringQuote: e.quote.Value(),
	}
}

func (e *fieldEditor) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	e.quote.SetWidth(w)
	e.fact.Width = w - len(e.fact.Prompt) - 1
}

// focus focuses either the quote (default) or the fact input.
func (e *fieldEditor) focus(fact bool) {
	if fact {
		e.quote.Blur()
		e.fact.Focus()
		return
	}
	e.fact.Blur()
	e.quote.Focus()
}

func (e *fieldEditor) blur() {
	e.quote.Blur()
	e.fact.Blur()
}
