package selsync

import "quotemark-cli/internal/highlight"

// TextView is an in-memory DocumentView. Headless callers (CLI, tests) read
// the last rendered document back from it.
type TextView struct {
	plain    string
	rendered highlight.Document
	renders  int
}

func NewTextView(plain string) *TextView {
	return &TextView{plain: plain, rendered: highlight.NewDocument(plain)}
}

func (v *TextView) PlainText() string { return v.plain }

func (v *TextView) Render(doc highlight.Document) {
	v.rendered = doc
	v.renders++
}

func (v *TextView) Rendered() highlight.Document { return v.rendered }

// Renders counts Render calls.
func (v *TextView) Renders() int { return v.renders }

// TextField is an in-memory Field.
type TextField struct {
	value string
}

func NewTextField(value string) *TextField { return &TextField{value: value} }

func (f *TextField) Value() string { return f.value }

func (f *TextField) SetValue(v string) { f.value = v }
