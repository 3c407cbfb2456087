// Package selsync copies a finished text selection from a document view into
// the active input field and mirrors the field's value back into the view as
// a single highlight.
//
// A Synchronizer is driven by exactly two events: OnSelectionEnd (the user
// released a drag selection over the document) and OnFieldEdit (the active
// field's value changed). Both recompute the highlight string; the last event
// wins. Hosts own the event loop and must not call a Synchronizer
// concurrently.
package selsync

import (
	"fmt"
	"strings"

	"quotemark-cli/internal/highlight"
)

// DocumentView is the read-only text surface the user selects from.
type DocumentView interface {
	// PlainText returns the unmarked text content.
	PlainText() string
	// Render replaces the rendered content with doc.
	Render(doc highlight.Document)
}

// Field is an input control whose value mirrors the highlight string.
type Field interface {
	Value() string
	SetValue(string)
}

type WriteMode int

const (
	// ModeReplace overwrites the field value with the selection.
	ModeReplace WriteMode = iota
	// ModeAppend adds the selection on a new line after the existing value.
	ModeAppend
)

func (m WriteMode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	default:
		return "replace"
	}
}

func ParseWriteMode(s string) (WriteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return ModeReplace, nil
	case "append":
		return ModeAppend, nil
	default:
		return ModeReplace, fmt.Errorf("invalid write mode %q (expected replace|append)", s)
	}
}

type Options struct {
	Mode WriteMode
	// Logf receives debug traces. Nil disables tracing.
	Logf func(format string, args ...any)
}

// State is either Unhighlighted (Highlighted=false) or Highlighted(Text).
type State struct {
	Highlighted bool           `json:"highlighted"`
	Text        string         `json:"text,omitempty"`
	Span        highlight.Span `json:"span"`
}

type Synchronizer struct {
	view   DocumentView
	field  Field
	mode   WriteMode
	logf   func(format string, args ...any)
	state  State
}

func New(view DocumentView, opts Options) *Synchronizer {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Synchronizer{
		view: view,
		mode: opts.Mode,
		logf: logf,
	}
}

func (s *Synchronizer) State() State { return s.state }

func (s *Synchronizer) ActiveField() Field { return s.field }

// SetActiveField binds f as the field that receives selections. Binding a
// field re-highlights the view with the field's current value; nil unbinds
// and leaves the view untouched.
func (s *Synchronizer) SetActiveField(f Field) {
	s.field = f
	if f == nil {
		s.logf("selsync: active field unbound")
		return
	}
	s.ReHighlight(strings.TrimSpace(f.Value()))
}

// BindField binds f like SetActiveField but leaves the view as it is. Hosts
// that rebuild a Synchronizer per event use it when the view already shows
// the current highlight.
func (s *Synchronizer) BindField(f Field) {
	s.field = f
}

// OnSelectionEnd handles a finished selection gesture. It reports whether the
// active field was written.
func (s *Synchronizer) OnSelectionEnd(selection string) bool {
	text := strings.TrimSpace(selection)
	if text == "" {
		s.logf("selsync: empty selection ignored")
		return false
	}
	if s.field == nil {
		s.logf("selsync: selection %q ignored, no active field", text)
		return false
	}

	next := text
	if s.mode == ModeAppend {
		if prev := s.field.Value(); strings.TrimSpace(prev) != "" {
			next = strings.TrimRight(prev, "\n") + "\n" + text
		}
	}
	s.field.SetValue(next)
	s.logf("selsync: field <- %q (%s)", next, s.mode)

	s.ReHighlight(text)
	return true
}

// OnFieldEdit handles any change of the active field's value.
func (s *Synchronizer) OnFieldEdit(newValue string) {
	s.ReHighlight(strings.TrimSpace(newValue))
}

// ReHighlight rebuilds the view from its plain text and marks the first
// literal occurrence of text. Empty or missing text leaves the view unmarked.
func (s *Synchronizer) ReHighlight(text string) State {
	doc := highlight.NewDocument(s.view.PlainText()).WithMark(text)
	s.view.Render(doc)

	if sp, ok := doc.Mark(); ok {
		s.state = State{Highlighted: true, Text: text, Span: sp}
		s.logf("selsync: highlighted %q at [%d,%d)", text, sp.Start, sp.End)
	} else {
		s.state = State{}
		if text != "" {
			s.logf("selsync: %q not found, highlight cleared", text)
		}
	}
	return s.state
}
