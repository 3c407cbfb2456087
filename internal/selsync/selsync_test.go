package selsync

import (
	"fmt"
	"strings"
	"testing"

	"quotemark-cli/internal/highlight"
)

const posting = "Senior Engineer role requiring Engineer experience"

func rendered(v *TextView) string {
	return v.Rendered().Markup(highlight.MarkOpen, highlight.MarkClose)
}

func TestOnSelectionEnd_ReplacesFieldAndMarksFirstOccurrence(t *testing.T) {
	view := NewTextView(posting)
	field := NewTextField("old quote")
	s := New(view, Options{})
	s.SetActiveField(field)

	if !s.OnSelectionEnd("  Engineer \n") {
		t.Fatalf("expected selection to be applied")
	}
	if field.Value() != "Engineer" {
		t.Fatalf("field = %q, want %q", field.Value(), "Engineer")
	}
	want := "Senior <mark>Engineer</mark> role requiring Engineer experience"
	if got := rendered(view); got != want {
		t.Fatalf("view:\n got %q\nwant %q", got, want)
	}
	st := s.State()
	if !st.Highlighted || st.Text != "Engineer" || st.Span != (highlight.Span{Start: 7, End: 15}) {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestOnFieldEdit_HighlightsRegardlessOfOrigin(t *testing.T) {
	view := NewTextView(posting)
	field := NewTextField("")
	s := New(view, Options{})
	s.SetActiveField(field)
	s.OnSelectionEnd("Engineer")

	field.SetValue("role requiring")
	s.OnFieldEdit(" role requiring ")

	want := "Senior Engineer <mark>role requiring</mark> Engineer experience"
	if got := rendered(view); got != want {
		t.Fatalf("view:\n got %q\nwant %q", got, want)
	}
	if s.State().Text != "role requiring" {
		t.Fatalf("state text = %q", s.State().Text)
	}
}

func TestOnSelectionEnd_WhitespaceIsNoop(t *testing.T) {
	view := NewTextView(posting)
	field := NewTextField("")
	s := New(view, Options{})
	s.SetActiveField(field)
	s.OnSelectionEnd("Engineer")
	rendersBefore := view.Renders()

	if s.OnSelectionEnd("   ") {
		t.Fatalf("expected whitespace selection to be ignored")
	}
	if field.Value() != "Engineer" {
		t.Fatalf("field changed to %q", field.Value())
	}
	if view.Renders() != rendersBefore {
		t.Fatalf("view re-rendered on whitespace selection")
	}
	if !strings.Contains(rendered(view), "<mark>Engineer</mark>") {
		t.Fatalf("prior highlight lost: %q", rendered(view))
	}
}

func TestOnSelectionEnd_NoActiveFieldIsNoop(t *testing.T) {
	view := NewTextView(posting)
	s := New(view, Options{})

	if s.OnSelectionEnd("Engineer") {
		t.Fatalf("expected no-op without active field")
	}
	if view.Renders() != 0 {
		t.Fatalf("view rendered without active field")
	}
	if s.State().Highlighted {
		t.Fatalf("expected Unhighlighted initial state")
	}
}

func TestReHighlight_NotFoundClearsAndIsIdempotent(t *testing.T) {
	view := NewTextView(posting)
	s := New(view, Options{})
	s.ReHighlight("Engineer")

	for i := 0; i < 2; i++ {
		st := s.ReHighlight("Senior Engineer role requiring Engineer experience and more")
		if st.Highlighted {
			t.Fatalf("pass %d: expected Unhighlighted, got %+v", i, st)
		}
		if got := rendered(view); got != posting {
			t.Fatalf("pass %d: view = %q", i, got)
		}
	}
}

func TestReHighlight_MetacharactersAreLiteral(t *testing.T) {
	view := NewTextView("Salary: $100k+ (negotiable). Apply at a.b.c")
	s := New(view, Options{})

	for _, needle := range []string{"$100k+", "(negotiable).", "a.b.c"} {
		st := s.ReHighlight(needle)
		if !st.Highlighted || view.Rendered().Marked() != needle {
			t.Fatalf("needle %q: state %+v marked %q", needle, st, view.Rendered().Marked())
		}
	}
	if st := s.ReHighlight("a.b.d"); st.Highlighted {
		t.Fatalf("pattern-like needle matched: %+v", st)
	}
}

func TestReHighlight_NeverAccumulatesMarks(t *testing.T) {
	view := NewTextView(posting)
	s := New(view, Options{})
	for _, needle := range []string{"Senior", "Engineer", "experience", "role", "Engineer"} {
		s.ReHighlight(needle)
		if n := strings.Count(rendered(view), highlight.MarkOpen); n != 1 {
			t.Fatalf("after %q: %d marks in %q", needle, n, rendered(view))
		}
	}
}

func TestAppendMode_AddsLineAndHighlightsSelection(t *testing.T) {
	view := NewTextView(posting)
	field := NewTextField("Senior")
	s := New(view, Options{Mode: ModeAppend})
	s.SetActiveField(field)

	s.OnSelectionEnd("experience")
	if field.Value() != "Senior\nexperience" {
		t.Fatalf("field = %q", field.Value())
	}
	if view.Rendered().Marked() != "experience" {
		t.Fatalf("marked = %q", view.Rendered().Marked())
	}

	empty := NewTextField("  ")
	s.SetActiveField(empty)
	s.OnSelectionEnd("role")
	if empty.Value() != "role" {
		t.Fatalf("append into blank field = %q", empty.Value())
	}
}

func TestSetActiveField_HighlightsBoundValueAndUnbinds(t *testing.T) {
	view := NewTextView(posting)
	s := New(view, Options{})

	s.SetActiveField(NewTextField(" requiring "))
	if view.Rendered().Marked() != "requiring" {
		t.Fatalf("marked = %q", view.Rendered().Marked())
	}

	s.SetActiveField(nil)
	if s.ActiveField() != nil {
		t.Fatalf("expected unbound field")
	}
	if s.OnSelectionEnd("Senior") {
		t.Fatalf("expected no-op after unbinding")
	}
}

func TestLogf_ReceivesTraces(t *testing.T) {
	var lines []string
	s := New(NewTextView(posting), Options{Logf: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}})
	s.OnSelectionEnd(" ")
	s.ReHighlight("nope")
	if len(lines) != 2 {
		t.Fatalf("expected 2 trace lines, got %v", lines)
	}
}

func TestParseWriteMode(t *testing.T) {
	for in, want := range map[string]WriteMode{"": ModeReplace, "replace": ModeReplace, " APPEND ": ModeAppend} {
		got, err := ParseWriteMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseWriteMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseWriteMode("merge"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestBindField_LeavesViewUntilSelection(t *testing.T) {
	view := NewTextView(posting)
	field := NewTextField("Senior\nexperience")
	s := New(view, Options{Mode: ModeAppend})

	s.BindField(field)
	if view.Renders() != 0 {
		t.Fatalf("binding rendered the view %d times", view.Renders())
	}
	if s.OnSelectionEnd(" \n ") {
		t.Fatalf("expected blank selection to be ignored")
	}
	if view.Renders() != 0 || field.Value() != "Senior\nexperience" {
		t.Fatalf("blank selection changed state: renders=%d field=%q", view.Renders(), field.Value())
	}

	if !s.OnSelectionEnd("role") {
		t.Fatalf("expected selection to be applied")
	}
	if field.Value() != "Senior\nexperience\nrole" || view.Rendered().Marked() != "role" {
		t.Fatalf("field=%q marked=%q", field.Value(), view.Rendered().Marked())
	}
}
