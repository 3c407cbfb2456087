package tui

import (
	"testing"

	"quotemark-cli/internal/highlight"
)

func lineTexts(text string, lines []visualLine) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = text[ln.start:ln.end]
	}
	return out
}

func TestWrapLines_BreaksAfterSpacesAndKeepsOffsets(t *testing.T) {
	text := "Acme Corp is hiring\n\nSalary 100k"
	got := lineTexts(text, wrapLines(text, 10))
	want := []string{"Acme Corp ", "is hiring", "", "Salary ", "100k"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

func TestWrapLines_HardBreaksLongWords(t *testing.T) {
	text := "abcdefghij"
	got := lineTexts(text, wrapLines(text, 4))
	if len(got) != 3 || got[0] != "abcd" || got[2] != "ij" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapLines_OverflowingSpaceDoesNotGetOwnRow(t *testing.T) {
	text := "aaaa bbbb "
	lines := wrapLines(text, 4)
	got := lineTexts(text, lines)
	if len(got) != 2 || got[0] != "aaaa" || got[1] != "bbbb" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if lines[1].start != 5 {
		t.Fatalf("second row starts at %d, want 5", lines[1].start)
	}
}

func TestDocumentPane_OffsetAtUsesCellWidths(t *testing.T) {
	p := newDocumentPane("日本 Oslo\nsecond line")
	p.SetSize(40, 5)
	p.SetOrigin(2, 1)

	// Each CJK rune is two cells wide and three bytes long.
	if got := p.offsetAt(2+4, 1); got != len("日本") {
		t.Fatalf("offsetAt after CJK = %d", got)
	}
	if got := p.offsetAt(2+5, 1); got != len("日本 ") {
		t.Fatalf("offsetAt at Oslo = %d", got)
	}
	if got := p.offsetAt(0, 2); got != len("日本 Oslo\n") {
		t.Fatalf("offsetAt left of second line = %d", got)
	}
	if got := p.offsetAt(100, 50); got != len(p.PlainText()) {
		t.Fatalf("offsetAt below content = %d", got)
	}
}

func TestDocumentPane_RenderKeepsPlainText(t *testing.T) {
	p := newDocumentPane("Remote in Oslo")
	p.SetSize(40, 3)
	p.Render(highlight.NewDocument(p.PlainText()).WithMark("Oslo"))
	p.Render(highlight.NewDocument(p.PlainText()).WithMark("Remote"))

	if p.PlainText() != "Remote in Oslo" {
		t.Fatalf("plain text changed: %q", p.PlainText())
	}
	if got := p.Document().Marked(); got != "Remote" {
		t.Fatalf("marked = %q", got)
	}
}
