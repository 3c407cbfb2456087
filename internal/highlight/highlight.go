// Package highlight models a read-only plain-text document with at most one
// marked span.
//
// Rendering is always derived from the plain text plus the span, so marks can
// never nest or accumulate. Search is literal: the needle is never treated as
// a pattern.
package highlight

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Span is a half-open byte range [Start, End) into the plain text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Find returns the first literal, case-sensitive occurrence of needle in text.
// An empty needle is never found.
func Find(text, needle string) (Span, bool) {
	if needle == "" {
		return Span{}, false
	}
	i := strings.Index(text, needle)
	if i < 0 {
		return Span{}, false
	}
	return Span{Start: i, End: i + len(needle)}, true
}

type Segment struct {
	Text   string
	Marked bool
}

// Document is an immutable plain text with zero or one mark.
type Document struct {
	text   string
	mark   Span
	marked bool
}

func NewDocument(text string) Document {
	return Document{text: text}
}

func (d Document) Text() string { return d.text }

func (d Document) Mark() (Span, bool) { return d.mark, d.marked }

// Marked returns the currently marked substring, or "".
func (d Document) Marked() string {
	if !d.marked {
		return ""
	}
	return d.text[d.mark.Start:d.mark.End]
}

// WithMark drops any existing mark and marks the first occurrence of needle.
// When needle is empty or absent the result is unmarked.
func (d Document) WithMark(needle string) Document {
	out := Document{text: d.text}
	if sp, ok := Find(d.text, needle); ok {
		out.mark = sp
		out.marked = true
	}
	return out
}

func (d Document) Segments() []Segment {
	if d.text == "" {
		return nil
	}
	if !d.marked {
		return []Segment{{Text: d.text}}
	}
	out := make([]Segment, 0, 3)
	if d.mark.Start > 0 {
		out = append(out, Segment{Text: d.text[:d.mark.Start]})
	}
	out = append(out, Segment{Text: d.text[d.mark.Start:d.mark.End], Marked: true})
	if d.mark.End < len(d.text) {
		out = append(out, Segment{Text: d.text[d.mark.End:]})
	}
	return out
}

// Markup splices open/close around the mark without escaping anything.
func (d Document) Markup(open, close string) string {
	var b strings.Builder
	b.Grow(len(d.text) + len(open) + len(close))
	for _, seg := range d.Segments() {
		if seg.Marked {
			b.WriteString(open)
			b.WriteString(seg.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// HTML escapes the plain text and wraps the mark in <mark> tags.
func (d Document) HTML() string {
	var b strings.Builder
	for _, seg := range d.Segments() {
		if seg.Marked {
			b.WriteString(MarkOpen)
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString(MarkClose)
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
	return b.String()
}

// Styled renders each segment with the given lipgloss styles. Styles are
// applied per line so that terminal wrapping never leaks the mark background
// onto padding.
func (d Document) Styled(plain, mark lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range d.Segments() {
		st := plain
		if seg.Marked {
			st = mark
		}
		lines := strings.Split(seg.Text, "\n")
		for i, ln := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if ln == "" {
				continue
			}
			b.WriteString(st.Render(ln))
		}
	}
	return b.String()
}

