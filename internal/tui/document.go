package tui

import (
	"sort"
	"strings"
	"unicode/utf8"

	"quotemark-cli/internal/highlight"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

// visualLine is one wrapped row of the posting as byte offsets [start, end)
// into the plain text. The newline ending a hard line is never included.
type visualLine struct {
	start int
	end   int
}

// documentPane shows a posting with at most one highlight and turns mouse
// drags into selections. It implements selsync.DocumentView.
type documentPane struct {
	plain string
	doc   highlight.Document
	lines []visualLine
	vp    viewport.Model

	// Screen position of the pane's top-left content cell.
	originX int
	originY int

	selecting bool
	anchor    int
	cursor    int
}

func newDocumentPane(plain string) *documentPane {
	p := &documentPane{
		plain: plain,
		doc:   highlight.NewDocument(plain),
		vp:    viewport.New(40, 10),
	}
	p.reflow()
	return p
}

func (p *documentPane) PlainText() string { return p.plain }

func (p *documentPane) Render(doc highlight.Document) {
	p.doc = doc
	p.refresh()
	if sp, ok := doc.Mark(); ok {
		p.scrollIntoView(sp.Start)
	}
}

func (p *documentPane) Document() highlight.Document { return p.doc }

func (p *documentPane) SetSize(width, height int) {
	if width < 4 {
		width = 4
	}
	if height < 1 {
		height = 1
	}
	if p.vp.Width == width && p.vp.Height == height && len(p.lines) > 0 {
		return
	}
	p.vp.Width = width
	p.vp.Height = height
	p.reflow()
}

func (p *documentPane) SetOrigin(x, y int) {
	p.originX = x
	p.originY = y
}

func (p *documentPane) View() string { return p.vp.View() }

func (p *documentPane) reflow() {
	p.lines = wrapLines(p.plain, p.vp.Width)
	p.refresh()
}

func (p *documentPane) refresh() {
	rows := make([]string, len(p.lines))
	for i, ln := range p.lines {
		rows[i] = p.renderLine(ln)
	}
	p.vp.SetContent(strings.Join(rows, "\n"))
}

// renderLine styles one visual line. An active drag wins over the mark.
func (p *documentPane) renderLine(ln visualLine) string {
	mark, marked := p.doc.Mark()
	dragStart, dragEnd := p.dragSpan()

	cuts := []int{ln.start, ln.end}
	add := func(x int) {
		if x > ln.start && x < ln.end {
			cuts = append(cuts, x)
		}
	}
	if marked {
		add(mark.Start)
		add(mark.End)
	}
	if p.selecting {
		add(dragStart)
		add(dragEnd)
	}
	sort.Ints(cuts)

	var b strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		a, z := cuts[i], cuts[i+1]
		if a >= z {
			continue
		}
		text := p.plain[a:z]
		switch {
		case p.selecting && a >= dragStart && z <= dragEnd && dragStart < dragEnd:
			b.WriteString(styleDrag().Render(text))
		case marked && a >= mark.Start && z <= mark.End:
			b.WriteString(styleMark().Render(text))
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

func (p *documentPane) dragSpan() (int, int) {
	if p.anchor <= p.cursor {
		return p.anchor, p.cursor
	}
	return p.cursor, p.anchor
}

// offsetAt maps a screen cell to a byte offset in the plain text. Cells
// outside the pane clamp to the nearest line.
func (p *documentPane) offsetAt(x, y int) int {
	if len(p.lines) == 0 {
		return 0
	}
	row := y - p.originY + p.vp.YOffset
	if row < 0 {
		return p.lines[0].start
	}
	if row >= len(p.lines) {
		return p.lines[len(p.lines)-1].end
	}
	ln := p.lines[row]
	col := x - p.originX
	if col <= 0 {
		return ln.start
	}
	w := 0
	for i := ln.start; i < ln.end; {
		r, size := utf8.DecodeRuneInString(p.plain[i:])
		rw := xansi.StringWidth(string(r))
		if w+rw > col {
			return i
		}
		w += rw
		i += size
	}
	return ln.end
}

func (p *documentPane) contains(x, y int) bool {
	return x >= p.originX && x < p.originX+p.vp.Width &&
		y >= p.originY && y < p.originY+p.vp.Height
}

// handleMouse updates drag state and scrolling. It returns the selected text
// and true when a drag ends.
func (p *documentPane) handleMouse(msg tea.MouseMsg) (string, bool) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p.vp.LineUp(3)
		return "", false
	case msg.Button == tea.MouseButtonWheelDown:
		p.vp.LineDown(3)
		return "", false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !p.contains(msg.X, msg.Y) {
			return "", false
		}
		off := p.offsetAt(msg.X, msg.Y)
		p.selecting = true
		p.anchor, p.cursor = off, off
		p.refresh()
	case tea.MouseActionMotion:
		if !p.selecting {
			return "", false
		}
		p.cursor = p.offsetAt(msg.X, msg.Y)
		p.refresh()
	case tea.MouseActionRelease:
		if !p.selecting {
			return "", false
		}
		p.cursor = p.offsetAt(msg.X, msg.Y)
		start, end := p.dragSpan()
		p.selecting = false
		p.refresh()
		return p.plain[start:end], true
	}
	return "", false
}

func (p *documentPane) scrollBy(n int) {
	if n < 0 {
		p.vp.LineUp(-n)
	} else {
		p.vp.LineDown(n)
	}
}

func (p *documentPane) pageUp()   { p.vp.ViewUp() }
func (p *documentPane) pageDown() { p.vp.ViewDown() }

func (p *documentPane) scrollIntoView(offset int) {
	row := 0
	for i, ln := range p.lines {
		if offset >= ln.start && offset <= ln.end {
			row = i
			break
		}
	}
	if row < p.vp.YOffset || row >= p.vp.YOffset+p.vp.Height {
		p.vp.SetYOffset(max(0, row-p.vp.Height/3))
	}
}

// wrapLines splits text into visual lines no wider than width cells,
// breaking after spaces when possible.
func wrapLines(text string, width int) []visualLine {
	if width < 1 {
		width = 1
	}
	var out []visualLine
	base := 0
	for _, hard := range strings.Split(text, "\n") {
		out = append(out, wrapHardLine(hard, base, width)...)
		base += len(hard) + 1
	}
	return out
}

func wrapHardLine(s string, base, width int) []visualLine {
	if s == "" {
		return []visualLine{{start: base, end: base}}
	}
	var out []visualLine
	start, w, lastBreak := 0, 0, -1
	for i, r := range s {
		rw := xansi.StringWidth(string(r))
		if w+rw > width && i > start {
			if r == ' ' {
				// A space that would overflow ends the row and is not drawn.
				out = append(out, visualLine{start: base + start, end: base + i})
				start, w, lastBreak = i+1, 0, -1
				continue
			}
			cut := i
			if lastBreak > start {
				cut = lastBreak
			}
			out = append(out, visualLine{start: base + start, end: base + cut})
			w = xansi.StringWidth(s[cut:i])
			start = cut
			lastBreak = -1
		}
		w += rw
		if r == ' ' {
			lastBreak = i + 1
		}
	}
	if start == len(s) && len(out) > 0 {
		return out
	}
	return append(out, visualLine{start: base + start, end: base + len(s)})
}
