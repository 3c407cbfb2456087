package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quotemark-cli/internal/logger"
	"quotemark-cli/internal/model"
	"quotemark-cli/internal/selsync"
	"quotemark-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	store store.Store
	mode  selsync.WriteMode
	actor string
	cfg   *store.TUIConfig

	width  int
	height int

	view view

	postingsList list.Model
	previewName  string
	previewW     int
	previewText  string

	// label is shared across model copies; bubbletea hands Update a value.
	label *labelSession

	minibufferText  string
	minibufferErr   bool
	minibufferSetAt time.Time
}

// labelSession is the state of one posting being labeled.
type labelSession struct {
	posting   string
	pane      *documentPane
	sync      *selsync.Synchronizer
	editors   []*fieldEditor
	active    int
	focusFact bool

	// Temp file and field index of a running $EDITOR session.
	editorPath  string
	editorField int
}

func newAppModel(opts Options) appModel {
	m := appModel{
		store: opts.Store,
		mode:  opts.Mode,
		actor: strings.TrimSpace(opts.Actor),
		cfg:   opts.Config,
		view:  viewPostings,
	}
	m.postingsList = newPostingsList(nil)
	m.refreshPostings()
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferErr = false
	m.minibufferSetAt = time.Now()
}

func (m *appModel) showError(err error) {
	m.minibufferText = err.Error()
	m.minibufferErr = true
	m.minibufferSetAt = time.Now()
}

func (m *appModel) refreshPostings() {
	items, err := postingItems(m.store)
	if err != nil {
		m.showError(err)
		return
	}
	m.postingsList.SetItems(items)
}

func (m *appModel) previewMarkdown() bool {
	if m.cfg == nil || m.cfg.PreviewMarkdown == nil {
		return true
	}
	return *m.cfg.PreviewMarkdown
}

func (m *appModel) selectedPosting() (postingItem, bool) {
	it, ok := m.postingsList.SelectedItem().(postingItem)
	return it, ok
}

// openPosting switches to the label view with the first field active.
func (m *appModel) openPosting(name string) error {
	name, err := store.NormalizePostingName(name)
	if err != nil {
		return err
	}
	text, err := m.store.ReadPosting(name)
	if err != nil {
		return err
	}
	ex, err := m.store.LoadLabels(name)
	if err != nil {
		return err
	}

	pane := newDocumentPane(text)
	sess := &labelSession{
		posting: name,
		pane:    pane,
		sync:    selsync.New(pane, selsync.Options{Mode: m.mode, Logf: logger.Debug}),
	}
	for _, spec := range model.Fields() {
		sess.editors = append(sess.editors, newFieldEditor(spec.Name, ex.Get(spec.Name)))
	}
	m.label = sess
	m.view = viewLabel
	m.layoutLabel()
	m.activateField(0)
	logger.Debug("tui: opened %s (%s mode)", name, m.mode)
	return nil
}

func (m *appModel) closePosting() {
	posting := ""
	if m.label != nil {
		posting = m.label.posting
	}
	m.label = nil
	m.view = viewPostings
	m.refreshPostings()
	m.selectPosting(posting)
	m.saveState()
}

func (m *appModel) selectPosting(name string) bool {
	if name == "" {
		return false
	}
	for i, it := range m.postingsList.Items() {
		if pi, ok := it.(postingItem); ok && pi.info.Name == name {
			m.postingsList.Select(i)
			return true
		}
	}
	return false
}

// saveState records the current view for the next launch.
func (m *appModel) saveState() {
	st := &store.TUIState{View: "postings"}
	if s := m.label; s != nil && m.view == viewLabel {
		st.View = "label"
		st.Posting = s.posting
		if ed := m.activeEditor(); ed != nil {
			st.Field = ed.name
		}
	} else if it, ok := m.selectedPosting(); ok {
		st.Posting = it.info.Name
	}
	if err := m.store.SaveTUIState(st); err != nil {
		logger.Debug("tui: save state: %v", err)
	}
}

// restoreState reselects the last posting and, if the TUI exited while
// labeling, reopens it on the same field. Stale state is ignored.
func (m *appModel) restoreState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if !m.selectPosting(st.Posting) {
		return
	}
	if st.View != "label" {
		return
	}
	if err := m.openPosting(st.Posting); err != nil {
		return
	}
	for i, ed := range m.label.editors {
		if ed.name == st.Field {
			m.activateField(i)
			break
		}
	}
}

// activateField binds the i-th editor, which re-highlights the posting with
// that field's saved quote.
func (m *appModel) activateField(i int) {
	s := m.label
	if s == nil || len(s.editors) == 0 {
		return
	}
	n := len(s.editors)
	i = ((i % n) + n) % n
	s.editors[s.active].blur()
	s.active = i
	s.focusFact = false
	ed := s.editors[i]
	ed.focus(false)
	s.sync.SetActiveField(ed)
	m.saveState()
}

func (m *appModel) activeEditor() *fieldEditor {
	if m.label == nil || len(m.label.editors) == 0 {
		return nil
	}
	return m.label.editors[m.label.active]
}

// saveActive persists the active field, records history and moves to the
// next field. After the last field it returns to the postings list.
func (m *appModel) saveActive() {
	ed := m.activeEditor()
	if ed == nil {
		return
	}
	s := m.label
	fact := ed.Fact()
	if _, err := m.store.SaveFact(s.posting, ed.name, fact); err != nil {
		m.showError(err)
		return
	}
	if _, err := m.store.AppendLabelEvent(context.Background(), model.LabelEvent{
		Posting: s.posting,
		Field:   ed.name,
		Fact:    fact.Fact,
		Quote:   fact.SubstringQuote,
		Source:  model.SourceTUI,
		Actor:   m.actor,
	}); err != nil {
		logger.Warn("tui: history append failed: %v", err)
	}

	next, ok := model.NextField(ed.name)
	if !ok {
		posting := s.posting
		m.closePosting()
		m.showMinibuffer(fmt.Sprintf("Saved %s; all fields labeled for %s", ed.name.Label(), posting))
		return
	}
	for i, e := range s.editors {
		if e.name == next {
			m.activateField(i)
			break
		}
	}
	m.showMinibuffer("Saved " + ed.name.Label())
}

// layoutLabel sizes the label view to the window.
func (m *appModel) layoutLabel() {
	s := m.label
	if s == nil {
		return
	}
	w := max(m.width, 20)
	docRows := max(m.height-headerRows-editorRows-footerRows, minDocRows)
	s.pane.SetSize(w, docRows)
	s.pane.SetOrigin(0, headerRows)
	for _, ed := range s.editors {
		ed.setWidth(w)
	}
}

func (m *appModel) resizeLists() {
	listW := int(float64(m.width) * listPaneRatio)
	if !m.previewVisible() {
		listW = m.width
	}
	m.postingsList.SetSize(max(listW, 10), max(m.height-headerRows-footerRows, 1))
}

func (m *appModel) previewVisible() bool { return m.width >= 60 }

// updatePreview re-renders the selected posting's preview when the selection
// or pane width changed.
func (m *appModel) updatePreview() {
	if !m.previewVisible() {
		return
	}
	it, ok := m.selectedPosting()
	if !ok {
		m.previewName, m.previewText = "", ""
		return
	}
	w := m.width - m.postingsList.Width() - 3
	if it.info.Name == m.previewName && w == m.previewW {
		return
	}
	m.previewName, m.previewW = it.info.Name, w
	text, err := m.store.ReadPosting(it.info.Name)
	if err != nil {
		m.previewText = err.Error()
		return
	}
	if m.previewMarkdown() {
		m.previewText = renderMarkdown(text, w)
		return
	}
	m.previewText = text
}
