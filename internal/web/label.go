package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quotemark-cli/internal/logger"
	"quotemark-cli/internal/model"
	"quotemark-cli/internal/selsync"
	"quotemark-cli/internal/store"

	"github.com/starfederation/datastar-go/datastar"
)

const previewRunes = 320

type postingVM struct {
	Name    string
	URL     string
	Labeled int
	Total   int
	Preview template.HTML
}

type indexVM struct {
	baseVM
	Postings []postingVM
}

type fieldFormVM struct {
	Name   model.FieldName
	Label  string
	Fact   string
	Quote  string
	Active bool
	URL    string
}

type labelVM struct {
	baseVM
	Posting     string
	Field       model.FieldName
	FieldLabel  string
	Forms       []fieldFormVM
	PostingHTML template.HTML
	Signals     string
	SelectURL   string
	EditURL     string
	StreamURL   string
	Labeled     int
	Total       int
}

func labelURL(posting string, field model.FieldName) string {
	return "/label/" + url.PathEscape(posting) + "/" + string(field)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListPostings()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	vm := indexVM{baseVM: s.baseVM("Labeling Tool")}
	for _, info := range infos {
		p := postingVM{
			Name:  info.Name,
			URL:   "/label/" + url.PathEscape(info.Name) + "/",
			Total: len(model.Fields()),
		}
		if text, err := s.store.ReadPosting(info.Name); err == nil {
			p.Preview = postingPreview(text, previewRunes)
		}
		if info.HasLabels {
			if ex, err := s.store.LoadLabels(info.Name); err == nil {
				p.Labeled = ex.Labeled()
			}
		}
		vm.Postings = append(vm.Postings, p)
	}
	s.writeHTMLTemplate(w, "index", vm)
}

// postingParam validates the {posting} path value. It writes 404 and returns
// false for names that can't be a posting.
func (s *Server) postingParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.PathValue("posting"))
	if err := store.ValidatePostingName(name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return name, true
}

func (s *Server) labelTarget(w http.ResponseWriter, r *http.Request) (string, model.FieldName, bool) {
	name, ok := s.postingParam(w, r)
	if !ok {
		return "", "", false
	}
	field, err := model.ParseField(r.PathValue("field"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", "", false
	}
	return name, field, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrPostingNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleLabelRedirect(w http.ResponseWriter, r *http.Request) {
	name, ok := s.postingParam(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, labelURL(name, model.FirstField()), http.StatusSeeOther)
}

// labelView builds the label page model with the active field's saved quote
// highlighted in the posting.
func (s *Server) labelView(name string, field model.FieldName) (labelVM, error) {
	text, err := s.store.ReadPosting(name)
	if err != nil {
		return labelVM{}, err
	}
	ex, err := s.store.LoadLabels(name)
	if err != nil {
		return labelVM{}, err
	}

	view := selsync.NewTextView(text)
	sync := selsync.New(view, selsync.Options{Mode: s.cfgSnapshot().Mode, Logf: logger.Debug})
	active := ex.Get(field)
	sync.SetActiveField(selsync.NewTextField(active.SubstringQuote))

	signals, err := json.Marshal(labelSignals{Quote: active.SubstringQuote, Fact: active.Fact})
	if err != nil {
		return labelVM{}, err
	}

	base := labelURL(name, field)
	vm := labelVM{
		baseVM:      s.baseVM(name),
		Posting:     name,
		Field:       field,
		FieldLabel:  field.Label(),
		PostingHTML: postingHTML(view.Rendered()),
		Signals:     string(signals),
		SelectURL:   base + "/select",
		EditURL:     base + "/edit",
		StreamURL:   "/label/" + url.PathEscape(name) + "/stream?field=" + url.QueryEscape(string(field)),
		Labeled:     ex.Labeled(),
		Total:       len(model.Fields()),
	}
	for _, spec := range model.Fields() {
		f := ex.Get(spec.Name)
		vm.Forms = append(vm.Forms, fieldFormVM{
			Name:   spec.Name,
			Label:  spec.Label,
			Fact:   f.Fact,
			Quote:  f.SubstringQuote,
			Active: spec.Name == field,
			URL:    labelURL(name, spec.Name),
		})
	}
	return vm, nil
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	name, field, ok := s.labelTarget(w, r)
	if !ok {
		return
	}
	vm, err := s.labelView(name, field)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.writeHTMLTemplate(w, "label", vm)
}

// handleLabelSave stores one field and moves on to the next one, or back to
// the index after the last field.
func (s *Server) handleLabelSave(w http.ResponseWriter, r *http.Request) {
	name, field, ok := s.labelTarget(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fact := model.Fact{
		Fact:           strings.TrimSpace(r.Form.Get("fact")),
		SubstringQuote: r.Form.Get("substring_quote"),
	}
	if _, err := s.store.SaveFact(name, field, fact); err != nil {
		writeStoreError(w, err)
		return
	}
	if _, err := s.store.AppendLabelEvent(r.Context(), model.LabelEvent{
		Posting: name,
		Field:   field,
		Fact:    fact.Fact,
		Quote:   fact.SubstringQuote,
		Source:  model.SourceWeb,
		Actor:   s.cfgSnapshot().Actor,
	}); err != nil {
		logger.Warn("web: history append failed: %v", err)
	}

	next, ok := model.NextField(field)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, labelURL(name, next), http.StatusSeeOther)
}

// handleLabelSelect is the selection-end action: the selection is copied
// into the quote signal and the posting is re-highlighted.
func (s *Server) handleLabelSelect(w http.ResponseWriter, r *http.Request) {
	s.syncAction(w, r, func(sync *selsync.Synchronizer, input *signalField, sig labelSignals) {
		sync.BindField(input)
		sync.OnSelectionEnd(sig.Selection)
	})
}

// handleLabelEdit re-highlights the posting after the quote was edited.
func (s *Server) handleLabelEdit(w http.ResponseWriter, r *http.Request) {
	s.syncAction(w, r, func(sync *selsync.Synchronizer, _ *signalField, sig labelSignals) {
		sync.OnFieldEdit(sig.Quote)
	})
}

func (s *Server) syncAction(w http.ResponseWriter, r *http.Request, run func(*selsync.Synchronizer, *signalField, labelSignals)) {
	name, _, ok := s.labelTarget(w, r)
	if !ok {
		return
	}
	var sig labelSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := s.store.ReadPosting(name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	view := &sseDocumentView{plain: text, sse: sse}
	input := &signalField{value: sig.Quote, sse: sse}
	sync := selsync.New(view, selsync.Options{Mode: s.cfgSnapshot().Mode, Logf: logger.Debug})
	run(sync, input, sig)

	if err := errors.Join(view.err, input.err); err != nil {
		logger.Warn("web: %s: %v", r.URL.Path, err)
	}
}

// handleLabelStream re-renders the field forms whenever the posting's labels
// file changes on disk.
func (s *Server) handleLabelStream(w http.ResponseWriter, r *http.Request) {
	name, ok := s.postingParam(w, r)
	if !ok {
		return
	}
	field, err := model.ParseField(r.URL.Query().Get("field"))
	if err != nil {
		field = model.FirstField()
	}

	sse := datastar.NewSSE(w, r)
	ch, cancel := s.broadcaster().subscribe(labelsKey(name))
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			vm, err := s.labelView(name, field)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			html, err := s.renderTemplate("label-forms", vm)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#field-forms"), datastar.WithMode(datastar.ElementPatchModeOuter))
			_ = sse.PatchElements(string(vm.PostingHTML), datastar.WithSelector(postingSelector), datastar.WithMode(datastar.ElementPatchModeInner))
		}
	}
}
