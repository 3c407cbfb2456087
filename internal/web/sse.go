package web

import (
	"html/template"

	"quotemark-cli/internal/highlight"

	"github.com/starfederation/datastar-go/datastar"
)

const postingSelector = "#job-posting"

// sseDocumentView is a selsync.DocumentView whose renders are patched into
// the browser's #job-posting element.
type sseDocumentView struct {
	plain string
	sse   *datastar.ServerSentEventGenerator

	last     highlight.Document
	rendered bool
	err      error
}

func (v *sseDocumentView) PlainText() string { return v.plain }

func (v *sseDocumentView) Render(doc highlight.Document) {
	if v.rendered && doc == v.last {
		return
	}
	v.last, v.rendered = doc, true
	if err := v.sse.PatchElements(doc.HTML(),
		datastar.WithSelector(postingSelector),
		datastar.WithMode(datastar.ElementPatchModeInner),
	); err != nil && v.err == nil {
		v.err = err
	}
}

// signalField is a selsync.Field backed by the "quote" datastar signal.
// SetValue patches the signal so the bound textarea follows.
type signalField struct {
	value string
	sse   *datastar.ServerSentEventGenerator
	err   error
}

func (f *signalField) Value() string { return f.value }

func (f *signalField) SetValue(v string) {
	f.value = v
	if err := f.sse.MarshalAndPatchSignals(map[string]any{"quote": v}); err != nil && f.err == nil {
		f.err = err
	}
}

// labelSignals are the datastar signals sent by the label page.
type labelSignals struct {
	Selection string `json:"selection"`
	Quote     string `json:"quote"`
	Fact      string `json:"fact"`
}

func postingHTML(doc highlight.Document) template.HTML {
	return template.HTML(doc.HTML())
}
