package tui

import (
	"os"
	"testing"

	"quotemark-cli/internal/model"
	"quotemark-cli/internal/store"
)

func TestNewPostingsList_DoesNotQuitOnEsc(t *testing.T) {
	l := newPostingsList(nil)

	for _, k := range l.KeyMap.Quit.Keys() {
		if k == "esc" {
			t.Fatalf("expected list quit binding not to include esc; got %v", l.KeyMap.Quit.Keys())
		}
	}
	has := func(keys []string, want string) bool {
		for _, k := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
	if !has(l.KeyMap.CursorDown.Keys(), "ctrl+n") || !has(l.KeyMap.CursorDown.Keys(), "down") {
		t.Fatalf("expected CursorDown to keep defaults and add ctrl+n; got %v", l.KeyMap.CursorDown.Keys())
	}
}

func TestPostingItems_CountsLabeledFields(t *testing.T) {
	s := store.Store{Dir: t.TempDir()}
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, name := range []string{"b", "a"} {
		if err := os.WriteFile(s.PostingPath(name), []byte("posting "+name), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, err := s.SaveFact("b", model.FieldCompany, model.Fact{Fact: "B Inc"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	items, err := postingItems(s)
	if err != nil {
		t.Fatalf("postingItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	a, b := items[0].(postingItem), items[1].(postingItem)
	if a.info.Name != "a" || a.labeled != 0 {
		t.Fatalf("unexpected first item: %+v", a)
	}
	if b.info.Name != "b" || b.labeled != 1 || b.Description() != "1/5 labeled" {
		t.Fatalf("unexpected second item: %+v (%s)", b, b.Description())
	}
}
