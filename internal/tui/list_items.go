package tui

import (
	"fmt"

	"quotemark-cli/internal/model"
	"quotemark-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
)

type postingItem struct {
	info    store.PostingInfo
	labeled int
}

func (i postingItem) FilterValue() string { return i.info.Name }
func (i postingItem) Title() string       { return i.info.Name }
func (i postingItem) Description() string {
	return fmt.Sprintf("%d/%d labeled", i.labeled, len(model.Fields()))
}

func newPostingsList(items []list.Item) list.Model {
	l := list.New(items, newPostingDelegate(), 0, 0)
	l.Title = "Postings"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("posting", "postings")
	// ESC is "back", never "quit".
	l.KeyMap.Quit.SetKeys("q")
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}

func postingItems(s store.Store) ([]list.Item, error) {
	infos, err := s.ListPostings()
	if err != nil {
		return nil, err
	}
	items := make([]list.Item, 0, len(infos))
	for _, info := range infos {
		it := postingItem{info: info}
		if info.HasLabels {
			if ex, err := s.LoadLabels(info.Name); err == nil {
				it.labeled = ex.Labeled()
			}
		}
		items = append(items, it)
	}
	return items, nil
}
