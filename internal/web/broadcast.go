package web

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type resourceKey struct {
	kind string
	id   string
}

func (k resourceKey) String() string {
	kind := strings.TrimSpace(k.kind)
	id := strings.TrimSpace(k.id)
	if id == "" {
		return kind
	}
	return kind + ":" + id
}

func labelsKey(posting string) resourceKey { return resourceKey{kind: "labels", id: posting} }

type resourceHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newResourceHub() *resourceHub {
	return &resourceHub{subs: map[chan struct{}]struct{}{}}
}

func (h *resourceHub) add() chan struct{} {
	ch := make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// remove drops ch and reports how many subscribers are left.
func (h *resourceHub) remove(ch chan struct{}) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	return len(h.subs)
}

func (h *resourceHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// resourceBroadcaster polls the labels dir and wakes subscribers of a
// posting when its labels file changes, including writes from the CLI or TUI.
type resourceBroadcaster struct {
	dir      string
	interval time.Duration

	mu     sync.Mutex
	hubs   map[string]*resourceHub
	stamps map[string]string

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newResourceBroadcaster(labelsDir string, interval time.Duration) *resourceBroadcaster {
	if interval <= 0 {
		interval = time.Second
	}
	return &resourceBroadcaster{
		dir:      filepath.Clean(strings.TrimSpace(labelsDir)),
		interval: interval,
		hubs:     map[string]*resourceHub{},
		stamps:   map[string]string{},
		stopCh:   make(chan struct{}),
	}
}

func (b *resourceBroadcaster) Stop() {
	if b == nil {
		return
	}
	b.stopOnce.Do(func() {
		close(b.stopCh)
	})
}

// subscribe registers interest in key. The hub for key lives until its last
// subscriber cancels.
func (b *resourceBroadcaster) subscribe(key resourceKey) (ch chan struct{}, cancel func()) {
	k := key.String()
	b.mu.Lock()
	h := b.hubs[k]
	if h == nil {
		h = newResourceHub()
		b.hubs[k] = h
	}
	ch = h.add()
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if h.remove(ch) == 0 && b.hubs[k] == h {
				delete(b.hubs, k)
			}
			b.mu.Unlock()
		})
	}
}

func (b *resourceBroadcaster) notify(key resourceKey) {
	b.mu.Lock()
	h := b.hubs[key.String()]
	b.mu.Unlock()
	if h != nil {
		h.broadcast()
	}
}

// fingerprints returns modtime:size per posting for every labels file.
func (b *resourceBroadcaster) fingerprints() map[string]string {
	out := map[string]string{}
	ents, err := os.ReadDir(b.dir)
	if err != nil {
		return out
	}
	for _, ent := range ents {
		name := ent.Name()
		if ent.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		st, err := ent.Info()
		if err != nil {
			continue
		}
		out[strings.TrimSuffix(name, ".json")] = strconv.FormatInt(st.ModTime().UnixNano(), 10) + ":" + strconv.FormatInt(st.Size(), 10)
	}
	return out
}

// poll compares fingerprints with the previous poll and returns the postings
// whose labels changed. The first poll only records a baseline.
func (b *resourceBroadcaster) poll(first bool) []string {
	cur := b.fingerprints()

	b.mu.Lock()
	prev := b.stamps
	b.stamps = cur
	b.mu.Unlock()

	if first {
		return nil
	}
	var changed []string
	for name, fp := range cur {
		if prev[name] != fp {
			changed = append(changed, name)
		}
	}
	for name := range prev {
		if _, ok := cur[name]; !ok {
			changed = append(changed, name)
		}
	}
	return changed
}

func (b *resourceBroadcaster) watchLoop() {
	b.poll(true)
	t := time.NewTicker(b.interval)
	defer t.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-t.C:
		}
		for _, name := range b.poll(false) {
			b.notify(labelsKey(name))
		}
	}
}
