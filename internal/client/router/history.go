package router

import (
	"slices"
	"sync"
)

// History is the navigation stack. It implements client.Navigator so the
// HTTP client can force the login route after a failed refresh.
type History struct {
	mu      sync.Mutex
	entries []string
}

func NewHistory(start string) *History {
	if start == "" {
		start = PathHome
	}
	return &History{entries: []string{start}}
}

// Navigate pushes p unless it is already the current entry.
func (h *History) Navigate(p string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.entries[len(h.entries)-1] == p {
		return
	}
	h.entries = append(h.entries, p)
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Back pops the current entry. It reports false on the first entry.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 1 {
		return h.entries[0], false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}
