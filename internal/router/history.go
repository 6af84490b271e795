package router

import "sync"

// History is a browser-style back/forward stack of paths. Every entry is
// re-resolved when visited, so a content reload never serves a stale state.
type History struct {
	mu      sync.Mutex
	router  *Router
	entries []string
	cursor  int
}

// NewHistory returns an empty history resolving through rt.
func NewHistory(rt *Router) *History {
	return &History{router: rt, cursor: -1}
}

// Push records a navigation to path, dropping any forward entries, and
// returns its state.
func (h *History) Push(path string) NavigationState {
	h.mu.Lock()
	defer h.mu.Unlock()

	nav := h.router.Resolve(path)
	h.entries = append(h.entries[:h.cursor+1], nav.Path)
	h.cursor = len(h.entries) - 1
	return nav
}

// Back moves one entry back. It reports false at the oldest entry.
func (h *History) Back() (NavigationState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor <= 0 {
		return NavigationState{}, false
	}
	h.cursor--
	return h.router.Resolve(h.entries[h.cursor]), true
}

// Forward moves one entry forward. It reports false at the newest entry.
func (h *History) Forward() (NavigationState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.entries)-1 {
		return NavigationState{}, false
	}
	h.cursor++
	return h.router.Resolve(h.entries[h.cursor]), true
}

// Current returns the state at the cursor, or false before the first Push.
func (h *History) Current() (NavigationState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		return NavigationState{}, false
	}
	return h.router.Resolve(h.entries[h.cursor]), true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
