package store

import "sync"

// Hub fans change signals out to collection subscribers. The signal
// carries no payload: a woken subscriber re-runs its own query and takes
// the fresh snapshot as authoritative.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers for change signals on a collection. The returned
// cancel func must be called when the subscriber goes away; it is safe to
// call more than once.
func (h *Hub) Subscribe(collection string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan struct{})
	}
	ch := make(chan struct{}, 1)
	h.subs[collection][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[collection][id]; ok {
			delete(h.subs[collection], id)
			close(ch)
		}
	}
	return ch, cancel
}

// Notify signals every subscriber of the collection. Signals coalesce: a
// subscriber that has not consumed the previous signal gets no second one,
// which is fine because it re-queries the full snapshot either way.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
