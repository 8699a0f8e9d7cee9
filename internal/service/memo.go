package service

import "sync"

type memoKey struct {
	version uint64
	state   string
}

// memo is a bounded cache of derived results. The oldest entry is evicted
// first; a dataset reload changes the version so stale entries simply age
// out.
type memo struct {
	mu      sync.Mutex
	size    int
	entries map[memoKey]*derived
	order   []memoKey
}

func newMemo(size int) *memo {
	if size <= 0 {
		size = 1
	}
	return &memo{size: size, entries: make(map[memoKey]*derived, size)}
}

func (m *memo) get(k memoKey) (*derived, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.entries[k]
	return d, ok
}

func (m *memo) put(k memoKey, d *derived) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[k]; ok {
		m.entries[k] = d
		return
	}
	if len(m.order) >= m.size {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[k] = d
	m.order = append(m.order, k)
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
