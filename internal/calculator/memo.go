package calculator

import "sync"

// DefaultMemoEntries bounds each memo; a full memo is emptied before the
// next insert.
const DefaultMemoEntries = 1024

// Memo remembers successful results keyed by the full input value. Results
// are cloned on the way in and on the way out so callers can never mutate a
// remembered entry.
type Memo[K comparable, V any] struct {
	mu         sync.RWMutex
	entries    map[K]V
	clone      func(V) V
	maxEntries int
}

// NewMemo creates a memo holding at most maxEntries results. A non-positive
// maxEntries uses DefaultMemoEntries.
func NewMemo[K comparable, V any](maxEntries int, clone func(V) V) *Memo[K, V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoEntries
	}
	return &Memo[K, V]{
		entries:    make(map[K]V),
		clone:      clone,
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the remembered result for key.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	value, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	return m.clone(value), true
}

// Put remembers a copy of value for key.
func (m *Memo[K, V]) Put(key K, value V) {
	value = m.clone(value)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.entries = make(map[K]V)
	}
	m.entries[key] = value
}

// Len returns the number of remembered results.
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// GetOrCompute returns the remembered result for key or computes, remembers
// and returns it. Errors are never remembered.
func (m *Memo[K, V]) GetOrCompute(key K, compute func(K) (V, error)) (V, bool, error) {
	if value, ok := m.Get(key); ok {
		return value, true, nil
	}
	value, err := compute(key)
	if err != nil {
		return value, false, err
	}
	m.Put(key, value)
	return value, false, nil
}
