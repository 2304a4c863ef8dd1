package content

import (
	"slices"
	"sync"
)

// mirror is the in-memory copy of an entity list last loaded from the
// store. Mutations are applied with the store's returned rows only.
type mirror[T any] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
	id     func(T) string
}

func newMirror[T any](id func(T) string) *mirror[T] {
	return &mirror[T]{id: id}
}

// replace swaps in a freshly fetched list.
func (m *mirror[T]) replace(items []T) {
	m.mu.Lock()
	m.items = slices.Clone(items)
	m.loaded = true
	m.mu.Unlock()
}

// prepend inserts a newly created row at the head of the list.
func (m *mirror[T]) prepend(item T) {
	m.mu.Lock()
	m.items = append([]T{item}, m.items...)
	m.mu.Unlock()
}

// put replaces the row with the same id. If the row is not mirrored yet it
// is left out; the next load picks it up.
func (m *mirror[T]) put(item T) {
	key := m.id(item)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.id(m.items[i]) == key {
			m.items[i] = item
			return
		}
	}
}

// remove drops the row with id.
func (m *mirror[T]) remove(id string) {
	m.mu.Lock()
	m.items = slices.DeleteFunc(m.items, func(it T) bool { return m.id(it) == id })
	m.mu.Unlock()
}

// snapshot returns a copy of the list and whether it was ever loaded.
func (m *mirror[T]) snapshot() ([]T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items), m.loaded
}
