// Package orderedmap provides a map that remembers the order in which keys were
// first inserted.
package orderedmap

import "iter"

// A Map uses a doubly-linked list and a lookup map into that list to iterate
// its entries in insertion order. Overwriting an existing key keeps its
// original position.
//
// A Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	lookup   map[K]*entry[K, V]
	oldest   *entry[K, V]
	youngest *entry[K, V]
}

type entry[K comparable, V any] struct {
	k       K
	v       V
	older   *entry[K, V]
	younger *entry[K, V]
}

// New creates and returns an empty Map with room for `size` entries before the
// lookup map needs to grow.
func New[K comparable, V any](size int) *Map[K, V] {
	return &Map[K, V]{lookup: make(map[K]*entry[K, V], size)}
}

// Len reports the number of entries in the Map.
func (m *Map[K, V]) Len() int { return len(m.lookup) }

// Get returns the value stored for key, and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e, ok := m.lookup[key]; ok {
		return e.v, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.lookup[key]
	return ok
}

// Set stores value under key. New keys are appended after the youngest entry;
// existing keys are updated in place. Set reports whether key was newly
// inserted.
func (m *Map[K, V]) Set(key K, value V) bool {
	if e, ok := m.lookup[key]; ok {
		e.v = value
		return false
	}

	newest := &entry[K, V]{k: key, v: value, older: m.youngest}
	if m.youngest != nil {
		m.youngest.younger = newest
	} else {
		m.oldest = newest
	}
	m.youngest = newest
	m.lookup[key] = newest
	return true
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	e, ok := m.lookup[key]
	if !ok {
		return false
	}

	if e.older != nil {
		e.older.younger = e.younger
	} else {
		m.oldest = e.younger
	}
	if e.younger != nil {
		e.younger.older = e.older
	} else {
		m.youngest = e.older
	}
	delete(m.lookup, key)
	return true
}

// All iterates the entries from oldest to youngest. Deleting the entry being
// visited is allowed during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.oldest; e != nil; {
			next := e.younger
			if !yield(e.k, e.v) {
				return
			}
			e = next
		}
	}
}

// Keys iterates the keys from oldest to youngest.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates the values from oldest to youngest.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}
