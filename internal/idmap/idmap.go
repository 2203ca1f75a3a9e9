/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package idmap provides the keyed container used by the chess core: a map
// keyed by integer ids whose iteration order follows ascending key order.
package idmap

import (
	"errors"
	"iter"
	"maps"
	"slices"
)

// ErrFull is returned by Put when inserting a new key would exceed the
// container's limit. It stands in for an allocation failure.
var ErrFull = errors.New("idmap: container full")

// Key is any integer-backed id type.
type Key interface {
	~int | ~int32 | ~int64
}

// Map is an ordered map from K to V. The zero value is not usable; call New.
type Map[K Key, V any] struct {
	entries map[K]V
	limit   int
}

// New returns an empty Map. A limit <= 0 means unlimited.
func New[K Key, V any](limit int) *Map[K, V] {
	return &Map[K, V]{
		entries: make(map[K]V),
		limit:   limit,
	}
}

// Put stores v under k, replacing any previous value.
func (m *Map[K, V]) Put(k K, v V) error {
	if _, ok := m.entries[k]; !ok && m.limit > 0 && len(m.entries) >= m.limit {
		return ErrFull
	}
	m.entries[k] = v
	return nil
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.entries[k]
	return v, ok
}

func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.entries[k]
	return ok
}

// Remove deletes k and reports whether it was present.
func (m *Map[K, V]) Remove(k K) bool {
	if _, ok := m.entries[k]; !ok {
		return false
	}
	delete(m.entries, k)
	return true
}

func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	return slices.Sorted(maps.Keys(m.entries))
}

// All iterates over the entries in ascending key order. Entries removed
// during iteration are skipped; entries added during iteration are not
// visited.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.Keys() {
			v, ok := m.entries[k]
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clone returns an independent copy of m. Each value is passed through
// copyValue so that pointer values can be deep copied; mutating the clone
// never affects m.
func (m *Map[K, V]) Clone(copyValue func(V) V) *Map[K, V] {
	out := New[K, V](m.limit)
	for k, v := range m.entries {
		out.entries[k] = copyValue(v)
	}
	return out
}
