package linkedhashmap

import (
	"errors"
	"iter"
)

// ErrInvalidIterator is returned when an iterator is moved past either end of
// its map, or when an iterator that does not denote a live pair of this map
// is handed to Erase.
var ErrInvalidIterator = errors.New("linkedhashmap: invalid iterator")

// Iterator is a bidirectional position handle into a map's insertion order:
// it is positioned either at a live pair, or past the end. Iterators are
// only as live as the pair they point to — erasing that pair invalidates
// them — while inserts, value updates and bucket growth leave every other
// iterator valid. Clear invalidates all of them.
type Iterator[K comparable, V any] struct {
	m    *Map[K, V]
	pair *Pair[K, V] // nil when past the end
}

// Begin returns an iterator positioned at the oldest pair, or past the end
// if the map is empty.
func (m *Map[K, V]) Begin() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, pair: m.Oldest()}
}

// End returns the past-the-end iterator. It is a legitimate position to
// retreat from, but holds no pair.
func (m *Map[K, V]) End() *Iterator[K, V] {
	return &Iterator[K, V]{m: m}
}

// Find returns an iterator positioned at the given key, or the past-the-end
// iterator if the key is absent. Absence is not an error.
func (m *Map[K, V]) Find(key K) *Iterator[K, V] {
	return &Iterator[K, V]{m: m, pair: m.GetPair(key)}
}

// Erase removes the pair the iterator is positioned at. It fails with
// ErrInvalidIterator if the iterator belongs to another map, is past the
// end, or no longer denotes a live pair of this map (it was erased, or the
// map was cleared, since the iterator was obtained). The map stays fully
// usable after a failed Erase.
func (m *Map[K, V]) Erase(it *Iterator[K, V]) error {
	if m == nil || it == nil || it.m != m || it.pair == nil {
		return ErrInvalidIterator
	}
	// Liveness is checked against the index rather than assumed from the
	// handle: a stale pair no longer wins the identity comparison.
	if m.index.lookup(it.pair.Key) != it.pair {
		return ErrInvalidIterator
	}
	m.remove(it.pair)
	return nil
}

// Next advances the iterator to the following pair in insertion order,
// or past the end when positioned at the newest pair. Advancing the
// past-the-end iterator fails with ErrInvalidIterator.
func (it *Iterator[K, V]) Next() error {
	if it.m == nil || it.pair == nil {
		return ErrInvalidIterator
	}
	it.pair = it.pair.Next()
	return nil
}

// Prev moves the iterator to the preceding pair in insertion order. The
// past-the-end iterator retreats to the newest pair; retreating past the
// oldest pair fails with ErrInvalidIterator.
func (it *Iterator[K, V]) Prev() error {
	if it.m == nil {
		return ErrInvalidIterator
	}
	var target *Pair[K, V]
	if it.pair == nil {
		target = it.m.Newest()
	} else {
		target = it.pair.Prev()
	}
	if target == nil {
		return ErrInvalidIterator
	}
	it.pair = target
	return nil
}

// AtEnd reports whether the iterator is past the end.
func (it *Iterator[K, V]) AtEnd() bool {
	return it == nil || it.pair == nil
}

// Pair returns the pair the iterator is positioned at, or nil past the end.
func (it *Iterator[K, V]) Pair() *Pair[K, V] {
	return it.pair
}

// Key returns the current pair's key. Calling it on the past-the-end
// iterator is undefined (it panics on the nil pair).
func (it *Iterator[K, V]) Key() K {
	return it.pair.Key
}

// Value returns the current pair's value. Calling it on the past-the-end
// iterator is undefined (it panics on the nil pair).
func (it *Iterator[K, V]) Value() V {
	return it.pair.Value
}

// SetValue replaces the current pair's value in place.
func (it *Iterator[K, V]) SetValue(value V) {
	it.pair.Value = value
}

// Eq reports whether both iterators denote the same position in the same
// map. Iterators from different maps are never equal, even when both are
// past the end.
func (it *Iterator[K, V]) Eq(other *Iterator[K, V]) bool {
	return it != nil && other != nil && it.m == other.m && it.pair == other.pair
}

// FromOldest returns an iterator over all the key-value pairs in the map,
// starting from the oldest pair.
func (m *Map[K, V]) FromOldest() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil || m.list == nil {
			return
		}
		for element := m.list.Front(); element != nil; element = element.Next() {
			pair := element.Value
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// FromNewest returns an iterator over all the key-value pairs in the map,
// starting from the newest pair.
func (m *Map[K, V]) FromNewest() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil || m.list == nil {
			return
		}
		for element := m.list.Back(); element != nil; element = element.Prev() {
			pair := element.Value
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// KeysFromOldest returns an iterator over all the keys in the map, starting
// from the oldest pair.
func (m *Map[K, V]) KeysFromOldest() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.FromOldest() {
			if !yield(key) {
				return
			}
		}
	}
}

// KeysFromNewest returns an iterator over all the keys in the map, starting
// from the newest pair.
func (m *Map[K, V]) KeysFromNewest() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.FromNewest() {
			if !yield(key) {
				return
			}
		}
	}
}

// ValuesFromOldest returns an iterator over all the values in the map,
// starting from the oldest pair.
func (m *Map[K, V]) ValuesFromOldest() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.FromOldest() {
			if !yield(value) {
				return
			}
		}
	}
}

// ValuesFromNewest returns an iterator over all the values in the map,
// starting from the newest pair.
func (m *Map[K, V]) ValuesFromNewest() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.FromNewest() {
			if !yield(value) {
				return
			}
		}
	}
}
