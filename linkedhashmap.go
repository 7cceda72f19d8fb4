// Package linkedhashmap implements a generic insertion-ordered map: a hash
// index layered over a doubly linked list that records the order in which
// distinct keys first entered the map.
//
// Iteration order is the order in which keys were inserted; updating the
// value of an existing key does not move it. All operations are amortized
// constant-time.
//
// A Map is not safe for concurrent use: it assumes a single mutator with
// exclusive access, like the built-in map type.
package linkedhashmap

import (
	"fmt"
	"iter"

	list "github.com/PrismAIO/generic-list-go"
)

// KeyNotFoundError is returned by the operations that require the key to be
// present (At, the Move family, ...) when it is not.
type KeyNotFoundError[K comparable] struct {
	MissingKey K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("missing key: %v", e.MissingKey)
}

// Pair is a single key-value entry of a Map. Pairs returned by a Map are
// direct references to its storage: writing Value writes the map's value for
// that key. Key must be treated as immutable; mutating it leaves the map's
// index out of sync with its content, with undefined results.
type Pair[K comparable, V any] struct {
	Key   K
	Value V

	// element is the pair's position in the order list; nil once the pair
	// has been removed from its map.
	element *list.Element[*Pair[K, V]]

	// hashNext chains pairs sharing a bucket. It is a secondary, non-owning
	// link into the same pair set the order list owns.
	hashNext *Pair[K, V]
}

// Map is an insertion-ordered map. The zero value is not usable: use New.
type Map[K comparable, V any] struct {
	list  *list.List[*Pair[K, V]]
	index hashIndex[K, V]
}

type initConfig[K comparable, V any] struct {
	capacity    int
	initialData []Pair[K, V]
	hasher      Hasher[K]
	equality    func(K, K) bool
}

// InitOption is the type of the functional options New accepts.
type InitOption[K comparable, V any] func(config *initConfig[K, V])

// WithCapacity allows giving a capacity hint for the map, akin to the
// standard `make(map[K]V, capacity)`: the bucket array is pre-sized so that
// `capacity` insertions cannot trigger a rehash.
func WithCapacity[K comparable, V any](capacity int) InitOption[K, V] {
	return func(c *initConfig[K, V]) {
		c.capacity = capacity
	}
}

// WithInitialData allows passing in initial data for the map.
func WithInitialData[K comparable, V any](initialData ...Pair[K, V]) InitOption[K, V] {
	return func(c *initConfig[K, V]) {
		c.initialData = initialData
		if c.capacity < len(initialData) {
			c.capacity = len(initialData)
		}
	}
}

// WithHasher overrides the map's hash function, which defaults to
// maphash.Comparable. A custom hasher must agree with the map's equality:
// equal keys must hash to the same value.
func WithHasher[K comparable, V any](hasher Hasher[K]) InitOption[K, V] {
	return func(c *initConfig[K, V]) {
		c.hasher = hasher
	}
}

// WithEquality overrides the equality predicate used to match keys, which
// defaults to ==. It is typically paired with WithHasher, since equal keys
// must hash to the same value.
func WithEquality[K comparable, V any](equality func(K, K) bool) InitOption[K, V] {
	return func(c *initConfig[K, V]) {
		c.equality = equality
	}
}

const invalidOptionMessage = `when using New[K,V]() with options, either provide one or several InitOption[K, V]; or a single integer representing the initial capacity`

func invalidOption() { panic(invalidOptionMessage) }

// New creates a new Map.
// options can either be one or several InitOption[K, V], or a single integer,
// which is then interpreted as a capacity hint, à la make(map[K]V, capacity).
func New[K comparable, V any](options ...any) *Map[K, V] {
	m := &Map[K, V]{}

	var config initConfig[K, V]
	for _, untypedOption := range options {
		switch option := untypedOption.(type) {
		case int:
			if len(options) != 1 {
				invalidOption()
			}
			config.capacity = option

		case InitOption[K, V]:
			option(&config)

		default:
			invalidOption()
		}
	}

	m.index.hasher = config.hasher
	m.index.equality = config.equality
	m.initialize(config.capacity)
	m.AddPairs(config.initialData...)

	return m
}

// From creates a new Map from an iterator over key-value pairs.
func From[K comparable, V any](i iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	for k, v := range i {
		m.Set(k, v)
	}
	return m
}

func (m *Map[K, V]) initialize(capacity int) {
	m.list = list.New[*Pair[K, V]]()
	m.index.init(bucketCountFor(capacity))
}

// Get looks for the given key, and returns the value associated with it, or
// V's zero value if not found. The boolean it returns is true if and only if
// the key is present in the map.
func (m *Map[K, V]) Get(key K) (val V, present bool) {
	if m == nil || m.list == nil {
		return
	}
	if pair := m.index.lookup(key); pair != nil {
		return pair.Value, true
	}
	return
}

// Load is an alias for Get, mostly to present an API similar to sync.Map's.
func (m *Map[K, V]) Load(key K) (V, bool) {
	return m.Get(key)
}

// Value returns the value associated with the given key, or V's zero value
// if not found.
func (m *Map[K, V]) Value(key K) (val V) {
	if pair := m.GetPair(key); pair != nil {
		val = pair.Value
	}
	return
}

// GetPair looks for the given key, and returns the pair associated with it,
// or nil if not found.
func (m *Map[K, V]) GetPair(key K) *Pair[K, V] {
	if m == nil || m.list == nil {
		return nil
	}
	return m.index.lookup(key)
}

// At returns the value associated with the given key, or a
// *KeyNotFoundError[K] if the key is absent. The map itself is left fully
// usable after the error.
func (m *Map[K, V]) At(key K) (V, error) {
	if pair := m.GetPair(key); pair != nil {
		return pair.Value, nil
	}
	var zero V
	return zero, &KeyNotFoundError[K]{key}
}

// Count returns the number of pairs stored under the given key: 0 or 1,
// since the map holds no duplicate keys.
func (m *Map[K, V]) Count(key K) int {
	if m.GetPair(key) != nil {
		return 1
	}
	return 0
}

// Set sets the key-value pair, and returns what Get would have returned on
// that key prior to the call to Set. Updating an existing key never moves
// it: the pair keeps the position its first insertion gave it.
func (m *Map[K, V]) Set(key K, value V) (val V, present bool) {
	if pair := m.index.lookup(key); pair != nil {
		oldValue := pair.Value
		pair.Value = value
		return oldValue, true
	}
	m.append(key, value)
	return
}

// Store is an alias for Set, mostly to present an API similar to sync.Map's.
func (m *Map[K, V]) Store(key K, value V) (V, bool) {
	return m.Set(key, value)
}

// Add inserts the key-value pair only if the key is absent, and returns an
// iterator positioned at the resulting pair: the new one, or the existing
// one that prevented the insertion. The boolean is true if and only if the
// insertion happened; when it is false the stored value is left untouched.
func (m *Map[K, V]) Add(key K, value V) (*Iterator[K, V], bool) {
	if pair := m.index.lookup(key); pair != nil {
		return &Iterator[K, V]{m: m, pair: pair}, false
	}
	return &Iterator[K, V]{m: m, pair: m.append(key, value)}, true
}

// Entry returns the pair associated with the given key, first inserting a
// pair holding V's zero value if the key is absent. The insertion on miss is
// an observable mutation: Len grows by one.
func (m *Map[K, V]) Entry(key K) *Pair[K, V] {
	if pair := m.index.lookup(key); pair != nil {
		return pair
	}
	var zero V
	return m.append(key, zero)
}

// append creates the pair for a previously-absent key and links it at the
// back of the order list and into its bucket chain. The growth check runs
// first, so the load bound already accounts for the incoming pair.
func (m *Map[K, V]) append(key K, value V) *Pair[K, V] {
	m.index.maybeGrow(m.list.Len()+1, m.list)
	pair := &Pair[K, V]{Key: key, Value: value}
	pair.element = m.list.PushBack(pair)
	m.index.link(pair)
	return pair
}

// AddPairs inserts the given pairs, in order. Semantics are Set's: an
// existing key has its value updated in place.
func (m *Map[K, V]) AddPairs(pairs ...Pair[K, V]) {
	for _, pair := range pairs {
		m.Set(pair.Key, pair.Value)
	}
}

// Delete removes the key-value pair, and returns what Get would have
// returned on that key prior to the call to Delete.
func (m *Map[K, V]) Delete(key K) (val V, present bool) {
	if m == nil || m.list == nil {
		return
	}
	pair := m.index.lookup(key)
	if pair == nil {
		return
	}
	m.remove(pair)
	return pair.Value, true
}

// remove unlinks a live pair from both the order list and its bucket chain.
func (m *Map[K, V]) remove(pair *Pair[K, V]) {
	m.list.Remove(pair.element)
	pair.element = nil
	m.index.unlink(pair)
}

// Len returns the number of pairs in the map.
func (m *Map[K, V]) Len() int {
	if m == nil || m.list == nil {
		return 0
	}
	return m.list.Len()
}

// Empty reports whether the map holds no pairs.
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Clear removes all pairs. The bucket array keeps its current size, so a
// cleared map re-grows exactly as a fresh map of the same bucket count
// would. All live iterators and pairs are invalidated.
func (m *Map[K, V]) Clear() {
	if m == nil || m.list == nil {
		return
	}
	for element := m.list.Front(); element != nil; element = element.Next() {
		element.Value.element = nil
		element.Value.hashNext = nil
	}
	m.list.Init()
	m.index.clear()
}

// Clone returns an independent copy of the map: same pairs, same iteration
// order, same hasher and equality, and a bucket array pre-sized to the
// source's. Populating the clone can never outgrow that pre-sized array (the
// source's pair count already satisfies the load bound at that size), so the
// clone's bucket count always equals the source's.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil || m.list == nil {
		return New[K, V]()
	}
	clone := &Map[K, V]{
		list: list.New[*Pair[K, V]](),
		index: hashIndex[K, V]{
			hasher:   m.index.hasher,
			equality: m.index.equality,
		},
	}
	clone.index.init(len(m.index.buckets))
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		clone.append(pair.Key, pair.Value)
	}
	return clone
}

// Assign replaces the map's content with the other map's pairs, in the other
// map's order: it clears the destination, keeping its current bucket array,
// then re-inserts every source pair, growing only if the source's content
// requires it. Assigning a map to itself is a no-op.
func (m *Map[K, V]) Assign(other *Map[K, V]) {
	if m == other {
		return
	}
	m.Clear()
	if other == nil {
		return
	}
	for pair := other.Oldest(); pair != nil; pair = pair.Next() {
		m.append(pair.Key, pair.Value)
	}
}

// Oldest returns a pointer to the oldest pair, or nil if the map is empty.
// It's meant to be used to iterate on the map's pairs from the oldest to the
// newest, e.g.:
//
//	for pair := m.Oldest(); pair != nil; pair = pair.Next() { fmt.Printf("%v => %v\n", pair.Key, pair.Value) }
func (m *Map[K, V]) Oldest() *Pair[K, V] {
	if m == nil || m.list == nil {
		return nil
	}
	return listElementToPair(m.list.Front())
}

// Newest returns a pointer to the newest pair, or nil if the map is empty.
// It's meant to be used to iterate on the map's pairs from the newest to the
// oldest, e.g.:
//
//	for pair := m.Newest(); pair != nil; pair = pair.Prev() { fmt.Printf("%v => %v\n", pair.Key, pair.Value) }
func (m *Map[K, V]) Newest() *Pair[K, V] {
	if m == nil || m.list == nil {
		return nil
	}
	return listElementToPair(m.list.Back())
}

// Next returns a pointer to the next pair in insertion order, or nil if
// there is none.
func (p *Pair[K, V]) Next() *Pair[K, V] {
	if p.element == nil {
		return nil
	}
	return listElementToPair(p.element.Next())
}

// Prev returns a pointer to the previous pair in insertion order, or nil if
// there is none.
func (p *Pair[K, V]) Prev() *Pair[K, V] {
	if p.element == nil {
		return nil
	}
	return listElementToPair(p.element.Prev())
}

func listElementToPair[K comparable, V any](element *list.Element[*Pair[K, V]]) *Pair[K, V] {
	if element == nil {
		return nil
	}
	return element.Value
}

// MoveAfter moves the pair associated with key to its new position, after
// the pair associated with markKey. It returns a *KeyNotFoundError[K] if
// either key is absent.
func (m *Map[K, V]) MoveAfter(key, markKey K) error {
	pair, mark, err := m.movePairs(key, markKey)
	if err != nil {
		return err
	}
	m.list.MoveAfter(pair.element, mark.element)
	return nil
}

// MoveBefore moves the pair associated with key to its new position, before
// the pair associated with markKey. It returns a *KeyNotFoundError[K] if
// either key is absent.
func (m *Map[K, V]) MoveBefore(key, markKey K) error {
	pair, mark, err := m.movePairs(key, markKey)
	if err != nil {
		return err
	}
	m.list.MoveBefore(pair.element, mark.element)
	return nil
}

func (m *Map[K, V]) movePairs(key, markKey K) (*Pair[K, V], *Pair[K, V], error) {
	pair := m.GetPair(key)
	if pair == nil {
		return nil, nil, &KeyNotFoundError[K]{key}
	}
	mark := m.GetPair(markKey)
	if mark == nil {
		return nil, nil, &KeyNotFoundError[K]{markKey}
	}
	return pair, mark, nil
}

// MoveToBack moves the pair associated with key to the back of the map, i.e.
// makes it the newest pair. It returns a *KeyNotFoundError[K] if the key is
// absent.
func (m *Map[K, V]) MoveToBack(key K) error {
	_, err := m.GetAndMoveToBack(key)
	return err
}

// MoveToFront moves the pair associated with key to the front of the map,
// i.e. makes it the oldest pair. It returns a *KeyNotFoundError[K] if the
// key is absent.
func (m *Map[K, V]) MoveToFront(key K) error {
	_, err := m.GetAndMoveToFront(key)
	return err
}

// GetAndMoveToBack combines Get and MoveToBack in one call.
func (m *Map[K, V]) GetAndMoveToBack(key K) (val V, err error) {
	pair := m.GetPair(key)
	if pair == nil {
		return val, &KeyNotFoundError[K]{key}
	}
	m.list.MoveToBack(pair.element)
	return pair.Value, nil
}

// GetAndMoveToFront combines Get and MoveToFront in one call.
func (m *Map[K, V]) GetAndMoveToFront(key K) (val V, err error) {
	pair := m.GetPair(key)
	if pair == nil {
		return val, &KeyNotFoundError[K]{key}
	}
	m.list.MoveToFront(pair.element)
	return pair.Value, nil
}

// InsertAfter sets the key-value pair, positioning it immediately after
// markKey's pair. An existing key is updated and moved rather than
// re-created. When markKey is absent, InsertAfter behaves exactly like Set.
// It returns what Get would have returned on key prior to the call.
func (m *Map[K, V]) InsertAfter(markKey K, key K, value V) (val V, present bool) {
	mark := m.index.lookup(markKey)
	if mark == nil {
		return m.Set(key, value)
	}
	if pair := m.index.lookup(key); pair != nil {
		oldValue := pair.Value
		pair.Value = value
		if pair != mark {
			m.list.MoveAfter(pair.element, mark.element)
		}
		return oldValue, true
	}
	m.index.maybeGrow(m.list.Len()+1, m.list)
	pair := &Pair[K, V]{Key: key, Value: value}
	pair.element = m.list.InsertAfter(pair, mark.element)
	m.index.link(pair)
	return
}

// InsertBefore sets the key-value pair, positioning it immediately before
// markKey's pair. An existing key is updated and moved rather than
// re-created. When markKey is absent, InsertBefore behaves exactly like Set.
// It returns what Get would have returned on key prior to the call.
func (m *Map[K, V]) InsertBefore(markKey K, key K, value V) (val V, present bool) {
	mark := m.index.lookup(markKey)
	if mark == nil {
		return m.Set(key, value)
	}
	if pair := m.index.lookup(key); pair != nil {
		oldValue := pair.Value
		pair.Value = value
		if pair != mark {
			m.list.MoveBefore(pair.element, mark.element)
		}
		return oldValue, true
	}
	m.index.maybeGrow(m.list.Len()+1, m.list)
	pair := &Pair[K, V]{Key: key, Value: value}
	pair.element = m.list.InsertBefore(pair, mark.element)
	m.index.link(pair)
	return
}

// Replace substitutes newKey for oldKey at oldKey's position, storing value
// there. If newKey already lives elsewhere in the map, that other pair is
// removed first. When oldKey is absent, Replace behaves exactly like Set.
func (m *Map[K, V]) Replace(oldKey, newKey K, value V) {
	old := m.index.lookup(oldKey)
	if old == nil {
		m.Set(newKey, value)
		return
	}
	if m.index.equality(oldKey, newKey) {
		old.Value = value
		return
	}
	if displaced := m.index.lookup(newKey); displaced != nil {
		m.remove(displaced)
	}
	// Swap the pair in place on the order list so the position survives,
	// keys staying immutable for their pair's lifetime.
	pair := &Pair[K, V]{Key: newKey, Value: value, element: old.element}
	pair.element.Value = pair
	old.element = nil
	m.index.unlink(old)
	m.index.link(pair)
}

// Filter removes every pair for which the predicate returns false.
func (m *Map[K, V]) Filter(predicate func(key K, value V) bool) {
	if m == nil || m.list == nil {
		return
	}
	var next *list.Element[*Pair[K, V]]
	for element := m.list.Front(); element != nil; element = next {
		next = element.Next()
		pair := element.Value
		if !predicate(pair.Key, pair.Value) {
			m.remove(pair)
		}
	}
}
