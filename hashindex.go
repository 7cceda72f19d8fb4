package linkedhashmap

import (
	"hash/maphash"

	list "github.com/PrismAIO/generic-list-go"
)

// Hasher maps a key to a 64-bit hash. Implementations must be pure, and must
// agree with the map's equality predicate: equal keys hash to the same value.
// The seed is the owning map's; functions from hash/maphash slot in directly.
type Hasher[K comparable] func(maphash.Seed, K) uint64

const (
	// initialBucketCount is the size of a fresh bucket array. Bucket counts
	// are kept powers of two so bucket selection can mask instead of mod.
	initialBucketCount = 16

	// maxLoadFactorNum/Den express the 3/4 load factor bound in integers:
	// after any insert, len*maxLoadFactorDen <= buckets*maxLoadFactorNum.
	maxLoadFactorNum = 3
	maxLoadFactorDen = 4
)

// hashIndex is the secondary index over the pairs owned by the order list:
// an array of chain heads, chained through Pair.hashNext. It holds no
// ownership — it only points into the pair set the order list already owns —
// and it never touches order-list links, not even while rehashing.
type hashIndex[K comparable, V any] struct {
	buckets  []*Pair[K, V]
	seed     maphash.Seed
	hasher   Hasher[K]
	equality func(K, K) bool
}

// init allocates the bucket array and fills in the default collaborators.
// Pre-set hasher/equality survive, so clones inherit their source's.
func (ix *hashIndex[K, V]) init(bucketCount int) {
	ix.buckets = make([]*Pair[K, V], bucketCount)
	ix.seed = maphash.MakeSeed()
	if ix.hasher == nil {
		ix.hasher = maphash.Comparable[K]
	}
	if ix.equality == nil {
		ix.equality = func(a, b K) bool { return a == b }
	}
}

// clear drops every chain, leaving the bucket array at its current size.
func (ix *hashIndex[K, V]) clear() {
	for i := range ix.buckets {
		ix.buckets[i] = nil
	}
}

func (ix *hashIndex[K, V]) bucketFor(key K) int {
	return int(ix.hasher(ix.seed, key)) & (len(ix.buckets) - 1)
}

// lookup returns the live pair stored under key, or nil.
func (ix *hashIndex[K, V]) lookup(key K) *Pair[K, V] {
	if len(ix.buckets) == 0 {
		return nil
	}
	for pair := ix.buckets[ix.bucketFor(key)]; pair != nil; pair = pair.hashNext {
		if ix.equality(pair.Key, key) {
			return pair
		}
	}
	return nil
}

// link prepends the pair to its bucket's chain. Chain order is not
// observable, so newest-first is fine and keeps link O(1).
func (ix *hashIndex[K, V]) link(pair *Pair[K, V]) {
	idx := ix.bucketFor(pair.Key)
	pair.hashNext = ix.buckets[idx]
	ix.buckets[idx] = pair
}

// unlink removes the pair from its bucket's chain by a linear scan.
func (ix *hashIndex[K, V]) unlink(pair *Pair[K, V]) {
	idx := ix.bucketFor(pair.Key)
	for curr := &ix.buckets[idx]; *curr != nil; curr = &(*curr).hashNext {
		if *curr == pair {
			*curr = pair.hashNext
			pair.hashNext = nil
			return
		}
	}
}

// maybeGrow doubles the bucket array until n pairs fit under the load factor
// bound. n counts the pair about to be linked, so the bound holds as soon as
// the pending insert completes. Growth is O(n) but doubles geometrically, so
// the amortized cost per insert stays O(1).
func (ix *hashIndex[K, V]) maybeGrow(n int, l *list.List[*Pair[K, V]]) {
	target := len(ix.buckets)
	if target == 0 {
		target = initialBucketCount
	}
	for n*maxLoadFactorDen > target*maxLoadFactorNum {
		target *= 2
	}
	if target != len(ix.buckets) {
		ix.rehash(target, l)
	}
}

// rehash rebuilds the chains into a bucket array of the given size by
// walking the order list front to back and prepending each pair into its new
// bucket. The walk is a total traversal of the live pairs that does not
// depend on the old bucket layout, so the resulting chains are deterministic.
// Pair addresses and order-list links are untouched, which is what lets
// growth leave every iterator valid.
func (ix *hashIndex[K, V]) rehash(bucketCount int, l *list.List[*Pair[K, V]]) {
	ix.buckets = make([]*Pair[K, V], bucketCount)
	for element := l.Front(); element != nil; element = element.Next() {
		pair := element.Value
		idx := ix.bucketFor(pair.Key)
		pair.hashNext = ix.buckets[idx]
		ix.buckets[idx] = pair
	}
}

// bucketCountFor returns the initial bucket array size for a capacity hint:
// the smallest power of two, no smaller than initialBucketCount, that keeps
// `capacity` pairs under the load factor bound.
func bucketCountFor(capacity int) int {
	if capacity <= 0 {
		return initialBucketCount
	}
	need := (uint64(capacity)*maxLoadFactorDen + maxLoadFactorNum - 1) / maxLoadFactorNum
	count := nextPow2(need)
	if count < initialBucketCount {
		count = initialBucketCount
	}
	return int(count)
}

// nextPow2 returns the smallest power of two >= x, using the classic
// bit-twiddling fill.
func nextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	return x
}
