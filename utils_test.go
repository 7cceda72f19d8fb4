package linkedhashmap

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOrderedPairsEqual[K comparable, V any](
	t *testing.T, m *Map[K, V], expectedKeys []K, expectedValues []V,
) {
	t.Helper()

	assertOrderedPairsEqualFromNewest(t, m, expectedKeys, expectedValues)
	assertOrderedPairsEqualFromOldest(t, m, expectedKeys, expectedValues)
}

func assertOrderedPairsEqualFromOldest[K comparable, V any](
	t *testing.T, m *Map[K, V], expectedKeys []K, expectedValues []V,
) {
	t.Helper()

	if assert.Equal(t, len(expectedKeys), len(expectedValues)) && assert.Equal(t, len(expectedKeys), m.Len()) {
		i := 0
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			assert.Equal(t, expectedKeys[i], pair.Key)
			assert.Equal(t, expectedValues[i], pair.Value)
			i++
		}
	}
}

func assertOrderedPairsEqualFromNewest[K comparable, V any](
	t *testing.T, m *Map[K, V], expectedKeys []K, expectedValues []V,
) {
	t.Helper()

	if assert.Equal(t, len(expectedKeys), len(expectedValues)) && assert.Equal(t, len(expectedKeys), m.Len()) {
		i := len(expectedKeys) - 1
		for pair := m.Newest(); pair != nil; pair = pair.Prev() {
			assert.Equal(t, expectedKeys[i], pair.Key)
			assert.Equal(t, expectedValues[i], pair.Value)
			i--
		}
	}
}

func assertLenEqual[K comparable, V any](t *testing.T, m *Map[K, V], expectedLen int) {
	t.Helper()

	assert.Equal(t, expectedLen, m.Len())

	// the order list and the bucket chains must agree with Len at all times
	i := 0
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		i++
	}
	assert.Equal(t, expectedLen, i)
	if m != nil && m.list != nil {
		assert.Equal(t, expectedLen, countChainedPairs(m))
	}
}

// countChainedPairs walks every bucket chain and counts the pairs it finds.
func countChainedPairs[K comparable, V any](m *Map[K, V]) int {
	count := 0
	for _, head := range m.index.buckets {
		for pair := head; pair != nil; pair = pair.hashNext {
			count++
		}
	}
	return count
}

func randomHexString(t *testing.T, length int) string {
	t.Helper()

	b := make([]byte, length/2)
	_, err := rand.Read(b)
	require.NoError(t, err)

	return hex.EncodeToString(b)
}
