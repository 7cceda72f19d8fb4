package linkedhashmap

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON(t *testing.T) {
	t.Run("string keys", func(t *testing.T) {
		m := New[string, any]()
		m.Set("zebra", "stripes")
		m.Set("alpha", 28)
		m.Set("mango", []string{"a", "b"})

		b, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"zebra":"stripes","alpha":28,"mango":["a","b"]}`, string(b))
	})

	t.Run("int keys get quoted", func(t *testing.T) {
		m := New[int, string]()
		m.Set(3, "three")
		m.Set(1, "one")
		m.Set(2, "two")

		b, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"3":"three","1":"one","2":"two"}`, string(b))
	})

	t.Run("keys needing escaping", func(t *testing.T) {
		m := New[string, string]()
		m.Set(`say "hi"`, "quo\ted")

		b, err := json.Marshal(m)
		require.NoError(t, err)

		decoded := map[string]string{}
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, map[string]string{`say "hi"`: "quo\ted"}, decoded)
	})

	t.Run("empty map", func(t *testing.T) {
		b, err := json.Marshal(New[string, int]())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})

	t.Run("nil map", func(t *testing.T) {
		var m *Map[string, int]
		b, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `null`, string(b))
	})

	t.Run("unsupported key type", func(t *testing.T) {
		m := New[[2]int, string]()
		m.Set([2]int{1, 2}, "v")

		_, err := json.Marshal(m)
		assert.Error(t, err)
	})
}

func TestUnmarshalJSON(t *testing.T) {
	t.Run("preserves document order", func(t *testing.T) {
		m := New[string, int]()
		require.NoError(t, json.Unmarshal([]byte(`{"z":26,"a":1,"m":13}`), m))

		assertOrderedPairsEqual(t, m,
			[]string{"z", "a", "m"},
			[]int{26, 1, 13})
	})

	t.Run("int keys", func(t *testing.T) {
		m := New[int, string]()
		require.NoError(t, json.Unmarshal([]byte(`{"3":"three","1":"one"}`), m))

		assertOrderedPairsEqual(t, m,
			[]int{3, 1},
			[]string{"three", "one"})
	})

	t.Run("string values with escapes", func(t *testing.T) {
		m := New[string, string]()
		require.NoError(t, json.Unmarshal([]byte(`{"k":"line1\nline2 \"quoted\""}`), m))

		assert.Equal(t, "line1\nline2 \"quoted\"", m.Value("k"))
	})

	t.Run("struct values", func(t *testing.T) {
		type payload struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		m := New[string, payload]()
		require.NoError(t, json.Unmarshal([]byte(`{"b":{"name":"bee","count":2},"a":{"name":"ant","count":1}}`), m))

		assertOrderedPairsEqual(t, m,
			[]string{"b", "a"},
			[]payload{{"bee", 2}, {"ant", 1}})
	})

	t.Run("duplicate keys keep first position, last value", func(t *testing.T) {
		m := New[string, int]()
		require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), m))

		assertOrderedPairsEqual(t, m,
			[]string{"a", "b"},
			[]int{3, 2})
	})

	t.Run("into a zero-value map", func(t *testing.T) {
		var m Map[string, int]
		require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &m))
		assert.Equal(t, 1, m.Value("a"))
	})
}

func TestJSONRoundTrip(t *testing.T) {
	m := New[string, any]()
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key-%03d", 99-i), float64(i))
	}

	b, err := json.Marshal(m)
	require.NoError(t, err)

	decoded := New[string, any]()
	require.NoError(t, json.Unmarshal(b, decoded))

	require.Equal(t, m.Len(), decoded.Len())
	expected, actual := m.Oldest(), decoded.Oldest()
	for expected != nil {
		require.NotNil(t, actual)
		assert.Equal(t, expected.Key, actual.Key)
		assert.Equal(t, expected.Value, actual.Value)
		expected, actual = expected.Next(), actual.Next()
	}
	assert.Nil(t, actual)
}
