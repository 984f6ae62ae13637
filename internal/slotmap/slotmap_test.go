package slotmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	m := New[string]()

	a := m.Insert("alpha")
	b := m.Insert("beta")

	require.NotNil(t, m.Get(a))
	require.NotNil(t, m.Get(b))
	assert.Equal(t, "alpha", *m.Get(a))
	assert.Equal(t, "beta", *m.Get(b))
	assert.Equal(t, 2, m.Len())
}

func TestGetReturnsMutablePointer(t *testing.T) {
	m := New[[]int]()
	key := m.Insert([]int{1})

	*m.Get(key) = append(*m.Get(key), 2)

	assert.Equal(t, []int{1, 2}, *m.Get(key))
}

func TestRemove(t *testing.T) {
	m := New[string]()
	key := m.Insert("alpha")

	value, ok := m.Remove(key)

	require.True(t, ok)
	assert.Equal(t, "alpha", value)
	assert.Nil(t, m.Get(key))
	assert.Equal(t, 0, m.Len())

	_, ok = m.Remove(key)
	assert.False(t, ok, "double remove must fail")
}

func TestStaleKeyAfterReuse(t *testing.T) {
	m := New[string]()
	old := m.Insert("old")
	_, ok := m.Remove(old)
	require.True(t, ok)

	reused := m.Insert("new")

	assert.Equal(t, old.Index, reused.Index, "freed slot should be reused")
	assert.Nil(t, m.Get(old), "stale key must not resolve to the new occupant")
	require.NotNil(t, m.Get(reused))
	assert.Equal(t, "new", *m.Get(reused))
}

func TestKeysAscending(t *testing.T) {
	m := New[int]()
	keys := []Key{m.Insert(10), m.Insert(20), m.Insert(30)}
	_, ok := m.Remove(keys[1])
	require.True(t, ok)

	live := m.Keys()

	require.Len(t, live, 2)
	assert.Equal(t, keys[0], live[0])
	assert.Equal(t, keys[2], live[1])
	assert.True(t, live[0].Less(live[1]))
}

func TestForEachOrder(t *testing.T) {
	m := New[int]()
	m.Insert(1)
	m.Insert(2)
	m.Insert(3)

	var seen []int
	m.ForEach(func(_ Key, v *int) { seen = append(seen, *v) })

	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestJSONRoundTrip(t *testing.T) {
	m := New[string]()
	a := m.Insert("alpha")
	b := m.Insert("beta")
	_, ok := m.Remove(a)
	require.True(t, ok)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	restored := New[string]()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, 1, restored.Len())
	assert.Nil(t, restored.Get(a), "removed key stays stale after restore")
	require.NotNil(t, restored.Get(b))
	assert.Equal(t, "beta", *restored.Get(b))

	// Generation bookkeeping must carry over: reusing the freed slot yields a
	// key distinct from the pre-snapshot one.
	reused := restored.Insert("gamma")
	assert.Equal(t, a.Index, reused.Index)
	assert.NotEqual(t, a.Generation, reused.Generation)
}
