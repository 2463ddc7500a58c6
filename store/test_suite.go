package store

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation, so that the in-memory store and the persistent store
// behave the same way.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a cleanup function.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that tests stores created by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes to a cache are visible only after Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	AssertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	AssertGetHas(t, cache, k2, v2, true)
	AssertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Delete(k))
	AssertGetHas(t, cache, k, nil, false)
	AssertGetHas(t, base, k, v, true)

	require.NoError(t, cache.Write())
	AssertGetHas(t, base, k, nil, false)
	AssertGetHas(t, base, k2, v2, true)
}

// Discard checks that a discarded cache leaves no trace.
func (s *TestSuite) Discard(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("key"), []byte("value")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("other"), []byte("x")))
	require.NoError(t, cache.Delete(k))

	nested := cache.CacheWrap()
	require.NoError(t, nested.Set([]byte("nested"), []byte("y")))
	require.NoError(t, nested.Write())
	AssertGetHas(t, cache, []byte("nested"), []byte("y"), true)

	cache.Discard()
	AssertGetHas(t, base, k, v, true)
	AssertGetHas(t, base, []byte("other"), nil, false)
	AssertGetHas(t, base, []byte("nested"), nil, false)
}

// Iteration checks that iterators merge cached and backing values in key
// order, in both directions.
func (s *TestSuite) Iteration(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Set([]byte("h"), []byte("cache-h")))

	want := []Model{
		{Key: []byte("a"), Value: []byte("base-a")},
		{Key: []byte("b"), Value: []byte("cache-b")},
		{Key: []byte("c"), Value: []byte("cache-c")},
		{Key: []byte("g"), Value: []byte("base-g")},
		{Key: []byte("h"), Value: []byte("cache-h")},
	}

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, want, ReadAll(t, it))

	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	reversed := make([]Model, 0, len(want))
	for i := len(want) - 1; i >= 0; i-- {
		reversed = append(reversed, want[i])
	}
	assert.Equal(t, reversed, ReadAll(t, it))

	it, err = cache.Iterator([]byte("b"), []byte("g"))
	require.NoError(t, err)
	assert.Equal(t, want[1:3], ReadAll(t, it))
}

// AssertGetHas checks Get and Has results for a key.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// ReadAll consumes and releases the iterator.
func ReadAll(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Release()
	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: key, Value: value})
	}
}
