package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count uint64
}

func (c counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, c.Count)
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrap(errors.ErrModel, "counter length")
	}
	c.Count = binary.BigEndian.Uint64(raw)
	return nil
}

func (c counter) Validate() error {
	if c.Count == 0 {
		return errors.Wrap(errors.ErrModel, "zero count")
	}
	return nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	var got counter
	err := b.One(db, []byte("a"), &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 5}))
	require.NoError(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, uint64(5), got.Count)

	ok, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.True(t, ok)

	err = b.Put(db, []byte("b"), &counter{})
	assert.True(t, errors.ErrModel.Is(err))
	err = b.Put(db, nil, &counter{Count: 1})
	assert.True(t, errors.ErrEmpty.Is(err))

	require.NoError(t, b.Delete(db, []byte("a")))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, []byte("a"))))
	ok, err = b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	other := NewModelBucket("cntz")

	require.NoError(t, b.Put(db, []byte("aa"), &counter{Count: 1}))
	require.NoError(t, b.Put(db, []byte("ab"), &counter{Count: 2}))
	require.NoError(t, b.Put(db, []byte("b"), &counter{Count: 3}))
	require.NoError(t, other.Put(db, []byte("aa"), &counter{Count: 4}))

	qr := custody.NewQueryRouter()
	b.Register("counters", qr)

	res, err := qr.Query(db, "/counters", custody.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, b.DBKey([]byte("ab")), res[0].Key)

	res, err = qr.Query(db, "/counters", custody.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = qr.Query(db, "/counters", custody.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Query(db, "/counters", custody.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = qr.Query(db, "/counters", "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = qr.Query(db, "/unknown", custody.KeyQueryMod, nil)
	assert.True(t, errors.ErrNotFound.Is(err))

	var keys []string
	err = b.Iterate(db, []byte("a"), func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "ab"}, keys)
}

func TestPrefixRangeEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixRangeEnd([]byte("aa")))
	assert.Equal(t, []byte{0x02}, prefixRangeEnd([]byte{0x01, 0xFF}))
	assert.Nil(t, prefixRangeEnd([]byte{0xFF, 0xFF}))
}

func TestNewModelBucketPanicsOnInvalidName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X") })
}
