package cash

import (
	"math"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := custodytest.NewKey().Address()
	bob := custodytest.NewKey().Address()

	require.NoError(t, ctrl.IssueCoins(db, alice, 1000))

	err := ctrl.MoveCoins(db, alice, bob, 0)
	assert.True(t, errors.ErrAmount.Is(err))

	err = ctrl.MoveCoins(db, alice, bob, 1001)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	err = ctrl.MoveCoins(db, bob, alice, 1)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// Moving to self still requires the funds.
	err = ctrl.MoveCoins(db, alice, alice, 1001)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	require.NoError(t, ctrl.MoveCoins(db, alice, alice, 1000))
	assertBalance(t, ctrl, db, alice, 1000)

	require.NoError(t, ctrl.MoveCoins(db, alice, bob, 400))
	assertBalance(t, ctrl, db, alice, 600)
	assertBalance(t, ctrl, db, bob, 400)

	moved, err := ctrl.Drain(db, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), moved)
	assertBalance(t, ctrl, db, alice, 0)
	assertBalance(t, ctrl, db, bob, 1000)

	// empty wallets are removed
	has, err := NewBucket().Has(db, alice)
	require.NoError(t, err)
	assert.False(t, has)

	moved, err = ctrl.Drain(db, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), moved)
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := custodytest.NewKey().Address()
	bob := custodytest.NewKey().Address()

	require.NoError(t, ctrl.IssueCoins(db, alice, math.MaxUint64))
	err := ctrl.IssueCoins(db, alice, 1)
	assert.True(t, errors.ErrOverflow.Is(err))

	require.NoError(t, ctrl.IssueCoins(db, bob, 1))
	err = ctrl.MoveCoins(db, bob, alice, 1)
	assert.True(t, errors.ErrOverflow.Is(err))
	assertBalance(t, ctrl, db, bob, 1)
}

func assertBalance(t testing.TB, ctrl Controller, db store.ReadOnlyKVStore, addr []byte, want uint64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
