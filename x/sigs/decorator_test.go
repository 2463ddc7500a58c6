package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "deco-rate"
	ctx := custody.WithChainID(context.Background(), chainID)
	db := store.MemStore()

	alice := custodytest.NewKey()
	bob := custodytest.NewKey()
	msg := &custodytest.Msg{RoutePath: "test/ping"}

	checkSigners := func(want ...custody.Address) custody.Handler {
		return &signersHandler{t: t, want: want}
	}

	unsigned := newSignedTx(msg)
	_, err := NewDecorator().Check(ctx, db, unsigned, checkSigners())
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, db, unsigned, checkSigners())
	assert.NoError(t, err)

	tx := newSignedTx(msg)
	tx.sign(alice, chainID, 0)
	res, err := NewDecorator().Check(ctx, db, tx, checkSigners(alice.Address()))
	require.NoError(t, err)
	assert.Equal(t, int64(signatureVerifyCost), res.GasPayment)

	// The same signature cannot be used twice.
	_, err = NewDecorator().Deliver(ctx, db, tx, checkSigners(alice.Address()))
	assert.True(t, ErrInvalidSequence.Is(err), "got %+v", err)

	tx = newSignedTx(msg)
	tx.sign(alice, chainID, 1)
	tx.sign(bob, chainID, 0)
	_, err = NewDecorator().Deliver(ctx, db, tx, checkSigners(alice.Address(), bob.Address()))
	require.NoError(t, err)

	for key, want := range map[*custodytest.Key]uint64{&alice: 2, &bob: 1} {
		n, err := NextNonce(db, key.Address())
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	// Signed for another chain.
	tx = newSignedTx(msg)
	tx.sign(bob, "another-chain", 1)
	_, err = NewDecorator().Deliver(ctx, db, tx, checkSigners(bob.Address()))
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	// Not a signed transaction at all.
	_, err = NewDecorator().Deliver(ctx, db, &custodytest.Tx{Msg: msg}, checkSigners())
	assert.NoError(t, err)
}

type signersHandler struct {
	t    *testing.T
	want []custody.Address
}

func (h *signersHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	h.assert(ctx)
	return &custody.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	h.assert(ctx)
	return &custody.DeliverResult{}, nil
}

func (h *signersHandler) assert(ctx custody.Context) {
	got := Authenticate{}.GetAddresses(ctx)
	assert.Equal(h.t, len(h.want), len(got))
	for _, a := range h.want {
		assert.True(h.t, Authenticate{}.HasAddress(ctx, a), "missing signer %s", a)
	}
}
