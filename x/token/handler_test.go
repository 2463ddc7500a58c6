package token

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

func TestCreateAccountHandler(t *testing.T) {
	f := newFixture(t)
	payer := custodytest.NewKey().Address()
	owner := custodytest.NewKey().Address()
	require.NoError(t, f.cash.IssueCoins(f.db, payer, testRent))

	msg := &CreateAccountMsg{Payer: payer, Owner: owner, Mint: f.mint}
	tx := &custodytest.Tx{Msg: msg}
	ctx := context.Background()

	h := &CreateAccountHandler{auth: &custodytest.Auth{Signer: owner}, ctrl: f.ctrl}
	_, err := h.Check(ctx, f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	h = &CreateAccountHandler{auth: &custodytest.Auth{Signer: payer}, ctrl: f.ctrl}
	_, err = h.Check(ctx, f.db.CacheWrap(), tx)
	require.NoError(t, err)
	res, err := h.Deliver(ctx, f.db, tx)
	require.NoError(t, err)

	want, err := AssociatedAddress(custodytest.Deriver(), owner, f.mint)
	require.NoError(t, err)
	assert.Equal(t, []byte(want), res.Data)
}

func TestTransferHandler(t *testing.T) {
	f := newFixture(t)
	alice := custodytest.NewKey().Address()
	bob := custodytest.NewKey().Address()
	src := f.fund(t, alice, 100)
	dest := f.fund(t, bob, 0)
	ctx := context.Background()

	msg := &TransferMsg{Mint: f.mint, Source: src, Destination: dest, Amount: 30}
	tx := &custodytest.Tx{Msg: msg}

	h := &TransferHandler{auth: &custodytest.Auth{Signer: bob}, ctrl: f.ctrl}
	_, err := h.Deliver(ctx, f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	h = &TransferHandler{auth: &custodytest.Auth{Signer: alice}, ctrl: f.ctrl}
	res, err := h.Check(ctx, f.db.CacheWrap(), tx)
	require.NoError(t, err)
	assert.EqualValues(t, transferCost, res.GasAllocated)
	_, err = h.Deliver(ctx, f.db, tx)
	require.NoError(t, err)
	assertAmount(t, f, src, 70)
	assertAmount(t, f, dest, 30)

	_, err = h.Check(ctx, f.db, &custodytest.Tx{Msg: &TransferMsg{Mint: f.mint, Source: src, Destination: dest}})
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)
}

func TestGenesis(t *testing.T) {
	alice := custodytest.NewKey().Address()
	mint := custodytest.SequenceAddress(0xA1)
	opts := custody.Options{
		"conf": []byte(`{"token": {"account_rent": 100}}`),
		"token": []byte(`{
			"mints": [{"address": "` + mint.String() + `", "authority": "` + alice.String() + `", "decimals": 2}],
			"accounts": [{"owner": "` + alice.String() + `", "mint": "` + mint.String() + `", "amount": 900}]
		}`),
	}
	db := store.MemStore()
	params := custody.GenesisParams{Deriver: custodytest.Deriver()}
	require.NoError(t, Initializer{}.FromGenesis(opts, params, db))

	conf, err := LoadConfiguration(db)
	require.NoError(t, err)
	assert.EqualValues(t, 100, conf.AccountRent)

	ctrl := NewController(params.Deriver, nil)
	addr, err := AssociatedAddress(params.Deriver, alice, mint)
	require.NoError(t, err)
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.EqualValues(t, 900, got)
	m, err := ctrl.Mint(db, mint)
	require.NoError(t, err)
	assert.EqualValues(t, 900, m.Supply)

	err = Initializer{}.FromGenesis(custody.Options{}, params, store.MemStore())
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}
