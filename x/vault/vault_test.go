package vault

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositWithdraw(t *testing.T) {
	db := store.MemStore()
	d := custodytest.Deriver()
	ctrl := cash.NewController()
	owner := custodytest.NewKey().Address()
	other := custodytest.NewKey().Address()
	require.NoError(t, ctrl.IssueCoins(db, owner, 1000))
	require.NoError(t, ctrl.IssueCoins(db, other, 1000))

	auth := &custodytest.CtxAuth{Key: "auth"}
	ctx := auth.SetAddresses(context.Background(), owner)
	dep := DepositHandler{auth: auth, deriver: d, ctrl: ctrl}
	wd := WithdrawHandler{auth: auth, deriver: d, ctrl: ctrl}

	res, err := dep.Deliver(ctx, db, &custodytest.Tx{Msg: &DepositMsg{Owner: owner, Amount: 600}})
	require.NoError(t, err)
	vault, _, err := Address(d, owner)
	require.NoError(t, err)
	assert.Equal(t, []byte(vault), res.Data)
	assert.False(t, custody.IsOnCurve(vault))
	assertLamports(t, ctrl, db, vault, 600)
	assertLamports(t, ctrl, db, owner, 400)

	// Nobody but the owner can reach the vault.
	otherCtx := auth.SetAddresses(context.Background(), other)
	_, err = wd.Deliver(otherCtx, db, &custodytest.Tx{Msg: &WithdrawMsg{Owner: owner, Amount: 1}})
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	_, err = wd.Deliver(otherCtx, db, &custodytest.Tx{Msg: &WithdrawMsg{Owner: other, Amount: 1}})
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)

	_, err = wd.Deliver(ctx, db, &custodytest.Tx{Msg: &WithdrawMsg{Owner: owner, Amount: 601}})
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)

	_, err = wd.Check(ctx, db, &custodytest.Tx{Msg: &WithdrawMsg{Owner: owner, Amount: 250}})
	require.NoError(t, err)
	_, err = wd.Deliver(ctx, db, &custodytest.Tx{Msg: &WithdrawMsg{Owner: owner, Amount: 250}})
	require.NoError(t, err)
	assertLamports(t, ctrl, db, vault, 350)
	assertLamports(t, ctrl, db, owner, 650)
}

func assertLamports(t testing.TB, ctrl cash.Controller, db custody.ReadOnlyKVStore, addr custody.Address, want uint64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
