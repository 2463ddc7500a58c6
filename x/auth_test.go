package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiAuth(t *testing.T) {
	a := custodytest.NewKey().Address()
	b := custodytest.NewKey().Address()
	c := custodytest.NewKey().Address()

	auth := x.ChainAuth(
		&custodytest.Auth{Signers: []custody.Address{a}},
		&custodytest.Auth{Signers: []custody.Address{b}},
	)
	ctx := context.Background()

	assert.Equal(t, []custody.Address{a, b}, auth.GetAddresses(ctx))
	assert.True(t, auth.HasAddress(ctx, b))
	assert.False(t, auth.HasAddress(ctx, c))
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.True(t, x.HasAllAddresses(ctx, auth, []custody.Address{a, b}))
	assert.False(t, x.HasAllAddresses(ctx, auth, []custody.Address{a, c}))
	assert.Nil(t, x.MainSigner(ctx, x.ChainAuth()))
}

func TestAuthority(t *testing.T) {
	ctx := context.Background()
	signer := custodytest.NewKey().Address()
	other := custodytest.NewKey().Address()

	signed := x.SignedBy(&custodytest.Auth{Signers: []custody.Address{signer}})
	require.NoError(t, signed.Authorize(ctx, signer))
	assert.True(t, errors.ErrUnauthorized.Is(signed.Authorize(ctx, other)))

	d := custodytest.Deriver()
	addr, bump := d.MustFind("vault", signer)
	derived := x.DerivedBy(d, custody.NewSeeds("vault", bump, signer))
	require.NoError(t, derived.Authorize(ctx, addr))
	assert.True(t, errors.ErrUnauthorized.Is(derived.Authorize(ctx, signer)))

	forged := x.DerivedBy(d, custody.NewSeeds("vault", bump, other))
	assert.True(t, errors.ErrUnauthorized.Is(forged.Authorize(ctx, addr)))
}

func TestConstraints(t *testing.T) {
	var calls []int
	step := func(n int, err error) x.Constraint {
		return func(custody.Context, custody.ReadOnlyKVStore) error {
			calls = append(calls, n)
			return err
		}
	}

	cs := x.Constraints{step(1, nil), step(2, errors.ErrState), step(3, nil)}
	err := cs.Check(context.Background(), nil)
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, []int{1, 2}, calls)

	calls = nil
	require.NoError(t, x.Constraints{step(1, nil), step(2, nil)}.Check(context.Background(), nil))
	assert.Equal(t, []int{1, 2}, calls)
}
