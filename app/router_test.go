package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &custodytest.Handler{}
	bad := &custodytest.Handler{DeliverErr: errors.ErrAmount}
	r.Handle(&custodytest.Msg{RoutePath: "test/good"}, good)
	r.Handle(&custodytest.Msg{RoutePath: "test/bad"}, bad)

	assert.Panics(t, func() { r.Handle(&custodytest.Msg{RoutePath: "test/good"}, good) })
	assert.Panics(t, func() { r.Handle(&custodytest.Msg{RoutePath: "l:7"}, good) })

	ctx := context.Background()
	tx := func(path string) *custodytest.Tx {
		return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, tx("test/good"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx("test/good"))
	require.NoError(t, err)
	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())

	_, err = r.Deliver(ctx, nil, tx("test/bad"))
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)

	_, err = r.Deliver(ctx, nil, tx("test/missing"))
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
	_, err = r.Check(ctx, nil, tx("test/missing"))
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	_, err = r.Check(ctx, nil, &custodytest.Tx{Err: errors.ErrType})
	assert.True(t, errors.ErrType.Is(err), "got %+v", err)
	_, err = r.Deliver(ctx, nil, &custodytest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)
}
