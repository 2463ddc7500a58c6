package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
)

// countingDecorator counts every call, once in and once out.
type countingDecorator struct {
	count int
}

func (c *countingDecorator) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	c.count++
	res, err := next.Check(ctx, store, tx)
	c.count++
	return res, err
}

func (c *countingDecorator) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	c.count++
	res, err := next.Deliver(ctx, store, tx)
	c.count++
	return res, err
}

// panicAtHeight panics if the context height is at least given value.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if h, _ := custody.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, store, tx)
}

func (p panicAtHeight) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if h, _ := custody.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, store, tx)
}

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	c3 := &countingDecorator{}
	var skipped *countingDecorator
	h := &custodytest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		skipped,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(custody.WithHeight(bg, 4), nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(custody.WithHeight(bg, 4), nil, tx)
	assert.NoError(t, err)

	// decorators are counted double, once in, once out
	assert.Equal(t, 4, c1.count)
	assert.Equal(t, 4, c2.count)
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	// now, let's trigger a panic
	ctx := custody.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)

	assert.Equal(t, 8, c1.count)
	// c2 is left by the panic, so only the out count is missing
	assert.Equal(t, 6, c2.count)
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 1, h.DeliverCallCount())
}
