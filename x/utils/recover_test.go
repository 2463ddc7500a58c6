package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	var logs bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&logs)))
	s := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/take"}}

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, tx) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, tx) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "check escrow/take: check panic")

	_, err = r.Deliver(ctx, s, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deliver escrow/take: deliver panic")

	assert.Contains(t, logs.String(), "handler panic")
	assert.Contains(t, logs.String(), "path=escrow/take")

	// Clients only see the redacted log.
	_, abciLog := errors.ABCIInfo(err, false)
	assert.Equal(t, "panic", abciLog)

	// Without a transaction the path is unknown.
	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "deliver (missing)")

	// Handlers that return normally are untouched.
	_, err = r.Deliver(ctx, s, tx, &custodytest.Handler{DeliverErr: errors.ErrState})
	assert.True(t, errors.ErrState.Is(err))
	assert.False(t, errors.ErrPanic.Is(err))
}

type panicHandler struct{}

var _ custody.Handler = panicHandler{}

func (p panicHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	panic("check panic")
}

func (p panicHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	panic("deliver panic")
}
