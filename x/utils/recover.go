package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery stops a panic raised by any handler below it from taking the node
// down. The transaction fails with ErrPanic instead, naming the message path,
// and everything it wrote is dropped by the savepoint above. The panic value
// itself is only logged, as ABCI redacts ErrPanic for clients.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into ErrPanic.
func (Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer recoverTx(ctx, "check", tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into ErrPanic.
func (Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer recoverTx(ctx, "deliver", tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverTx must be deferred directly.
func recoverTx(ctx custody.Context, phase string, tx custody.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	path := "(missing)"
	if tx != nil {
		path = custody.GetPath(tx)
	}
	custody.GetLogger(ctx).Error("handler panic", "phase", phase, "path", path, "panic", r)
	*err = errors.Wrapf(errors.ErrPanic, "%s %s: %v", phase, path, r)
}
