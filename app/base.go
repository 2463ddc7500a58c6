package app

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
)

// BaseApp runs decoded transactions through the handler stack on top of the
// storage and query functionality of StoreApp.
//
// Every transaction is logged under the hash tendermint uses for it, so a
// rejected make or take can be traced from the node log back to the block.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder custody.TxDecoder,
	handler custody.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", txBytes)
	if err == nil {
		var res *custody.DeliverResult
		if res, err = b.handler.Deliver(ctx, b.DeliverStore(), tx); err == nil {
			return custody.DeliverOrError(res, nil, b.debug)
		}
	}
	b.rejected(ctx, err)
	return custody.DeliverTxError(err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", txBytes)
	if err == nil {
		var res *custody.CheckResult
		if res, err = b.handler.Check(ctx, b.CheckStore(), tx); err == nil {
			return custody.CheckOrError(res, nil, b.debug)
		}
	}
	b.rejected(ctx, err)
	return custody.CheckTxError(err, b.debug)
}

// prepare decodes the transaction and returns the context it runs in. The
// context is usable for logging even when decoding fails.
func (b BaseApp) prepare(call string, txBytes []byte) (custody.Context, custody.Tx, error) {
	ctx := custody.WithLogInfo(b.BlockContext(),
		"call", call,
		"tx", fmt.Sprintf("%X", tmhash.Sum(txBytes)))
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return ctx, nil, err
	}
	return custody.WithLogInfo(ctx, "path", custody.GetPath(tx)), tx, nil
}

// rejected logs a failed transaction with the code returned to the client.
func (b BaseApp) rejected(ctx custody.Context, err error) {
	code, _ := errors.ABCIInfo(err, b.debug)
	custody.GetLogger(ctx).Debug("tx rejected", "code", code, "err", errors.Redact(err, b.debug))
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx custody.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
