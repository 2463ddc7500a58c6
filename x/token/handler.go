package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const (
	transferCost      = 100
	mintToCost        = 100
	createAccountCost = 300
	closeAccountCost  = 100
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl BaseController) {
	r.Handle(&TransferMsg{}, &TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintToMsg{}, &MintToHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CreateAccountMsg{}, &CreateAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CloseAccountMsg{}, &CloseAccountHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery registers mints under "/mints" and asset accounts under
// "/tokaccounts".
func RegisterQuery(qr custody.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("tokaccounts", qr)
}

// TransferHandler moves assets on behalf of a signing owner.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*TransferHandler)(nil)

func (h *TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg *TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: transferCost}, nil
}

func (h *TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg *TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	err := h.ctrl.Transfer(ctx, db, msg.Mint, msg.Source, msg.Destination, msg.Amount, x.SignedBy(h.auth))
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// MintToHandler issues new units on behalf of a signing mint authority.
type MintToHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ custody.Handler = (*MintToHandler)(nil)

func (h *MintToHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg *MintToMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: mintToCost}, nil
}

func (h *MintToHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg *MintToMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MintTo(ctx, db, msg.Mint, msg.Destination, msg.Amount, x.SignedBy(h.auth)); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// CreateAccountHandler creates canonical accounts. The created account
// address is returned as the result data.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*CreateAccountHandler)(nil)

func (h *CreateAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h *CreateAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateAccount(db, msg.Payer, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: addr}, nil
}

func (h *CreateAccountHandler) validate(ctx custody.Context, tx custody.Tx) (*CreateAccountMsg, error) {
	var msg *CreateAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return msg, nil
}

// CloseAccountHandler removes empty accounts on behalf of a signing owner.
type CloseAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = (*CloseAccountHandler)(nil)

func (h *CloseAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg *CloseAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &custody.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h *CloseAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg *CloseAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.CloseAccount(ctx, db, msg.Account, msg.Beneficiary, x.SignedBy(h.auth)); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}
