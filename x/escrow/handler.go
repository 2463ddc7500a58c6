package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
)

const (
	// pay escrow cost up-front
	makeEscrowCost   = 300
	takeEscrowCost   = 200
	refundEscrowCost = 0
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, d custody.Deriver, cashCtrl cash.Controller, tokens token.Controller) {
	bucket := NewBucket()
	r.Handle(&MakeMsg{}, MakeHandler{auth: auth, deriver: d, bucket: bucket, cash: cashCtrl, tokens: tokens})
	r.Handle(&TakeMsg{}, TakeHandler{auth: auth, vault: newVault(d, bucket, cashCtrl, tokens)})
	r.Handle(&RefundMsg{}, RefundHandler{auth: auth, vault: newVault(d, bucket, cashCtrl, tokens)})
}

// RegisterQuery will register this bucket as "/escrows".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// MakeHandler opens an escrow and funds its vault.
type MakeHandler struct {
	auth    x.Authenticator
	deriver custody.Deriver
	bucket  orm.ModelBucket
	cash    cash.Controller
	tokens  token.Controller
}

var _ custody.Handler = MakeHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h MakeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver creates the vault, moves the deposit into it and stores the
// record. The escrow address is returned as the result data.
func (h MakeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, bump, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	if conf.RecordRent > 0 {
		if err := h.cash.MoveCoins(db, msg.Maker, msg.Escrow, conf.RecordRent); err != nil {
			return nil, failed(ErrDepositFailed, errors.Wrap(err, "record rent"))
		}
	}
	vault, err := h.tokens.CreateAccount(db, msg.Maker, msg.Escrow, msg.MintA)
	if err != nil {
		return nil, failed(ErrDepositFailed, errors.Wrap(err, "create vault"))
	}
	src, err := token.AssociatedAddress(h.deriver, msg.Maker, msg.MintA)
	if err != nil {
		return nil, failed(ErrDepositFailed, err)
	}
	if err := h.tokens.Transfer(ctx, db, msg.MintA, src, vault, msg.Deposit, x.SignedBy(h.auth)); err != nil {
		return nil, failed(ErrDepositFailed, errors.Wrap(err, "deposit"))
	}

	rec, err := NewEscrow(msg.MintA, msg.MintB, msg.Receive, msg.Seed, bump)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.Escrow, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &custody.DeliverResult{Data: msg.Escrow}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h MakeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*MakeMsg, custody.Bump, error) {
	var msg *MakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, 0, errors.Wrap(err, "load msg")
	}
	var bump custody.Bump
	err := x.Constraints{
		signedBy(h.auth, msg.Maker, "maker"),
		escrowDerived(h.deriver, msg.Maker, msg.Seed, msg.Escrow, &bump),
		vaultDerived(h.deriver, msg.Escrow, msg.MintA, msg.Vault, ErrInvalidDerivation),
		recordAbsent(h.bucket, msg.Escrow),
		mintExists(h.tokens, msg.MintA, ErrDepositFailed),
		mintExists(h.tokens, msg.MintB, ErrDepositFailed),
	}.Check(ctx, db)
	if err != nil {
		return nil, 0, err
	}
	return msg, bump, nil
}

// TakeHandler fulfils an escrow.
type TakeHandler struct {
	auth  x.Authenticator
	vault vault
}

var _ custody.Handler = TakeHandler{}

func (h TakeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver pays the maker first and only then releases the vault to the
// taker. Accounts missing on either side are created at the taker's
// expense.
func (h TakeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tokens := h.vault.tokens

	takerA, err := tokens.EnsureAccount(db, msg.Taker, msg.Taker, msg.MintA)
	if err != nil {
		return nil, failed(ErrDepositFailed, errors.Wrap(err, "taker account"))
	}
	makerB, err := tokens.EnsureAccount(db, msg.Taker, msg.Maker, msg.MintB)
	if err != nil {
		return nil, failed(ErrDepositFailed, errors.Wrap(err, "maker account"))
	}
	takerB, err := token.AssociatedAddress(h.vault.deriver, msg.Taker, msg.MintB)
	if err != nil {
		return nil, failed(ErrDepositFailed, err)
	}
	if err := tokens.Transfer(ctx, db, msg.MintB, takerB, makerB, rec.OfferAmount(), x.SignedBy(h.auth)); err != nil {
		return nil, failed(ErrDepositFailed, errors.Wrap(err, "pay maker"))
	}

	if err := h.vault.release(ctx, db, msg.Maker, msg.Escrow, msg.Vault, rec, takerA, ErrWithdrawFailed); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h TakeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TakeMsg, *Escrow, error) {
	var msg *TakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var rec Escrow
	err := x.Constraints{
		signedBy(h.auth, msg.Taker, "taker"),
		recordPresent(h.vault.bucket, msg.Escrow, &rec),
		authorityMatches(h.vault.deriver, msg.Maker, msg.Escrow, &rec),
		assetsMatch(&rec, msg.MintA, msg.MintB),
		vaultDerived(h.vault.deriver, msg.Escrow, msg.MintA, msg.Vault, ErrAuthorityMismatch),
	}.Check(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return msg, &rec, nil
}

// RefundHandler cancels an escrow.
type RefundHandler struct {
	auth  x.Authenticator
	vault vault
}

var _ custody.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver returns the whole vault to the maker.
func (h RefundHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	makerA, err := h.vault.tokens.EnsureAccount(db, msg.Maker, msg.Maker, msg.MintA)
	if err != nil {
		return nil, failed(ErrRefundFailed, errors.Wrap(err, "maker account"))
	}
	if err := h.vault.release(ctx, db, msg.Maker, msg.Escrow, msg.Vault, rec, makerA, ErrRefundFailed); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// validate loads the record of the escrow made by the signer. Only the
// maker can refund, because the maker is part of the derivation seeds.
func (h RefundHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*RefundMsg, *Escrow, error) {
	var msg *RefundMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var rec Escrow
	err := x.Constraints{
		signedBy(h.auth, msg.Maker, "maker"),
		recordPresent(h.vault.bucket, msg.Escrow, &rec),
		authorityMatches(h.vault.deriver, msg.Maker, msg.Escrow, &rec),
		assetsMatch(&rec, msg.MintA, nil),
		vaultDerived(h.vault.deriver, msg.Escrow, msg.MintA, msg.Vault, ErrAuthorityMismatch),
	}.Check(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return msg, &rec, nil
}
