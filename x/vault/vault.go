package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Namespace is the derivation namespace of vault addresses.
const Namespace = "vault"

const (
	pathDepositMsg  = "vault/deposit"
	pathWithdrawMsg = "vault/withdraw"

	depositCost  = 50
	withdrawCost = 50
)

// Address returns the vault address of given owner.
func Address(d custody.Deriver, owner custody.Address) (custody.Address, custody.Bump, error) {
	return d.Find(Namespace, owner)
}

// DepositMsg moves Amount lamports from the owner into its vault.
type DepositMsg struct {
	Owner  custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ custody.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string { return pathDepositMsg }

func (m *DepositMsg) Validate() error { return validate(m.Owner, m.Amount) }

func (m *DepositMsg) Marshal() ([]byte, error) { return codec.Marshal((*depositMsg)(m)) }

func (m *DepositMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*depositMsg)(m)) }

type depositMsg DepositMsg

func (m *depositMsg) Reset()         { *m = depositMsg{} }
func (m *depositMsg) String() string { return proto.CompactTextString(m) }
func (*depositMsg) ProtoMessage()    {}

// WithdrawMsg moves Amount lamports from the vault back to its owner.
type WithdrawMsg struct {
	Owner  custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ custody.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string { return pathWithdrawMsg }

func (m *WithdrawMsg) Validate() error { return validate(m.Owner, m.Amount) }

func (m *WithdrawMsg) Marshal() ([]byte, error) { return codec.Marshal((*withdrawMsg)(m)) }

func (m *WithdrawMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*withdrawMsg)(m)) }

type withdrawMsg WithdrawMsg

func (m *withdrawMsg) Reset()         { *m = withdrawMsg{} }
func (m *withdrawMsg) String() string { return proto.CompactTextString(m) }
func (*withdrawMsg) ProtoMessage()    {}

func validate(owner custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return errors.Wrap(owner.Validate(), "owner")
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, d custody.Deriver, ctrl cash.Controller) {
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, deriver: d, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, deriver: d, ctrl: ctrl})
}

// DepositHandler moves lamports into the vault of the signer.
type DepositHandler struct {
	auth    x.Authenticator
	deriver custody.Deriver
	ctrl    cash.Controller
}

var _ custody.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Owner, vault, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: vault}, nil
}

func (h DepositHandler) validate(ctx custody.Context, tx custody.Tx) (*DepositMsg, custody.Address, error) {
	var msg *DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	vault, _, err := Address(h.deriver, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	return msg, vault, nil
}

// WithdrawHandler moves lamports out of the vault of the signer. The vault
// authorizes the move with its own seeds.
type WithdrawHandler struct {
	auth    x.Authenticator
	deriver custody.Deriver
	ctrl    cash.Controller
}

var _ custody.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, vault, msg.Owner, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h WithdrawHandler) validate(ctx custody.Context, tx custody.Tx) (*WithdrawMsg, custody.Address, error) {
	var msg *WithdrawMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	vault, bump, err := Address(h.deriver, msg.Owner)
	if err != nil {
		return nil, nil, err
	}
	seeds := custody.NewSeeds(Namespace, bump, msg.Owner)
	if err := x.DerivedBy(h.deriver, seeds).Authorize(ctx, vault); err != nil {
		return nil, nil, errors.Wrap(err, "vault authority")
	}
	return msg, vault, nil
}
