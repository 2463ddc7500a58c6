package custodyd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/vault"
)

// Tx is the transaction format of the ledger: a single message and the
// signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        custody.Msg
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg custody.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes should only come from the data itself, not previous
	// signatures
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	w := txWire{Signatures: tx.Signatures}
	if tx.Msg != nil {
		if err := w.setMsg(tx.Msg); err != nil {
			return nil, err
		}
	}
	return codec.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	var w txWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	msgs := w.msgs()
	if len(msgs) > 1 {
		return errors.Wrapf(errors.ErrMsg, "%d messages", len(msgs))
	}
	*tx = Tx{Signatures: w.Signatures}
	if len(msgs) == 1 {
		tx.Msg = msgs[0]
	}
	return nil
}

// txWire is the protobuf layout of Tx. The message fields form a oneof.
// Field numbers must never be reused.
type txWire struct {
	Signatures       []*sigs.StdSignature    `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg          *cash.SendMsg           `protobuf:"bytes,10,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	TransferMsg      *token.TransferMsg      `protobuf:"bytes,20,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	MintToMsg        *token.MintToMsg        `protobuf:"bytes,21,opt,name=mint_to_msg,json=mintToMsg,proto3" json:"mint_to_msg,omitempty"`
	CreateAccountMsg *token.CreateAccountMsg `protobuf:"bytes,22,opt,name=create_account_msg,json=createAccountMsg,proto3" json:"create_account_msg,omitempty"`
	CloseAccountMsg  *token.CloseAccountMsg  `protobuf:"bytes,23,opt,name=close_account_msg,json=closeAccountMsg,proto3" json:"close_account_msg,omitempty"`
	MakeMsg          *escrow.MakeMsg         `protobuf:"bytes,30,opt,name=make_msg,json=makeMsg,proto3" json:"make_msg,omitempty"`
	TakeMsg          *escrow.TakeMsg         `protobuf:"bytes,31,opt,name=take_msg,json=takeMsg,proto3" json:"take_msg,omitempty"`
	RefundMsg        *escrow.RefundMsg       `protobuf:"bytes,32,opt,name=refund_msg,json=refundMsg,proto3" json:"refund_msg,omitempty"`
	DepositMsg       *vault.DepositMsg       `protobuf:"bytes,40,opt,name=deposit_msg,json=depositMsg,proto3" json:"deposit_msg,omitempty"`
	WithdrawMsg      *vault.WithdrawMsg      `protobuf:"bytes,41,opt,name=withdraw_msg,json=withdrawMsg,proto3" json:"withdraw_msg,omitempty"`
	BumpSequenceMsg  *sigs.BumpSequenceMsg   `protobuf:"bytes,50,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
}

func (w *txWire) Reset()         { *w = txWire{} }
func (w *txWire) String() string { return proto.CompactTextString(w) }
func (*txWire) ProtoMessage()    {}

func (w *txWire) setMsg(msg custody.Msg) error {
	switch m := msg.(type) {
	case *cash.SendMsg:
		w.SendMsg = m
	case *token.TransferMsg:
		w.TransferMsg = m
	case *token.MintToMsg:
		w.MintToMsg = m
	case *token.CreateAccountMsg:
		w.CreateAccountMsg = m
	case *token.CloseAccountMsg:
		w.CloseAccountMsg = m
	case *escrow.MakeMsg:
		w.MakeMsg = m
	case *escrow.TakeMsg:
		w.TakeMsg = m
	case *escrow.RefundMsg:
		w.RefundMsg = m
	case *vault.DepositMsg:
		w.DepositMsg = m
	case *vault.WithdrawMsg:
		w.WithdrawMsg = m
	case *sigs.BumpSequenceMsg:
		w.BumpSequenceMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unknown message %q", msg.Path())
	}
	return nil
}

// msgs returns every message set on the wire.
func (w *txWire) msgs() []custody.Msg {
	var res []custody.Msg
	add := func(set bool, m custody.Msg) {
		if set {
			res = append(res, m)
		}
	}
	add(w.SendMsg != nil, w.SendMsg)
	add(w.TransferMsg != nil, w.TransferMsg)
	add(w.MintToMsg != nil, w.MintToMsg)
	add(w.CreateAccountMsg != nil, w.CreateAccountMsg)
	add(w.CloseAccountMsg != nil, w.CloseAccountMsg)
	add(w.MakeMsg != nil, w.MakeMsg)
	add(w.TakeMsg != nil, w.TakeMsg)
	add(w.RefundMsg != nil, w.RefundMsg)
	add(w.DepositMsg != nil, w.DepositMsg)
	add(w.WithdrawMsg != nil, w.WithdrawMsg)
	add(w.BumpSequenceMsg != nil, w.BumpSequenceMsg)
	return res
}
