package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

const (
	pathMakeMsg   = "escrow/make"
	pathTakeMsg   = "escrow/take"
	pathRefundMsg = "escrow/refund"
)

// MakeMsg opens an escrow. The maker deposits Deposit of MintA into the
// vault and asks for Receive of MintB.
//
// Escrow and Vault are the addresses the maker expects. They must match the
// derived ones, so a client always knows where the escrow lives before
// submitting it.
type MakeMsg struct {
	Maker   custody.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	MintA   custody.Address `protobuf:"bytes,2,opt,name=mint_a,json=mintA,proto3" json:"mint_a,omitempty"`
	MintB   custody.Address `protobuf:"bytes,3,opt,name=mint_b,json=mintB,proto3" json:"mint_b,omitempty"`
	Escrow  custody.Address `protobuf:"bytes,4,opt,name=escrow,proto3" json:"escrow,omitempty"`
	Vault   custody.Address `protobuf:"bytes,5,opt,name=vault,proto3" json:"vault,omitempty"`
	Seed    uint64          `protobuf:"varint,6,opt,name=seed,proto3" json:"seed,omitempty"`
	Deposit uint64          `protobuf:"varint,7,opt,name=deposit,proto3" json:"deposit,omitempty"`
	Receive uint64          `protobuf:"varint,8,opt,name=receive,proto3" json:"receive,omitempty"`
}

var _ custody.Msg = (*MakeMsg)(nil)

func (MakeMsg) Path() string {
	return pathMakeMsg
}

// Subject returns the escrow the message acts on.
func (m *MakeMsg) Subject() custody.Address {
	return m.Escrow
}

func (m *MakeMsg) Validate() error {
	if err := validateAddresses(
		"maker", m.Maker,
		"mint a", m.MintA,
		"mint b", m.MintB,
		"escrow", m.Escrow,
		"vault", m.Vault,
	); err != nil {
		return err
	}
	if m.MintA.Equals(m.MintB) {
		return errors.Wrap(errors.ErrMsg, "mint a and mint b must differ")
	}
	if m.Deposit == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive deposit")
	}
	if m.Receive == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive receive")
	}
	return nil
}

func (m *MakeMsg) Marshal() ([]byte, error) { return codec.Marshal((*makeMsg)(m)) }

func (m *MakeMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*makeMsg)(m)) }

type makeMsg MakeMsg

func (m *makeMsg) Reset()         { *m = makeMsg{} }
func (m *makeMsg) String() string { return proto.CompactTextString(m) }
func (*makeMsg) ProtoMessage()    {}

// TakeMsg fulfils an open escrow. MintA and MintB must match the record.
type TakeMsg struct {
	Taker  custody.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Maker  custody.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Escrow custody.Address `protobuf:"bytes,3,opt,name=escrow,proto3" json:"escrow,omitempty"`
	Vault  custody.Address `protobuf:"bytes,4,opt,name=vault,proto3" json:"vault,omitempty"`
	MintA  custody.Address `protobuf:"bytes,5,opt,name=mint_a,json=mintA,proto3" json:"mint_a,omitempty"`
	MintB  custody.Address `protobuf:"bytes,6,opt,name=mint_b,json=mintB,proto3" json:"mint_b,omitempty"`
}

var _ custody.Msg = (*TakeMsg)(nil)

func (TakeMsg) Path() string {
	return pathTakeMsg
}

// Subject returns the escrow the message acts on.
func (m *TakeMsg) Subject() custody.Address {
	return m.Escrow
}

func (m *TakeMsg) Validate() error {
	return validateAddresses(
		"taker", m.Taker,
		"maker", m.Maker,
		"escrow", m.Escrow,
		"vault", m.Vault,
		"mint a", m.MintA,
		"mint b", m.MintB,
	)
}

func (m *TakeMsg) Marshal() ([]byte, error) { return codec.Marshal((*takeMsg)(m)) }

func (m *TakeMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*takeMsg)(m)) }

type takeMsg TakeMsg

func (m *takeMsg) Reset()         { *m = takeMsg{} }
func (m *takeMsg) String() string { return proto.CompactTextString(m) }
func (*takeMsg) ProtoMessage()    {}

// RefundMsg cancels an open escrow. Only the maker can refund.
type RefundMsg struct {
	Maker  custody.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Escrow custody.Address `protobuf:"bytes,2,opt,name=escrow,proto3" json:"escrow,omitempty"`
	Vault  custody.Address `protobuf:"bytes,3,opt,name=vault,proto3" json:"vault,omitempty"`
	MintA  custody.Address `protobuf:"bytes,4,opt,name=mint_a,json=mintA,proto3" json:"mint_a,omitempty"`
}

var _ custody.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Subject returns the escrow the message acts on.
func (m *RefundMsg) Subject() custody.Address {
	return m.Escrow
}

func (m *RefundMsg) Validate() error {
	return validateAddresses(
		"maker", m.Maker,
		"escrow", m.Escrow,
		"vault", m.Vault,
		"mint a", m.MintA,
	)
}

func (m *RefundMsg) Marshal() ([]byte, error) { return codec.Marshal((*refundMsg)(m)) }

func (m *RefundMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*refundMsg)(m)) }

type refundMsg RefundMsg

func (m *refundMsg) Reset()         { *m = refundMsg{} }
func (m *refundMsg) String() string { return proto.CompactTextString(m) }
func (*refundMsg) ProtoMessage()    {}

// validateAddresses takes name and address pairs.
func validateAddresses(pairs ...interface{}) error {
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		addr := pairs[i+1].(custody.Address)
		if err := addr.Validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}
