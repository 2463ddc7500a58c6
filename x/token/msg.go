package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

const (
	pathTransferMsg      = "token/transfer"
	pathMintToMsg        = "token/mint_to"
	pathCreateAccountMsg = "token/create_account"
	pathCloseAccountMsg  = "token/close_account"
)

// TransferMsg moves assets between two accounts holding the same mint. It
// must be signed by the source account owner.
type TransferMsg struct {
	Mint        custody.Address `protobuf:"bytes,1,opt,name=mint,proto3" json:"mint,omitempty"`
	Source      custody.Address `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination custody.Address `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ custody.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

func (m *TransferMsg) Marshal() ([]byte, error) { return codec.Marshal((*transferMsg)(m)) }

func (m *TransferMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*transferMsg)(m)) }

type transferMsg TransferMsg

func (m *transferMsg) Reset()         { *m = transferMsg{} }
func (m *transferMsg) String() string { return proto.CompactTextString(m) }
func (*transferMsg) ProtoMessage()    {}

// MintToMsg issues new units into an account. It must be signed by the mint
// authority.
type MintToMsg struct {
	Mint        custody.Address `protobuf:"bytes,1,opt,name=mint,proto3" json:"mint,omitempty"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ custody.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string {
	return pathMintToMsg
}

func (m *MintToMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

func (m *MintToMsg) Marshal() ([]byte, error) { return codec.Marshal((*mintToMsg)(m)) }

func (m *MintToMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*mintToMsg)(m)) }

type mintToMsg MintToMsg

func (m *mintToMsg) Reset()         { *m = mintToMsg{} }
func (m *mintToMsg) String() string { return proto.CompactTextString(m) }
func (*mintToMsg) ProtoMessage()    {}

// CreateAccountMsg creates the canonical account of an owner for a mint.
// Anyone can create an account for anyone else, the payer signs and funds
// the rent.
type CreateAccountMsg struct {
	Payer custody.Address `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer,omitempty"`
	Owner custody.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Mint  custody.Address `protobuf:"bytes,3,opt,name=mint,proto3" json:"mint,omitempty"`
}

var _ custody.Msg = (*CreateAccountMsg)(nil)

func (CreateAccountMsg) Path() string {
	return pathCreateAccountMsg
}

func (m *CreateAccountMsg) Validate() error {
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return errors.Wrap(m.Mint.Validate(), "mint")
}

func (m *CreateAccountMsg) Marshal() ([]byte, error) { return codec.Marshal((*createAccountMsg)(m)) }

func (m *CreateAccountMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*createAccountMsg)(m)) }

type createAccountMsg CreateAccountMsg

func (m *createAccountMsg) Reset()         { *m = createAccountMsg{} }
func (m *createAccountMsg) String() string { return proto.CompactTextString(m) }
func (*createAccountMsg) ProtoMessage()    {}

// CloseAccountMsg removes an empty account. The account rent is returned to
// the beneficiary. It must be signed by the account owner.
type CloseAccountMsg struct {
	Account     custody.Address `protobuf:"bytes,1,opt,name=account,proto3" json:"account,omitempty"`
	Beneficiary custody.Address `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
}

var _ custody.Msg = (*CloseAccountMsg)(nil)

func (CloseAccountMsg) Path() string {
	return pathCloseAccountMsg
}

func (m *CloseAccountMsg) Validate() error {
	if err := m.Account.Validate(); err != nil {
		return errors.Wrap(err, "account")
	}
	return errors.Wrap(m.Beneficiary.Validate(), "beneficiary")
}

func (m *CloseAccountMsg) Marshal() ([]byte, error) { return codec.Marshal((*closeAccountMsg)(m)) }

func (m *CloseAccountMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*closeAccountMsg)(m)) }

type closeAccountMsg CloseAccountMsg

func (m *closeAccountMsg) Reset()         { *m = closeAccountMsg{} }
func (m *closeAccountMsg) String() string { return proto.CompactTextString(m) }
func (*closeAccountMsg) ProtoMessage()    {}
