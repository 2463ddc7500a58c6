package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// SendMsg moves native balance from one address to another.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string          `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ custody.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo too long: %d", len(m.Memo))
	}
	return nil
}

func (m *SendMsg) Marshal() ([]byte, error) { return codec.Marshal((*sendMsg)(m)) }

func (m *SendMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*sendMsg)(m)) }

type sendMsg SendMsg

func (m *sendMsg) Reset()         { *m = sendMsg{} }
func (m *sendMsg) String() string { return proto.CompactTextString(m) }
func (*sendMsg) ProtoMessage()    {}
