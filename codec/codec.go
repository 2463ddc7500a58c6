/*
Package codec marshals messages and transactions with the protobuf wire
format of gogo/protobuf.

A message is a plain struct whose fields carry protobuf tags, the same tags
protoc would generate for the matching .proto declaration. gogo/protobuf
delegates to a Marshal method whenever a type has one, so a message never
passes itself to this package. It converts itself to an unexported twin type
with identical fields that only implements proto.Message:

	type sendMsg SendMsg

	func (m *sendMsg) Reset()         { *m = sendMsg{} }
	func (m *sendMsg) String() string { return proto.CompactTextString(m) }
	func (*sendMsg) ProtoMessage()    {}

	func (m *SendMsg) Marshal() ([]byte, error) { return codec.Marshal((*sendMsg)(m)) }

Zero values are omitted on the wire (proto3), so an empty message encodes to
an empty byte slice.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Marshal returns the wire representation of m.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal: %s", err)
	}
	return raw, nil
}

// Unmarshal resets m and loads raw into it. Unknown fields are skipped.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal: %s", err)
	}
	return nil
}
