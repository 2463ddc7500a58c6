package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a single ed25519 signature together with the public key
// that made it and the signer sequence it was made for.
type StdSignature struct {
	Pubkey    ed25519.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte            `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Sequence  uint64            `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "public key length %d", len(s.Pubkey))
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) { return codec.Marshal((*stdSignature)(s)) }

func (s *StdSignature) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*stdSignature)(s)) }

type stdSignature StdSignature

func (s *stdSignature) Reset()         { *s = stdSignature{} }
func (s *stdSignature) String() string { return proto.CompactTextString(s) }
func (*stdSignature) ProtoMessage()    {}
