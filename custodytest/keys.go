package custodytest

import (
	"crypto/rand"

	"github.com/iov-one/custody"
	"golang.org/x/crypto/ed25519"
)

// Key is an ed25519 key pair. Its address is the public key, which is
// always a point on the curve and therefore never collides with a derived
// address.
type Key struct {
	priv ed25519.PrivateKey
}

// NewKey returns a new random key.
func NewKey() Key {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return Key{priv: priv}
}

// PublicKey returns the public part of the key.
func (k Key) PublicKey() ed25519.PublicKey {
	return k.priv.Public().(ed25519.PublicKey)
}

// Address returns the address held by this key.
func (k Key) Address() custody.Address {
	return custody.Address(k.PublicKey())
}

// Sign returns the signature of given message.
func (k Key) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}

// ProgramID is the program identity used by tests.
var ProgramID = custody.Address{
	0x0c, 0x05, 0x7a, 0x11, 0x3d, 0xe6, 0x42, 0x9b,
	0x8f, 0x01, 0x6c, 0xd2, 0x55, 0x90, 0xaa, 0x13,
	0x7e, 0x28, 0xc4, 0x09, 0xf1, 0x3b, 0x64, 0x0d,
	0x92, 0x5e, 0xb7, 0x20, 0x48, 0x6f, 0xe3, 0x17,
}

// Deriver returns a deriver bound to ProgramID.
func Deriver() custody.Deriver {
	return custody.NewDeriver(ProgramID)
}

// SequenceAddress returns an address filled with given byte. It is on or
// off the curve depending on the value, so use it only where that does not
// matter, for example as an asset type identifier.
func SequenceAddress(b byte) custody.Address {
	addr := make(custody.Address, custody.AddressLength)
	for i := range addr {
		addr[i] = b
	}
	return addr
}
