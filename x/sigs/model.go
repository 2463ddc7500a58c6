package sigs

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

const userSize = ed25519.PublicKeySize + 8

// UserData is the replay protection state of a single signer. It is stored
// under the signer address, which is the public key itself.
type UserData struct {
	Pubkey   ed25519.PublicKey
	Sequence uint64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if len(u.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrModel, "public key length %d", len(u.Pubkey))
	}
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	raw := make([]byte, userSize)
	copy(raw, u.Pubkey)
	binary.BigEndian.PutUint64(raw[ed25519.PublicKeySize:], u.Sequence)
	return raw, nil
}

func (u *UserData) Unmarshal(raw []byte) error {
	if len(raw) != userSize {
		return errors.Wrapf(errors.ErrModel, "user data must be %d bytes, got %d", userSize, len(raw))
	}
	u.Pubkey = append(ed25519.PublicKey(nil), raw[:ed25519.PublicKeySize]...)
	u.Sequence = binary.BigEndian.Uint64(raw[ed25519.PublicKeySize:])
	return nil
}

// Address returns the address of the signer.
func (u *UserData) Address() custody.Address {
	return custody.Address(u.Pubkey)
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected uint64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	// The greatest nonce value supported by clients is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// Bucket stores UserData of all signers.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate returns the stored user data of given key, or a fresh one
// with sequence zero.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, pubkey ed25519.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey, &u); {
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	case err != nil:
		return nil, err
	}
	return &u, nil
}

// Save stores given user data.
func (b Bucket) Save(db custody.KVStore, u *UserData) error {
	return b.Put(db, u.Address(), u)
}
