package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// RecordSize is the size of a serialized escrow record. The layout is
//
//	discriminator (8) | mint a (32) | mint b (32) | offer amount (8, LE) | seed (8, LE) | bump (1)
//
// Any change of field order or width breaks the stored state.
const RecordSize = 8 + 2*custody.AddressLength + 8 + 8 + 1

var discriminator = func() []byte {
	sum := sha256.Sum256([]byte("account:Escrow"))
	return sum[:8]
}()

// Escrow is the record of a single open offer. It is stored under the escrow
// address and never modified once created.
type Escrow struct {
	mintA       custody.Address
	mintB       custody.Address
	offerAmount uint64
	seed        uint64
	bump        custody.Bump
}

var _ orm.Model = (*Escrow)(nil)

// NewEscrow returns a fully formed record. mintA is the asset deposited by
// the maker, mintB the asset the maker wants offerAmount of in return.
func NewEscrow(mintA, mintB custody.Address, offerAmount, seed uint64, bump custody.Bump) (*Escrow, error) {
	e := &Escrow{
		mintA:       mintA.Clone(),
		mintB:       mintB.Clone(),
		offerAmount: offerAmount,
		seed:        seed,
		bump:        bump,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// MintA returns the asset type held by the vault.
func (e *Escrow) MintA() custody.Address { return e.mintA.Clone() }

// MintB returns the asset type the taker must pay with.
func (e *Escrow) MintB() custody.Address { return e.mintB.Clone() }

// OfferAmount returns the amount of MintB the taker must pay.
func (e *Escrow) OfferAmount() uint64 { return e.offerAmount }

func (e *Escrow) Seed() uint64 { return e.seed }

func (e *Escrow) Bump() custody.Bump { return e.bump }

// Validate makes sure the record can be stored.
func (e *Escrow) Validate() error {
	if err := e.mintA.Validate(); err != nil {
		return errors.Wrap(err, "mint a")
	}
	if err := e.mintB.Validate(); err != nil {
		return errors.Wrap(err, "mint b")
	}
	if e.mintA.Equals(e.mintB) {
		return errors.Wrap(errors.ErrModel, "mint a and mint b must differ")
	}
	if e.offerAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "offer amount")
	}
	return nil
}

func (e *Escrow) Marshal() ([]byte, error) {
	raw := make([]byte, 0, RecordSize)
	raw = append(raw, discriminator...)
	raw = append(raw, e.mintA...)
	raw = append(raw, e.mintB...)
	raw = appendUint64(raw, e.offerAmount)
	raw = appendUint64(raw, e.seed)
	raw = append(raw, byte(e.bump))
	if len(raw) != RecordSize {
		return nil, errors.Wrapf(errors.ErrModel, "record must be %d bytes, got %d", RecordSize, len(raw))
	}
	return raw, nil
}

func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "record must be %d bytes, got %d", RecordSize, len(raw))
	}
	if !bytes.Equal(raw[:8], discriminator) {
		return errors.Wrap(errors.ErrModel, "not an escrow record")
	}
	raw = raw[8:]
	e.mintA = custody.Address(raw[:custody.AddressLength]).Clone()
	raw = raw[custody.AddressLength:]
	e.mintB = custody.Address(raw[:custody.AddressLength]).Clone()
	raw = raw[custody.AddressLength:]
	e.offerAmount = binary.LittleEndian.Uint64(raw)
	e.seed = binary.LittleEndian.Uint64(raw[8:])
	e.bump = custody.Bump(raw[16])
	return nil
}

func appendUint64(b []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(b, buf[:]...)
}

// NewBucket returns a bucket for storing escrow records, keyed by escrow
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrow")
}
