package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	mintSize    = custody.AddressLength + 1 + 8
	accountSize = 2*custody.AddressLength + 8
)

// Mint describes an asset type.
type Mint struct {
	// Authority is the only address allowed to issue new units.
	Authority custody.Address
	Decimals  uint8
	Supply    uint64
}

var _ orm.Model = (*Mint)(nil)

// Validate makes sure the mint can be stored.
func (m *Mint) Validate() error {
	return errors.Wrap(m.Authority.Validate(), "authority")
}

// Marshal uses a fixed width layout: authority, decimals, supply (little
// endian).
func (m *Mint) Marshal() ([]byte, error) {
	raw := make([]byte, mintSize)
	copy(raw, m.Authority)
	raw[custody.AddressLength] = m.Decimals
	binary.LittleEndian.PutUint64(raw[custody.AddressLength+1:], m.Supply)
	return raw, nil
}

func (m *Mint) Unmarshal(raw []byte) error {
	if len(raw) != mintSize {
		return errors.Wrapf(errors.ErrModel, "mint must be %d bytes, got %d", mintSize, len(raw))
	}
	m.Authority = custody.Address(raw[:custody.AddressLength]).Clone()
	m.Decimals = raw[custody.AddressLength]
	m.Supply = binary.LittleEndian.Uint64(raw[custody.AddressLength+1:])
	return nil
}

// Account holds an amount of a single asset type on behalf of its owner.
type Account struct {
	Mint   custody.Address
	Owner  custody.Address
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

// Validate makes sure the account can be stored.
func (a *Account) Validate() error {
	if err := a.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	return errors.Wrap(a.Owner.Validate(), "owner")
}

// Marshal uses a fixed width layout: mint, owner, amount (little endian).
func (a *Account) Marshal() ([]byte, error) {
	raw := make([]byte, accountSize)
	copy(raw, a.Mint)
	copy(raw[custody.AddressLength:], a.Owner)
	binary.LittleEndian.PutUint64(raw[2*custody.AddressLength:], a.Amount)
	return raw, nil
}

func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) != accountSize {
		return errors.Wrapf(errors.ErrModel, "account must be %d bytes, got %d", accountSize, len(raw))
	}
	a.Mint = custody.Address(raw[:custody.AddressLength]).Clone()
	a.Owner = custody.Address(raw[custody.AddressLength : 2*custody.AddressLength]).Clone()
	a.Amount = binary.LittleEndian.Uint64(raw[2*custody.AddressLength:])
	return nil
}

// NewMintBucket returns a bucket for storing mints, keyed by mint address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mints")
}

// NewAccountBucket returns a bucket for storing asset accounts, keyed by
// account address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokaccts")
}
