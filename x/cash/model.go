package cash

import (
	"encoding/binary"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// walletSize is the length of the serialized wallet.
const walletSize = 8

// Wallet is the native balance held by an address.
type Wallet struct {
	Lamports uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate always succeeds. Empty wallets are removed from the store.
func (w *Wallet) Validate() error {
	return nil
}

// Marshal serializes the wallet as a little endian integer.
func (w *Wallet) Marshal() ([]byte, error) {
	raw := make([]byte, walletSize)
	binary.LittleEndian.PutUint64(raw, w.Lamports)
	return raw, nil
}

// Unmarshal loads the wallet from its serialized form.
func (w *Wallet) Unmarshal(raw []byte) error {
	if len(raw) != walletSize {
		return errors.Wrapf(errors.ErrModel, "wallet must be %d bytes, got %d", walletSize, len(raw))
	}
	w.Lamports = binary.LittleEndian.Uint64(raw)
	return nil
}

// NewBucket returns a bucket for storing wallets.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}
