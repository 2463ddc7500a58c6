package cash

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the functionality needed by other extensions to move native
// balance. Authorization is the responsibility of the caller.
type Controller interface {
	// Balance returns the native balance of given address.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest. If src doesn't
	// have sufficient coins, it fails.
	MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error

	// Drain moves the whole balance of src to dest and returns the moved
	// amount. Draining an empty wallet is a no-op.
	Drain(db custody.KVStore, src, dest custody.Address) (uint64, error)
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns zero for an address that never received anything.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return w.Lamports, nil
}

func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %d lamports, want %d", src, have, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	got, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if got > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	if err := c.save(db, src, have-amount); err != nil {
		return err
	}
	return c.save(db, dest, got+amount)
}

func (c BaseController) Drain(db custody.KVStore, src, dest custody.Address) (uint64, error) {
	amount, err := c.Balance(db, src)
	if err != nil || amount == 0 {
		return 0, err
	}
	if err := c.MoveCoins(db, src, dest, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// IssueCoins adds the given amount of coins to the destination address.
// Fails if it overflows the wallet. Used by the genesis initializer and by
// tests.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	got, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if got > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	return c.save(db, dest, got+amount)
}

// save stores the balance, removing the wallet once it is empty.
func (c BaseController) save(db custody.KVStore, addr custody.Address, lamports uint64) error {
	if lamports == 0 {
		has, err := c.bucket.Has(db, addr)
		if err != nil || !has {
			return err
		}
		return c.bucket.Delete(db, addr)
	}
	return c.bucket.Put(db, addr, &Wallet{Lamports: lamports})
}
