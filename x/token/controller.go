package token

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Controller is the functionality needed by other extensions to hold and
// move assets.
type Controller interface {
	// Mint returns the mint stored at given address.
	Mint(db custody.ReadOnlyKVStore, addr custody.Address) (*Mint, error)

	// Account returns the account stored at given address.
	Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error)

	// Balance returns the amount held by the account stored at given
	// address.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// CreateAccount creates the canonical account of owner for given mint.
	// The payer funds the account rent. It fails with ErrDuplicate if the
	// account exists.
	CreateAccount(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error)

	// EnsureAccount is like CreateAccount, but returns an existing account
	// instead of failing.
	EnsureAccount(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error)

	// Transfer moves amount of mint assets between two accounts. auth must
	// prove the right to act on behalf of the source account owner.
	Transfer(ctx custody.Context, db custody.KVStore, mint, src, dest custody.Address, amount uint64, auth x.Authority) error

	// CloseAccount removes an empty account and sends its native balance
	// to the beneficiary. auth must prove the right to act on behalf of
	// the account owner.
	CloseAccount(ctx custody.Context, db custody.KVStore, addr, beneficiary custody.Address, auth x.Authority) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	deriver  custody.Deriver
	cash     cash.Controller
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that pays account rent through given
// cash controller.
func NewController(d custody.Deriver, cashCtrl cash.Controller) BaseController {
	return BaseController{
		deriver:  d,
		cash:     cashCtrl,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

func (c BaseController) Mint(db custody.ReadOnlyKVStore, addr custody.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, addr, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

func (c BaseController) Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	var a Account
	if err := c.accounts.One(db, addr, &a); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &a, nil
}

func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	a, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

// CreateMint stores a new asset type at given address.
func (c BaseController) CreateMint(db custody.KVStore, addr custody.Address, m *Mint) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "mint address")
	}
	switch has, err := c.mints.Has(db, addr); {
	case err != nil:
		return err
	case has:
		return errors.Wrapf(errors.ErrDuplicate, "mint %s", addr)
	}
	return c.mints.Put(db, addr, m)
}

func (c BaseController) CreateAccount(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error) {
	addr, err := AssociatedAddress(c.deriver, owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	switch has, err := c.accounts.Has(db, addr); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if conf.AccountRent > 0 {
		if err := c.cash.MoveCoins(db, payer, addr, conf.AccountRent); err != nil {
			return nil, errors.Wrap(err, "account rent")
		}
	}

	acct := Account{Mint: mint, Owner: owner}
	if err := c.accounts.Put(db, addr, &acct); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c BaseController) EnsureAccount(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error) {
	addr, err := AssociatedAddress(c.deriver, owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	switch has, err := c.accounts.Has(db, addr); {
	case err != nil:
		return nil, err
	case has:
		return addr, nil
	}
	return c.CreateAccount(db, payer, owner, mint)
}

func (c BaseController) Transfer(ctx custody.Context, db custody.KVStore, mint, src, dest custody.Address, amount uint64, auth x.Authority) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	from, err := c.Account(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !from.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "source holds %s", from.Mint)
	}
	if !to.Mint.Equals(mint) {
		return errors.Wrapf(ErrMintMismatch, "destination holds %s", to.Mint)
	}
	if err := auth.Authorize(ctx, from.Owner); err != nil {
		return errors.Wrap(err, "source owner")
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, want %d", src, from.Amount, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	if to.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination amount")
	}

	from.Amount -= amount
	to.Amount += amount
	if err := c.accounts.Put(db, src, from); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, to)
}

func (c BaseController) CloseAccount(ctx custody.Context, db custody.KVStore, addr, beneficiary custody.Address, auth x.Authority) error {
	acct, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if err := auth.Authorize(ctx, acct.Owner); err != nil {
		return errors.Wrap(err, "account owner")
	}
	if acct.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account %s still holds %d", addr, acct.Amount)
	}
	if err := c.accounts.Delete(db, addr); err != nil {
		return err
	}
	if _, err := c.cash.Drain(db, addr, beneficiary); err != nil {
		return errors.Wrap(err, "reclaim rent")
	}
	return nil
}

// MintTo issues new units of mint into given account. auth must prove the
// right to act on behalf of the mint authority.
func (c BaseController) MintTo(ctx custody.Context, db custody.KVStore, mintAddr, dest custody.Address, amount uint64, auth x.Authority) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	mint, err := c.Mint(db, mintAddr)
	if err != nil {
		return err
	}
	if err := auth.Authorize(ctx, mint.Authority); err != nil {
		return errors.Wrap(err, "mint authority")
	}
	to, err := c.Account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !to.Mint.Equals(mintAddr) {
		return errors.Wrapf(ErrMintMismatch, "destination holds %s", to.Mint)
	}
	if mint.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += amount
	to.Amount += amount
	if err := c.mints.Put(db, mintAddr, mint); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, to)
}
