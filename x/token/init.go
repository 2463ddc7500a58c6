package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/x/cash"
)

const optKey = "token"

type genesisMint struct {
	Address   custody.Address `json:"address"`
	Authority custody.Address `json:"authority"`
	Decimals  uint8           `json:"decimals"`
}

type genesisAccount struct {
	Owner  custody.Address `json:"owner"`
	Mint   custody.Address `json:"mint"`
	Amount uint64          `json:"amount"`
}

type genesisState struct {
	Mints    []genesisMint    `json:"mints"`
	Accounts []genesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the token configuration, all declared mints and the
// canonical accounts of declared holders. Genesis accounts are rent free and
// the supply of each mint is the sum of its genesis accounts.
func (Initializer) FromGenesis(opts custody.Options, params custody.GenesisParams, kv custody.KVStore) error {
	if err := gconf.InitConfig(kv, opts, confPkg, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state genesisState
	if err := opts.ReadOptions(optKey, &state); err != nil {
		return err
	}
	ctrl := NewController(params.Deriver, cash.NewController())
	for i, m := range state.Mints {
		mint := Mint{Authority: m.Authority, Decimals: m.Decimals}
		if err := ctrl.CreateMint(kv, m.Address, &mint); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range state.Accounts {
		if err := ctrl.issueGenesis(kv, a); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}

func (c BaseController) issueGenesis(db custody.KVStore, a genesisAccount) error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	mint, err := c.Mint(db, a.Mint)
	if err != nil {
		return err
	}
	addr, err := AssociatedAddress(c.deriver, a.Owner, a.Mint)
	if err != nil {
		return err
	}
	switch has, err := c.accounts.Has(db, addr); {
	case err != nil:
		return err
	case has:
		return errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	if mint.Supply+a.Amount < mint.Supply {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += a.Amount
	if err := c.mints.Put(db, a.Mint, mint); err != nil {
		return err
	}
	return c.accounts.Put(db, addr, &Account{Mint: a.Mint, Owner: a.Owner, Amount: a.Amount})
}
