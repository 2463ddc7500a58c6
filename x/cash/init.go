package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address  custody.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database
func (Initializer) FromGenesis(opts custody.Options, params custody.GenesisParams, kv custody.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Lamports); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
