package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file. Escrows cannot be declared in genesis, only the
// configuration.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, params custody.GenesisParams, kv custody.KVStore) error {
	return gconf.InitConfig(kv, opts, confPkg, &Configuration{})
}
