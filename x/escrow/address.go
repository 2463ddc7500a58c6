package escrow

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/token"
)

// Namespace is the derivation namespace of escrow addresses.
const Namespace = "escrow"

func seedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

// Address returns the escrow address of given maker and seed together with
// its bump. One maker can run as many escrows as there are seeds.
func Address(d custody.Deriver, maker custody.Address, seed uint64) (custody.Address, custody.Bump, error) {
	return d.Find(Namespace, maker, seedBytes(seed))
}

// VaultAddress returns the address of the asset account holding the deposit
// of given escrow.
func VaultAddress(d custody.Deriver, escrow, mintA custody.Address) (custody.Address, error) {
	return token.AssociatedAddress(d, escrow, mintA)
}

// seeds returns the derivation seeds of the escrow made by maker and
// described by given record.
func seeds(maker custody.Address, e *Escrow) custody.Seeds {
	return custody.NewSeeds(Namespace, e.Bump(), maker, seedBytes(e.Seed()))
}

// authority returns the authority of the escrow made by maker. It is the
// only authority that can move assets out of the vault.
func authority(d custody.Deriver, maker custody.Address, e *Escrow) x.Authority {
	return x.DerivedBy(d, seeds(maker, e))
}
