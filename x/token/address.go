package token

import (
	"github.com/iov-one/custody"
)

// AssociatedNamespace is the derivation namespace of canonical accounts.
const AssociatedNamespace = "ata"

// AssociatedAddress returns the address of the canonical account of owner
// for given mint.
func AssociatedAddress(d custody.Deriver, owner, mint custody.Address) (custody.Address, error) {
	addr, _, err := d.Find(AssociatedNamespace, owner, mint)
	return addr, err
}
