package x

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Authority proves the right to move assets out of an account owned by given
// address. An address held by a private key is authorized by a signature,
// a derived address by re-presenting its derivation seeds.
type Authority interface {
	Authorize(ctx custody.Context, owner custody.Address) error
}

// SignedBy returns an authority that accepts any owner that signed the
// current transaction.
func SignedBy(auth Authenticator) Authority {
	return signedBy{auth: auth}
}

type signedBy struct {
	auth Authenticator
}

func (s signedBy) Authorize(ctx custody.Context, owner custody.Address) error {
	if !s.auth.HasAddress(ctx, owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", owner)
	}
	return nil
}

// DerivedBy returns an authority that accepts only the owner reproduced by
// given seeds. This is how a program acts on behalf of an account it owns
// without holding any secret.
func DerivedBy(d custody.Deriver, seeds custody.Seeds) Authority {
	return derivedBy{deriver: d, seeds: seeds}
}

type derivedBy struct {
	deriver custody.Deriver
	seeds   custody.Seeds
}

func (d derivedBy) Authorize(ctx custody.Context, owner custody.Address) error {
	return d.deriver.Verify(owner, d.seeds)
}
