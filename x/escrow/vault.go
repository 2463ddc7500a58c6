package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
)

// vault releases the deposit of an escrow. Every vault operation is
// authorized by the escrow seeds.
type vault struct {
	deriver custody.Deriver
	bucket  orm.ModelBucket
	cash    cash.Controller
	tokens  token.Controller
}

func newVault(d custody.Deriver, b orm.ModelBucket, cashCtrl cash.Controller, tokens token.Controller) vault {
	return vault{deriver: d, bucket: b, cash: cashCtrl, tokens: tokens}
}

// release drains the whole vault into dest, closes it and deletes the
// record. All rent goes back to the maker. Failures are reported as kind.
func (v vault) release(
	ctx custody.Context,
	db custody.KVStore,
	maker, escrow, addr custody.Address,
	rec *Escrow,
	dest custody.Address,
	kind *errors.Error,
) error {
	auth := authority(v.deriver, maker, rec)

	amount, err := v.tokens.Balance(db, addr)
	if err != nil {
		return failed(kind, errors.Wrap(err, "vault balance"))
	}
	if amount > 0 {
		if err := v.tokens.Transfer(ctx, db, rec.MintA(), addr, dest, amount, auth); err != nil {
			return failed(kind, errors.Wrap(err, "drain vault"))
		}
	}
	if err := v.tokens.CloseAccount(ctx, db, addr, maker, auth); err != nil {
		return failed(kind, errors.Wrap(err, "close vault"))
	}

	if err := v.bucket.Delete(db, escrow); err != nil {
		return errors.Wrap(err, "cannot delete escrow")
	}
	if _, err := v.cash.Drain(db, escrow, maker); err != nil {
		return failed(kind, errors.Wrap(err, "record rent"))
	}
	return nil
}
