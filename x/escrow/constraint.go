package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/token"
)

// Constraints used by the transitions. Each one returns the error kind that
// describes its violation. Constraints that depend on a loaded record read
// it through a pointer, so they must run after recordPresent.

func signedBy(auth x.Authenticator, addr custody.Address, role string) x.Constraint {
	return func(ctx custody.Context, db custody.ReadOnlyKVStore) error {
		if !auth.HasAddress(ctx, addr) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
		}
		return nil
	}
}

// escrowDerived requires want to be the escrow address of maker and seed.
// The found bump is written to bump.
func escrowDerived(d custody.Deriver, maker custody.Address, seed uint64, want custody.Address, bump *custody.Bump) x.Constraint {
	return func(custody.Context, custody.ReadOnlyKVStore) error {
		addr, b, err := Address(d, maker, seed)
		if err != nil {
			return failed(ErrInvalidDerivation, err)
		}
		if !addr.Equals(want) {
			return errors.Wrapf(ErrInvalidDerivation, "escrow of seed %d is %s, got %s", seed, addr, want)
		}
		*bump = b
		return nil
	}
}

func vaultDerived(d custody.Deriver, escrow, mintA, want custody.Address, kind *errors.Error) x.Constraint {
	return func(custody.Context, custody.ReadOnlyKVStore) error {
		addr, err := VaultAddress(d, escrow, mintA)
		if err != nil {
			return failed(kind, err)
		}
		if !addr.Equals(want) {
			return errors.Wrapf(kind, "vault is %s, got %s", addr, want)
		}
		return nil
	}
}

func recordAbsent(b orm.ModelBucket, escrow custody.Address) x.Constraint {
	return func(_ custody.Context, db custody.ReadOnlyKVStore) error {
		switch has, err := b.Has(db, escrow); {
		case err != nil:
			return err
		case has:
			return errors.Wrapf(errors.ErrDuplicate, "escrow %s", escrow)
		}
		return nil
	}
}

func recordPresent(b orm.ModelBucket, escrow custody.Address, dest *Escrow) x.Constraint {
	return func(_ custody.Context, db custody.ReadOnlyKVStore) error {
		switch err := b.One(db, escrow, dest); {
		case errors.ErrNotFound.Is(err):
			return errors.Wrapf(ErrRecordNotFound, "escrow %s", escrow)
		case err != nil:
			return err
		}
		return nil
	}
}

// authorityMatches requires the seeds stored in rec, together with maker,
// to reproduce the escrow address.
func authorityMatches(d custody.Deriver, maker, escrow custody.Address, rec *Escrow) x.Constraint {
	return func(custody.Context, custody.ReadOnlyKVStore) error {
		return failed(ErrAuthorityMismatch, d.Verify(escrow, seeds(maker, rec)))
	}
}

// assetsMatch compares given mints with rec. A nil mintB is not checked.
func assetsMatch(rec *Escrow, mintA, mintB custody.Address) x.Constraint {
	return func(custody.Context, custody.ReadOnlyKVStore) error {
		if !rec.mintA.Equals(mintA) {
			return errors.Wrapf(ErrAssetMismatch, "escrow holds %s, got %s", rec.mintA, mintA)
		}
		if mintB != nil && !rec.mintB.Equals(mintB) {
			return errors.Wrapf(ErrAssetMismatch, "escrow wants %s, got %s", rec.mintB, mintB)
		}
		return nil
	}
}

// mintExists requires mint to be a known asset type. Failure is reported as
// kind.
func mintExists(tokens token.Controller, mint custody.Address, kind *errors.Error) x.Constraint {
	return func(_ custody.Context, db custody.ReadOnlyKVStore) error {
		_, err := tokens.Mint(db, mint)
		return failed(kind, errors.Wrapf(err, "mint %s", mint))
	}
}
