package escrow

import "github.com/iov-one/custody/errors"

// ABCI response codes. escrow takes 1010-1020.
var (
	// ErrInvalidDerivation is returned when an address supplied to make
	// does not match the one derived from the maker and the seed.
	ErrInvalidDerivation = errors.Register(1010, "invalid derivation")

	// ErrAuthorityMismatch is returned when the stored derivation
	// parameters do not reproduce the escrow or the vault address.
	ErrAuthorityMismatch = errors.Register(1011, "authority mismatch")

	// ErrAssetMismatch is returned when an asset type supplied by the
	// caller does not match the escrow record.
	ErrAssetMismatch = errors.Register(1012, "asset mismatch")

	// ErrDepositFailed is returned when assets cannot be paid into the
	// vault or to the maker.
	ErrDepositFailed = errors.Register(1013, "deposit failed")

	// ErrWithdrawFailed is returned when the vault cannot be paid out to
	// the taker or closed afterwards.
	ErrWithdrawFailed = errors.Register(1014, "withdraw failed")

	// ErrRefundFailed is returned when the vault cannot be paid back to
	// the maker or closed afterwards.
	ErrRefundFailed = errors.Register(1015, "refund failed")

	// ErrRecordNotFound is returned when the escrow record does not
	// exist, either because it was never made or because it is closed.
	ErrRecordNotFound = errors.Register(1016, "escrow record not found")
)

// failed classifies err as kind. err stays in the chain, so both kinds
// match.
func failed(kind *errors.Error, err error) error {
	return errors.WithKind(kind, err)
}
