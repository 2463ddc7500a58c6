package token

import "github.com/iov-one/custody/errors"

// ABCI response codes. token takes 1030-1040.
var (
	// ErrMintMismatch is returned when an account holds a different asset
	// type than the operation requires.
	ErrMintMismatch = errors.Register(1030, "mint mismatch")
)
