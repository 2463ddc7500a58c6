package custodytest

import (
	"context"
	"fmt"

	"github.com/iov-one/custody"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
type Auth struct {
	// Signer represents an authentication of a single signer. When
	// authenticating all signers declared on this structure are
	// considered.
	Signer custody.Address

	// Signers represents an authentication of multiple signers.
	Signers []custody.Address
}

func (a *Auth) GetAddresses(custody.Context) []custody.Address {
	if a.Signer != nil {
		return append([]custody.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetAddresses returns a context that authenticates given signers.
func (a *CtxAuth) SetAddresses(ctx custody.Context, signers ...custody.Address) custody.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetAddresses(ctx custody.Context) []custody.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]custody.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []custody.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
