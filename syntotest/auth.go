package syntotest

import (
	"context"
	"fmt"

	"github.com/iov-one/synto"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates Signer and all of Others. Signer, when set, is the
// main signer and is returned first.
type Auth struct {
	Signer synto.Address
	Others []synto.Address
}

func (a *Auth) Signers(synto.Context) []synto.Address {
	if a.Signer != nil {
		return append([]synto.Address{a.Signer}, a.Others...)
	}
	return a.Others
}

func (a *Auth) HasAddress(ctx synto.Context, addr synto.Address) bool {
	for _, s := range a.Signers(ctx) {
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

// SetSigners returns a context carrying given signers.
func (a *CtxAuth) SetSigners(ctx synto.Context, signers ...synto.Address) synto.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) Signers(ctx synto.Context) []synto.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]synto.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []synto.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx synto.Context, addr synto.Address) bool {
	for _, s := range a.Signers(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
