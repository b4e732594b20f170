package sigs

import (
	"context"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx synto.Context, signers []synto.Address) synto.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// Signers returns who signed the current Context.
// May be empty
func (a Authenticate) Signers(ctx synto.Context) []synto.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]synto.Address)
	return val
}

// HasAddress returns true if the address signed the current Context.
func (a Authenticate) HasAddress(ctx synto.Context, addr synto.Address) bool {
	for _, s := range a.Signers(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
