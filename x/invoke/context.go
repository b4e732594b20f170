/*
Package invoke lets a program sign for the addresses it derives.

A program derived address has no private key. When a program calls into
another one, for example to move tokens out of a vault it controls, it
presents the seeds of the address together with its own program id. The
address is derived again and added to the context as a signer, which the
Authenticate type exposes to the callee.
*/
package invoke

import (
	"context"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x"
)

type contextKey int // local to the invoke module

const (
	contextKeySigners contextKey = iota
)

// WithSigner returns a context in which the address derived from seeds and
// program has signed. The program must be the one currently executing,
// callers are trusted to pass their own id.
func WithSigner(ctx synto.Context, program synto.Address, seeds ...[]byte) (synto.Context, synto.Address, error) {
	addr, err := synto.CreateProgramAddress(seeds, program)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot sign for derived address")
	}
	prev := Authenticate{}.Signers(ctx)
	signers := make([]synto.Address, 0, len(prev)+1)
	signers = append(signers, prev...)
	signers = append(signers, addr)
	return context.WithValue(ctx, contextKeySigners, signers), addr, nil
}

// Authenticate implements x.Authenticator and provides authentication of
// program derived addresses.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// Signers returns the derived addresses that signed the current Context.
// May be nil
func (a Authenticate) Signers(ctx synto.Context) []synto.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]synto.Address)
	return val
}

// HasAddress returns true if the given derived address signed.
func (a Authenticate) HasAddress(ctx synto.Context, addr synto.Address) bool {
	for _, s := range a.Signers(ctx) {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}
