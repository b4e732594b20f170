package x

import (
	"github.com/iov-one/synto"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// such as program derived signers.
type Authenticator interface {
	// Signers reveals all addresses that authorized this instruction,
	// in the order they were provided.
	Signers(synto.Context) []synto.Address
	// HasAddress checks if the address authorized this instruction.
	HasAddress(synto.Context, synto.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// Signers combines the signers of all Authenticators, skipping duplicates.
func (m MultiAuth) Signers(ctx synto.Context) []synto.Address {
	var res []synto.Address
	for _, impl := range m.impls {
		for _, a := range impl.Signers(ctx) {
			if !contains(res, a) {
				res = append(res, a)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx synto.Context, addr synto.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil. The main
// signer pays the transaction fee.
func MainSigner(ctx synto.Context, auth Authenticator) synto.Address {
	signers := auth.Signers(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx synto.Context, auth Authenticator, required []synto.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

func contains(list []synto.Address, a synto.Address) bool {
	for _, l := range list {
		if l.Equals(a) {
			return true
		}
	}
	return false
}
