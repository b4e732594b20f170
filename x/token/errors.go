package token

import "github.com/iov-one/synto/errors"

// x/token reserves 300 ~ 309.
var (
	ErrFrozen        = errors.Register(300, "account is frozen")
	ErrMintMismatch  = errors.Register(301, "account not associated with this mint")
	ErrOwnerMismatch = errors.Register(302, "owner does not match")
	ErrUninitialized = errors.Register(303, "account not initialized")
)
