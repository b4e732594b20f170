package swap

import "github.com/iov-one/synto/errors"

// x/swap reserves 6000 ~ 6009.
var (
	ErrNotTheOwner = errors.Register(6000, "not the owner")
	ErrUnderflow   = errors.Register(6001, "arithmetic underflow")
)
