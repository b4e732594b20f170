package sigs

import "github.com/iov-one/synto/errors"

// x/sigs reserves 20 ~ 29.
var (
	ErrInvalidSequence  = errors.Register(20, "invalid sequence number")
	ErrInvalidSignature = errors.Register(21, "invalid signature")
)
