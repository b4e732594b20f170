package client

import "github.com/iov-one/synto/errors"

// client reserves 500 ~ 509. These codes never come from the chain.
var (
	ErrNetwork = errors.Register(500, "network")
	ErrTimeout = errors.Register(501, "timeout")
)
