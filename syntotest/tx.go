package syntotest

import "github.com/iov-one/synto"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg synto.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ synto.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (synto.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message with a fixed route.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ synto.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
