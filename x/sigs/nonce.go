package sigs

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
// Any address can contain a nonce. In practice you always want to acquire a
// nonce for the signer. You can get the signers address by calling
//   address := <crypto.PrivateKey>.Address()
func NextNonce(db synto.ReadOnlyKVStore, signer synto.Address) (int64, error) {
	u, err := NewBucket().GetOrCreate(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	return u.Sequence, nil
}
