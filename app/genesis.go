package app

import (
	"github.com/iov-one/synto"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...synto.Initializer) synto.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []synto.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error. The order matters, the bank configuration
// must be loaded before any program creates rent exempt accounts.
func (c chainInitializer) FromGenesis(opts synto.Options, kv synto.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
