package app

import (
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/commands"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/x/swap"
)

// ExampleChainID is the chain the example transactions are signed for.
const ExampleChainID = "synto-testnet"

// Examples returns signed sample transactions of every swap instruction,
// to test client encodings against.
func Examples() []commands.Example {
	key, err := crypto.PrivateKeyFromSeed(make([]byte, 32))
	if err != nil {
		panic(err)
	}
	owner := key.Address()
	mint := synto.MustParseAddress("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	escrow, _, err := swap.FindEscrowAddress(owner)
	if err != nil {
		panic(err)
	}

	initialize, err := swap.NewInitializeInstruction(owner)
	if err != nil {
		panic(err)
	}
	deposit, err := swap.NewDepositInstruction(escrow, owner, mint, 870000)
	if err != nil {
		panic(err)
	}
	payout, err := swap.NewSwapInstruction(escrow, owner, mint, 1000000000)
	if err != nil {
		panic(err)
	}
	withdraw := swap.NewWithdrawInstruction(escrow, owner)

	instructions := []struct {
		name string
		ins  *synto.Instruction
	}{
		{"initialize_tx", initialize},
		{"deposit_tx", deposit},
		{"swap_tx", payout},
		{"withdraw_tx", withdraw},
	}
	var examples []commands.Example
	for seq, e := range instructions {
		tx := &Tx{Instruction: e.ins}
		if err := tx.Sign(key, ExampleChainID, int64(seq)); err != nil {
			panic(err)
		}
		examples = append(examples, commands.Example{Filename: e.name, Obj: tx})
	}
	return examples
}
