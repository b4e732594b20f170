package token

import (
	"github.com/iov-one/synto"
)

var (
	// ProgramID is the token program.
	ProgramID = synto.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	// AssociatedProgramID is the associated token account program.
	AssociatedProgramID = synto.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// AssociatedAddress returns the canonical token account of wallet for mint.
func AssociatedAddress(wallet, mint synto.Address) (synto.Address, uint8, error) {
	return synto.FindProgramAddress([][]byte{wallet, ProgramID, mint}, AssociatedProgramID)
}
