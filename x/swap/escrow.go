package swap

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// ProgramID is the swap program.
var ProgramID = synto.MustParseAddress("BmWj213TczhVvEf9EndPP4mxNVRXDUAhfufT15wJAKpW")

// EscrowSize is the on-disk size of an escrow record.
const EscrowSize = discriminatorSize + synto.AddressLength + 8 + 1

const discriminatorSize = 8

// escrowSeed prefixes the seeds of every escrow address.
var escrowSeed = []byte("escrow")

var escrowDiscriminator = discriminator("account", "Escrow")

// discriminator identifies an instruction or an account type by the first
// eight bytes of sha256("<namespace>:<name>").
func discriminator(namespace, name string) []byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	return sum[:discriminatorSize]
}

// Escrow is the per-owner record of the tokens held in the vault.
type Escrow struct {
	// Owner created the escrow and is the only one allowed to withdraw.
	Owner synto.Address
	// TokenBalance is the number of tokens the vault holds for sale.
	TokenBalance uint64
	// Bump is the last seed of the escrow address.
	Bump uint8
}

var _ synto.Persistent = (*Escrow)(nil)

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	if err := e.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Marshal packs the escrow with its account discriminator.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	b := make([]byte, EscrowSize)
	copy(b, escrowDiscriminator)
	copy(b[8:40], e.Owner)
	binary.LittleEndian.PutUint64(b[40:48], e.TokenBalance)
	b[48] = e.Bump
	return b, nil
}

// Unmarshal reads an escrow written by Marshal.
func (e *Escrow) Unmarshal(b []byte) error {
	if len(b) != EscrowSize {
		return errors.Wrapf(errors.ErrModel, "escrow is %d bytes, want %d", len(b), EscrowSize)
	}
	if !bytes.Equal(b[:8], escrowDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not an escrow account")
	}
	e.Owner = synto.NewAddress(b[8:40])
	e.TokenBalance = binary.LittleEndian.Uint64(b[40:48])
	e.Bump = b[48]
	return nil
}

// EscrowAddress returns the escrow address of owner for a given bump.
func EscrowAddress(owner synto.Address, bump uint8) (synto.Address, error) {
	return synto.CreateProgramAddress(escrowSeeds(owner, bump), ProgramID)
}

// FindEscrowAddress returns the canonical escrow address of owner and its
// bump.
func FindEscrowAddress(owner synto.Address) (synto.Address, uint8, error) {
	return synto.FindProgramAddress([][]byte{escrowSeed, owner}, ProgramID)
}

func escrowSeeds(owner synto.Address, bump uint8) [][]byte {
	return [][]byte{escrowSeed, owner, {bump}}
}
