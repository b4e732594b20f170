package token

import (
	"encoding/binary"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

const (
	// MintSize is the packed size of a Mint.
	MintSize = 82
	// AccountSize is the packed size of a TokenAccount.
	AccountSize = 165
)

// AccountState of a token account.
type AccountState uint8

const (
	StateUninitialized AccountState = iota
	StateInitialized
	StateFrozen
)

// Mint describes a token.
type Mint struct {
	// MintAuthority may mint new tokens. Nil once the supply is fixed.
	MintAuthority synto.Address
	Supply        uint64
	Decimals      uint8
	IsInitialized bool
	// FreezeAuthority may freeze token accounts. Optional.
	FreezeAuthority synto.Address
}

// TokenAccount holds tokens of a single mint.
type TokenAccount struct {
	Mint            synto.Address
	Owner           synto.Address
	Amount          uint64
	Delegate        synto.Address
	State           AccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  synto.Address
}

// IsFrozen returns true if the account is frozen.
func (a *TokenAccount) IsFrozen() bool {
	return a.State == StateFrozen
}

// Marshal packs the mint into its MintSize layout.
func (m *Mint) Marshal() ([]byte, error) {
	b := make([]byte, MintSize)
	putAddressOption(b[0:36], m.MintAuthority)
	binary.LittleEndian.PutUint64(b[36:44], m.Supply)
	b[44] = m.Decimals
	b[45] = boolByte(m.IsInitialized)
	putAddressOption(b[46:82], m.FreezeAuthority)
	return b, nil
}

// Unmarshal reads the MintSize layout.
func (m *Mint) Unmarshal(b []byte) error {
	if len(b) != MintSize {
		return errors.Wrapf(errors.ErrModel, "mint is %d bytes", len(b))
	}
	var err error
	if m.MintAuthority, err = addressOption(b[0:36]); err != nil {
		return errors.Wrap(err, "mint authority")
	}
	m.Supply = binary.LittleEndian.Uint64(b[36:44])
	m.Decimals = b[44]
	if m.IsInitialized, err = byteBool(b[45]); err != nil {
		return err
	}
	if m.FreezeAuthority, err = addressOption(b[46:82]); err != nil {
		return errors.Wrap(err, "freeze authority")
	}
	return nil
}

// Marshal packs the account into its AccountSize layout.
func (a *TokenAccount) Marshal() ([]byte, error) {
	b := make([]byte, AccountSize)
	copy(b[0:32], a.Mint)
	copy(b[32:64], a.Owner)
	binary.LittleEndian.PutUint64(b[64:72], a.Amount)
	putAddressOption(b[72:108], a.Delegate)
	b[108] = byte(a.State)
	if a.IsNative != nil {
		binary.LittleEndian.PutUint32(b[109:113], 1)
		binary.LittleEndian.PutUint64(b[113:121], *a.IsNative)
	}
	binary.LittleEndian.PutUint64(b[121:129], a.DelegatedAmount)
	putAddressOption(b[129:165], a.CloseAuthority)
	return b, nil
}

// Unmarshal reads the AccountSize layout.
func (a *TokenAccount) Unmarshal(b []byte) error {
	if len(b) != AccountSize {
		return errors.Wrapf(errors.ErrModel, "token account is %d bytes", len(b))
	}
	var err error
	a.Mint = synto.NewAddress(b[0:32])
	a.Owner = synto.NewAddress(b[32:64])
	a.Amount = binary.LittleEndian.Uint64(b[64:72])
	if a.Delegate, err = addressOption(b[72:108]); err != nil {
		return errors.Wrap(err, "delegate")
	}
	if b[108] > byte(StateFrozen) {
		return errors.Wrapf(errors.ErrModel, "account state %d", b[108])
	}
	a.State = AccountState(b[108])
	switch tag := binary.LittleEndian.Uint32(b[109:113]); tag {
	case 0:
		a.IsNative = nil
	case 1:
		v := binary.LittleEndian.Uint64(b[113:121])
		a.IsNative = &v
	default:
		return errors.Wrapf(errors.ErrModel, "native option tag %d", tag)
	}
	a.DelegatedAmount = binary.LittleEndian.Uint64(b[121:129])
	if a.CloseAuthority, err = addressOption(b[129:165]); err != nil {
		return errors.Wrap(err, "close authority")
	}
	return nil
}

// putAddressOption writes a 4 byte tag followed by the address.
func putAddressOption(b []byte, a synto.Address) {
	if len(a) == 0 {
		return
	}
	binary.LittleEndian.PutUint32(b[0:4], 1)
	copy(b[4:36], a)
}

func addressOption(b []byte) (synto.Address, error) {
	switch tag := binary.LittleEndian.Uint32(b[0:4]); tag {
	case 0:
		return nil, nil
	case 1:
		return synto.NewAddress(b[4:36]), nil
	default:
		return nil, errors.Wrapf(errors.ErrModel, "option tag %d", tag)
	}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(errors.ErrModel, "bool %d", b)
	}
}
