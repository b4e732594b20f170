package swap

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/token"
)

// Instruction names, hashed into the discriminator leading the data.
const (
	initializeInstruction = "initialize"
	depositInstruction    = "deposit"
	swapInstruction       = "swap"
	withdrawInstruction   = "withdraw"
)

// InitializeMsg creates the escrow of Signer.
type InitializeMsg struct {
	Escrow synto.Address
	Signer synto.Address
}

// DepositMsg moves Amount tokens from the signer to the vault.
type DepositMsg struct {
	Escrow           synto.Address
	UserTokenAccount synto.Address
	Vault            synto.Address
	Signer           synto.Address
	Mint             synto.Address
	Amount           uint64
}

// SwapMsg buys tokens from the vault for PayerAmount lamports.
type SwapMsg struct {
	Escrow           synto.Address
	UserTokenAccount synto.Address
	Vault            synto.Address
	Signer           synto.Address
	Mint             synto.Address
	PayerAmount      uint64
}

// WithdrawMsg moves the collected lamports to the owner.
type WithdrawMsg struct {
	Escrow synto.Address
	Signer synto.Address
}

func instructionData(name string, args ...uint64) []byte {
	data := make([]byte, discriminatorSize+8*len(args))
	copy(data, discriminator("global", name))
	for i, a := range args {
		binary.LittleEndian.PutUint64(data[discriminatorSize+8*i:], a)
	}
	return data
}

// NewInitializeInstruction creates the escrow of owner. Accounts: [escrow
// (writable), signer (signer, writable), system program].
func NewInitializeInstruction(owner synto.Address) (*synto.Instruction, error) {
	escrow, _, err := FindEscrowAddress(owner)
	if err != nil {
		return nil, err
	}
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(escrow, false),
			synto.NewWritableAccountMeta(owner, true),
			synto.NewAccountMeta(bank.SystemProgramID),
		},
		Data: instructionData(initializeInstruction),
	}, nil
}

// NewDepositInstruction deposits amount tokens of mint held by signer into
// the vault of escrow. Accounts: [escrow (writable), user token account
// (writable), vault (writable), signer (signer, writable), mint, token
// program, associated token program, system program].
func NewDepositInstruction(escrow, signer, mint synto.Address, amount uint64) (*synto.Instruction, error) {
	user, vault, err := tokenAccounts(escrow, signer, mint)
	if err != nil {
		return nil, err
	}
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(escrow, false),
			synto.NewWritableAccountMeta(user, false),
			synto.NewWritableAccountMeta(vault, false),
			synto.NewWritableAccountMeta(signer, true),
			synto.NewAccountMeta(mint),
			synto.NewAccountMeta(token.ProgramID),
			synto.NewAccountMeta(token.AssociatedProgramID),
			synto.NewAccountMeta(bank.SystemProgramID),
		},
		Data: instructionData(depositInstruction, amount),
	}, nil
}

// NewSwapInstruction pays payerAmount lamports from signer to escrow for
// tokens of mint. Accounts: [escrow (writable), user token account
// (writable), vault (writable), signer (signer, writable), mint, token
// program, system program].
func NewSwapInstruction(escrow, signer, mint synto.Address, payerAmount uint64) (*synto.Instruction, error) {
	user, vault, err := tokenAccounts(escrow, signer, mint)
	if err != nil {
		return nil, err
	}
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(escrow, false),
			synto.NewWritableAccountMeta(user, false),
			synto.NewWritableAccountMeta(vault, false),
			synto.NewWritableAccountMeta(signer, true),
			synto.NewAccountMeta(mint),
			synto.NewAccountMeta(token.ProgramID),
			synto.NewAccountMeta(bank.SystemProgramID),
		},
		Data: instructionData(swapInstruction, payerAmount),
	}, nil
}

// NewWithdrawInstruction withdraws the lamports of escrow to signer.
// Accounts: [escrow (writable), signer (signer, writable), system program].
func NewWithdrawInstruction(escrow, signer synto.Address) *synto.Instruction {
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(escrow, false),
			synto.NewWritableAccountMeta(signer, true),
			synto.NewAccountMeta(bank.SystemProgramID),
		},
		Data: instructionData(withdrawInstruction),
	}
}

// tokenAccounts returns the associated token accounts of signer and escrow.
func tokenAccounts(escrow, signer, mint synto.Address) (user, vault synto.Address, err error) {
	if user, _, err = token.AssociatedAddress(signer, mint); err != nil {
		return nil, nil, err
	}
	if vault, _, err = token.AssociatedAddress(escrow, mint); err != nil {
		return nil, nil, err
	}
	return user, vault, nil
}

// instructionName returns the name of the instruction the data starts with.
func instructionName(data []byte) (string, error) {
	if len(data) < discriminatorSize {
		return "", errors.Wrap(errors.ErrMsg, "missing instruction discriminator")
	}
	for _, name := range []string{initializeInstruction, depositInstruction, swapInstruction, withdrawInstruction} {
		if bytes.Equal(data[:discriminatorSize], discriminator("global", name)) {
			return name, nil
		}
	}
	return "", errors.Wrapf(errors.ErrMsg, "unknown instruction %x", data[:discriminatorSize])
}

// accountRule is the expected declaration of an instruction account.
type accountRule struct {
	name     string
	signer   bool
	writable bool
	// program, if set, is the only address accepted
	program synto.Address
}

var accountRules = map[string][]accountRule{
	initializeInstruction: {
		{name: "escrow", writable: true},
		{name: "signer", signer: true, writable: true},
		{name: "system program", program: bank.SystemProgramID},
	},
	depositInstruction: {
		{name: "escrow", writable: true},
		{name: "user token account", writable: true},
		{name: "vault", writable: true},
		{name: "signer", signer: true, writable: true},
		{name: "mint"},
		{name: "token program", program: token.ProgramID},
		{name: "associated token program", program: token.AssociatedProgramID},
		{name: "system program", program: bank.SystemProgramID},
	},
	swapInstruction: {
		{name: "escrow", writable: true},
		{name: "user token account", writable: true},
		{name: "vault", writable: true},
		{name: "signer", signer: true, writable: true},
		{name: "mint"},
		{name: "token program", program: token.ProgramID},
		{name: "system program", program: bank.SystemProgramID},
	},
	withdrawInstruction: {
		{name: "escrow", writable: true},
		{name: "signer", signer: true, writable: true},
		{name: "system program", program: bank.SystemProgramID},
	},
}

// argCount is the number of u64 arguments following the discriminator.
var argCount = map[string]int{
	depositInstruction: 1,
	swapInstruction:    1,
}

// decodeInstruction checks the declared accounts and arguments of a swap
// program instruction and returns its message.
func decodeInstruction(ins *synto.Instruction) (interface{}, error) {
	name, err := instructionName(ins.Data)
	if err != nil {
		return nil, err
	}
	if want := discriminatorSize + 8*argCount[name]; len(ins.Data) != want {
		return nil, errors.Wrapf(errors.ErrMsg, "%s data is %d bytes, want %d", name, len(ins.Data), want)
	}
	rules := accountRules[name]
	if len(ins.Accounts) < len(rules) {
		return nil, errors.Wrapf(errors.ErrMsg, "%s wants %d accounts, got %d", name, len(rules), len(ins.Accounts))
	}
	acc := ins.Accounts
	for i, r := range rules {
		switch {
		case r.signer && !acc[i].IsSigner:
			return nil, errors.Wrapf(errors.ErrMsg, "%s must sign", r.name)
		case r.writable && !acc[i].IsWritable:
			return nil, errors.Wrapf(errors.ErrMsg, "%s must be writable", r.name)
		case r.program != nil && !acc[i].Address.Equals(r.program):
			return nil, errors.Wrapf(errors.ErrMsg, "%s is %s, want %s", r.name, acc[i].Address, r.program)
		}
	}

	switch name {
	case initializeInstruction:
		return &InitializeMsg{Escrow: acc[0].Address, Signer: acc[1].Address}, nil
	case depositInstruction:
		return &DepositMsg{
			Escrow:           acc[0].Address,
			UserTokenAccount: acc[1].Address,
			Vault:            acc[2].Address,
			Signer:           acc[3].Address,
			Mint:             acc[4].Address,
			Amount:           binary.LittleEndian.Uint64(ins.Data[discriminatorSize:]),
		}, nil
	case swapInstruction:
		return &SwapMsg{
			Escrow:           acc[0].Address,
			UserTokenAccount: acc[1].Address,
			Vault:            acc[2].Address,
			Signer:           acc[3].Address,
			Mint:             acc[4].Address,
			PayerAmount:      binary.LittleEndian.Uint64(ins.Data[discriminatorSize:]),
		}, nil
	default:
		return &WithdrawMsg{Escrow: acc[0].Address, Signer: acc[1].Address}, nil
	}
}
