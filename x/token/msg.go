package token

import (
	"encoding/binary"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/x/bank"
)

// Token program instruction tags, the first byte of the instruction data.
const (
	tagTransfer      uint8 = 3
	tagMintTo        uint8 = 7
	tagFreezeAccount uint8 = 10
	tagThawAccount   uint8 = 11
)

// Associated token account program instruction tags. An empty data is
// treated as tagCreate.
const (
	tagCreate           uint8 = 0
	tagCreateIdempotent uint8 = 1
)

// TransferMsg moves tokens between two accounts of the same mint.
type TransferMsg struct {
	Source    synto.Address
	Dest      synto.Address
	Authority synto.Address
	Amount    uint64
}

// MintToMsg issues new tokens.
type MintToMsg struct {
	Mint      synto.Address
	Dest      synto.Address
	Authority synto.Address
	Amount    uint64
}

// SetFrozenMsg freezes or thaws a token account.
type SetFrozenMsg struct {
	Account   synto.Address
	Mint      synto.Address
	Authority synto.Address
	Frozen    bool
}

// CreateAssociatedMsg creates the associated token account of a wallet.
type CreateAssociatedMsg struct {
	Payer      synto.Address
	Associated synto.Address
	Wallet     synto.Address
	Mint       synto.Address
	Idempotent bool
}

func amountData(tag uint8, amount uint64) []byte {
	data := make([]byte, 9)
	data[0] = tag
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

// NewTransferInstruction builds a token transfer. Accounts: [source
// (writable), dest (writable), authority (signer)].
func NewTransferInstruction(source, dest, authority synto.Address, amount uint64) *synto.Instruction {
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(source, false),
			synto.NewWritableAccountMeta(dest, false),
			{Address: authority, IsSigner: true},
		},
		Data: amountData(tagTransfer, amount),
	}
}

// NewMintToInstruction builds a mint_to. Accounts: [mint (writable), dest
// (writable), authority (signer)].
func NewMintToInstruction(mint, dest, authority synto.Address, amount uint64) *synto.Instruction {
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(mint, false),
			synto.NewWritableAccountMeta(dest, false),
			{Address: authority, IsSigner: true},
		},
		Data: amountData(tagMintTo, amount),
	}
}

// NewSetFrozenInstruction builds a freeze_account or thaw_account.
// Accounts: [account (writable), mint, authority (signer)].
func NewSetFrozenInstruction(account, mint, authority synto.Address, frozen bool) *synto.Instruction {
	tag := tagThawAccount
	if frozen {
		tag = tagFreezeAccount
	}
	return &synto.Instruction{
		Program: ProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(account, false),
			synto.NewAccountMeta(mint),
			{Address: authority, IsSigner: true},
		},
		Data: []byte{tag},
	}
}

// NewCreateAssociatedInstruction builds an associated account creation.
// Accounts: [payer (signer, writable), associated (writable), wallet, mint,
// system program, token program].
func NewCreateAssociatedInstruction(payer, wallet, mint synto.Address, idempotent bool) (*synto.Instruction, error) {
	addr, _, err := AssociatedAddress(wallet, mint)
	if err != nil {
		return nil, err
	}
	tag := tagCreate
	if idempotent {
		tag = tagCreateIdempotent
	}
	return &synto.Instruction{
		Program: AssociatedProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(payer, true),
			synto.NewWritableAccountMeta(addr, false),
			synto.NewAccountMeta(wallet),
			synto.NewAccountMeta(mint),
			synto.NewAccountMeta(bank.SystemProgramID),
			synto.NewAccountMeta(ProgramID),
		},
		Data: []byte{tag},
	}, nil
}

// accounts returns the first n declared accounts.
func accounts(ins *synto.Instruction, n int) ([]synto.AccountMeta, error) {
	if len(ins.Accounts) < n {
		return nil, errors.Wrapf(errors.ErrMsg, "want %d accounts, got %d", n, len(ins.Accounts))
	}
	return ins.Accounts[:n], nil
}

func decodeTokenInstruction(ins *synto.Instruction) (interface{}, error) {
	if len(ins.Data) == 0 {
		return nil, errors.Wrap(errors.ErrMsg, "missing instruction tag")
	}
	switch tag := ins.Data[0]; tag {
	case tagTransfer, tagMintTo:
		if len(ins.Data) != 9 {
			return nil, errors.Wrapf(errors.ErrMsg, "instruction %d data is %d bytes", tag, len(ins.Data))
		}
		acc, err := accounts(ins, 3)
		if err != nil {
			return nil, err
		}
		if !acc[0].IsWritable || !acc[1].IsWritable {
			return nil, errors.Wrap(errors.ErrMsg, "token accounts must be writable")
		}
		amount := binary.LittleEndian.Uint64(ins.Data[1:])
		if tag == tagTransfer {
			return &TransferMsg{Source: acc[0].Address, Dest: acc[1].Address, Authority: acc[2].Address, Amount: amount}, nil
		}
		return &MintToMsg{Mint: acc[0].Address, Dest: acc[1].Address, Authority: acc[2].Address, Amount: amount}, nil
	case tagFreezeAccount, tagThawAccount:
		acc, err := accounts(ins, 3)
		if err != nil {
			return nil, err
		}
		if !acc[0].IsWritable {
			return nil, errors.Wrap(errors.ErrMsg, "token account must be writable")
		}
		return &SetFrozenMsg{Account: acc[0].Address, Mint: acc[1].Address, Authority: acc[2].Address, Frozen: tag == tagFreezeAccount}, nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown token instruction %d", tag)
	}
}

func decodeAssociatedInstruction(ins *synto.Instruction) (*CreateAssociatedMsg, error) {
	var idempotent bool
	switch {
	case len(ins.Data) == 0 || (len(ins.Data) == 1 && ins.Data[0] == tagCreate):
	case len(ins.Data) == 1 && ins.Data[0] == tagCreateIdempotent:
		idempotent = true
	default:
		return nil, errors.Wrap(errors.ErrMsg, "unknown associated account instruction")
	}
	acc, err := accounts(ins, 4)
	if err != nil {
		return nil, err
	}
	if !acc[0].IsSigner || !acc[0].IsWritable || !acc[1].IsWritable {
		return nil, errors.Wrap(errors.ErrMsg, "payer must sign and the new account must be writable")
	}
	return &CreateAssociatedMsg{
		Payer:      acc[0].Address,
		Associated: acc[1].Address,
		Wallet:     acc[2].Address,
		Mint:       acc[3].Address,
		Idempotent: idempotent,
	}, nil
}
