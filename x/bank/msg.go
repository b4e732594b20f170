package bank

import (
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
)

// System program instruction tags, a little endian uint32 prefix of the
// instruction data.
const (
	tagTransfer            uint32 = 2
	tagUpdateConfiguration uint32 = 0x100
)

// TransferMsg moves lamports between two wallets.
type TransferMsg struct {
	From     synto.Address
	To       synto.Address
	Lamports uint64
}

// UpdateConfigurationMsg patches the bank configuration.
type UpdateConfigurationMsg struct {
	Owner synto.Address
	Patch *Configuration
}

// NewTransferInstruction builds a system transfer. Accounts: [from (signer,
// writable), to (writable)].
func NewTransferInstruction(from, to synto.Address, lamports uint64) *synto.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data, tagTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	return &synto.Instruction{
		Program: SystemProgramID,
		Accounts: []synto.AccountMeta{
			synto.NewWritableAccountMeta(from, true),
			synto.NewWritableAccountMeta(to, false),
		},
		Data: data,
	}
}

// NewUpdateConfigurationInstruction builds a configuration patch signed by
// the configuration owner. Accounts: [owner (signer)].
func NewUpdateConfigurationInstruction(owner synto.Address, patch *Configuration) (*synto.Instruction, error) {
	raw, err := cbor.Marshal(patch)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	data := make([]byte, 4, 4+len(raw))
	binary.LittleEndian.PutUint32(data, tagUpdateConfiguration)
	return &synto.Instruction{
		Program:  SystemProgramID,
		Accounts: []synto.AccountMeta{{Address: owner, IsSigner: true}},
		Data:     append(data, raw...),
	}, nil
}

// decodeInstruction returns one of the message types of this package.
func decodeInstruction(ins *synto.Instruction) (interface{}, error) {
	if !ins.Program.Equals(SystemProgramID) {
		return nil, errors.Wrapf(errors.ErrMsg, "program %s", ins.Program)
	}
	if len(ins.Data) < 4 {
		return nil, errors.Wrap(errors.ErrMsg, "missing instruction tag")
	}
	switch tag := binary.LittleEndian.Uint32(ins.Data); tag {
	case tagTransfer:
		if len(ins.Data) != 12 {
			return nil, errors.Wrapf(errors.ErrMsg, "transfer data is %d bytes", len(ins.Data))
		}
		from, err := ins.Account(0)
		if err != nil {
			return nil, err
		}
		to, err := ins.Account(1)
		if err != nil {
			return nil, err
		}
		if !from.IsSigner || !from.IsWritable || !to.IsWritable {
			return nil, errors.Wrap(errors.ErrMsg, "transfer accounts must be writable and the source must sign")
		}
		return &TransferMsg{
			From:     from.Address,
			To:       to.Address,
			Lamports: binary.LittleEndian.Uint64(ins.Data[4:]),
		}, nil
	case tagUpdateConfiguration:
		owner, err := ins.Account(0)
		if err != nil {
			return nil, err
		}
		var patch Configuration
		if err := cbor.Unmarshal(ins.Data[4:], &patch); err != nil {
			return nil, errors.Wrapf(errors.ErrMsg, "configuration patch: %s", err)
		}
		return &UpdateConfigurationMsg{Owner: owner.Address, Patch: &patch}, nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown system instruction %d", tag)
	}
}
