package synto

import (
	"github.com/iov-one/synto/errors"
)

// Marshaller is anything that can be represented in binary
//
// Marshal may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is something a Handler can process. Each handler must
// register the path it wants to handle.
type Msg interface {
	// Path returns the routing path for this message.
	Path() string

	// Validate performs the stateless checks.
	Validate() error
}

// Tx represents a transaction from the client. It carries a single
// instruction together with whatever data the decorators need, such as
// signatures.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// AccountMeta declares an account an instruction operates on.
type AccountMeta struct {
	Address    Address `cbor:"1,keyasint" json:"address"`
	IsSigner   bool    `cbor:"2,keyasint" json:"is_signer"`
	IsWritable bool    `cbor:"3,keyasint" json:"is_writable"`
}

// NewAccountMeta is a read-only account that does not sign.
func NewAccountMeta(addr Address) AccountMeta {
	return AccountMeta{Address: addr}
}

// NewWritableAccountMeta is a writable account that may sign.
func NewWritableAccountMeta(addr Address, signer bool) AccountMeta {
	return AccountMeta{Address: addr, IsWritable: true, IsSigner: signer}
}

// Instruction invokes a program with a list of accounts and opaque
// argument data.
type Instruction struct {
	Program  Address       `cbor:"1,keyasint" json:"program"`
	Accounts []AccountMeta `cbor:"2,keyasint" json:"accounts"`
	Data     []byte        `cbor:"3,keyasint" json:"data"`
}

var _ Msg = (*Instruction)(nil)

// Path routes the instruction to the handler registered for its program.
func (i *Instruction) Path() string {
	return ProgramPath(i.Program)
}

// Validate checks every declared address.
func (i *Instruction) Validate() error {
	if err := i.Program.Validate(); err != nil {
		return errors.Wrap(err, "program")
	}
	for n, a := range i.Accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}

// Account returns the n-th declared account.
func (i *Instruction) Account(n int) (AccountMeta, error) {
	if n < 0 || n >= len(i.Accounts) {
		return AccountMeta{}, errors.Wrapf(errors.ErrMsg, "missing account %d", n)
	}
	return i.Accounts[n], nil
}

// ProgramPath is the router path of a program.
func ProgramPath(program Address) string {
	return "program/" + program.String()
}

// LoadInstruction returns the instruction carried by the transaction.
func LoadInstruction(tx Tx) (*Instruction, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	ins, ok := msg.(*Instruction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "want *Instruction, got %T", msg)
	}
	if err := ins.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid instruction")
	}
	return ins, nil
}
