package bank

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/orm"
)

// BucketName is where we store the accounts
const BucketName = "acct"

// SystemProgramID owns every wallet and creates new accounts.
var SystemProgramID = synto.MustParseAddress("11111111111111111111111111111111")

// Account is the state held at a single address.
type Account struct {
	Lamports uint64        `cbor:"1,keyasint" json:"lamports"`
	Owner    synto.Address `cbor:"2,keyasint" json:"owner"`
	Data     []byte        `cbor:"3,keyasint,omitempty" json:"data,omitempty"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return cbor.Marshal(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, a)
}

func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// IsSystem returns true for plain wallets, owned by the system program and
// holding no data.
func (a *Account) IsSystem() bool {
	return a.Owner.Equals(SystemProgramID) && len(a.Data) == 0
}

// Bucket stores accounts by their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket.
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName)}
}

// Get returns the account at addr, or nil if there is none.
func (b Bucket) Get(db synto.ReadOnlyKVStore, addr synto.Address) (*Account, error) {
	var a Account
	switch err := b.One(db, addr, &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the account at addr, or an empty system owned one.
func (b Bucket) GetOrCreate(db synto.ReadOnlyKVStore, addr synto.Address) (*Account, error) {
	a, err := b.Get(db, addr)
	if err != nil || a != nil {
		return a, err
	}
	return &Account{Owner: SystemProgramID}, nil
}

// Save persists the account. An account without lamports is purged, together
// with its data.
func (b Bucket) Save(db synto.KVStore, addr synto.Address, a *Account) error {
	if a.Lamports == 0 {
		has, err := b.Has(db, addr)
		if err != nil || !has {
			return err
		}
		return b.Delete(db, addr)
	}
	return b.Put(db, addr, a)
}
