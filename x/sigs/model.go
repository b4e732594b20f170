package sigs

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/orm"
)

// BucketName is where we store the nonces
const BucketName = "nonce"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the replay protection state of a single signer.
type UserData struct {
	PubKey   synto.Address `cbor:"1,keyasint" json:"pubkey"`
	Sequence int64         `cbor:"2,keyasint" json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return cbor.Marshal(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, u)
}

func (u *UserData) Validate() error {
	if err := u.PubKey.Validate(); err != nil {
		return errors.Wrap(err, "pubkey")
	}
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Wrap(ErrInvalidSequence, "out of range")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket extends orm.Bucket with GetOrCreate
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName)}
}

// GetOrCreate loads the user data of given public key. A fresh record,
// starting its count at zero, is returned if there is none.
func (b Bucket) GetOrCreate(db synto.ReadOnlyKVStore, pubkey synto.Address) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{PubKey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save persists the user data under its public key.
func (b Bucket) Save(db synto.KVStore, u *UserData) error {
	return b.Put(db, u.PubKey, u)
}
