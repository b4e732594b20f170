package orm

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int64 `cbor:"1,keyasint"`
}

func (c *counter) Marshal() ([]byte, error) { return cbor.Marshal(c) }
func (c *counter) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, c) }
func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrAmount, "negative count")
	}
	return nil
}

func TestBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt")

	var got counter
	err := b.One(db, []byte("a"), &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 7}))
	require.NoError(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, int64(7), got.Count)

	err = b.Put(db, []byte("b"), &counter{Count: -1})
	assert.True(t, errors.ErrAmount.Is(err))

	has, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, b.Delete(db, []byte("a")))
	err = b.Delete(db, []byte("a"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestBucketCorruptModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt")
	require.NoError(t, db.Set(b.DBKey([]byte("x")), []byte{0xff, 0x01}))

	var got counter
	err := b.One(db, []byte("x"), &got)
	assert.True(t, errors.ErrModel.Is(err))
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt")
	other := NewBucket("cnu")
	require.NoError(t, b.Put(db, []byte("aa"), &counter{Count: 1}))
	require.NoError(t, b.Put(db, []byte("ab"), &counter{Count: 2}))
	require.NoError(t, b.Put(db, []byte("b"), &counter{Count: 3}))
	require.NoError(t, other.Put(db, []byte("aa"), &counter{Count: 4}))

	res, err := b.Query(db, synto.KeyQueryMod, []byte("aa"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("cnt:aa"), res[0].Key)

	res, err = b.Query(db, synto.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = b.Query(db, synto.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []byte("cnt:aa"), res[0].Key)
	assert.Equal(t, []byte("cnt:ab"), res[1].Key)

	res, err = b.Query(db, synto.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = b.Query(db, "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("no") })
	assert.Panics(t, func() { NewBucket("Upper") })
	assert.Equal(t, "acct", NewBucket("acct").Name())
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixEnd([]byte("a")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
