package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/syntotest"
	"github.com/iov-one/synto/syntotest/assert"
)

type MyConfig struct {
	Owner  synto.Address `cbor:"1,keyasint" json:"owner"`
	Number int64         `cbor:"2,keyasint" json:"number"`
	Text   string        `cbor:"3,keyasint" json:"text"`
}

func (c *MyConfig) Marshal() ([]byte, error) { return cbor.Marshal(c) }
func (c *MyConfig) Unmarshal(raw []byte) error { return cbor.Unmarshal(raw, c) }
func (c *MyConfig) GetOwner() synto.Address { return c.Owner }
func (c *MyConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrAmount, "number must not be negative")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *MyConfig
		WantSaveErr *errors.Error
	}{
		"all fields": {
			Conf: &MyConfig{Owner: syntotest.NewAddress(), Number: 852151421, Text: "foobar"},
		},
		"zero config": {
			Conf: &MyConfig{},
		},
		"invalid config cannot be saved": {
			Conf:        &MyConfig{Number: -1},
			WantSaveErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}
			var got MyConfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf.Number, got.Number)
			assert.Equal(t, tc.Conf.Text, got.Text)
			assert.Equal(t, len(tc.Conf.Owner), len(got.Owner))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got MyConfig
	err := Load(store.MemStore(), "mypkg", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	const genesis = `
		{
			"conf": {
				"mypkg": {"number": 321, "text": "hello"}
			}
		}
	`
	var opts synto.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "mypkg", &MyConfig{}))

	var got MyConfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, int64(321), got.Number)
	assert.Equal(t, "hello", got.Text)

	err := InitConfig(db, opts, "otherpkg", &MyConfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestUpdate(t *testing.T) {
	owner := syntotest.NewAddress()
	db := store.MemStore()
	assert.Nil(t, Save(db, "mypkg", &MyConfig{Owner: owner, Number: 1, Text: "one"}))

	auth := &syntotest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		Signers []synto.Address
		Patch   *MyConfig
		WantErr *errors.Error
		Want    MyConfig
	}{
		"owner patches a single field": {
			Signers: []synto.Address{owner},
			Patch:   &MyConfig{Number: 2},
			Want:    MyConfig{Owner: owner, Number: 2, Text: "one"},
		},
		"stranger cannot patch": {
			Signers: []synto.Address{syntotest.NewAddress()},
			Patch:   &MyConfig{Number: 3},
			WantErr: errors.ErrUnauthorized,
			Want:    MyConfig{Owner: owner, Number: 1, Text: "one"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cache := db.CacheWrap()
			ctx := auth.SetSigners(context.Background(), tc.Signers...)
			var conf MyConfig
			err := Update(ctx, cache, auth, "mypkg", &conf, tc.Patch)
			assert.IsErr(t, tc.WantErr, err)

			var got MyConfig
			assert.Nil(t, Load(cache, "mypkg", &got))
			assert.Equal(t, tc.Want.Number, got.Number)
			assert.Equal(t, tc.Want.Text, got.Text)
			assert.Equal(t, true, tc.Want.Owner.Equals(got.Owner))
		})
	}
}
