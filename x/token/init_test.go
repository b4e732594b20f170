package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
	"github.com/iov-one/synto/x/bank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Test token initializer", t, func() {
		genesis := `
		{
			"token": {
				"mints": [
					{
						"address": "hex:0202020202020202020202020202020202020202020202020202020202020202",
						"decimals": 6,
						"balances": [
							{"wallet": "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", "amount": 5000000}
						]
					}
				]
			}
		}`
		var o synto.Options
		So(json.Unmarshal([]byte(genesis), &o), ShouldBeNil)

		db := store.MemStore()
		So(Initializer{}.FromGenesis(o, db), ShouldBeNil)

		banks := bank.NewController()
		ctrl := NewController(nil, banks)
		mint, err := synto.ParseAddress("hex:0202020202020202020202020202020202020202020202020202020202020202")
		So(err, ShouldBeNil)
		wallet, err := synto.ParseAddress("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
		So(err, ShouldBeNil)

		Convey("Mint has a fixed supply", func() {
			m, err := ctrl.Mint(db, mint)
			So(err, ShouldBeNil)
			So(m.Supply, ShouldEqual, 5000000)
			So(m.Decimals, ShouldEqual, 6)
			So(m.MintAuthority, ShouldBeNil)

			lamports, err := banks.Balance(db, mint)
			So(err, ShouldBeNil)
			So(lamports, ShouldEqual, 1461600)
		})

		Convey("Holder account is created rent exempt", func() {
			addr, _, err := AssociatedAddress(wallet, mint)
			So(err, ShouldBeNil)
			acct, err := ctrl.Account(db, addr)
			So(err, ShouldBeNil)
			So(acct.Amount, ShouldEqual, 5000000)
			So(acct.Owner.Equals(wallet), ShouldBeTrue)

			lamports, err := banks.Balance(db, addr)
			So(err, ShouldBeNil)
			So(lamports, ShouldEqual, 2039280)
		})

		Convey("Loading twice is rejected", func() {
			err := Initializer{}.FromGenesis(o, db)
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})
	})
}
