package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/synto"
	"github.com/iov-one/synto/app"
	"github.com/iov-one/synto/commands/server"
	"github.com/iov-one/synto/crypto"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store/iavl"
	"github.com/iov-one/synto/x/bank"
	"github.com/iov-one/synto/x/sigs"
	"github.com/iov-one/synto/x/swap"
	"github.com/iov-one/synto/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	chainID       = "synto-app-test"
	fee           = 5000
	startLamports = 1000000000000
	escrowRent    = 1231920
	tokenRent     = 2039280
)

type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
	seqs   map[string]int64
}

func newTestChain(t *testing.T, collector, mint synto.Address, wallets ...synto.Address) *testChain {
	t.Helper()
	gen := genesis{
		Conf: genesisConf{Bank: bank.DefaultConfiguration(collector)},
		Token: token.Genesis{
			Mints: []token.GenesisMint{{Address: mint, Decimals: 6}},
		},
	}
	for _, w := range wallets {
		gen.Bank = append(gen.Bank, bank.GenesisAccount{Address: w, Lamports: startLamports})
		gen.Token.Mints[0].Balances = append(gen.Token.Mints[0].Balances, token.GenesisBalance{Wallet: w})
	}
	// the first wallet holds the tokens
	gen.Token.Mints[0].Balances[0].Amount = 1000000
	appState, err := json.Marshal(gen)
	require.NoError(t, err)

	a := Application(Name, Stack(), TxDecoder, iavl.NewMemCommitStore(), true)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: appState})
	a.Commit()
	return &testChain{t: t, app: a, seqs: make(map[string]int64)}
}

// sign builds the signed transaction bytes with the next sequence of key.
func (c *testChain) sign(key *crypto.PrivateKey, ins *synto.Instruction) []byte {
	c.t.Helper()
	signer := key.Address().String()
	tx := &Tx{Instruction: ins}
	require.NoError(c.t, tx.Sign(key, chainID, c.seqs[signer]))
	c.seqs[signer]++
	raw, err := tx.Marshal()
	require.NoError(c.t, err)
	return raw
}

// commit runs the transaction through CheckTx and a full block. Both
// must agree on the outcome.
func (c *testChain) commit(raw []byte) abci.ResponseDeliverTx {
	c.t.Helper()
	check := c.app.CheckTx(raw)

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: c.height, Time: time.Now()},
	})
	res := c.app.DeliverTx(raw)
	c.app.EndBlock(abci.RequestEndBlock{})
	c.app.Commit()
	require.Equal(c.t, check.Code, res.Code, "check: %s, deliver: %s", check.Log, res.Log)
	return res
}

func (c *testChain) query(path string, data []byte, dest synto.Persistent) {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	require.NoError(c.t, app.UnmarshalOneResult(res.Value, dest))
}

func (c *testChain) lamports(addr synto.Address) uint64 {
	c.t.Helper()
	var acct bank.Account
	c.query("/accounts", addr, &acct)
	return acct.Lamports
}

func (c *testChain) tokens(wallet, mint synto.Address) uint64 {
	c.t.Helper()
	ata, _, err := token.AssociatedAddress(wallet, mint)
	require.NoError(c.t, err)
	var acct token.TokenAccount
	c.query("/tokens/accounts", ata, &acct)
	return acct.Amount
}

func TestSwapChain(t *testing.T) {
	alice := crypto.GenPrivateKey()
	bob := crypto.GenPrivateKey()
	collector := crypto.GenPrivateKey().Address()
	mint := crypto.GenPrivateKey().Address()
	c := newTestChain(t, collector, mint, alice.Address(), bob.Address())

	ins, err := swap.NewInitializeInstruction(alice.Address())
	require.NoError(t, err)
	res := c.commit(c.sign(alice, ins))
	require.Equal(t, uint32(0), res.Code, res.Log)
	escrow := synto.Address(res.Data)
	wantEscrow, _, err := swap.FindEscrowAddress(alice.Address())
	require.NoError(t, err)
	assert.Equal(t, wantEscrow, escrow)

	ins, err = swap.NewDepositInstruction(escrow, alice.Address(), mint, 1000000)
	require.NoError(t, err)
	res = c.commit(c.sign(alice, ins))
	require.Equal(t, uint32(0), res.Code, res.Log)

	ins, err = swap.NewSwapInstruction(escrow, bob.Address(), mint, 1000000)
	require.NoError(t, err)
	swapTx := c.sign(bob, ins)
	res = c.commit(swapTx)
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, "tokens sent 130000\ntokens in escrow 870000", res.Log)

	// a replayed transaction is refused
	badSeq, _ := errors.ABCIInfo(sigs.ErrInvalidSequence, false)
	assert.Equal(t, badSeq, c.app.CheckTx(swapTx).Code)

	// a stranger cannot withdraw, and pays the fee anyway
	res = c.commit(c.sign(bob, swap.NewWithdrawInstruction(escrow, bob.Address())))
	notOwner, _ := errors.ABCIInfo(swap.ErrNotTheOwner, false)
	assert.Equal(t, notOwner, res.Code)

	res = c.commit(c.sign(alice, swap.NewWithdrawInstruction(escrow, alice.Address())))
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, fmt.Sprintf("withdrawn %d", 1000000), res.Log)

	var record swap.Escrow
	c.query("/escrows", escrow, &record)
	assert.Equal(t, uint64(870000), record.TokenBalance)
	assert.Equal(t, alice.Address(), record.Owner)

	assert.Equal(t, uint64(escrowRent), c.lamports(escrow))
	assert.Equal(t, uint64(5*fee), c.lamports(collector))
	assert.Equal(t, uint64(startLamports-3*fee-escrowRent-tokenRent+1000000), c.lamports(alice.Address()))
	assert.Equal(t, uint64(startLamports-2*fee-1000000), c.lamports(bob.Address()))
	assert.Equal(t, uint64(0), c.tokens(alice.Address(), mint))
	assert.Equal(t, uint64(130000), c.tokens(bob.Address(), mint))
	assert.Equal(t, uint64(870000), c.tokens(escrow, mint))
}

func TestUnsignedInstructionIsRejected(t *testing.T) {
	alice := crypto.GenPrivateKey()
	c := newTestChain(t, crypto.GenPrivateKey().Address(), crypto.GenPrivateKey().Address(), alice.Address())

	ins, err := swap.NewInitializeInstruction(alice.Address())
	require.NoError(t, err)
	raw, err := (&Tx{Instruction: ins}).Marshal()
	require.NoError(t, err)

	unauthorized, _ := errors.ABCIInfo(errors.ErrUnauthorized, false)
	assert.Equal(t, unauthorized, c.app.CheckTx(raw).Code)
	assert.Equal(t, unauthorized, c.app.DeliverTx(raw).Code)
}

func TestGenerateApp(t *testing.T) {
	home := t.TempDir()
	conf := server.DefaultConfig()
	for _, backend := range []string{server.BackendIAVL, server.BackendPebble} {
		conf.Backend = backend
		conf.DBName = backend + ".db"
		application, err := GenerateApp(home, conf, log.NewNopLogger())
		require.NoError(t, err)
		info := application.Info(abci.RequestInfo{})
		assert.Equal(t, Name, info.Data)
		assert.Equal(t, int64(0), info.LastBlockHeight)
	}

	_, err := CommitKVStore("rocksdb", home)
	assert.True(t, errors.ErrInput.Is(err))
}
