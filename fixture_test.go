package governance

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Azulo-app/platform-dao-governance/internal/oraclesim"
	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/store/memory"
	"github.com/Azulo-app/platform-dao-governance/store/sqlite"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var (
	testChainID      = big.NewInt(1337)
	testModuleAddr   = common.HexToAddress("0x000000000000000000000000000000000000a11c")
	testExecutorAddr = common.HexToAddress("0x000000000000000000000000000000000000e0e0")
	testOracleAddr   = common.HexToAddress("0x000000000000000000000000000000000000012a")
	testStranger     = common.HexToAddress("0x000000000000000000000000000000000000dead")

	testDeployment = types.Deployment{
		ChainID:  testChainID,
		Module:   testModuleAddr,
		Executor: testExecutorAddr,
		Oracle:   testOracleAddr,
	}

	// testFinalizedAt is the unix time answers are finalized at in tests.
	testFinalizedAt = uint32(1_700_000_000)
)

func testConfig() types.Config {
	return types.Config{
		QuestionTimeout:  42,
		QuestionCooldown: 23,
		MinimumBond:      big.NewInt(0),
		TemplateID:       big.NewInt(1337),
	}
}

type fixture struct {
	module   *Module
	oracle   *oraclesim.Oracle
	executor *oraclesim.Executor
	clock    *clock.Mock
	store    store.Store
	events   []types.ProposalQuestionCreated
}

// storeKinds lists the store implementations the module tests run against.
var storeKinds = []struct {
	name string
	open func(t *testing.T) store.Store
}{
	{
		name: "memory",
		open: func(*testing.T) store.Store { return memory.New() },
	},
	{
		name: "sqlite",
		open: func(t *testing.T) store.Store {
			t.Helper()

			s, err := sqlite.Open(t.Context(), filepath.Join(t.TempDir(), "gate.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			return s
		},
	},
}

// forEachStore runs fn once per store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, open func(t *testing.T) store.Store)) {
	t.Helper()

	for _, kind := range storeKinds {
		t.Run(kind.name, func(t *testing.T) {
			t.Parallel()
			fn(t, kind.open)
		})
	}
}

func newFixture(t *testing.T, st store.Store, config types.Config, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		oracle:   oraclesim.NewOracle(testOracleAddr, testModuleAddr),
		executor: oraclesim.NewExecutor(),
		clock:    clock.NewMock(),
		store:    st,
	}
	f.clock.Set(time.Unix(int64(testFinalizedAt), 0))

	opts = append([]Option{
		WithClock(f.clock),
		WithQuestionCreatedHandler(func(_ context.Context, event types.ProposalQuestionCreated) {
			f.events = append(f.events, event)
		}),
	}, opts...)

	module, err := New(testDeployment, config, f.oracle, f.executor, st, opts...)
	require.NoError(t, err)
	f.module = module

	return f
}

// newMemoryFixture returns a fixture on the in-memory store.
func newMemoryFixture(t *testing.T, config types.Config, opts ...Option) *fixture {
	t.Helper()

	return newFixture(t, memory.New(), config, opts...)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	return sdk.WithLogger(t.Context(), zaptest.NewLogger(t).Sugar())
}

// at moves the clock to testFinalizedAt + offset seconds.
func (f *fixture) at(offset int64) {
	f.clock.Set(time.Unix(int64(testFinalizedAt)+offset, 0))
}

// hashes returns the transaction hashes of txs under the test deployment.
func hashes(t *testing.T, txs ...types.Transaction) []common.Hash {
	t.Helper()

	out := make([]common.Hash, 0, len(txs))
	for _, tx := range txs {
		h, err := TransactionHash(testDeployment, tx)
		require.NoError(t, err)
		out = append(out, h)
	}

	return out
}

// admitAccepted admits a proposal and makes the oracle accept it at testFinalizedAt with bond.
func (f *fixture) admitAccepted(t *testing.T, ctx context.Context, id string, txHashes []common.Hash, bond int64) common.Hash {
	t.Helper()

	questionID, err := f.module.AddProposal(ctx, id, txHashes)
	require.NoError(t, err)
	f.oracle.Accept(questionID, big.NewInt(bond), testFinalizedAt)

	return questionID
}

func testTx(nonce int64) types.Transaction {
	return types.Transaction{
		To:    common.HexToAddress("0x000000000000000000000000000000000000beef"),
		Value: big.NewInt(0),
		Data:  []byte{0xde, 0xad},
		Nonce: big.NewInt(nonce),
	}
}
