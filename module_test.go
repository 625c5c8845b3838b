package governance

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azulo-app/platform-dao-governance/metrics"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/store/memory"
	"github.com/Azulo-app/platform-dao-governance/types"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		deployment types.Deployment
		config     types.Config
		wantErrIs  error
	}{
		{
			name:       "success",
			deployment: testDeployment,
			config:     testConfig(),
		},
		{
			name:       "failure: missing chain id",
			deployment: types.Deployment{Module: testModuleAddr, Executor: testExecutorAddr, Oracle: testOracleAddr},
			config:     testConfig(),
			wantErrIs:  types.ErrInvalidDeployment,
		},
		{
			name:       "failure: zero timeout",
			deployment: testDeployment,
			config:     types.Config{},
			wantErrIs:  types.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newMemoryFixture(t, testConfig())
			_, err := New(tt.deployment, tt.config, f.oracle, f.executor, memory.New())

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNew_MissingCollaborators(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture(t, testConfig())

	_, err := New(testDeployment, testConfig(), nil, f.executor, memory.New())
	require.EqualError(t, err, "oracle, executor and store are required")
}

func TestModule_Config(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture(t, testConfig())

	config := f.module.Config()
	assert.Equal(t, testExecutorAddr, config.Arbitrator, "arbitrator defaults to the executor")

	config.MinimumBond.SetInt64(100)
	assert.Equal(t, int64(0), f.module.Config().MinimumBond.Int64(), "config is returned as a copy")
}

func TestModule_GetQuestionID(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	f := newMemoryFixture(t, testConfig())
	txHashes := hashes(t, testTx(0))

	want, err := f.module.GetQuestionID(f.module.BuildQuestion("p1", txHashes), big.NewInt(0))
	require.NoError(t, err)

	got, err := f.module.AddProposal(ctx, "p1", txHashes)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, []common.Hash{got}, f.oracle.Asked())
}

// The full lifecycle of a proposal with one transaction.
func TestModule_Lifecycle(t *testing.T) {
	t.Parallel()

	forEachStore(t, func(t *testing.T, open func(t *testing.T) store.Store) {
		ctx := testContext(t)
		f := newFixture(t, open(t), testConfig())
		tx := testTx(0)
		txHashes := hashes(t, tx)
		questionHash := QuestionHash(BuildQuestion("p1", txHashes))

		questionID, err := f.module.AddProposal(ctx, "p1", txHashes)
		require.NoError(t, err)

		state, err := f.module.BindingState(ctx, questionHash)
		require.NoError(t, err)
		assert.Equal(t, types.Bound(questionID), state)

		assert.Equal(t, []types.ProposalQuestionCreated{{QuestionID: questionID, ProposalID: "p1"}}, f.events)
		proposalID, found, err := f.module.ProposalIDForQuestion(ctx, questionID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "p1", proposalID)

		// not finalized yet
		err = f.module.ExecuteProposal(ctx, "p1", txHashes, tx)
		require.ErrorIs(t, err, ErrNotApproved)

		f.oracle.Accept(questionID, big.NewInt(0), testFinalizedAt)

		f.at(22)
		err = f.module.ExecuteProposal(ctx, "p1", txHashes, tx)
		var cooldownErr *CooldownNotElapsedError
		require.ErrorAs(t, err, &cooldownErr)
		assert.Equal(t, uint64(testFinalizedAt)+23, cooldownErr.ExecutableAt)
		assert.Empty(t, f.executor.Calls())

		f.at(23)
		require.NoError(t, f.module.ExecuteProposal(ctx, "p1", txHashes, tx))

		calls := f.executor.Calls()
		require.Len(t, calls, 1)
		assert.True(t, calls[0].Equal(tx))

		executed, err := f.module.IsExecuted(ctx, questionHash, txHashes[0])
		require.NoError(t, err)
		assert.True(t, executed)

		err = f.module.ExecuteProposal(ctx, "p1", txHashes, tx)
		require.ErrorIs(t, err, ErrAlreadyExecuted)
		assert.True(t, IsPermanent(err))
		assert.Len(t, f.executor.Calls(), 1)
	})
}

func TestModule_Metrics(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	f := newMemoryFixture(t, testConfig(), WithMetrics(m))
	tx := testTx(0)
	txHashes := hashes(t, tx)

	f.admitAccepted(t, ctx, "p1", txHashes, 0)
	f.at(23)
	require.NoError(t, f.module.ExecuteProposal(ctx, "p1", txHashes, tx))
	require.ErrorIs(t, f.module.ExecuteProposal(ctx, "p1", txHashes, tx), ErrAlreadyExecuted)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Admitted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Executed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rejections.WithLabelValues(operationExecute, "already_executed")), 0)
}

func TestRejectionReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cooldown_not_elapsed", rejectionReason(NewCooldownNotElapsedError(2, 1)))
	assert.Equal(t, "not_authorized", rejectionReason(NewNotAuthorizedError(testStranger)))
	assert.Equal(t, "execution_failed", rejectionReason(NewExecutionFailedError(common.Hash{}, nil)))
	assert.Equal(t, "other", rejectionReason(assert.AnError))
}
