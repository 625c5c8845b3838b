package governance

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azulo-app/platform-dao-governance/types"
)

func newTestExecutable(t *testing.T, f *fixture, txs ...types.Transaction) *Executable {
	t.Helper()

	executable, err := NewExecutable(f.module, &Proposal{ID: "p1", Transactions: txs})
	require.NoError(t, err)

	return executable
}

func TestNewExecutable_Invalid(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture(t, testConfig())

	_, err := NewExecutable(f.module, &Proposal{ID: "p1"})
	require.Error(t, err)
}

func TestExecutable_ExecuteAll(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	f := newMemoryFixture(t, testConfig())
	txs := []types.Transaction{testTx(0), testTx(1), testTx(2)}
	executable := newTestExecutable(t, f, txs...)

	assert.Equal(t, hashes(t, txs...), executable.TransactionHashes())
	assert.Equal(t, BuildQuestion("p1", executable.TransactionHashes()), executable.Question())
	assert.Equal(t, QuestionHash(executable.Question()), executable.QuestionHash())

	questionID, err := executable.Submit(ctx, big.NewInt(0))
	require.NoError(t, err)
	f.oracle.Accept(questionID, big.NewInt(0), testFinalizedAt)
	f.at(23)

	require.NoError(t, executable.Execute(ctx, 0))

	// resumes after the executed transaction
	count, err := executable.ExecuteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	status, err := executable.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, status.Executed)
	assert.Equal(t, types.Bound(questionID), status.Binding)
	assert.Equal(t, "p1", status.ProposalID)

	count, err = executable.ExecuteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, f.executor.Calls(), 3)
}

func TestExecutable_ExecuteAll_StopsAtFailure(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	f := newMemoryFixture(t, testConfig())
	txs := []types.Transaction{testTx(0), testTx(1), testTx(2)}
	executable := newTestExecutable(t, f, txs...)

	questionID, err := executable.Submit(ctx, big.NewInt(0))
	require.NoError(t, err)
	f.oracle.Accept(questionID, big.NewInt(0), testFinalizedAt)
	f.at(23)

	f.executor.Handle(func(_ context.Context, tx types.Transaction) (bool, error) {
		return !tx.Equal(txs[1]), nil
	})

	count, err := executable.ExecuteAll(ctx)
	require.ErrorIs(t, err, ErrExecutionFailed)
	assert.Equal(t, 1, count)

	status, err := executable.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, status.Executed)
}

func TestExecutable_Execute_OutOfRange(t *testing.T) {
	t.Parallel()

	f := newMemoryFixture(t, testConfig())
	executable := newTestExecutable(t, f, testTx(0))

	require.EqualError(t, executable.Execute(testContext(t), 1), "index out of range: 1 >= 1")
}

func TestExecutable_Invalidate(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	f := newMemoryFixture(t, testConfig())
	executable := newTestExecutable(t, f, testTx(0))

	require.ErrorIs(t, executable.Invalidate(ctx, testStranger), ErrNotAuthorized)
	require.NoError(t, executable.Invalidate(ctx, testExecutorAddr))

	status, err := executable.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Binding.IsInvalidated())

	_, err = executable.Submit(ctx, big.NewInt(0))
	require.ErrorIs(t, err, ErrAlreadyInvalidated)
}

func TestExecutable_IdenticalTransactions(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	f := newMemoryFixture(t, testConfig())
	executable := newTestExecutable(t, f, testTx(0), testTx(0))

	questionID, err := executable.Submit(ctx, big.NewInt(0))
	require.NoError(t, err)
	f.oracle.Accept(questionID, big.NewInt(0), testFinalizedAt)
	f.at(23)

	count, err := executable.ExecuteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, f.executor.Calls(), 2)

	status, err := executable.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, status.Executed)
}
