package evm

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var testSafe = common.HexToAddress("0x00000000000000000000000000000000000000dd")

func newTestSafeExecutor(t *testing.T, caller *fakeCaller) *SafeExecutor {
	t.Helper()

	executor, err := newSafeExecutor(testSafe, caller, nil, nil, nil)
	require.NoError(t, err)

	return executor
}

func TestSafeExecutor_Succeeded(t *testing.T) {
	t.Parallel()

	executor := newTestSafeExecutor(t, newFakeCaller(SafeModuleABI))
	success := executor.abi.Events["ExecutionFromModuleSuccess"].ID
	failure := executor.abi.Events["ExecutionFromModuleFailure"].ID

	tests := []struct {
		name    string
		receipt *gethTypes.Receipt
		want    bool
	}{
		{
			name: "success event",
			receipt: &gethTypes.Receipt{
				Status: gethTypes.ReceiptStatusSuccessful,
				Logs:   []*gethTypes.Log{{Address: testSafe, Topics: []common.Hash{success}}},
			},
			want: true,
		},
		{
			name: "failure event",
			receipt: &gethTypes.Receipt{
				Status: gethTypes.ReceiptStatusSuccessful,
				Logs:   []*gethTypes.Log{{Address: testSafe, Topics: []common.Hash{failure}}},
			},
			want: false,
		},
		{
			name: "failure event from another contract is ignored",
			receipt: &gethTypes.Receipt{
				Status: gethTypes.ReceiptStatusSuccessful,
				Logs:   []*gethTypes.Log{{Address: testOracle, Topics: []common.Hash{failure}}},
			},
			want: true,
		},
		{
			name:    "reverted",
			receipt: &gethTypes.Receipt{Status: gethTypes.ReceiptStatusFailed},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, executor.succeeded(tt.receipt))
		})
	}
}

func TestSafeExecutor_IsModuleEnabled(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller(SafeModuleABI)
	caller.results["isModuleEnabled"] = []any{true}
	executor := newTestSafeExecutor(t, caller)

	enabled, err := executor.IsModuleEnabled(context.Background(), testAsker)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSafeExecutor_ExecWithoutAuth(t *testing.T) {
	t.Parallel()

	executor := newTestSafeExecutor(t, newFakeCaller(SafeModuleABI))

	ok, err := executor.ExecTransactionFromModule(context.Background(), types.Transaction{To: testAsker})
	require.EqualError(t, err, "SafeExecutor was created without transact options")
	assert.False(t, ok)
}

func TestSafeExecutor_ExecTransactionFromModule_Unconfirmed(t *testing.T) {
	t.Parallel()

	backend := &unconfirmedBackend{}
	executor, err := newSafeExecutor(testSafe, newFakeCaller(SafeModuleABI), backend, backend, testAuth())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	ok, err := executor.ExecTransactionFromModule(ctx, types.Transaction{
		To:   common.HexToAddress("0x000000000000000000000000000000000000beef"),
		Data: []byte{0xde, 0xad},
	})
	require.ErrorIs(t, err, sdkerrors.ErrTransactionPending)
	assert.False(t, ok)

	require.Len(t, backend.sent, 1)
	var pending *sdkerrors.TransactionPendingError
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, backend.sent[0].Hash(), pending.TxHash)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
