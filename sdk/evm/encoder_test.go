package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azulo-app/platform-dao-governance/types"
)

var testModule = common.HexToAddress("0x00000000000000000000000000000000000000ee")

// typedDataHash hashes tx with the go-ethereum EIP-712 implementation.
func typedDataHash(t *testing.T, chainID int64, module common.Address, tx types.Transaction) common.Hash {
	t.Helper()

	typed := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Transaction": {
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "data", Type: "bytes"},
				{Name: "operation", Type: "uint8"},
				{Name: "nonce", Type: "uint256"},
			},
		},
		PrimaryType: "Transaction",
		Domain: apitypes.TypedDataDomain{
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: module.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"to":        tx.To.Hex(),
			"value":     tx.ValueOrZero().String(),
			"data":      hexutil.Encode(tx.Data),
			"operation": big.NewInt(int64(tx.Operation)).String(),
			"nonce":     tx.NonceOrZero().String(),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typed)
	require.NoError(t, err)

	return common.BytesToHash(hash)
}

func TestEncoder_HashTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		chainID int64
		giveTx  types.Transaction
	}{
		{
			name:    "empty call",
			chainID: SimulatedEVMChainID,
			giveTx:  types.Transaction{To: testAsker},
		},
		{
			name:    "call with value and data",
			chainID: SimulatedEVMChainID,
			giveTx: types.Transaction{
				To:    testAsker,
				Value: big.NewInt(1e18),
				Data:  []byte{0xde, 0xad, 0xbe, 0xef},
			},
		},
		{
			name:    "delegate call with nonce",
			chainID: 1,
			giveTx: types.Transaction{
				To:        testOracle,
				Data:      []byte("payload"),
				Operation: types.OperationDelegateCall,
				Nonce:     big.NewInt(7),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			encoder := NewEncoder(big.NewInt(tt.chainID), testModule)

			got, err := encoder.HashTransaction(tt.giveTx)
			require.NoError(t, err)
			assert.Equal(t, typedDataHash(t, tt.chainID, testModule, tt.giveTx), got)
		})
	}
}

func TestEncoder_HashTransaction_DomainSeparated(t *testing.T) {
	t.Parallel()

	tx := types.Transaction{To: testAsker, Value: big.NewInt(1)}

	base, err := NewEncoder(big.NewInt(1), testModule).HashTransaction(tx)
	require.NoError(t, err)

	otherChain, err := NewEncoder(big.NewInt(2), testModule).HashTransaction(tx)
	require.NoError(t, err)

	otherModule, err := NewEncoder(big.NewInt(1), testAsker).HashTransaction(tx)
	require.NoError(t, err)

	assert.NotEqual(t, base, otherChain)
	assert.NotEqual(t, base, otherModule)
}

func TestEncoder_HashTransaction_InvalidOperation(t *testing.T) {
	t.Parallel()

	_, err := NewEncoder(big.NewInt(1), testModule).HashTransaction(types.Transaction{Operation: 2})
	require.ErrorIs(t, err, types.ErrInvalidOperation)
}

func TestEncoder_TransactionData(t *testing.T) {
	t.Parallel()

	encoder := NewEncoder(big.NewInt(1), testModule)

	data, err := encoder.TransactionData(types.Transaction{To: testAsker})
	require.NoError(t, err)

	domainSeparator, err := encoder.DomainSeparator()
	require.NoError(t, err)

	require.Len(t, data, 66)
	assert.Equal(t, []byte{0x19, 0x01}, data[:2])
	assert.Equal(t, domainSeparator.Bytes(), data[2:34])
}
