package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"math/big"
	"testing"

	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChainSelectorFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    ChainSelector
		want    string
		wantErr string
	}{
		{
			name: "success: evm",
			give: ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector),
			want: chainsel.FamilyEVM,
		},
		{
			name: "success: solana",
			give: ChainSelector(chainsel.SOLANA_DEVNET.Selector),
			want: chainsel.FamilySolana,
		},
		{
			name:    "invalid chain selector",
			give:    0,
			wantErr: "chain family not found for selector 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GetChainSelectorFamily(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChainSelector_EVMChainID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		give      ChainSelector
		want      *big.Int
		wantErrIs error
	}{
		{
			name: "success: geth testnet",
			give: ChainSelector(chainsel.GETH_TESTNET.Selector),
			want: big.NewInt(1337),
		},
		{
			name: "success: sepolia",
			give: ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector),
			want: big.NewInt(11155111),
		},
		{
			name:      "failure: solana",
			give:      ChainSelector(chainsel.SOLANA_DEVNET.Selector),
			wantErrIs: ErrUnsupportedChainFamily,
		},
		{
			name:      "failure: unknown",
			give:      0,
			wantErrIs: ErrChainFamilyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.give.EVMChainID()

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 0, tt.want.Cmp(got))
			}
		})
	}
}
