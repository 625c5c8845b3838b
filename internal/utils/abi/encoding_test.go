package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveABI    string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:    "success: encode single uint256",
			giveABI: `[{"type":"uint256"}]`,
			giveValues: []any{
				big.NewInt(30),
			},
			want: "000000000000000000000000000000000000000000000000000000000000001e",
		},
		{
			name:       "success: encode address",
			giveABI:    `[{"type":"address"}]`,
			giveValues: []any{common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")},
			want:       "0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "success: encode uint8",
			giveABI:    `[{"type":"uint8"}]`,
			giveValues: []any{uint8(1)},
			want:       "0000000000000000000000000000000000000000000000000000000000000001",
		},
		{
			name:      "failure: invalid ABI string",
			giveABI:   `[{"type":"invalid"}]`,
			wantError: true,
		},
		{
			name:       "failure: invalid values",
			giveABI:    `[{"type":"uint256"}]`,
			giveValues: []any{},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.giveABI, tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)

				wantBytes, err := hex.DecodeString(tt.want)
				require.NoError(t, err)
				assert.Equal(t, wantBytes, got)
			}
		})
	}
}

func Test_EncodePacked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveValues []any
		want       string
		wantError  bool
	}{
		{
			name:       "success: uint256 is left padded to 32 bytes",
			giveValues: []any{big.NewInt(1337)},
			want:       "0000000000000000000000000000000000000000000000000000000000000539",
		},
		{
			name:       "success: uint32 keeps its natural width",
			giveValues: []any{uint32(42)},
			want:       "0000002a",
		},
		{
			name:       "success: address is 20 bytes",
			giveValues: []any{common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")},
			want:       "5b38da6a701c568545dcfcb03fcb875f56beddc4",
		},
		{
			name:       "success: string is raw utf8",
			giveValues: []any{"ab"},
			want:       "6162",
		},
		{
			name: "success: hash array is concatenated",
			giveValues: []any{[]common.Hash{
				common.HexToHash("0x01"),
				common.HexToHash("0x02"),
			}},
			want: "0000000000000000000000000000000000000000000000000000000000000001" +
				"0000000000000000000000000000000000000000000000000000000000000002",
		},
		{
			name:       "success: mixed values",
			giveValues: []any{uint8(1), uint32(0), "x"},
			want:       "010000000078",
		},
		{
			name:       "success: nil big int packs as zero",
			giveValues: []any{(*big.Int)(nil)},
			want:       "0000000000000000000000000000000000000000000000000000000000000000",
		},
		{
			name:       "failure: negative uint256",
			giveValues: []any{big.NewInt(-1)},
			wantError:  true,
		},
		{
			name:       "failure: unsupported type",
			giveValues: []any{3.14},
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodePacked(tt.giveValues...)

			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, hex.EncodeToString(got))
			}
		})
	}
}
