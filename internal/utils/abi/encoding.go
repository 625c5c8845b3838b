package abi

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// ErrUnsupportedPackedType is returned by EncodePacked for values it has no packed layout for.
var ErrUnsupportedPackedType = errors.New("unsupported packed type")

// Encode is the equivalent of abi.encode.
// See a full set of examples https://github.com/ethereum/go-ethereum/blob/420b78659bef661a83c5c442121b13f13288c09f/accounts/abi/packing_test.go#L31
func Encode(abiStr string, values ...any) ([]byte, error) {
	// Create a dummy method with arguments
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	return res[4:], nil
}

// EncodePacked is the equivalent of abi.encodePacked for the value kinds used by the question
// and fingerprint derivations. go-ethereum does not ship a packed encoder.
//
// Supported values: common.Hash, [32]byte and []common.Hash (32 bytes each), common.Address
// (20 bytes), uint8, uint32, uint64 (big-endian, natural width), *big.Int (uint256), string and
// []byte (raw bytes).
func EncodePacked(values ...any) ([]byte, error) {
	var out []byte
	for i, v := range values {
		switch val := v.(type) {
		case common.Hash:
			out = append(out, val.Bytes()...)
		case [32]byte:
			out = append(out, val[:]...)
		case []common.Hash:
			for _, h := range val {
				out = append(out, h.Bytes()...)
			}
		case common.Address:
			out = append(out, val.Bytes()...)
		case uint8:
			out = append(out, val)
		case uint32:
			out = append(out, byte(val>>24), byte(val>>16), byte(val>>8), byte(val))
		case uint64:
			out = append(out, new(big.Int).SetUint64(val).FillBytes(make([]byte, 8))...)
		case *big.Int:
			if val == nil {
				val = new(big.Int)
			}
			if val.Sign() < 0 || val.BitLen() > 256 {
				return nil, fmt.Errorf("value %d at position %d is out of uint256 range", val, i)
			}
			out = append(out, math.U256Bytes(new(big.Int).Set(val))...)
		case string:
			out = append(out, val...)
		case []byte:
			out = append(out, val...)
		default:
			return nil, fmt.Errorf("%w: %T at position %d", ErrUnsupportedPackedType, v, i)
		}
	}

	return out, nil
}
