package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	abiUtils "github.com/Azulo-app/platform-dao-governance/internal/utils/abi"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var (
	// domainSeparatorTypeHash is the EIP-712 type hash of the domain transaction hashes are bound to.
	domainSeparatorTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(uint256 chainId,address verifyingContract)"))

	// transactionTypeHash is the EIP-712 type hash of a module transaction.
	transactionTypeHash = crypto.Keccak256Hash(
		[]byte("Transaction(address to,uint256 value,bytes data,uint8 operation,uint256 nonce)"),
	)
)

// Encoder hashes module transactions as EIP-712 typed data under the domain of one deployment.
type Encoder struct {
	ChainID *big.Int
	Module  common.Address
}

// NewEncoder returns a new Encoder.
func NewEncoder(chainID *big.Int, module common.Address) *Encoder {
	return &Encoder{
		ChainID: chainID,
		Module:  module,
	}
}

// DomainSeparator returns keccak256(abi.encode(typeHash, chainId, module)).
func (e *Encoder) DomainSeparator() (common.Hash, error) {
	abi := `[{"type":"bytes32"},{"type":"uint256"},{"type":"address"}]`
	encoded, err := abiUtils.Encode(abi, domainSeparatorTypeHash, orZero(e.ChainID), e.Module)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// TransactionData returns the EIP-712 pre-image of a transaction hash:
// 0x19 ‖ 0x01 ‖ domainSeparator ‖ structHash.
func (e *Encoder) TransactionData(tx types.Transaction) ([]byte, error) {
	domainSeparator, err := e.DomainSeparator()
	if err != nil {
		return nil, err
	}

	abi := `[{"type":"bytes32"},{"type":"address"},{"type":"uint256"},{"type":"bytes32"},{"type":"uint8"},{"type":"uint256"}]`
	encoded, err := abiUtils.Encode(abi,
		transactionTypeHash,
		tx.To,
		tx.ValueOrZero(),
		crypto.Keccak256Hash(tx.Data),
		uint8(tx.Operation),
		tx.NonceOrZero(),
	)
	if err != nil {
		return nil, err
	}
	structHash := crypto.Keccak256Hash(encoded)

	data := make([]byte, 0, 2+2*common.HashLength)
	data = append(data, 0x19, 0x01)
	data = append(data, domainSeparator.Bytes()...)
	data = append(data, structHash.Bytes()...)

	return data, nil
}

// HashTransaction returns the EIP-712 hash of a transaction.
func (e *Encoder) HashTransaction(tx types.Transaction) (common.Hash, error) {
	if err := tx.Validate(); err != nil {
		return common.Hash{}, err
	}

	data, err := e.TransactionData(tx)
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(data), nil
}
