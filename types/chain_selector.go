package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"math/big"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

var (
	// ErrChainFamilyNotFound is returned when the chain family is not found for a selector
	ErrChainFamilyNotFound = errors.New("chain family not found")

	// ErrUnsupportedChainFamily is returned when the selector is not an EVM chain
	ErrUnsupportedChainFamily = errors.New("unsupported chain family")
)

// GetChainSelectorFamily returns the family of the chain selector.
func GetChainSelectorFamily(sel ChainSelector) (string, error) {
	family, err := chainsel.GetSelectorFamily(uint64(sel))
	if err != nil {
		return "", fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	return family, nil
}

// EVMChainID returns the EVM chain id of the selector. Only EVM chains are supported.
func (sel ChainSelector) EVMChainID() (*big.Int, error) {
	family, err := GetChainSelectorFamily(sel)
	if err != nil {
		return nil, err
	}
	if family != chainsel.FamilyEVM {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	chain, exists := chainsel.ChainBySelector(uint64(sel))
	if !exists {
		return nil, fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	return new(big.Int).SetUint64(chain.EvmChainID), nil
}
