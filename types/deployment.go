package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidDeployment = errors.New("invalid deployment")

// Deployment identifies one instance of the module. ChainID and Module form the typed data
// domain of transaction hashes; Module is also the asker of oracle questions.
type Deployment struct {
	ChainID *big.Int       `json:"chainId"`
	Module  common.Address `json:"module"`

	// Executor is the account that runs approved transactions. It is also the only caller
	// allowed to change the configuration or invalidate proposals.
	Executor common.Address `json:"executor"`

	// Oracle is the address of the oracle contract. It is part of the question id derivation.
	Oracle common.Address `json:"oracle"`
}

// Validate checks that all identities are set.
func (d Deployment) Validate() error {
	if d.ChainID == nil || d.ChainID.Sign() <= 0 {
		return fmt.Errorf("%w: chain id must be positive", ErrInvalidDeployment)
	}
	if d.Module == (common.Address{}) {
		return fmt.Errorf("%w: module address is required", ErrInvalidDeployment)
	}
	if d.Executor == (common.Address{}) {
		return fmt.Errorf("%w: executor address is required", ErrInvalidDeployment)
	}
	if d.Oracle == (common.Address{}) {
		return fmt.Errorf("%w: oracle address is required", ErrInvalidDeployment)
	}

	return nil
}
