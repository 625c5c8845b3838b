package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	gethTypes "github.com/ethereum/go-ethereum/core/types"

	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
)

const (
	// SimulatedEVMChainID is the chain ID used for simulated chains.
	SimulatedEVMChainID = 1337
)

type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// waitReceipt waits for the receipt of a broadcast tx. Failing to get one returns a
// TransactionPendingError, since the transaction may still be mined.
func waitReceipt(ctx context.Context, backend bind.DeployBackend, tx *gethTypes.Transaction) (*gethTypes.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, sdkerrors.NewTransactionPendingError(tx.Hash(), err)
	}

	return receipt, nil
}

// waitMined waits for tx to be mined and returns its receipt, failing if it reverted.
func waitMined(ctx context.Context, backend bind.DeployBackend, tx *gethTypes.Transaction) (*gethTypes.Receipt, error) {
	receipt, err := waitReceipt(ctx, backend, tx)
	if err != nil {
		return nil, err
	}

	if receipt.Status != gethTypes.ReceiptStatusSuccessful {
		return receipt, sdkerrors.NewTransactionRevertedError(tx.Hash())
	}

	return receipt, nil
}
