package evm

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// SafeModuleABI is the module facing part of the Safe (avatar) interface.
const SafeModuleABI = `[
	{"type":"function","name":"execTransactionFromModule","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},
		{"name":"value","type":"uint256"},
		{"name":"data","type":"bytes"},
		{"name":"operation","type":"uint8"}],
		"outputs":[{"name":"success","type":"bool"}]},
	{"type":"function","name":"isModuleEnabled","stateMutability":"view","inputs":[{"name":"module","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"ExecutionFromModuleSuccess","anonymous":false,"inputs":[{"name":"module","type":"address","indexed":true}]},
	{"type":"event","name":"ExecutionFromModuleFailure","anonymous":false,"inputs":[{"name":"module","type":"address","indexed":true}]}
]`

var _ sdk.Executor = (*SafeExecutor)(nil)

// SafeExecutor is an Executor implementation that runs transactions through a Safe that has the
// module account enabled.
type SafeExecutor struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	backend  bind.DeployBackend
	auth     *bind.TransactOpts
}

// NewSafeExecutor creates a new executor for the Safe at address, sending from auth.From.
func NewSafeExecutor(address common.Address, client ContractDeployBackend, auth *bind.TransactOpts) (*SafeExecutor, error) {
	return newSafeExecutor(address, client, client, client, auth)
}

func newSafeExecutor(
	address common.Address,
	caller bind.ContractCaller,
	transactor bind.ContractTransactor,
	backend bind.DeployBackend,
	auth *bind.TransactOpts,
) (*SafeExecutor, error) {
	parsed, err := abi.JSON(strings.NewReader(SafeModuleABI))
	if err != nil {
		return nil, err
	}

	return &SafeExecutor{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, caller, transactor, nil),
		backend:  backend,
		auth:     auth,
	}, nil
}

// IsModuleEnabled reports whether module is allowed to execute through the Safe.
func (s *SafeExecutor) IsModuleEnabled(ctx context.Context, module common.Address) (bool, error) {
	var out []any
	if err := s.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isModuleEnabled", module); err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// ExecTransactionFromModule submits tx to the Safe and waits for it to be mined. A mined call
// that reverted or emitted ExecutionFromModuleFailure reports false. If the call was sent but no
// receipt could be obtained, a TransactionPendingError is returned and the call must not be sent
// again.
func (s *SafeExecutor) ExecTransactionFromModule(ctx context.Context, tx types.Transaction) (bool, error) {
	if s.auth == nil {
		return false, errors.New("SafeExecutor was created without transact options")
	}

	opts := *s.auth
	opts.Context = ctx

	sent, err := s.contract.Transact(&opts, "execTransactionFromModule",
		tx.To, tx.ValueOrZero(), tx.Data, uint8(tx.Operation),
	)
	if err != nil {
		return false, err
	}

	receipt, err := waitReceipt(ctx, s.backend, sent)
	if err != nil {
		return false, err
	}

	success := s.succeeded(receipt)
	sdk.LoggerFrom(ctx).Infof("Safe execution in transaction %s succeeded: %t", sent.Hash().Hex(), success)

	return success, nil
}

func (s *SafeExecutor) succeeded(receipt *gethTypes.Receipt) bool {
	if receipt.Status != gethTypes.ReceiptStatusSuccessful {
		return false
	}

	failure := s.abi.Events["ExecutionFromModuleFailure"].ID
	for _, log := range receipt.Logs {
		if log.Address == s.address && len(log.Topics) > 0 && log.Topics[0] == failure {
			return false
		}
	}

	return true
}
