package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// RealityABI is the subset of the RealityETH v3 interface used by the oracle adapter.
const RealityABI = `[
	{"type":"function","name":"askQuestionWithMinBond","stateMutability":"payable","inputs":[
		{"name":"template_id","type":"uint256"},
		{"name":"question","type":"string"},
		{"name":"arbitrator","type":"address"},
		{"name":"timeout","type":"uint32"},
		{"name":"opening_ts","type":"uint32"},
		{"name":"nonce","type":"uint256"},
		{"name":"min_bond","type":"uint256"}],
		"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"resultFor","stateMutability":"view","inputs":[{"name":"question_id","type":"bytes32"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"isFinalized","stateMutability":"view","inputs":[{"name":"question_id","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getFinalizeTS","stateMutability":"view","inputs":[{"name":"question_id","type":"bytes32"}],"outputs":[{"name":"","type":"uint32"}]},
	{"type":"function","name":"getBond","stateMutability":"view","inputs":[{"name":"question_id","type":"bytes32"}],"outputs":[{"name":"","type":"uint256"}]}
]`

var _ sdk.Oracle = (*RealityOracle)(nil)

// RealityOracle is an Oracle implementation backed by a RealityETH v3 contract.
type RealityOracle struct {
	address  common.Address
	contract *bind.BoundContract
	backend  bind.DeployBackend
	auth     *bind.TransactOpts
}

// NewRealityOracle creates a new oracle adapter for the RealityETH contract at address. Questions
// are asked from auth.From, which must be the module address of the deployment.
func NewRealityOracle(address common.Address, client ContractDeployBackend, auth *bind.TransactOpts) (*RealityOracle, error) {
	return newRealityOracle(address, client, client, client, auth)
}

func newRealityOracle(
	address common.Address,
	caller bind.ContractCaller,
	transactor bind.ContractTransactor,
	backend bind.DeployBackend,
	auth *bind.TransactOpts,
) (*RealityOracle, error) {
	parsed, err := abi.JSON(strings.NewReader(RealityABI))
	if err != nil {
		return nil, err
	}

	return &RealityOracle{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, caller, transactor, nil),
		backend:  backend,
		auth:     auth,
	}, nil
}

// Address returns the address of the oracle contract.
func (r *RealityOracle) Address() common.Address {
	return r.address
}

// AskQuestion simulates the call to learn the question id, then submits it and waits for it to
// be mined. If the transaction was sent but no receipt could be obtained, the question id is
// returned together with a TransactionPendingError.
func (r *RealityOracle) AskQuestion(ctx context.Context, req types.QuestionRequest) (common.Hash, error) {
	if r.auth == nil {
		return common.Hash{}, errors.New("RealityOracle was created without transact options")
	}

	params := []any{
		orZero(req.TemplateID),
		req.Question,
		req.Arbitrator,
		req.Timeout,
		req.OpeningTS,
		orZero(req.Nonce),
		orZero(req.MinimumBond),
	}

	var out []any
	callOpts := &bind.CallOpts{Context: ctx, From: r.auth.From}
	if err := r.contract.Call(callOpts, &out, "askQuestionWithMinBond", params...); err != nil {
		return common.Hash{}, fmt.Errorf("failed to simulate askQuestionWithMinBond: %w", err)
	}
	questionID := common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte))

	opts := *r.auth
	opts.Context = ctx

	tx, err := r.contract.Transact(&opts, "askQuestionWithMinBond", params...)
	if err != nil {
		return common.Hash{}, err
	}

	if _, err := waitMined(ctx, r.backend, tx); err != nil {
		if errors.Is(err, sdkerrors.ErrTransactionPending) {
			return questionID, err
		}

		return common.Hash{}, err
	}

	sdk.LoggerFrom(ctx).Infof("Asked question %s in transaction %s", questionID.Hex(), tx.Hash().Hex())

	return questionID, nil
}

// ResultFor returns the final answer of a question, or a QuestionNotFinalizedError.
func (r *RealityOracle) ResultFor(ctx context.Context, questionID common.Hash) (common.Hash, error) {
	var out []any
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isFinalized", questionID); err != nil {
		return common.Hash{}, err
	}
	if finalized := *abi.ConvertType(out[0], new(bool)).(*bool); !finalized {
		return common.Hash{}, sdkerrors.NewQuestionNotFinalizedError(questionID)
	}

	out = nil
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "resultFor", questionID); err != nil {
		return common.Hash{}, err
	}

	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

func (r *RealityOracle) FinalizedAt(ctx context.Context, questionID common.Hash) (uint32, error) {
	var out []any
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getFinalizeTS", questionID); err != nil {
		return 0, err
	}

	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (r *RealityOracle) BondFor(ctx context.Context, questionID common.Hash) (*big.Int, error) {
	var out []any
	if err := r.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getBond", questionID); err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
