package governance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// Executable drives one proposal file through a module: submitting it to the oracle and executing
// its transactions in order.
type Executable struct {
	module       *Module
	proposal     *Proposal
	txHashes     []common.Hash
	question     string
	questionHash common.Hash
}

// NewExecutable hashes the transactions of the proposal under the domain of the module.
func NewExecutable(module *Module, proposal *Proposal) (*Executable, error) {
	if err := proposal.Validate(); err != nil {
		return nil, err
	}

	txHashes, err := proposal.TransactionHashes(module.Deployment())
	if err != nil {
		return nil, err
	}

	question := BuildQuestion(proposal.ID, txHashes)

	return &Executable{
		module:       module,
		proposal:     proposal,
		txHashes:     txHashes,
		question:     question,
		questionHash: QuestionHash(question),
	}, nil
}

// TransactionHashes returns the hashes of the proposal transactions in order.
func (e *Executable) TransactionHashes() []common.Hash {
	return append([]common.Hash(nil), e.txHashes...)
}

// Question returns the oracle question text of the proposal.
func (e *Executable) Question() string {
	return e.question
}

// QuestionHash returns the binding store key of the proposal.
func (e *Executable) QuestionHash() common.Hash {
	return e.questionHash
}

// Submit asks the oracle about the proposal with the given nonce.
func (e *Executable) Submit(ctx context.Context, nonce *big.Int) (common.Hash, error) {
	return e.module.AddProposalWithNonce(ctx, e.proposal.ID, e.txHashes, nonce)
}

// Execute executes the transaction at index, with the index as its nonce.
func (e *Executable) Execute(ctx context.Context, index int) error {
	tx, err := e.proposal.Transaction(index)
	if err != nil {
		return err
	}

	return e.module.ExecuteProposalWithIndex(ctx, e.proposal.ID, e.txHashes, tx, index)
}

// ExecuteAll executes every transaction that was not executed yet, in order, and returns how many
// it executed. It stops at the first failure.
func (e *Executable) ExecuteAll(ctx context.Context) (int, error) {
	status, err := e.Status(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, executed := range status.Executed {
		if executed {
			sdk.LoggerFrom(ctx).Debugf("Transaction %d of proposal %q already executed", i, e.proposal.ID)
			continue
		}

		if err := e.Execute(ctx, i); err != nil {
			return count, fmt.Errorf("failed to execute transaction %d: %w", i, err)
		}
		count++
	}

	return count, nil
}

// Invalidate permanently blocks the proposal.
func (e *Executable) Invalidate(ctx context.Context, caller common.Address) error {
	return e.module.MarkProposalAsInvalidByHash(ctx, caller, e.questionHash)
}

// ProposalStatus is a snapshot of the state of a proposal.
type ProposalStatus struct {
	ProposalID   string             `json:"proposalId"`
	Question     string             `json:"question"`
	QuestionHash common.Hash        `json:"questionHash"`
	Binding      types.BindingState `json:"-"`
	BindingState string             `json:"binding"`
	TxHashes     []common.Hash      `json:"txHashes"`
	Executed     []bool             `json:"executed"`
}

// Status reads the binding and execution records of the proposal.
func (e *Executable) Status(ctx context.Context) (ProposalStatus, error) {
	binding, err := e.module.BindingState(ctx, e.questionHash)
	if err != nil {
		return ProposalStatus{}, err
	}

	executed := make([]bool, len(e.txHashes))
	for i, h := range e.txHashes {
		executed[i], err = e.module.IsExecuted(ctx, e.questionHash, h)
		if err != nil {
			return ProposalStatus{}, err
		}
	}

	return ProposalStatus{
		ProposalID:   e.proposal.ID,
		Question:     e.question,
		QuestionHash: e.questionHash,
		Binding:      binding,
		BindingState: binding.String(),
		TxHashes:     e.TransactionHashes(),
		Executed:     executed,
	}, nil
}
