// Package oraclesim implements an in-memory RealityETH oracle and a recording executor, for tests
// and dry runs.
package oraclesim

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
	"github.com/Azulo-app/platform-dao-governance/sdk/evm"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var (
	_ sdk.Oracle   = (*Oracle)(nil)
	_ sdk.Executor = (*Executor)(nil)
)

// Question is the state of a simulated question.
type Question struct {
	Request     types.QuestionRequest
	Finalized   bool
	Result      common.Hash
	Bond        *big.Int
	FinalizedAt uint32
}

// Oracle derives question ids the way RealityETH v3 does and lets tests resolve questions.
type Oracle struct {
	mu        sync.Mutex
	address   common.Address
	asker     common.Address
	questions map[common.Hash]*Question
	asked     []common.Hash

	// tamper, when set, changes the id returned from AskQuestion.
	tamper func(common.Hash) common.Hash
}

// NewOracle creates an oracle at address that receives questions from asker.
func NewOracle(address, asker common.Address) *Oracle {
	return &Oracle{
		address:   address,
		asker:     asker,
		questions: make(map[common.Hash]*Question),
	}
}

// Address returns the address of the oracle.
func (o *Oracle) Address() common.Address {
	return o.address
}

// Tamper makes AskQuestion return fn(id) instead of the id of the question.
func (o *Oracle) Tamper(fn func(common.Hash) common.Hash) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.tamper = fn
}

func (o *Oracle) AskQuestion(_ context.Context, req types.QuestionRequest) (common.Hash, error) {
	id, err := evm.QuestionID(req, o.address, o.asker)
	if err != nil {
		return common.Hash{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.questions[id]; exists {
		return common.Hash{}, sdkerrors.NewQuestionExistsError(id)
	}
	o.questions[id] = &Question{Request: req, Bond: new(big.Int)}
	o.asked = append(o.asked, id)

	if o.tamper != nil {
		return o.tamper(id), nil
	}

	return id, nil
}

// Asked returns the ids of all asked questions in order.
func (o *Oracle) Asked() []common.Hash {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]common.Hash(nil), o.asked...)
}

// Question returns a copy of the state of a question.
func (o *Oracle) Question(id common.Hash) (Question, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	q, ok := o.questions[id]
	if !ok {
		return Question{}, false
	}

	return *q, true
}

// Finalize resolves a question with result and bond at the unix time finalizedAt. Unknown
// questions are created.
func (o *Oracle) Finalize(id, result common.Hash, bond *big.Int, finalizedAt uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	q, ok := o.questions[id]
	if !ok {
		q = &Question{}
		o.questions[id] = q
	}
	q.Finalized = true
	q.Result = result
	q.Bond = new(big.Int).Set(bond)
	q.FinalizedAt = finalizedAt
}

// Accept resolves a question with the accepted answer.
func (o *Oracle) Accept(id common.Hash, bond *big.Int, finalizedAt uint32) {
	o.Finalize(id, types.AnswerAccepted, bond, finalizedAt)
}

// Reject resolves a question as invalid.
func (o *Oracle) Reject(id common.Hash, finalizedAt uint32) {
	o.Finalize(id, types.AnswerInvalidated, new(big.Int), finalizedAt)
}

func (o *Oracle) ResultFor(_ context.Context, id common.Hash) (common.Hash, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	q, ok := o.questions[id]
	if !ok || !q.Finalized {
		return common.Hash{}, sdkerrors.NewQuestionNotFinalizedError(id)
	}

	return q.Result, nil
}

func (o *Oracle) FinalizedAt(_ context.Context, id common.Hash) (uint32, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	q, ok := o.questions[id]
	if !ok || !q.Finalized {
		return 0, nil
	}

	return q.FinalizedAt, nil
}

func (o *Oracle) BondFor(_ context.Context, id common.Hash) (*big.Int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	q, ok := o.questions[id]
	if !ok || q.Bond == nil {
		return new(big.Int), nil
	}

	return new(big.Int).Set(q.Bond), nil
}

// ExecFunc handles a transaction in place of the recording executor.
type ExecFunc func(ctx context.Context, tx types.Transaction) (bool, error)

// Executor records executed transactions. By default every transaction succeeds.
type Executor struct {
	mu    sync.Mutex
	calls []types.Transaction
	fn    ExecFunc
}

func NewExecutor() *Executor {
	return &Executor{}
}

// Handle sets the function deciding the outcome of executions. It runs without holding the
// executor lock, so it may call back into the module.
func (e *Executor) Handle(fn ExecFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.fn = fn
}

func (e *Executor) ExecTransactionFromModule(ctx context.Context, tx types.Transaction) (bool, error) {
	e.mu.Lock()
	e.calls = append(e.calls, tx)
	fn := e.fn
	e.mu.Unlock()

	if fn == nil {
		return true, nil
	}

	return fn(ctx, tx)
}

// Calls returns the transactions passed to the executor, including failed ones.
func (e *Executor) Calls() []types.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]types.Transaction(nil), e.calls...)
}
