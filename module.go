// Package governance gates the execution of staged transactions behind the answer of an external
// oracle. A proposal is a named, ordered list of transaction hashes. It is submitted to the
// oracle as a question, and each of its transactions can be executed exactly once, in order,
// after the oracle accepted the proposal and the cooldown passed.
package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/internal/utils/safecast"
	"github.com/Azulo-app/platform-dao-governance/metrics"
	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/sdk/evm"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// QuestionCreatedHandler is called after a proposal was bound to a new oracle question.
type QuestionCreatedHandler func(ctx context.Context, event types.ProposalQuestionCreated)

// Option configures a Module.
type Option func(*Module)

// WithClock sets the clock used for cooldown and expiration checks.
func WithClock(c clock.Clock) Option {
	return func(m *Module) {
		m.clock = c
	}
}

// WithMetrics sets the metrics the module reports to.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Module) {
		m.metrics = mt
	}
}

// WithQuestionCreatedHandler registers a handler for ProposalQuestionCreated events.
func WithQuestionCreatedHandler(h QuestionCreatedHandler) Option {
	return func(m *Module) {
		m.handlers = append(m.handlers, h)
	}
}

// Module is one deployment of the governance gate.
type Module struct {
	deployment types.Deployment
	oracle     sdk.Oracle
	executor   sdk.Executor
	store      store.Store
	clock      clock.Clock
	metrics    *metrics.Metrics
	handlers   []QuestionCreatedHandler

	mu     sync.RWMutex
	config types.Config
}

// New creates a module for the deployment. A zero arbitrator in config defaults to the executor.
func New(
	deployment types.Deployment,
	config types.Config,
	oracle sdk.Oracle,
	executor sdk.Executor,
	st store.Store,
	opts ...Option,
) (*Module, error) {
	if err := deployment.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil || executor == nil || st == nil {
		return nil, errors.New("oracle, executor and store are required")
	}

	if config.Arbitrator == (common.Address{}) {
		config.Arbitrator = deployment.Executor
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m := &Module{
		deployment: deployment,
		oracle:     oracle,
		executor:   executor,
		store:      st,
		clock:      clock.New(),
		config:     config.Copy(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Deployment returns the deployment the module was created for.
func (m *Module) Deployment() types.Deployment {
	return m.deployment
}

// Config returns a copy of the current configuration.
func (m *Module) Config() types.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.config.Copy()
}

// TransactionHash returns the hash of tx under the domain of this deployment.
func (m *Module) TransactionHash(tx types.Transaction) (common.Hash, error) {
	return TransactionHash(m.deployment, tx)
}

// BuildQuestion returns the question text of a proposal.
func (m *Module) BuildQuestion(proposalID string, txHashes []common.Hash) string {
	return BuildQuestion(proposalID, txHashes)
}

// GetQuestionID returns the oracle question id the module expects when asking question with
// nonce under the current configuration.
func (m *Module) GetQuestionID(question string, nonce *big.Int) (common.Hash, error) {
	return evm.QuestionID(m.questionRequest(m.Config(), question, nonce), m.deployment.Oracle, m.deployment.Module)
}

// BindingState returns the binding state of a question hash.
func (m *Module) BindingState(ctx context.Context, questionHash common.Hash) (types.BindingState, error) {
	var state types.BindingState
	err := m.view(ctx, func(r store.Reader) error {
		var err error
		state, err = r.Binding(ctx, questionHash)

		return err
	})

	return state, err
}

// IsExecuted reports whether the transaction hash was executed under the question hash.
func (m *Module) IsExecuted(ctx context.Context, questionHash, txHash common.Hash) (bool, error) {
	var executed bool
	err := m.view(ctx, func(r store.Reader) error {
		var err error
		executed, err = r.IsExecuted(ctx, questionHash, txHash)

		return err
	})

	return executed, err
}

// ProposalIDForQuestion returns the proposal id an oracle question was asked for.
func (m *Module) ProposalIDForQuestion(ctx context.Context, questionID common.Hash) (string, bool, error) {
	var (
		id    string
		found bool
	)
	err := m.view(ctx, func(r store.Reader) error {
		var err error
		id, found, err = r.ProposalID(ctx, questionID)

		return err
	})

	return id, found, err
}

func (m *Module) questionRequest(config types.Config, question string, nonce *big.Int) types.QuestionRequest {
	if nonce == nil {
		nonce = new(big.Int)
	}

	return types.QuestionRequest{
		TemplateID:  config.TemplateIDOrZero(),
		Question:    question,
		Arbitrator:  config.Arbitrator,
		Timeout:     config.QuestionTimeout,
		MinimumBond: config.MinimumBondOrZero(),
		Nonce:       nonce,
	}
}

// update runs fn in a unit of work. When ctx already carries a unit of work of this module's
// store, fn runs nested inside it, so callbacks from the executor see the writes of the
// operation that called them.
func (m *Module) update(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	if outer, ok := store.TxFrom(ctx, m.store); ok {
		return outer.Nest(ctx, func(tx store.Tx) error {
			return fn(store.WithTx(ctx, m.store, tx), tx)
		})
	}

	return m.store.Update(ctx, func(tx store.Tx) error {
		return fn(store.WithTx(ctx, m.store, tx), tx)
	})
}

func (m *Module) view(ctx context.Context, fn func(store.Reader) error) error {
	if tx, ok := store.TxFrom(ctx, m.store); ok {
		return fn(tx)
	}

	return m.store.View(ctx, fn)
}

// authorize checks the caller is the executor of the deployment.
func (m *Module) authorize(caller common.Address) error {
	if caller != m.deployment.Executor {
		return NewNotAuthorizedError(caller)
	}

	return nil
}

func (m *Module) now() (uint64, error) {
	return safecast.Int64ToUint64(m.clock.Now().Unix())
}

func (m *Module) reject(ctx context.Context, operation string, err error) {
	reason := rejectionReason(err)
	m.metrics.Rejected(operation, reason)
	sdk.LoggerFrom(ctx).Debugf("Rejected %s: %v", operation, err)
}

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{ErrNotAuthorized, "not_authorized"},
	{ErrAlreadyInvalidated, "already_invalidated"},
	{ErrPriorNotResolvedInvalid, "prior_not_resolved_invalid"},
	{ErrUnexpectedQuestionID, "unexpected_question_id"},
	{ErrNoBinding, "no_binding"},
	{ErrInvalidated, "invalidated"},
	{ErrUnexpectedTransactionHash, "unexpected_transaction_hash"},
	{ErrPreviousNotExecuted, "previous_not_executed"},
	{ErrNotApproved, "not_approved"},
	{ErrBondTooLow, "bond_too_low"},
	{ErrCooldownNotElapsed, "cooldown_not_elapsed"},
	{ErrAnswerExpired, "answer_expired"},
	{ErrAlreadyExecuted, "already_executed"},
	{ErrExecutionFailed, "execution_failed"},
	{ErrExecutionPending, "execution_pending"},
	{ErrQuestionPending, "question_pending"},
	{ErrAnswersNeverExpire, "answers_never_expire"},
	{ErrProposalAlreadyInvalid, "already_invalidated"},
	{ErrOnlyPositiveAnswersExpire, "only_positive_answers_expire"},
	{ErrAnswerNotExpired, "answer_not_expired"},
	{types.ErrInvalidConfig, "invalid_config"},
}

func rejectionReason(err error) string {
	for _, r := range rejectionReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}

	return "other"
}

func (m *Module) emitQuestionCreated(ctx context.Context, event types.ProposalQuestionCreated) {
	sdk.LoggerFrom(ctx).Infof("Proposal %q bound to question %s", event.ProposalID, event.QuestionID.Hex())

	for _, h := range m.handlers {
		h(ctx, event)
	}
}

func wrapOracleErr(sentinel error, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
