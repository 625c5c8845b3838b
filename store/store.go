// Package store defines the durable state of the module: question bindings, execution records
// and the question to proposal index.
//
// All mutations happen inside a unit of work (Store.Update). A unit of work either commits every
// write or none of them.
package store

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/types"
)

var (
	// ErrBindingInvalidated is returned when trying to move an invalidated binding to any other
	// state.
	ErrBindingInvalidated = errors.New("binding is invalidated")

	// ErrInvalidTransition is returned when a binding would go back to unbound.
	ErrInvalidTransition = errors.New("invalid binding transition")

	// ErrReservedQuestionID is returned when binding a question id equal to a storage sentinel.
	ErrReservedQuestionID = errors.New("question id collides with a storage sentinel")

	// ErrAlreadyMarked is returned when an execution record already exists.
	ErrAlreadyMarked = errors.New("execution already recorded")
)

// Reader gives read access to the stored facts.
type Reader interface {
	// Binding returns the binding state of a question hash. Unknown hashes are unbound.
	Binding(ctx context.Context, questionHash common.Hash) (types.BindingState, error)

	// IsExecuted reports whether the transaction hash was executed under the question hash.
	IsExecuted(ctx context.Context, questionHash, txHash common.Hash) (bool, error)

	// ProposalID returns the proposal id recorded for an oracle question id.
	ProposalID(ctx context.Context, questionID common.Hash) (string, bool, error)
}

// Tx is a unit of work.
type Tx interface {
	Reader

	// SetBinding overwrites the binding state of a question hash.
	SetBinding(ctx context.Context, questionHash common.Hash, state types.BindingState) error

	// MarkExecuted records the execution of a transaction hash under a question hash.
	MarkExecuted(ctx context.Context, questionHash, txHash common.Hash) error

	// RecordQuestion indexes the proposal id of a newly bound oracle question.
	RecordQuestion(ctx context.Context, event types.ProposalQuestionCreated) error

	// Nest runs fn in a nested unit of work. Writes made by fn are discarded when it returns an
	// error and become part of the enclosing unit of work otherwise.
	Nest(ctx context.Context, fn func(Tx) error) error
}

// Store is a durable, single writer store.
type Store interface {
	// View runs fn with a consistent read-only view of the store.
	View(ctx context.Context, fn func(Reader) error) error

	// Update runs fn in a unit of work. Units of work are serialized. If fn returns an error
	// nothing it wrote is kept.
	Update(ctx context.Context, fn func(Tx) error) error

	Close() error
}

// CheckTransition validates moving a binding from one state to another.
func CheckTransition(from, to types.BindingState) error {
	switch {
	case from.IsInvalidated() && !to.IsInvalidated():
		return ErrBindingInvalidated
	case to.IsUnbound() && !from.IsUnbound():
		return ErrInvalidTransition
	case to.IsBound() && types.IsReservedQuestionID(to.QuestionID):
		return ErrReservedQuestionID
	}

	return nil
}

type txContextKey struct {
	store Store
}

// WithTx returns a context carrying an open unit of work of s. Code called back from inside a unit
// of work uses it to observe and extend that unit instead of opening a new one.
func WithTx(ctx context.Context, s Store, tx Tx) context.Context {
	return context.WithValue(ctx, txContextKey{store: s}, tx)
}

// TxFrom returns the unit of work of s carried by ctx, if any.
func TxFrom(ctx context.Context, s Store) (Tx, bool) {
	tx, ok := ctx.Value(txContextKey{store: s}).(Tx)

	return tx, ok
}
