// Package memory implements an in-process store. Writes of a unit of work are staged and only
// applied when the unit of work succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var _ store.Store = (*Store)(nil)

type executionKey struct {
	questionHash common.Hash
	txHash       common.Hash
}

// view is the read side shared by the committed state and staged units of work.
type view interface {
	binding(questionHash common.Hash) (common.Hash, bool)
	executed(key executionKey) bool
	question(questionID common.Hash) (string, bool)
}

type layer struct {
	bindings  map[common.Hash]common.Hash
	execs     map[executionKey]struct{}
	questions map[common.Hash]string
}

func newLayer() *layer {
	return &layer{
		bindings:  make(map[common.Hash]common.Hash),
		execs:     make(map[executionKey]struct{}),
		questions: make(map[common.Hash]string),
	}
}

func (l *layer) binding(questionHash common.Hash) (common.Hash, bool) {
	v, ok := l.bindings[questionHash]

	return v, ok
}

func (l *layer) executed(key executionKey) bool {
	_, ok := l.execs[key]

	return ok
}

func (l *layer) question(questionID common.Hash) (string, bool) {
	v, ok := l.questions[questionID]

	return v, ok
}

func (l *layer) applyTo(dst *layer) {
	for k, v := range l.bindings {
		dst.bindings[k] = v
	}
	for k := range l.execs {
		dst.execs[k] = struct{}{}
	}
	for k, v := range l.questions {
		dst.questions[k] = v
	}
}

// Store is a store kept in memory.
type Store struct {
	mu        sync.RWMutex
	committed *layer
}

// New returns an empty store.
func New() *Store {
	return &Store{committed: newLayer()}
}

// View runs fn against the committed state.
func (s *Store) View(ctx context.Context, fn func(store.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&tx{parent: s.committed, staged: newLayer()})
}

// Update runs fn in a unit of work holding the write lock for its whole duration.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{parent: s.committed, staged: newLayer()}
	if err := fn(t); err != nil {
		return err
	}
	t.staged.applyTo(s.committed)

	return nil
}

func (s *Store) Close() error {
	return nil
}

type tx struct {
	parent view
	staged *layer
}

func (t *tx) binding(questionHash common.Hash) (common.Hash, bool) {
	if v, ok := t.staged.binding(questionHash); ok {
		return v, true
	}

	return t.parent.binding(questionHash)
}

func (t *tx) executed(key executionKey) bool {
	return t.staged.executed(key) || t.parent.executed(key)
}

func (t *tx) question(questionID common.Hash) (string, bool) {
	if v, ok := t.staged.question(questionID); ok {
		return v, true
	}

	return t.parent.question(questionID)
}

func (t *tx) Binding(_ context.Context, questionHash common.Hash) (types.BindingState, error) {
	v, _ := t.binding(questionHash)

	return types.BindingStateFromHash(v), nil
}

func (t *tx) IsExecuted(_ context.Context, questionHash, txHash common.Hash) (bool, error) {
	return t.executed(executionKey{questionHash: questionHash, txHash: txHash}), nil
}

func (t *tx) ProposalID(_ context.Context, questionID common.Hash) (string, bool, error) {
	id, ok := t.question(questionID)

	return id, ok, nil
}

func (t *tx) SetBinding(ctx context.Context, questionHash common.Hash, state types.BindingState) error {
	current, err := t.Binding(ctx, questionHash)
	if err != nil {
		return err
	}
	if err := store.CheckTransition(current, state); err != nil {
		return err
	}

	t.staged.bindings[questionHash] = state.Hash()

	return nil
}

func (t *tx) MarkExecuted(_ context.Context, questionHash, txHash common.Hash) error {
	key := executionKey{questionHash: questionHash, txHash: txHash}
	if t.executed(key) {
		return store.ErrAlreadyMarked
	}

	t.staged.execs[key] = struct{}{}

	return nil
}

func (t *tx) RecordQuestion(_ context.Context, event types.ProposalQuestionCreated) error {
	t.staged.questions[event.QuestionID] = event.ProposalID

	return nil
}

func (t *tx) Nest(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	child := &tx{parent: t, staged: newLayer()}
	if err := fn(child); err != nil {
		return err
	}
	child.staged.applyTo(t.staged)

	return nil
}
