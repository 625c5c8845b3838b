// Package storetest holds the behaviour every store.Store implementation must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

var (
	questionHash = common.HexToHash("0x1111")
	questionID   = common.HexToHash("0x2222")
	txHash       = common.HexToHash("0x3333")

	errBoom = errors.New("boom")
)

// Run runs the shared store tests. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("unknown hashes are unbound", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.View(t.Context(), func(r store.Reader) error {
			state, err := r.Binding(t.Context(), questionHash)
			require.NoError(t, err)
			assert.True(t, state.IsUnbound())

			executed, err := r.IsExecuted(t.Context(), questionHash, txHash)
			require.NoError(t, err)
			assert.False(t, executed)

			_, ok, err := r.ProposalID(t.Context(), questionID)
			require.NoError(t, err)
			assert.False(t, ok)

			return nil
		}))
	})

	t.Run("committed writes are visible", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			require.NoError(t, tx.SetBinding(t.Context(), questionHash, types.Bound(questionID)))
			require.NoError(t, tx.MarkExecuted(t.Context(), questionHash, txHash))
			require.NoError(t, tx.RecordQuestion(t.Context(), types.ProposalQuestionCreated{
				QuestionID: questionID, ProposalID: "p1",
			}))

			// writes are visible inside the unit of work
			state, err := tx.Binding(t.Context(), questionHash)
			require.NoError(t, err)
			assert.Equal(t, types.Bound(questionID), state)

			return nil
		}))

		assertState(t, s, types.Bound(questionID), true)

		require.NoError(t, s.View(t.Context(), func(r store.Reader) error {
			id, ok, err := r.ProposalID(t.Context(), questionID)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "p1", id)

			return nil
		}))
	})

	t.Run("failed unit of work keeps nothing", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		err := s.Update(t.Context(), func(tx store.Tx) error {
			require.NoError(t, tx.SetBinding(t.Context(), questionHash, types.Bound(questionID)))
			require.NoError(t, tx.MarkExecuted(t.Context(), questionHash, txHash))

			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		assertState(t, s, types.Unbound(), false)
	})

	t.Run("invalidation is terminal", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Invalidated())
		}))

		err := s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Bound(questionID))
		})
		require.ErrorIs(t, err, store.ErrBindingInvalidated)

		err = s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Unbound())
		})
		require.ErrorIs(t, err, store.ErrBindingInvalidated)

		// invalidating again is allowed
		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Invalidated())
		}))

		assertState(t, s, types.Invalidated(), false)
	})

	t.Run("bound cannot go back to unbound", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Bound(questionID))
		}))

		err := s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Unbound())
		})
		require.ErrorIs(t, err, store.ErrInvalidTransition)
	})

	t.Run("reserved question ids cannot be bound", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		err := s.Update(t.Context(), func(tx store.Tx) error {
			return tx.SetBinding(t.Context(), questionHash, types.Bound(types.InvalidatedSentinel))
		})
		require.ErrorIs(t, err, store.ErrReservedQuestionID)
	})

	t.Run("execution records are written once", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			return tx.MarkExecuted(t.Context(), questionHash, txHash)
		}))

		err := s.Update(t.Context(), func(tx store.Tx) error {
			return tx.MarkExecuted(t.Context(), questionHash, txHash)
		})
		require.ErrorIs(t, err, store.ErrAlreadyMarked)
	})

	t.Run("failed nested unit of work only discards its own writes", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			require.NoError(t, tx.SetBinding(t.Context(), questionHash, types.Bound(questionID)))

			err := tx.Nest(t.Context(), func(inner store.Tx) error {
				// the nested unit of work sees the enclosing writes
				state, err := inner.Binding(t.Context(), questionHash)
				require.NoError(t, err)
				assert.True(t, state.IsBound())

				require.NoError(t, inner.MarkExecuted(t.Context(), questionHash, txHash))

				return errBoom
			})
			require.ErrorIs(t, err, errBoom)

			executed, err := tx.IsExecuted(t.Context(), questionHash, txHash)
			require.NoError(t, err)
			assert.False(t, executed)

			return nil
		}))

		assertState(t, s, types.Bound(questionID), false)
	})

	t.Run("successful nested unit of work joins the enclosing one", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		require.NoError(t, s.Update(t.Context(), func(tx store.Tx) error {
			return tx.Nest(t.Context(), func(inner store.Tx) error {
				return inner.MarkExecuted(t.Context(), questionHash, txHash)
			})
		}))

		assertState(t, s, types.Unbound(), true)
	})

	t.Run("canceled context is rejected", func(t *testing.T) {
		t.Parallel()
		s := newStore(t)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := s.Update(ctx, func(tx store.Tx) error {
			return tx.MarkExecuted(ctx, questionHash, txHash)
		})
		require.Error(t, err)

		assertState(t, s, types.Unbound(), false)
	})
}

func assertState(t *testing.T, s store.Store, wantBinding types.BindingState, wantExecuted bool) {
	t.Helper()

	require.NoError(t, s.View(t.Context(), func(r store.Reader) error {
		state, err := r.Binding(t.Context(), questionHash)
		require.NoError(t, err)
		assert.Equal(t, wantBinding, state)

		executed, err := r.IsExecuted(t.Context(), questionHash, txHash)
		require.NoError(t, err)
		assert.Equal(t, wantExecuted, executed)

		return nil
	}))
}
