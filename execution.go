package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

const operationExecute = "execute_proposal"

// ExecuteProposal executes the first transaction of a proposal.
func (m *Module) ExecuteProposal(
	ctx context.Context, proposalID string, txHashes []common.Hash, tx types.Transaction,
) error {
	return m.ExecuteProposalWithIndex(ctx, proposalID, txHashes, tx, 0)
}

// ExecuteProposalWithIndex executes the transaction at index of an accepted proposal through the
// executor.
//
// The transaction is recorded as executed before the executor is called, in the same unit of work.
// If the executor fails the whole unit of work is discarded and the call can be retried. If the
// executor sent the transaction but could not confirm it, the mark is kept and an
// ExecutionPendingError is returned, so the transaction is never sent twice.
func (m *Module) ExecuteProposalWithIndex(
	ctx context.Context, proposalID string, txHashes []common.Hash, tx types.Transaction, index int,
) error {
	err := m.executeProposal(ctx, proposalID, txHashes, tx, index)
	if err != nil {
		m.reject(ctx, operationExecute, err)
		return err
	}

	m.metrics.TransactionExecuted()

	return nil
}

func (m *Module) executeProposal(
	ctx context.Context, proposalID string, txHashes []common.Hash, tx types.Transaction, index int,
) error {
	questionHash := QuestionHash(BuildQuestion(proposalID, txHashes))

	txHash, err := m.TransactionHash(tx)
	if err != nil {
		return err
	}

	var pending error
	var sent bool
	err = m.update(ctx, func(ctx context.Context, stx store.Tx) error {
		config := m.Config()

		state, err := stx.Binding(ctx, questionHash)
		if err != nil {
			return err
		}
		switch {
		case state.IsInvalidated():
			return ErrInvalidated
		case state.IsUnbound():
			return ErrNoBinding
		}
		questionID := state.QuestionID

		if index < 0 || index >= len(txHashes) {
			return NewUnexpectedTransactionHashError(index, common.Hash{}, txHash)
		}
		if txHashes[index] != txHash {
			return NewUnexpectedTransactionHashError(index, txHashes[index], txHash)
		}

		if index > 0 {
			executed, err := stx.IsExecuted(ctx, questionHash, txHashes[index-1])
			if err != nil {
				return err
			}
			if !executed {
				return ErrPreviousNotExecuted
			}
		}

		if err := m.checkAnswer(ctx, config, questionID); err != nil {
			return err
		}

		executed, err := stx.IsExecuted(ctx, questionHash, txHash)
		if err != nil {
			return err
		}
		if executed {
			return ErrAlreadyExecuted
		}

		if err := stx.MarkExecuted(ctx, questionHash, txHash); err != nil {
			return err
		}

		ok, err := m.executor.ExecTransactionFromModule(ctx, tx)
		if errors.Is(err, sdkerrors.ErrTransactionPending) {
			sdk.LoggerFrom(ctx).Warnf("Transaction %d (%s) of proposal %q sent but not confirmed: %v",
				index, txHash.Hex(), proposalID, err)
			pending = NewExecutionPendingError(txHash, err)

			return nil
		}
		if err != nil || !ok {
			return NewExecutionFailedError(txHash, err)
		}
		sent = true

		sdk.LoggerFrom(ctx).Infof("Executed transaction %d (%s) of proposal %q", index, txHash.Hex(), proposalID)

		return nil
	})
	if err != nil && sent {
		return fmt.Errorf("transaction %s executed but not recorded: %w", txHash.Hex(), err)
	}
	if err != nil {
		return err
	}

	return pending
}

// checkAnswer checks the oracle accepted the question with enough bond, the cooldown passed and
// the answer did not expire.
func (m *Module) checkAnswer(ctx context.Context, config types.Config, questionID common.Hash) error {
	result, err := m.oracle.ResultFor(ctx, questionID)
	if err != nil {
		return wrapOracleErr(ErrNotApproved, err)
	}
	if result != types.AnswerAccepted {
		return ErrNotApproved
	}

	bond, err := m.oracle.BondFor(ctx, questionID)
	if err != nil {
		return err
	}
	if minimum := config.MinimumBondOrZero(); bond == nil || bond.Cmp(minimum) < 0 {
		return NewBondTooLowError(bond, minimum)
	}

	finalizedAt, err := m.oracle.FinalizedAt(ctx, questionID)
	if err != nil {
		return err
	}
	now, err := m.now()
	if err != nil {
		return err
	}

	executableAt := uint64(finalizedAt) + uint64(config.QuestionCooldown)
	if now < executableAt {
		return NewCooldownNotElapsedError(executableAt, now)
	}

	if config.AnswerExpiration != 0 {
		expiredAt := uint64(finalizedAt) + uint64(config.AnswerExpiration)
		if now > expiredAt {
			return NewAnswerExpiredError(expiredAt, now)
		}
	}

	return nil
}
