package governance

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	sdkerrors "github.com/Azulo-app/platform-dao-governance/sdk/errors"
	"github.com/Azulo-app/platform-dao-governance/sdk/evm"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

const operationAdmit = "add_proposal"

// AddProposal submits a proposal to the oracle with nonce 0.
func (m *Module) AddProposal(ctx context.Context, proposalID string, txHashes []common.Hash) (common.Hash, error) {
	return m.AddProposalWithNonce(ctx, proposalID, txHashes, new(big.Int))
}

// AddProposalWithNonce submits a proposal to the oracle and binds the returned question id to
// the question hash of the proposal. It returns the question id.
//
// A proposal that is already bound can only be asked again once the oracle resolved the previous
// question as invalid, and then needs a nonce that yields a new question id.
//
// If the oracle sent the question but could not confirm it, the returned id is bound anyway and
// returned together with an error wrapping ErrQuestionPending, so the question is not asked twice.
func (m *Module) AddProposalWithNonce(
	ctx context.Context, proposalID string, txHashes []common.Hash, nonce *big.Int,
) (common.Hash, error) {
	question := BuildQuestion(proposalID, txHashes)
	questionHash := QuestionHash(question)

	var questionID common.Hash
	var pending error
	err := m.update(ctx, func(ctx context.Context, tx store.Tx) error {
		config := m.Config()

		state, err := tx.Binding(ctx, questionHash)
		if err != nil {
			return err
		}

		switch {
		case state.IsInvalidated():
			return ErrAlreadyInvalidated
		case state.IsBound():
			if err := m.checkPriorInvalid(ctx, state.QuestionID); err != nil {
				return err
			}
		}

		req := m.questionRequest(config, question, nonce)
		expected, err := evm.QuestionID(req, m.deployment.Oracle, m.deployment.Module)
		if err != nil {
			return err
		}

		actual, err := m.oracle.AskQuestion(ctx, req)
		if errors.Is(err, sdkerrors.ErrTransactionPending) && actual != (common.Hash{}) {
			sdk.LoggerFrom(ctx).Warnf("Question %s for proposal %q sent but not confirmed: %v", actual.Hex(), proposalID, err)
			pending = fmt.Errorf("%w: %s: %w", ErrQuestionPending, actual.Hex(), err)
		} else if err != nil {
			return err
		}
		if actual != expected {
			return NewUnexpectedQuestionIDError(expected, actual)
		}

		if err := tx.SetBinding(ctx, questionHash, types.Bound(actual)); err != nil {
			return err
		}

		if err := tx.RecordQuestion(ctx, types.ProposalQuestionCreated{
			QuestionID: actual,
			ProposalID: proposalID,
		}); err != nil {
			return err
		}

		questionID = actual

		return nil
	})
	if err != nil {
		m.reject(ctx, operationAdmit, err)
		return common.Hash{}, err
	}

	m.metrics.ProposalAdmitted()
	m.emitQuestionCreated(ctx, types.ProposalQuestionCreated{QuestionID: questionID, ProposalID: proposalID})

	if pending != nil {
		m.reject(ctx, operationAdmit, pending)
	}

	return questionID, pending
}

// checkPriorInvalid allows re-asking only when the previous question was resolved as invalid.
func (m *Module) checkPriorInvalid(ctx context.Context, prior common.Hash) error {
	result, err := m.oracle.ResultFor(ctx, prior)
	if err != nil {
		return wrapOracleErr(ErrPriorNotResolvedInvalid, err)
	}
	if result != types.AnswerInvalidated {
		sdk.LoggerFrom(ctx).Debugf("Previous question %s resolved to %s", prior.Hex(), result.Hex())
		return ErrPriorNotResolvedInvalid
	}

	return nil
}
