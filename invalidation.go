package governance

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

const (
	operationInvalidate        = "mark_invalid"
	operationInvalidateExpired = "mark_expired"
)

// MarkProposalAsInvalid permanently blocks a proposal from being asked or executed.
func (m *Module) MarkProposalAsInvalid(
	ctx context.Context, caller common.Address, proposalID string, txHashes []common.Hash,
) error {
	return m.MarkProposalAsInvalidByHash(ctx, caller, QuestionHash(BuildQuestion(proposalID, txHashes)))
}

// MarkProposalAsInvalidByHash permanently blocks a question hash. The hash does not need to be
// known, so a proposal can be blocked before it is ever asked. Marking an invalidated hash again
// has no effect.
func (m *Module) MarkProposalAsInvalidByHash(ctx context.Context, caller common.Address, questionHash common.Hash) error {
	if err := m.authorize(caller); err != nil {
		m.reject(ctx, operationInvalidate, err)
		return err
	}

	err := m.update(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.SetBinding(ctx, questionHash, types.Invalidated())
	})
	if err != nil {
		m.reject(ctx, operationInvalidate, err)
		return err
	}

	m.metrics.ProposalInvalidated("direct")
	sdk.LoggerFrom(ctx).Infof("Question hash %s marked as invalid", questionHash.Hex())

	return nil
}

// MarkProposalWithExpiredAnswerAsInvalid invalidates a question hash whose accepted answer is
// older than the answer expiration. Anyone may call it.
func (m *Module) MarkProposalWithExpiredAnswerAsInvalid(ctx context.Context, questionHash common.Hash) error {
	err := m.update(ctx, func(ctx context.Context, tx store.Tx) error {
		config := m.Config()
		if config.AnswerExpiration == 0 {
			return ErrAnswersNeverExpire
		}

		state, err := tx.Binding(ctx, questionHash)
		if err != nil {
			return err
		}
		switch {
		case state.IsInvalidated():
			return ErrProposalAlreadyInvalid
		case state.IsUnbound():
			return ErrNoBinding
		}

		result, err := m.oracle.ResultFor(ctx, state.QuestionID)
		if err != nil {
			return wrapOracleErr(ErrOnlyPositiveAnswersExpire, err)
		}
		if result != types.AnswerAccepted {
			return ErrOnlyPositiveAnswersExpire
		}

		finalizedAt, err := m.oracle.FinalizedAt(ctx, state.QuestionID)
		if err != nil {
			return err
		}
		now, err := m.now()
		if err != nil {
			return err
		}
		if uint64(finalizedAt)+uint64(config.AnswerExpiration) >= now {
			return ErrAnswerNotExpired
		}

		return tx.SetBinding(ctx, questionHash, types.Invalidated())
	})
	if err != nil {
		m.reject(ctx, operationInvalidateExpired, err)
		return err
	}

	m.metrics.ProposalInvalidated("expired")
	sdk.LoggerFrom(ctx).Infof("Question hash %s marked as invalid after its answer expired", questionHash.Hex())

	return nil
}
