package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/types"
)

// Oracle is the binary outcome oracle proposals are submitted to.
//
// Question ids must be derived deterministically from the question parameters, the oracle
// address, the asker and the nonce, so the module can check the id it receives.
type Oracle interface {
	// AskQuestion asks a new question and returns its id. When the question was submitted but its
	// confirmation is unknown, the id is returned together with an error wrapping
	// sdkerrors.ErrTransactionPending.
	AskQuestion(ctx context.Context, req types.QuestionRequest) (common.Hash, error)

	// ResultFor returns the final answer of a question. It fails while the question is not
	// finalized.
	ResultFor(ctx context.Context, questionID common.Hash) (common.Hash, error)

	// FinalizedAt returns the unix time at which the answer of a question was finalized.
	FinalizedAt(ctx context.Context, questionID common.Hash) (uint32, error)

	// BondFor returns the bond posted for the current answer of a question.
	BondFor(ctx context.Context, questionID common.Hash) (*big.Int, error)
}
