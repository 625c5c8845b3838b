package sdk

import (
	"context"

	"github.com/Azulo-app/platform-dao-governance/types"
)

// Executor performs approved transactions on behalf of the controlling account.
type Executor interface {
	// ExecTransactionFromModule runs tx and reports whether it succeeded. An error wrapping
	// sdkerrors.ErrTransactionPending means tx was submitted and may still take effect.
	ExecTransactionFromModule(ctx context.Context, tx types.Transaction) (bool, error)
}
