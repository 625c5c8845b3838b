package gate

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
)

func buildAddProposalCmd(opts *options) *cobra.Command {
	var nonce uint64

	cmd := cobra.Command{
		Use:   "add-proposal",
		Short: "Asks the oracle whether the proposal should be executed",
		Long: `Binds the proposal to a new oracle question. A proposal that was asked before can only be
asked again after its question was resolved as invalid, using a different nonce.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}

			proposal, err := loadProposal(opts)
			if err != nil {
				return err
			}

			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			executable, err := governance.NewExecutable(a.module, proposal)
			if err != nil {
				return err
			}

			questionID, err := executable.Submit(ctx, new(big.Int).SetUint64(nonce))
			if errors.Is(err, governance.ErrQuestionPending) {
				fmt.Fprintf(cmd.OutOrStdout(), "Proposal %q bound to question %s, its transaction is not confirmed yet\n",
					proposal.ID, questionID.Hex())
			}
			if err != nil {
				return fmt.Errorf("failed to add proposal: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Proposal %q bound to question %s\n", proposal.ID, questionID.Hex())

			return nil
		},
	}

	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "Nonce of the oracle question")

	return &cmd
}
