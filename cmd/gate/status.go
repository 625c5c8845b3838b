package gate

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/store/sqlite"
)

func buildStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Prints the binding and execution state of a proposal",
		Long:  `Reads the local store only. Does not connect to the chain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}
			deployment, err := cfg.ToDeployment()
			if err != nil {
				return err
			}

			proposal, err := loadProposal(opts)
			if err != nil {
				return err
			}
			txHashes, err := proposal.TransactionHashes(deployment)
			if err != nil {
				return err
			}
			question, questionHash, err := proposal.Question(deployment)
			if err != nil {
				return err
			}

			st, err := sqlite.Open(ctx, cfg.StorePath())
			if err != nil {
				return err
			}

			status := governance.ProposalStatus{
				ProposalID:   proposal.ID,
				Question:     question,
				QuestionHash: questionHash,
				TxHashes:     txHashes,
				Executed:     make([]bool, len(txHashes)),
			}
			err = st.View(ctx, func(r store.Reader) error {
				return readStatus(ctx, r, &status)
			})
			if err = errors.Join(err, st.Close()); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func readStatus(ctx context.Context, r store.Reader, status *governance.ProposalStatus) error {
	binding, err := r.Binding(ctx, status.QuestionHash)
	if err != nil {
		return err
	}
	status.Binding = binding
	status.BindingState = binding.String()

	for i, txHash := range status.TxHashes {
		if status.Executed[i], err = r.IsExecuted(ctx, status.QuestionHash, txHash); err != nil {
			return err
		}
	}

	return nil
}
