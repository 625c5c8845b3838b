package gate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
)

type proposalSummary struct {
	ProposalID   string        `json:"proposalId"`
	TxsHash      common.Hash   `json:"txsHash"`
	TxHashes     []common.Hash `json:"txHashes"`
	Question     string        `json:"question"`
	QuestionHash common.Hash   `json:"questionHash"`
}

func buildShowProposalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show-proposal",
		Short: "Prints the transaction hashes and the oracle question of a proposal",
		Long:  `Computes the fingerprint of the proposal file for the configured deployment. Does not connect to the chain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd.Context(), opts)
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
			question := governance.BuildQuestion(proposal.ID, txHashes)

			return printJSON(cmd.OutOrStdout(), proposalSummary{
				ProposalID:   proposal.ID,
				TxsHash:      governance.TransactionHashesDigest(txHashes),
				TxHashes:     txHashes,
				Question:     question,
				QuestionHash: governance.QuestionHash(question),
			})
		},
	}
}
