package gate

import (
	"fmt"

	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
)

func buildMarkInvalidCmd(opts *options) *cobra.Command {
	var caller string

	cmd := cobra.Command{
		Use:   "mark-invalid",
		Short: "Permanently blocks a proposal",
		Long:  `Marks the proposal as invalid. No transaction of it can be executed and it can not be asked again.`,
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

			from, err := callerOrDefault(caller, a.deployment)
			if err != nil {
				return err
			}

			executable, err := governance.NewExecutable(a.module, proposal)
			if err != nil {
				return err
			}
			if err := executable.Invalidate(ctx, from); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Proposal %q marked as invalid\n", proposal.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "caller", "", "Account the call is made on behalf of, defaults to the Safe")

	return &cmd
}

func buildMarkExpiredCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-expired",
		Short: "Invalidates a proposal whose accepted answer expired",
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

			_, questionHash, err := proposal.Question(a.deployment)
			if err != nil {
				return err
			}
			if err := a.module.MarkProposalWithExpiredAnswerAsInvalid(ctx, questionHash); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Proposal %q marked as invalid\n", proposal.ID)

			return nil
		},
	}
}
