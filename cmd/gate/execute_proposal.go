package gate

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
	"github.com/Azulo-app/platform-dao-governance/config"
	"github.com/Azulo-app/platform-dao-governance/internal/oraclesim"
	"github.com/Azulo-app/platform-dao-governance/internal/utils/safecast"
	"github.com/Azulo-app/platform-dao-governance/store/memory"
)

func buildExecuteProposalCmd(opts *options) *cobra.Command {
	var (
		index    uint64
		simulate bool
	)

	cmd := cobra.Command{
		Use:   "execute-proposal",
		Short: "Executes the transactions of an approved proposal through the Safe",
		Long: `Executes the transaction at --index, or every transaction that was not executed yet when
--index is not set. The oracle must have accepted the proposal and the cooldown must have passed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}

			proposal, err := loadProposal(opts)
			if err != nil {
				return err
			}

			if simulate {
				return simulateProposal(ctx, cmd, cfg, proposal)
			}

			a, err := openApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			enabled, err := a.safe.IsModuleEnabled(ctx, a.deployment.Module)
			if err != nil {
				return err
			}
			if !enabled {
				return fmt.Errorf("module %s is not enabled on Safe %s", a.deployment.Module.Hex(), a.deployment.Executor.Hex())
			}

			executable, err := governance.NewExecutable(a.module, proposal)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("index") {
				i, err := safecast.Uint64ToInt(index)
				if err != nil {
					return err
				}

				err = executable.Execute(ctx, i)
				if errors.Is(err, governance.ErrExecutionPending) {
					fmt.Fprintf(cmd.OutOrStdout(), "Transaction %d of proposal %q was sent but is not confirmed, check it on chain before retrying\n",
						i, proposal.ID)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Executed transaction %d of proposal %q\n", i, proposal.ID)

				return nil
			}

			count, err := executable.ExecuteAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Executed %d transactions of proposal %q\n", count, proposal.ID)

			return err
		},
	}

	cmd.Flags().Uint64Var(&index, "index", 0, "Index of the transaction to execute, all remaining if not set")
	cmd.Flags().BoolVar(&simulate, "simulate", false,
		"Admit, approve and execute the proposal against a simulated oracle and Safe")

	return &cmd
}

// simulateProposal runs the whole lifecycle of the proposal in memory: the question is accepted
// with the minimum bond and the clock is moved past the cooldown.
func simulateProposal(ctx context.Context, cmd *cobra.Command, cfg *config.Config, proposal *governance.Proposal) error {
	deployment, err := cfg.ToDeployment()
	if err != nil {
		return err
	}
	params, err := cfg.ModuleParams()
	if err != nil {
		return err
	}

	oracle := oraclesim.NewOracle(deployment.Oracle, deployment.Module)
	executor := oraclesim.NewExecutor()
	mockClock := clock.NewMock()
	mockClock.Set(time.Now())

	module, err := governance.New(deployment, params, oracle, executor, memory.New(), governance.WithClock(mockClock))
	if err != nil {
		return err
	}

	executable, err := governance.NewExecutable(module, proposal)
	if err != nil {
		return err
	}

	questionID, err := executable.Submit(ctx, new(big.Int))
	if err != nil {
		return err
	}

	finalizedAt := uint32(mockClock.Now().Unix()) //nolint:gosec // unix time fits until 2106
	oracle.Accept(questionID, params.MinimumBondOrZero(), finalizedAt)
	mockClock.Add(time.Duration(params.QuestionCooldown) * time.Second)

	count, err := executable.ExecuteAll(ctx)
	if err != nil {
		return err
	}
	if count != len(proposal.Transactions) {
		return errors.New("not every transaction was executed")
	}

	status, err := executable.Status(ctx)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), status)
}
