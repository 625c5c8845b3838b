package gate

import (
	"github.com/spf13/cobra"
)

// options are the flags shared by all commands.
type options struct {
	configPath   string
	proposalPath string
}

func BuildGateCmd() *cobra.Command {
	opts := &options{}

	cmd := cobra.Command{
		Use:   "gate",
		Short: "Manage proposals of an optimistic execution governance module",
		Long: `Submits proposals to the oracle, executes approved transactions through the Safe and
invalidates rejected or expired proposals. Bindings and executions are kept in a local store.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "gate.yaml", "Path of the configuration file")
	cmd.PersistentFlags().StringVar(&opts.proposalPath, "proposal", "", "Path of the proposal file")

	cmd.AddCommand(buildShowProposalCmd(opts))
	cmd.AddCommand(buildAddProposalCmd(opts))
	cmd.AddCommand(buildExecuteProposalCmd(opts))
	cmd.AddCommand(buildMarkInvalidCmd(opts))
	cmd.AddCommand(buildMarkExpiredCmd(opts))
	cmd.AddCommand(buildStatusCmd(opts))
	cmd.AddCommand(buildSetParamCmd(opts))

	return &cmd
}
