package gate

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	governance "github.com/Azulo-app/platform-dao-governance"
	"github.com/Azulo-app/platform-dao-governance/internal/utils/safecast"
)

// paramSetters maps parameter names to the module setter changing them.
var paramSetters = map[string]func(ctx context.Context, m *governance.Module, caller common.Address, value string) error{
	"question_timeout": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		seconds, err := parseSeconds(value)
		if err != nil {
			return err
		}

		return m.SetQuestionTimeout(ctx, caller, seconds)
	},
	"question_cooldown": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		seconds, err := parseSeconds(value)
		if err != nil {
			return err
		}

		return m.SetQuestionCooldown(ctx, caller, seconds)
	},
	"answer_expiration": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		seconds, err := parseSeconds(value)
		if err != nil {
			return err
		}

		return m.SetAnswerExpiration(ctx, caller, seconds)
	},
	"arbitrator": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		if !common.IsHexAddress(value) {
			return fmt.Errorf("invalid address: %s", value)
		}

		return m.SetArbitrator(ctx, caller, common.HexToAddress(value))
	},
	"minimum_bond": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		bond, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return fmt.Errorf("invalid integer: %s", value)
		}

		return m.SetMinimumBond(ctx, caller, bond)
	},
	"template_id": func(ctx context.Context, m *governance.Module, caller common.Address, value string) error {
		templateID, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return fmt.Errorf("invalid integer: %s", value)
		}

		return m.SetTemplate(ctx, caller, templateID)
	},
}

func parseSeconds(value string) (uint32, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return safecast.DurationToSeconds(d)
}

func paramNames() []string {
	names := make([]string, 0, len(paramSetters))
	for name := range paramSetters {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func buildSetParamCmd(opts *options) *cobra.Command {
	var caller string

	cmd := cobra.Command{
		Use:   "set-param <name> <value>",
		Short: "Checks a change of a module parameter and prints the resulting parameters",
		Long: fmt.Sprintf(`Applies the change to the parameters loaded from the config file and prints them if they
are valid. Persist the change by updating the module section of the config file.

Parameters: %s. Durations use the Go duration format, e.g. 24h.`, strings.Join(paramNames(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}

			setter, ok := paramSetters[args[0]]
			if !ok {
				return fmt.Errorf("unknown parameter %q, expected one of %s", args[0], strings.Join(paramNames(), ", "))
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
			if err := setter(ctx, a.module, from, args[1]); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), a.module.Config())
		},
	}

	cmd.Flags().StringVar(&caller, "caller", "", "Account the call is made on behalf of, defaults to the Safe")

	return &cmd
}
