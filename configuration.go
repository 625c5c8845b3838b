package governance

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"
)

const operationSetParam = "set_param"

// SetQuestionTimeout sets the answer window of questions asked from now on.
func (m *Module) SetQuestionTimeout(ctx context.Context, caller common.Address, timeout uint32) error {
	return m.setConfig(ctx, caller, "questionTimeout", func(c *types.Config) {
		c.QuestionTimeout = timeout
	})
}

// SetQuestionCooldown sets the time between finalization and execution.
func (m *Module) SetQuestionCooldown(ctx context.Context, caller common.Address, cooldown uint32) error {
	return m.setConfig(ctx, caller, "questionCooldown", func(c *types.Config) {
		c.QuestionCooldown = cooldown
	})
}

// SetAnswerExpiration sets the maximum age of answers. Zero disables expiration.
func (m *Module) SetAnswerExpiration(ctx context.Context, caller common.Address, expiration uint32) error {
	return m.setConfig(ctx, caller, "answerExpiration", func(c *types.Config) {
		c.AnswerExpiration = expiration
	})
}

// SetArbitrator sets the arbitrator of questions asked from now on.
func (m *Module) SetArbitrator(ctx context.Context, caller common.Address, arbitrator common.Address) error {
	return m.setConfig(ctx, caller, "arbitrator", func(c *types.Config) {
		c.Arbitrator = arbitrator
	})
}

// SetMinimumBond sets the bond an accepted answer must carry before execution.
func (m *Module) SetMinimumBond(ctx context.Context, caller common.Address, bond *big.Int) error {
	return m.setConfig(ctx, caller, "minimumBond", func(c *types.Config) {
		c.MinimumBond = bond
	})
}

// SetTemplate sets the oracle template of questions asked from now on.
func (m *Module) SetTemplate(ctx context.Context, caller common.Address, templateID *big.Int) error {
	return m.setConfig(ctx, caller, "templateId", func(c *types.Config) {
		c.TemplateID = templateID
	})
}

// setConfig applies change to a copy of the config and stores it if the result is valid. The
// change is made inside a unit of work of the store, so it never interleaves with the checks of
// an admission, execution or invalidation.
func (m *Module) setConfig(ctx context.Context, caller common.Address, name string, change func(*types.Config)) error {
	if err := m.authorize(caller); err != nil {
		m.reject(ctx, operationSetParam, err)
		return err
	}

	err := m.update(ctx, func(context.Context, store.Tx) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		next := m.config.Copy()
		change(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		m.config = next.Copy()

		return nil
	})
	if err != nil {
		m.reject(ctx, operationSetParam, err)
		return err
	}

	sdk.LoggerFrom(ctx).Infof("Module parameter %s updated", name)

	return nil
}
