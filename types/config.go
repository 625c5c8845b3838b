package types //nolint:revive

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MinCooldownExpirationGap is the minimum number of seconds between the end of the cooldown and
// the expiration of an answer.
const MinCooldownExpirationGap = 60

var ErrInvalidConfig = errors.New("invalid module config")

// Config holds the mutable parameters of the module. Durations are in seconds.
type Config struct {
	// QuestionTimeout is the oracle answer window of newly asked questions.
	QuestionTimeout uint32 `json:"questionTimeout"`

	// QuestionCooldown is the time that must pass after finalization before a transaction of an
	// approved proposal can be executed.
	QuestionCooldown uint32 `json:"questionCooldown"`

	// AnswerExpiration is the maximum age of a finalized answer. Zero means answers never expire.
	AnswerExpiration uint32 `json:"answerExpiration"`

	// Arbitrator is passed to the oracle for newly asked questions.
	Arbitrator common.Address `json:"arbitrator"`

	// MinimumBond is the minimum bond an answer must carry to be acted on.
	MinimumBond *big.Int `json:"minimumBond"`

	// TemplateID is the oracle template of newly asked questions.
	TemplateID *big.Int `json:"templateId"`
}

// NewConfig returns a config with the given parameters and ensures it is valid.
func NewConfig(
	timeout, cooldown, expiration uint32, arbitrator common.Address, minimumBond, templateID *big.Int,
) (Config, error) {
	config := Config{
		QuestionTimeout:  timeout,
		QuestionCooldown: cooldown,
		AnswerExpiration: expiration,
		Arbitrator:       arbitrator,
		MinimumBond:      minimumBond,
		TemplateID:       templateID,
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config.Copy(), nil
}

// Validate checks the cross field invariants of the config.
func (c Config) Validate() error {
	if c.QuestionTimeout == 0 {
		return fmt.Errorf("%w: timeout has to be greater 0", ErrInvalidConfig)
	}

	if c.AnswerExpiration != 0 &&
		uint64(c.QuestionCooldown)+MinCooldownExpirationGap > uint64(c.AnswerExpiration) {
		return fmt.Errorf(
			"%w: there need to be at least %ds between end of cooldown and expiration",
			ErrInvalidConfig, MinCooldownExpirationGap,
		)
	}

	if c.MinimumBond != nil && c.MinimumBond.Sign() < 0 {
		return fmt.Errorf("%w: minimum bond cannot be negative", ErrInvalidConfig)
	}

	if c.TemplateID != nil && c.TemplateID.Sign() < 0 {
		return fmt.Errorf("%w: template id cannot be negative", ErrInvalidConfig)
	}

	return nil
}

// MinimumBondOrZero returns the minimum bond, treating nil as zero.
func (c Config) MinimumBondOrZero() *big.Int {
	if c.MinimumBond == nil {
		return new(big.Int)
	}

	return c.MinimumBond
}

// TemplateIDOrZero returns the template id, treating nil as zero.
func (c Config) TemplateIDOrZero() *big.Int {
	if c.TemplateID == nil {
		return new(big.Int)
	}

	return c.TemplateID
}

// Copy returns a deep copy of the config.
func (c Config) Copy() Config {
	out := c
	out.MinimumBond = new(big.Int).Set(c.MinimumBondOrZero())
	out.TemplateID = new(big.Int).Set(c.TemplateIDOrZero())

	return out
}
