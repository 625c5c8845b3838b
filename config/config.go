// Package config loads the configuration of the gate CLI.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/Azulo-app/platform-dao-governance/internal/utils/safecast"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// EnvPrefix is the prefix of environment variables overriding the config file. A double
// underscore separates levels, e.g. GATE_CHAIN__RPC sets chain.rpc.
const EnvPrefix = "GATE_"

// DefaultStorePath is used when no store path is configured.
const DefaultStorePath = "gate.db"

// Config contains the CLI configuration.
type Config struct {
	Chain      ChainConfig      `koanf:"chain"`
	Deployment DeploymentConfig `koanf:"deployment"`
	Module     ModuleConfig     `koanf:"module"`
	Store      StoreConfig      `koanf:"store"`
	Log        LogConfig        `koanf:"log"`
	Metrics    *MetricsConfig   `koanf:"metrics"`
}

// ChainConfig selects the chain the module is deployed on. Either the chain selector or the EVM
// chain id has to be set.
type ChainConfig struct {
	Selector uint64 `koanf:"selector" validate:"required_without=ChainID"`
	ChainID  uint64 `koanf:"chain_id" validate:"required_without=Selector"`

	// RPC is the endpoint of the node. The RPC_URL variable of the .env file takes precedence.
	RPC string `koanf:"rpc" validate:"omitempty,url"`
}

// DeploymentConfig holds the addresses of the deployment.
type DeploymentConfig struct {
	Module   string `koanf:"module" validate:"required,eth_addr"`
	Executor string `koanf:"executor" validate:"required,eth_addr"`
	Oracle   string `koanf:"oracle" validate:"required,eth_addr"`
}

// ModuleConfig holds the initial module parameters. Bonds and template ids are decimal strings.
type ModuleConfig struct {
	QuestionTimeout  time.Duration `koanf:"question_timeout" validate:"required"`
	QuestionCooldown time.Duration `koanf:"question_cooldown"`
	AnswerExpiration time.Duration `koanf:"answer_expiration"`
	Arbitrator       string        `koanf:"arbitrator" validate:"omitempty,eth_addr"`
	MinimumBond      string        `koanf:"minimum_bond" validate:"omitempty,number"`
	TemplateID       string        `koanf:"template_id" validate:"omitempty,number"`
}

// StoreConfig configures the sqlite store of bindings and executions.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	ListenAddress string `koanf:"listen_address" validate:"required,hostname_port"`
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if cfg.Chain.Selector != 0 && cfg.Chain.ChainID != 0 {
		return errors.New("chain: only one of selector and chain_id can be set")
	}

	if _, err := cfg.ModuleParams(); err != nil {
		return fmt.Errorf("module: %w", err)
	}

	return nil
}

// ChainID resolves the EVM chain id, through the chain selector if no id is given.
func (cfg *Config) ChainID() (*big.Int, error) {
	if cfg.Chain.ChainID != 0 {
		return new(big.Int).SetUint64(cfg.Chain.ChainID), nil
	}

	return types.ChainSelector(cfg.Chain.Selector).EVMChainID()
}

// ToDeployment returns the deployment described by the config.
func (cfg *Config) ToDeployment() (types.Deployment, error) {
	chainID, err := cfg.ChainID()
	if err != nil {
		return types.Deployment{}, err
	}

	deployment := types.Deployment{
		ChainID:  chainID,
		Module:   common.HexToAddress(cfg.Deployment.Module),
		Executor: common.HexToAddress(cfg.Deployment.Executor),
		Oracle:   common.HexToAddress(cfg.Deployment.Oracle),
	}

	return deployment, deployment.Validate()
}

// ModuleParams converts the module section to module parameters.
func (cfg *Config) ModuleParams() (types.Config, error) {
	m := cfg.Module

	timeout, err := safecast.DurationToSeconds(m.QuestionTimeout)
	if err != nil {
		return types.Config{}, fmt.Errorf("question_timeout: %w", err)
	}
	cooldown, err := safecast.DurationToSeconds(m.QuestionCooldown)
	if err != nil {
		return types.Config{}, fmt.Errorf("question_cooldown: %w", err)
	}
	expiration, err := safecast.DurationToSeconds(m.AnswerExpiration)
	if err != nil {
		return types.Config{}, fmt.Errorf("answer_expiration: %w", err)
	}
	bond, err := parseBigInt(m.MinimumBond)
	if err != nil {
		return types.Config{}, fmt.Errorf("minimum_bond: %w", err)
	}
	templateID, err := parseBigInt(m.TemplateID)
	if err != nil {
		return types.Config{}, fmt.Errorf("template_id: %w", err)
	}

	var arbitrator common.Address
	if m.Arbitrator != "" {
		arbitrator = common.HexToAddress(m.Arbitrator)
	}

	return types.NewConfig(timeout, cooldown, expiration, arbitrator, bond, templateID)
}

// StorePath returns the configured store path or DefaultStorePath.
func (cfg *Config) StorePath() string {
	if cfg.Store.Path == "" {
		return DefaultStorePath
	}

	return cfg.Store.Path
}

func parseBigInt(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}

	return v, nil
}

// InitConfig initializes the configuration from file f, overridden by GATE_ environment variables.
func InitConfig(f string) (*Config, error) {
	return initConfig(file.Provider(f))
}

func initConfig(p koanf.Provider) (*Config, error) {
	var config Config
	k := koanf.New(".")

	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
