package gate

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	governance "github.com/Azulo-app/platform-dao-governance"
	"github.com/Azulo-app/platform-dao-governance/config"
	"github.com/Azulo-app/platform-dao-governance/metrics"
	"github.com/Azulo-app/platform-dao-governance/sdk"
	"github.com/Azulo-app/platform-dao-governance/sdk/evm"
	"github.com/Azulo-app/platform-dao-governance/store/sqlite"
	"github.com/Azulo-app/platform-dao-governance/types"
)

// loadEnv loads the .env file if there is one.
func loadEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func loadPrivateKey() (*ecdsa.PrivateKey, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	pk := os.Getenv("PRIVATE_KEY")
	if pk == "" {
		return nil, errors.New("PRIVATE_KEY not found in environment or .env file")
	}

	return crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
}

// loadRPC returns the RPC_URL of the environment, or the configured endpoint.
func loadRPC(cfg *config.Config) (string, error) {
	if err := loadEnv(); err != nil {
		return "", err
	}

	if rpcURL := os.Getenv("RPC_URL"); rpcURL != "" {
		return rpcURL, nil
	}
	if cfg.Chain.RPC == "" {
		return "", errors.New("RPC_URL not found in environment and chain.rpc is not configured")
	}

	return cfg.Chain.RPC, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// app is a module connected to the chain and the local store.
type app struct {
	cfg        *config.Config
	deployment types.Deployment
	module     *governance.Module
	safe       *evm.SafeExecutor
	from       common.Address
	closers    []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	return errors.Join(errs...)
}

// loadConfig reads the config file and returns it together with a context carrying the logger.
func loadConfig(ctx context.Context, opts *options) (context.Context, *config.Config, error) {
	cfg, err := config.InitConfig(opts.configPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return ctx, nil, err
	}

	return sdk.WithLogger(ctx, logger.Sugar()), cfg, nil
}

// openApp connects to the chain, opens the store and creates the module.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	deployment, err := cfg.ToDeployment()
	if err != nil {
		return nil, err
	}
	params, err := cfg.ModuleParams()
	if err != nil {
		return nil, err
	}

	pk, err := loadPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("error loading private key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(pk, deployment.ChainID)
	if err != nil {
		return nil, err
	}
	if auth.From != deployment.Module {
		return nil, fmt.Errorf("private key controls %s, not the module account %s", auth.From.Hex(), deployment.Module.Hex())
	}

	rpcURL, err := loadRPC(cfg)
	if err != nil {
		return nil, err
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, deployment: deployment, from: auth.From}
	a.closers = append(a.closers, func() error {
		client.Close()
		return nil
	})

	oracle, err := evm.NewRealityOracle(deployment.Oracle, client, auth)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.safe, err = evm.NewSafeExecutor(deployment.Executor, client, auth)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	st, err := sqlite.Open(ctx, cfg.StorePath())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open store: %w", err), a.Close())
	}
	a.closers = append(a.closers, st.Close)

	moduleOpts := []governance.Option{
		governance.WithClock(clock.New()),
		governance.WithQuestionCreatedHandler(func(ctx context.Context, event types.ProposalQuestionCreated) {
			sdk.LoggerFrom(ctx).Infof("Question %s created for proposal %q", event.QuestionID.Hex(), event.ProposalID)
		}),
	}
	if cfg.Metrics != nil {
		shutdown, err := serveMetrics(ctx, cfg.Metrics.ListenAddress, prometheus.DefaultGatherer)
		if err != nil {
			return nil, errors.Join(err, a.Close())
		}
		a.closers = append(a.closers, shutdown)
		moduleOpts = append(moduleOpts, governance.WithMetrics(metrics.NewMetrics(prometheus.DefaultRegisterer)))
	}

	a.module, err = governance.New(deployment, params, oracle, a.safe, st, moduleOpts...)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	return a, nil
}

// serveMetrics serves the prometheus endpoint until the returned function is called.
func serveMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer) (func() error, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sdk.LoggerFrom(ctx).Warnf("Metrics server stopped: %s", err)
		}
	}()

	return func() error {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}, nil
}

func loadProposal(opts *options) (*governance.Proposal, error) {
	if opts.proposalPath == "" {
		return nil, errors.New("--proposal is required")
	}

	return governance.LoadProposal(opts.proposalPath)
}

// callerOrDefault parses the --caller flag, defaulting to the deployment executor.
func callerOrDefault(caller string, deployment types.Deployment) (common.Address, error) {
	if caller == "" {
		return deployment.Executor, nil
	}
	if !common.IsHexAddress(caller) {
		return common.Address{}, fmt.Errorf("invalid caller address: %s", caller)
	}

	return common.HexToAddress(caller), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
