package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/logger"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/factory"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayProvider"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayer"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/transactionSigner"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// relayerParams picks action credentials when present, otherwise the API key pair
func relayerParams(c *cli.Context) relayer.RelayerParams {
	if c.String("credentials") != "" || c.String("relayer-arn") != "" {
		return &relayer.ActionRelayerParams{
			Credentials: c.String("credentials"),
			RelayerARN:  c.String("relayer-arn"),
		}
	}
	return &relayer.ApiRelayerParams{
		ApiKey:    c.String("api-key"),
		ApiSecret: c.String("api-secret"),
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// createRelayer creates a relayer from the global flags
func createRelayer(c *cli.Context, cfg *relayer.Config, l *zap.Logger) (*relayer.Relayer, error) {
	relayerCfg := config.NewRelayerClientConfigFromEnv()
	relayerCfg.ApiUrl = c.String("api-url")
	if rateLimit := c.Float64("rate-limit"); rateLimit > 0 {
		relayerCfg.RateLimit = rateLimit
		relayerCfg.RateBurst = 1
	}

	if cfg == nil {
		cfg = &relayer.Config{}
	}
	cfg.Params = relayerParams(c)
	cfg.Relayer = relayerCfg
	cfg.Logger = l

	r, err := relayer.NewRelayer(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create relayer: %w", err)
	}
	return r, nil
}

// withRelayer runs fn against a relayer built from the global flags and prints its result
func withRelayer(fn func(ctx context.Context, r *relayer.Relayer) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		l, err := newLogger(c)
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		r, err := createRelayer(c, nil, l)
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()

		result, err := fn(c.Context, r)
		if err != nil {
			return err
		}
		return printJSON(result)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func parseOptionalBigUInt(c *cli.Context, name string) (*types.BigUInt, error) {
	raw := c.String(name)
	if raw == "" {
		return nil, nil
	}
	v, err := types.ParseBigUInt(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return v, nil
}

// payloadFromFlags builds a transaction payload from transactionFlags
func payloadFromFlags(c *cli.Context, now time.Time) (*types.RelayerTransactionPayload, error) {
	payload := &types.RelayerTransactionPayload{
		To:          c.String("to"),
		Data:        c.String("data"),
		Speed:       types.Speed(c.String("speed")),
		IsPrivate:   c.Bool("private"),
		PrivateMode: types.PrivateTransactionMode(c.String("private-mode")),
	}

	var err error
	fields := []struct {
		flag   string
		target **types.BigUInt
	}{
		{"value", &payload.Value},
		{"gas-limit", &payload.GasLimit},
		{"gas-price", &payload.GasPrice},
		{"max-fee-per-gas", &payload.MaxFeePerGas},
		{"max-priority-fee-per-gas", &payload.MaxPriorityFeePerGas},
	}
	for _, f := range fields {
		if *f.target, err = parseOptionalBigUInt(c, f.flag); err != nil {
			return nil, err
		}
	}

	if validFor := c.Int64("valid-for"); validFor > 0 {
		validUntil := now.UTC().Add(time.Duration(validFor) * time.Second)
		payload.ValidUntil = &validUntil
	}
	if err := types.ValidatePayload(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func getRelayerCommand(c *cli.Context) error {
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.GetRelayer(ctx)
	})(c)
}

func statusCommand(c *cli.Context) error {
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.GetRelayerStatus(ctx)
	})(c)
}

func sendTransactionCommand(c *cli.Context) error {
	payload, err := payloadFromFlags(c, time.Now())
	if err != nil {
		return err
	}
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.SendTransaction(ctx, payload)
	})(c)
}

func replaceTransactionCommand(c *cli.Context) error {
	id := c.String("id")
	if (id == "") == !c.IsSet("nonce") {
		return fmt.Errorf("exactly one of --id or --nonce is required")
	}
	payload, err := payloadFromFlags(c, time.Now())
	if err != nil {
		return err
	}
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		if id != "" {
			return r.ReplaceTransactionById(ctx, id, payload)
		}
		return r.ReplaceTransactionByNonce(ctx, c.Uint64("nonce"), payload)
	})(c)
}

func getTransactionCommand(c *cli.Context) error {
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.GetTransaction(ctx, c.String("id"))
	})(c)
}

func listTransactionsCommand(c *cli.Context) error {
	criteria := &types.ListTransactionsRequest{
		Since:         c.Timestamp("since"),
		Status:        types.TransactionStatus(c.String("status")),
		Limit:         c.Int("limit"),
		Next:          c.String("next"),
		Sort:          c.String("sort"),
		UsePagination: c.Bool("paginate"),
	}
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.ListTransactions(ctx, criteria)
	})(c)
}

func signCommand(c *cli.Context) error {
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.Sign(ctx, &types.SignMessagePayload{Message: c.String("message")})
	})(c)
}

func readTypedData(path string) (*apitypes.TypedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read typed data: %w", err)
	}
	var typedData apitypes.TypedData
	if err := json.Unmarshal(raw, &typedData); err != nil {
		return nil, fmt.Errorf("failed to parse typed data: %w", err)
	}
	return &typedData, nil
}

func signTypedDataCommand(c *cli.Context) error {
	typedData, err := readTypedData(c.String("file"))
	if err != nil {
		return err
	}
	payload, err := transactionSigner.TypedDataPayload(typedData)
	if err != nil {
		return err
	}
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.SignTypedData(ctx, payload)
	})(c)
}

func parseParams(raw string) ([]any, error) {
	if strings.TrimSpace(raw) == "" {
		return []any{}, nil
	}
	var params []any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("--params must be a JSON array: %w", err)
	}
	return params, nil
}

func rpcCommand(c *cli.Context) error {
	params, err := parseParams(c.String("params"))
	if err != nil {
		return err
	}
	return withRelayer(func(ctx context.Context, r *relayer.Relayer) (any, error) {
		return r.Call(ctx, c.String("method"), params)
	})(c)
}

func storeConfigFromFlags(c *cli.Context) *config.TransactionStoreConfig {
	return &config.TransactionStoreConfig{
		Type:          config.StoreType(c.String("store")),
		RedisAddress:  c.String("redis-address"),
		RedisPassword: c.String("redis-password"),
		RedisDB:       c.Int("redis-db"),
		BadgerPath:    c.String("badger-path"),
	}
}

func serveCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := factory.NewTransactionStore(storeConfigFromFlags(c), l)
	if err != nil {
		return err
	}

	r, err := createRelayer(c, &relayer.Config{Store: store}, l)
	if err != nil {
		_ = store.Close()
		return err
	}
	defer func() { _ = r.Close() }()

	var base relayProvider.BaseProvider
	if rpcUrl := c.String("rpc-url"); rpcUrl != "" {
		geth, err := relayProvider.DialGethProvider(ctx, rpcUrl)
		if err != nil {
			return err
		}
		base = geth
	}

	provider, err := r.NewProvider(base, &relayProvider.SenderOptions{
		Speed:           types.Speed(c.String("speed")),
		ValidForSeconds: c.Int64("valid-for"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	addr := fmt.Sprintf(":%d", c.Int("port"))
	server := &http.Server{
		Addr:              addr,
		Handler:           relayProvider.NewHandler(provider, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Sugar().Infow("Serving relayer JSON-RPC", "address", addr, "store", c.String("store"))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		l.Sugar().Infow("Shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
