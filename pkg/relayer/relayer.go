package relayer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/auth"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/clients/actionRelayer"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/clients/relaySignerClient"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/memory"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayProvider"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayerIdentity"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/transactionSigner"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// IRelayerBackend is the operation set shared by every relayer backend
type IRelayerBackend interface {
	GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error)
	GetRelayerStatus(ctx context.Context) (*types.RelayerStatus, error)
	SendTransaction(ctx context.Context, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error)
	ReplaceTransactionById(ctx context.Context, id string, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error)
	ReplaceTransactionByNonce(ctx context.Context, nonce uint64, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error)
	GetTransaction(ctx context.Context, id string) (*types.RelayerTransaction, error)
	ListTransactions(ctx context.Context, criteria *types.ListTransactionsRequest) (*types.ListTransactionsResponse, error)
	Sign(ctx context.Context, payload *types.SignMessagePayload) (*types.SignedMessagePayload, error)
	SignTypedData(ctx context.Context, payload *types.SignTypedDataPayload) (*types.SignedMessagePayload, error)
	Call(ctx context.Context, method string, params []any) (*types.JsonRpcResponse, error)
}

var (
	_ IRelayerBackend = (*relaySignerClient.Client)(nil)
	_ IRelayerBackend = (*actionRelayer.Client)(nil)
	_ IRelayerBackend = (*Relayer)(nil)
)

type Config struct {
	Params RelayerParams

	// Relayer overrides the API endpoints used with *ApiRelayerParams
	Relayer       *config.RelayerClientConfig
	Authenticator auth.IAuthenticator
	HttpClient    *http.Client

	// ActionRegion and LambdaInvoker apply to *ActionRelayerParams
	ActionRegion  string
	LambdaInvoker actionRelayer.LambdaInvoker

	// Store records hash to transaction id for every provider built by the relayer.
	// Defaults to an in-memory store.
	Store  persistence.ITransactionStore
	Logger *zap.Logger
}

// Relayer is the entry point for a single relayer. It selects a backend from the shape of
// its credentials and validates transaction payloads before they reach the backend.
type Relayer struct {
	backend  IRelayerBackend
	resolver *relayerIdentity.Resolver
	store    persistence.ITransactionStore
	logger   *zap.Logger
}

func NewRelayer(ctx context.Context, cfg *Config) (*Relayer, error) {
	if cfg == nil || cfg.Params == nil {
		return nil, fmt.Errorf("%w: relayer params are required", types.ErrInvalidCredentials)
	}
	if err := cfg.Params.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var backend IRelayerBackend
	switch params := cfg.Params.(type) {
	case *ApiRelayerParams:
		client, err := relaySignerClient.NewClient(&relaySignerClient.ClientConfig{
			ApiKey:        params.ApiKey,
			ApiSecret:     params.ApiSecret,
			Relayer:       cfg.Relayer,
			Authenticator: cfg.Authenticator,
			HttpClient:    cfg.HttpClient,
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}
		backend = client
	case *ActionRelayerParams:
		client, err := actionRelayer.NewClient(ctx, &actionRelayer.ClientConfig{
			Credentials: params.Credentials,
			RelayerARN:  params.RelayerARN,
			Region:      cfg.ActionRegion,
			Invoker:     cfg.LambdaInvoker,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		backend = client
	default:
		return nil, fmt.Errorf("%w: unsupported params %T", types.ErrInvalidCredentials, cfg.Params)
	}

	logger.Sugar().Debugw("Created relayer", "backend", fmt.Sprintf("%T", backend))
	return NewRelayerWithBackend(backend, cfg.Store, logger), nil
}

// NewRelayerWithBackend wraps an existing backend
func NewRelayerWithBackend(backend IRelayerBackend, store persistence.ITransactionStore, logger *zap.Logger) *Relayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = memory.NewMemoryStore()
	}
	return &Relayer{
		backend:  backend,
		resolver: relayerIdentity.NewResolver(backend, logger),
		store:    store,
		logger:   logger,
	}
}

// Backend returns the concrete backend selected at construction
func (r *Relayer) Backend() IRelayerBackend {
	return r.backend
}

// Address resolves the relayer address once and caches it
func (r *Relayer) Address(ctx context.Context) (common.Address, error) {
	return r.resolver.Address(ctx)
}

func (r *Relayer) GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error) {
	return r.backend.GetRelayer(ctx)
}

func (r *Relayer) GetRelayerStatus(ctx context.Context) (*types.RelayerStatus, error) {
	return r.backend.GetRelayerStatus(ctx)
}

func (r *Relayer) SendTransaction(ctx context.Context, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	if err := types.ValidatePayload(payload); err != nil {
		return nil, err
	}
	return r.backend.SendTransaction(ctx, payload)
}

func (r *Relayer) ReplaceTransactionById(ctx context.Context, id string, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	if err := types.ValidatePayload(payload); err != nil {
		return nil, err
	}
	return r.backend.ReplaceTransactionById(ctx, id, payload)
}

func (r *Relayer) ReplaceTransactionByNonce(ctx context.Context, nonce uint64, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	if err := types.ValidatePayload(payload); err != nil {
		return nil, err
	}
	return r.backend.ReplaceTransactionByNonce(ctx, nonce, payload)
}

func (r *Relayer) GetTransaction(ctx context.Context, id string) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	return r.backend.GetTransaction(ctx, id)
}

func (r *Relayer) ListTransactions(ctx context.Context, criteria *types.ListTransactionsRequest) (*types.ListTransactionsResponse, error) {
	return r.backend.ListTransactions(ctx, criteria)
}

func (r *Relayer) Sign(ctx context.Context, payload *types.SignMessagePayload) (*types.SignedMessagePayload, error) {
	return r.backend.Sign(ctx, payload)
}

func (r *Relayer) SignTypedData(ctx context.Context, payload *types.SignTypedDataPayload) (*types.SignedMessagePayload, error) {
	return r.backend.SignTypedData(ctx, payload)
}

func (r *Relayer) Call(ctx context.Context, method string, params []any) (*types.JsonRpcResponse, error) {
	return r.backend.Call(ctx, method, params)
}

// GetTransactionIdByHash looks up the transaction id recorded when a provider sent hash
func (r *Relayer) GetTransactionIdByHash(hash string) (string, bool, error) {
	return r.store.GetTransactionId(hash)
}

// NewProvider wraps base so that transactions and signatures go through this relayer.
// A nil base forwards node queries through the relayer's own JSON-RPC endpoint.
func (r *Relayer) NewProvider(base relayProvider.BaseProvider, opts *relayProvider.SenderOptions) (*relayProvider.RelaySenderProvider, error) {
	return relayProvider.NewRelaySenderProvider(&relayProvider.RelaySenderProviderConfig{
		Base:     base,
		Relayer:  r,
		Options:  opts,
		Resolver: r.resolver,
		Store:    r.store,
		Logger:   r.logger,
	})
}

// NewSigner returns a transaction signer bound to this relayer. receipts may be nil when
// SignAndSendTransaction is not used.
func (r *Relayer) NewSigner(opts *transactionSigner.SignerOptions, receipts transactionSigner.ReceiptBackend) (*transactionSigner.RelayTransactionSigner, error) {
	return transactionSigner.NewRelayTransactionSigner(&transactionSigner.RelayTransactionSignerConfig{
		Relayer:  r,
		Options:  opts,
		Resolver: r.resolver,
		Receipts: receipts,
		Logger:   r.logger,
	})
}

// Close releases the transaction store
func (r *Relayer) Close() error {
	return r.store.Close()
}
