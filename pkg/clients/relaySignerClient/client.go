package relaySignerClient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/auth"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/clients/apiClient"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// ClientConfig holds what is needed to talk to the relay signer API with an API key
type ClientConfig struct {
	ApiKey    string
	ApiSecret string

	// Relayer overrides environment-derived endpoints; nil means config.NewRelayerClientConfigFromEnv()
	Relayer *config.RelayerClientConfig

	// Authenticator overrides the Cognito exchange, mostly for tests
	Authenticator auth.IAuthenticator
	HttpClient    *http.Client
	Logger        *zap.Logger
}

// Client is the relayer backend for API key credentials
type Client struct {
	api    *apiClient.Client
	logger *zap.Logger

	jsonRpcRequestNextId atomic.Uint64
}

func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ApiKey == "" || cfg.ApiSecret == "" {
		return nil, fmt.Errorf("api key and secret are required")
	}

	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	relayerCfg := cfg.Relayer
	if relayerCfg == nil {
		relayerCfg = config.NewRelayerClientConfigFromEnv()
	}
	if err := relayerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relayer client config: %w", err)
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: relayerCfg.HttpTimeout}
	}

	authenticator := cfg.Authenticator
	if authenticator == nil {
		cognito, err := auth.NewCognitoAuthenticator(&auth.CognitoAuthenticatorConfig{
			ApiKey:       cfg.ApiKey,
			ApiSecret:    cfg.ApiSecret,
			PoolId:       relayerCfg.PoolId,
			PoolClientId: relayerCfg.PoolClientId,
			HttpClient:   httpClient,
			Logger:       l,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticator: %w", err)
		}
		authenticator = cognito
	}

	api, err := apiClient.NewClient(&apiClient.ClientConfig{
		ApiUrl:        relayerCfg.ApiUrl,
		Authenticator: authenticator,
		HttpClient:    httpClient,
		RateLimit:     relayerCfg.RateLimit,
		RateBurst:     relayerCfg.RateBurst,
		Logger:        l,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	c := &Client{
		api:    api,
		logger: l,
	}
	c.jsonRpcRequestNextId.Store(1)
	return c, nil
}

func (c *Client) GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error) {
	var res types.RelayerGetResponse
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Get(ctx, "/relayer", nil, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetRelayerStatus(ctx context.Context) (*types.RelayerStatus, error) {
	var res types.RelayerStatus
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Get(ctx, "/relayer/status", nil, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SendTransaction(ctx context.Context, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	var res types.RelayerTransaction
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Post(ctx, "/txs", payload, &res)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Sugar().Debugw("Relayed transaction submitted", "transaction_id", res.TransactionId, "hash", res.Hash)
	return &res, nil
}

func (c *Client) ReplaceTransactionById(ctx context.Context, id string, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	var res types.RelayerTransaction
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Put(ctx, "/txs/"+url.PathEscape(id), payload, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ReplaceTransactionByNonce shares the /txs/{id} route; the platform tells nonces and ids apart.
func (c *Client) ReplaceTransactionByNonce(ctx context.Context, nonce uint64, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	var res types.RelayerTransaction
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Put(ctx, "/txs/"+strconv.FormatUint(nonce, 10), payload, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	var res types.RelayerTransaction
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Get(ctx, "/txs/"+url.PathEscape(id), nil, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListTransactions(ctx context.Context, criteria *types.ListTransactionsRequest) (*types.ListTransactionsResponse, error) {
	var res types.ListTransactionsResponse
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Get(ctx, "/txs", criteriaToQuery(criteria), &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Sign(ctx context.Context, payload *types.SignMessagePayload) (*types.SignedMessagePayload, error) {
	var res types.SignedMessagePayload
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Post(ctx, "/sign", payload, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SignTypedData(ctx context.Context, payload *types.SignTypedDataPayload) (*types.SignedMessagePayload, error) {
	var res types.SignedMessagePayload
	err := c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Post(ctx, "/sign-typed-data", payload, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Call forwards a JSON-RPC request to the relayer's node. The id is taken before any I/O
// so concurrent calls never share an id.
func (c *Client) Call(ctx context.Context, method string, params []any) (*types.JsonRpcResponse, error) {
	id := c.jsonRpcRequestNextId.Add(1) - 1
	req, err := types.NewJsonRpcRequest(types.NumericID(id), method, params...)
	if err != nil {
		return nil, err
	}

	var res types.JsonRpcResponse
	err = c.api.Call(ctx, func(ctx context.Context, api *apiClient.Api) error {
		return api.Post(ctx, "/relayer/jsonrpc", req, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func criteriaToQuery(criteria *types.ListTransactionsRequest) url.Values {
	q := url.Values{}
	if criteria == nil {
		return q
	}
	if criteria.Since != nil {
		q.Set("since", criteria.Since.UTC().Format(time.RFC3339))
	}
	if criteria.Status != "" {
		q.Set("status", string(criteria.Status))
	}
	if criteria.Limit > 0 {
		q.Set("limit", strconv.Itoa(criteria.Limit))
	}
	if criteria.Next != "" {
		q.Set("next", criteria.Next)
	}
	if criteria.Sort != "" {
		q.Set("sort", criteria.Sort)
	}
	if criteria.UsePagination {
		q.Set("usePagination", "true")
	}
	return q
}
