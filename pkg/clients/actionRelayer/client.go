package actionRelayer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	internalAws "github.com/OpenZeppelin/defender-sdk-go/internal/aws"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// Action names understood by the relayer function
const (
	ActionGetSelf       = "get-self"
	ActionGetSelfStatus = "get-self-status"
	ActionSendTx        = "send-tx"
	ActionReplaceTx     = "replace-tx"
	ActionGetTx         = "get-tx"
	ActionListTxs       = "list-txs"
	ActionSign          = "sign"
	ActionSignTypedData = "signTypedData"
	ActionJsonRpcQuery  = "json-rpc-query"
)

// LambdaInvoker is the subset of the Lambda client used to reach the relayer function
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type ClientConfig struct {
	// Credentials is the JSON document injected into an action: AccessKeyId, SecretAccessKey, SessionToken
	Credentials string
	RelayerARN  string

	// Region defaults to config.GetActionRegion()
	Region string

	// Invoker overrides the Lambda client built from Credentials, mostly for tests
	Invoker LambdaInvoker

	// Identity overrides the STS client that checks Credentials at construction
	Identity internalAws.CallerIdentityClient

	Logger *zap.Logger
}

// Client is the relayer backend for code running inside an action. Every operation is a
// synchronous invocation of the relayer function with an {action, payload} request.
type Client struct {
	invoker    LambdaInvoker
	relayerARN string
	logger     *zap.Logger

	jsonRpcRequestNextId atomic.Uint64
}

type request struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

func NewClient(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.RelayerARN == "" {
		return nil, fmt.Errorf("relayer ARN is required")
	}

	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	invoker := cfg.Invoker
	if invoker == nil {
		creds, err := ParseCredentials(cfg.Credentials)
		if err != nil {
			return nil, err
		}
		region := cfg.Region
		if region == "" {
			region = config.GetActionRegion()
		}
		awsCfg, err := internalAws.LoadStaticConfig(ctx, region, *creds)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load aws config for region %s", region)
		}

		identity := cfg.Identity
		if identity == nil {
			identity = internalAws.NewCallerIdentityClient(awsCfg)
		}
		arn, err := internalAws.GetCallerIdentity(ctx, identity)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidCredentials, "action credentials were rejected: %v", err)
		}
		l.Sugar().Debugw("Verified action credentials", "caller_arn", arn, "region", region)

		invoker = lambda.NewFromConfig(awsCfg)
	}

	c := &Client{
		invoker:    invoker,
		relayerARN: cfg.RelayerARN,
		logger:     l,
	}
	c.jsonRpcRequestNextId.Store(1)
	return c, nil
}

// ParseCredentials decodes the credentials document handed to an action
func ParseCredentials(raw string) (*internalAws.StaticCredentials, error) {
	if raw == "" {
		return nil, errors.Wrap(types.ErrInvalidCredentials, "action credentials are empty")
	}
	var creds internalAws.StaticCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidCredentials, "failed to parse action credentials: %v", err)
	}
	if creds.AccessKeyId == "" || creds.SecretAccessKey == "" {
		return nil, errors.Wrap(types.ErrInvalidCredentials, "action credentials must include AccessKeyId and SecretAccessKey")
	}
	return &creds, nil
}

func (c *Client) execute(ctx context.Context, action string, payload any, result any) error {
	body, err := json.Marshal(request{Action: action, Payload: payload})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s request", action)
	}

	out, err := c.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(c.relayerARN),
		InvocationType: lambdaTypes.InvocationTypeRequestResponse,
		Payload:        body,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to invoke relayer for %s", action)
	}
	if out.FunctionError != nil {
		c.logger.Sugar().Warnw("Relayer function returned an error",
			"action", action,
			"function_error", aws.ToString(out.FunctionError),
		)
		return fmt.Errorf("error while attempting %s request: %s", action, string(out.Payload))
	}

	if result == nil || len(out.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(out.Payload, result); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", action)
	}
	return nil
}

func (c *Client) GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error) {
	var res types.RelayerGetResponse
	if err := c.execute(ctx, ActionGetSelf, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetRelayerStatus(ctx context.Context) (*types.RelayerStatus, error) {
	var res types.RelayerStatus
	if err := c.execute(ctx, ActionGetSelfStatus, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SendTransaction(ctx context.Context, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	var res types.RelayerTransaction
	if err := c.execute(ctx, ActionSendTx, payload, &res); err != nil {
		return nil, err
	}
	c.logger.Sugar().Debugw("Relayed transaction submitted", "transaction_id", res.TransactionId, "hash", res.Hash)
	return &res, nil
}

// replacePayload is a transaction payload keyed by either the transaction id or its nonce
type replacePayload struct {
	*types.RelayerTransactionPayload
	ID    string  `json:"id,omitempty"`
	Nonce *uint64 `json:"nonce,omitempty"`
}

func (c *Client) ReplaceTransactionById(ctx context.Context, id string, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	var res types.RelayerTransaction
	if err := c.execute(ctx, ActionReplaceTx, replacePayload{RelayerTransactionPayload: payload, ID: id}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ReplaceTransactionByNonce(ctx context.Context, nonce uint64, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error) {
	var res types.RelayerTransaction
	if err := c.execute(ctx, ActionReplaceTx, replacePayload{RelayerTransactionPayload: payload, Nonce: &nonce}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*types.RelayerTransaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	var res types.RelayerTransaction
	if err := c.execute(ctx, ActionGetTx, id, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListTransactions(ctx context.Context, criteria *types.ListTransactionsRequest) (*types.ListTransactionsResponse, error) {
	if criteria == nil {
		criteria = &types.ListTransactionsRequest{}
	}
	var res types.ListTransactionsResponse
	if err := c.execute(ctx, ActionListTxs, criteria, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Sign(ctx context.Context, payload *types.SignMessagePayload) (*types.SignedMessagePayload, error) {
	var res types.SignedMessagePayload
	if err := c.execute(ctx, ActionSign, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SignTypedData(ctx context.Context, payload *types.SignTypedDataPayload) (*types.SignedMessagePayload, error) {
	var res types.SignedMessagePayload
	if err := c.execute(ctx, ActionSignTypedData, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Call forwards a JSON-RPC request through the relayer function. Ids are per client and
// taken before the invocation.
func (c *Client) Call(ctx context.Context, method string, params []any) (*types.JsonRpcResponse, error) {
	id := c.jsonRpcRequestNextId.Add(1) - 1
	req, err := types.NewJsonRpcRequest(types.NumericID(id), method, params...)
	if err != nil {
		return nil, err
	}
	var res types.JsonRpcResponse
	if err := c.execute(ctx, ActionJsonRpcQuery, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
