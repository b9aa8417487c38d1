package relayProvider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/memory"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayerIdentity"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// Intercepted JSON-RPC methods
const (
	MethodSendTransaction = "eth_sendTransaction"
	MethodAccounts        = "eth_accounts"
	MethodSign            = "eth_sign"
	MethodSignTransaction = "eth_signTransaction"
	MethodEstimateGas     = "eth_estimateGas"
)

// estimateGasLimit is the gas cap handed to eth_estimateGas when the caller gave none
const estimateGasLimit = 1_000_000

// SenderOptions are defaults applied to every transaction sent through the provider
type SenderOptions struct {
	GasPrice             *types.BigUInt
	MaxFeePerGas         *types.BigUInt
	MaxPriorityFeePerGas *types.BigUInt

	// Speed, when set, replaces every explicit fee field on outgoing transactions
	Speed types.Speed

	// ValidForSeconds sets validUntil on transactions that carry none
	ValidForSeconds int64
}

func (o *SenderOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := types.ValidateFeeOptions(o.GasPrice, o.MaxFeePerGas, o.MaxPriorityFeePerGas); err != nil {
		return fmt.Errorf("inconsistent options: %w", err)
	}
	if o.Speed != "" && !o.Speed.IsValid() {
		return fmt.Errorf("inconsistent options: %w: unknown speed %q", types.ErrInvalidPayload, o.Speed)
	}
	if o.ValidForSeconds < 0 {
		return fmt.Errorf("inconsistent options: validForSeconds must not be negative")
	}
	return nil
}

type RelaySenderProviderConfig struct {
	Base    BaseProvider
	Relayer Relayer
	Options *SenderOptions

	// Resolver shares an address cache with other adapters; nil creates a private one
	Resolver *relayerIdentity.Resolver

	// Store records hash to transactionId; nil uses an in-memory store
	Store persistence.ITransactionStore

	Logger *zap.Logger
}

// RelaySenderProvider makes a relayer look like a local signing node. Signing and sending
// methods are served by the relayer; everything else goes to the base provider unchanged.
type RelaySenderProvider struct {
	base     BaseProvider
	relayer  Relayer
	options  SenderOptions
	resolver *relayerIdentity.Resolver
	store    persistence.ITransactionStore
	logger   *zap.Logger
	now      func() time.Time

	nextId atomic.Uint64

	// bound from the base provider at construction
	subscribe             func(ctx context.Context, namespace string, channel any, args ...any) (*rpc.ClientSubscription, error)
	supportsSubscriptions func() bool
	closeBase             func() error
}

var (
	_ BaseProvider         = (*RelaySenderProvider)(nil)
	_ SubscriptionProvider = (*RelaySenderProvider)(nil)
	_ Closer               = (*RelaySenderProvider)(nil)
)

func NewRelaySenderProvider(cfg *RelaySenderProviderConfig) (*RelaySenderProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Relayer == nil {
		return nil, fmt.Errorf("relayer is required")
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	base := cfg.Base
	if base == nil {
		base = NewRelayerRpcProvider(cfg.Relayer)
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = relayerIdentity.NewResolver(cfg.Relayer, l)
	}

	store := cfg.Store
	if store == nil {
		store = memory.NewMemoryStore()
	}

	p := &RelaySenderProvider{
		base:     base,
		relayer:  cfg.Relayer,
		resolver: resolver,
		store:    store,
		logger:   l,
		now:      time.Now,
	}
	if cfg.Options != nil {
		p.options = *cfg.Options
	}
	p.nextId.Store(1)

	if sp, ok := base.(SubscriptionProvider); ok {
		p.subscribe = sp.Subscribe
		p.supportsSubscriptions = sp.SupportsSubscriptions
	}
	if c, ok := base.(Closer); ok {
		p.closeBase = c.Close
	}
	return p, nil
}

// GetTransactionId returns the relayer transaction id behind a hash returned by eth_sendTransaction
func (p *RelaySenderProvider) GetTransactionId(hash string) (string, bool) {
	id, ok, err := p.store.GetTransactionId(hash)
	if err != nil {
		p.logger.Sugar().Warnw("Failed to look up transaction id", "hash", hash, "error", err)
		return "", false
	}
	return id, ok
}

// Address returns the relayer address, resolving it on first use
func (p *RelaySenderProvider) Address(ctx context.Context) (common.Address, error) {
	return p.resolver.Address(ctx)
}

func (p *RelaySenderProvider) Subscribe(ctx context.Context, namespace string, channel any, args ...any) (*rpc.ClientSubscription, error) {
	if p.subscribe == nil {
		return nil, types.ErrSubscriptionsNotSupported
	}
	return p.subscribe(ctx, namespace, channel, args...)
}

func (p *RelaySenderProvider) SupportsSubscriptions() bool {
	return p.supportsSubscriptions != nil && p.supportsSubscriptions()
}

func (p *RelaySenderProvider) Close() error {
	if p.closeBase == nil {
		return nil
	}
	return p.closeBase()
}

// responseID is the id used for intercepted methods: the caller's id with quoted
// decimals made numeric, or the next local id
func (p *RelaySenderProvider) responseID(req *types.JsonRpcRequest) json.RawMessage {
	if req.HasID() {
		return types.NormalizeID(req.ID)
	}
	return types.NumericID(p.nextId.Add(1) - 1)
}

func (p *RelaySenderProvider) Request(ctx context.Context, req *types.JsonRpcRequest) (*types.JsonRpcResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	switch req.Method {
	case MethodSendTransaction:
		id := p.responseID(req)
		hash, err := p.sendTransaction(ctx, req)
		if err != nil {
			return nil, err
		}
		return types.NewJsonRpcResult(id, hash)

	case MethodAccounts:
		id := p.responseID(req)
		addr, err := p.resolver.Address(ctx)
		if err != nil {
			return nil, err
		}
		return types.NewJsonRpcResult(id, []string{addr.Hex()})

	case MethodSign:
		id := p.responseID(req)
		sig, err := p.signMessage(ctx, req)
		if err != nil {
			return nil, err
		}
		return types.NewJsonRpcResult(id, sig)

	case MethodSignTransaction:
		return nil, fmt.Errorf("%w: %s", types.ErrMethodNotSupported, MethodSignTransaction)
	}

	return p.base.Request(ctx, req)
}

// sendTransactionParams is params[0] of eth_sendTransaction
type sendTransactionParams struct {
	From                 string                       `json:"from,omitempty"`
	To                   string                       `json:"to,omitempty"`
	Value                *types.BigUInt               `json:"value,omitempty"`
	Data                 string                       `json:"data,omitempty"`
	Input                string                       `json:"input,omitempty"`
	Nonce                *types.BigUInt               `json:"nonce,omitempty"`
	Gas                  *types.BigUInt               `json:"gas,omitempty"`
	GasPrice             *types.BigUInt               `json:"gasPrice,omitempty"`
	MaxFeePerGas         *types.BigUInt               `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *types.BigUInt               `json:"maxPriorityFeePerGas,omitempty"`
	Speed                types.Speed                  `json:"speed,omitempty"`
	IsPrivate            bool                         `json:"isPrivate,omitempty"`
	PrivateMode          types.PrivateTransactionMode `json:"privateMode,omitempty"`
	ValidUntil           *time.Time                   `json:"validUntil,omitempty"`
}

func firstParam(req *types.JsonRpcRequest) (json.RawMessage, error) {
	list, err := req.ParamList()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s requires a transaction object", req.Method)
	}
	return list[0], nil
}

func (p *RelaySenderProvider) sendTransaction(ctx context.Context, req *types.JsonRpcRequest) (string, error) {
	rawTx, err := firstParam(req)
	if err != nil {
		return "", err
	}
	var tx sendTransactionParams
	if err := json.Unmarshal(rawTx, &tx); err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidPayload, err)
	}

	if err := types.ValidateFeeOptions(tx.GasPrice, tx.MaxFeePerGas, tx.MaxPriorityFeePerGas); err != nil {
		return "", err
	}
	if tx.Nonce != nil && !tx.Nonce.Big().IsUint64() {
		return "", fmt.Errorf("%w: nonce %s does not fit in 64 bits", types.ErrInvalidPayload, tx.Nonce)
	}
	payload := p.buildPayload(&tx)
	if err := types.ValidatePayload(payload); err != nil {
		return "", err
	}

	relayerAddress, err := p.resolver.Address(ctx)
	if err != nil {
		return "", err
	}
	if tx.From != "" && !strings.EqualFold(tx.From, relayerAddress.Hex()) {
		return "", fmt.Errorf("%w: cannot send transaction from %s", types.ErrAuthorizationMismatch, tx.From)
	}

	gasLimit := tx.Gas
	if gasLimit == nil {
		gasLimit, err = p.estimateGas(ctx, rawTx)
		if err != nil {
			return "", err
		}
	}
	payload.GasLimit = gasLimit

	var sent *types.RelayerTransaction
	if tx.Nonce != nil {
		sent, err = p.relayer.ReplaceTransactionByNonce(ctx, tx.Nonce.Uint64(), payload)
	} else {
		sent, err = p.relayer.SendTransaction(ctx, payload)
	}
	if err != nil {
		return "", err
	}

	if err := p.store.SaveTransactionId(sent.Hash, sent.TransactionId); err != nil {
		p.logger.Sugar().Warnw("Failed to record transaction id",
			"hash", sent.Hash,
			"transaction_id", sent.TransactionId,
			"error", err,
		)
	}
	p.logger.Sugar().Debugw("Relayed eth_sendTransaction",
		"hash", sent.Hash,
		"transaction_id", sent.TransactionId,
		"replaced_nonce", tx.Nonce != nil,
	)
	return sent.Hash, nil
}

// buildPayload merges the provider options with the caller's transaction. Transaction
// fields win over options; a configured speed removes every explicit fee field.
func (p *RelaySenderProvider) buildPayload(tx *sendTransactionParams) *types.RelayerTransactionPayload {
	payload := &types.RelayerTransactionPayload{
		To:                   tx.To,
		Value:                tx.Value,
		Data:                 tx.Data,
		Speed:                tx.Speed,
		GasPrice:             p.options.GasPrice,
		MaxFeePerGas:         p.options.MaxFeePerGas,
		MaxPriorityFeePerGas: p.options.MaxPriorityFeePerGas,
		ValidUntil:           tx.ValidUntil,
		IsPrivate:            tx.IsPrivate,
		PrivateMode:          tx.PrivateMode,
	}
	if payload.Data == "" {
		payload.Data = tx.Input
	}
	if tx.GasPrice != nil {
		payload.GasPrice = tx.GasPrice
	}
	if tx.MaxFeePerGas != nil {
		payload.MaxFeePerGas = tx.MaxFeePerGas
	}
	if tx.MaxPriorityFeePerGas != nil {
		payload.MaxPriorityFeePerGas = tx.MaxPriorityFeePerGas
	}

	if p.options.Speed != "" {
		payload.Speed = p.options.Speed
	}
	if payload.Speed != "" {
		payload.GasPrice = nil
		payload.MaxFeePerGas = nil
		payload.MaxPriorityFeePerGas = nil
	}

	if payload.ValidUntil == nil && p.options.ValidForSeconds > 0 {
		validUntil := p.now().UTC().Add(time.Duration(p.options.ValidForSeconds) * time.Second)
		payload.ValidUntil = &validUntil
	}
	return payload
}

// estimateGas issues eth_estimateGas through this provider with the caller's transaction
func (p *RelaySenderProvider) estimateGas(ctx context.Context, rawTx json.RawMessage) (*types.BigUInt, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawTx, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidPayload, err)
	}
	if _, ok := fields["gasLimit"]; !ok {
		fields["gasLimit"] = json.RawMessage(fmt.Sprintf("%d", estimateGasLimit))
	}

	estimateReq, err := types.NewJsonRpcRequest(types.NumericID(1), MethodEstimateGas, fields)
	if err != nil {
		return nil, err
	}
	resp, err := p.Request(ctx, estimateReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEstimation, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEstimation, resp.Error)
	}

	var gas types.BigUInt
	if err := json.Unmarshal(resp.Result, &gas); err != nil {
		return nil, fmt.Errorf("%w: unreadable estimate %s: %v", types.ErrEstimation, string(resp.Result), err)
	}
	return &gas, nil
}

func (p *RelaySenderProvider) signMessage(ctx context.Context, req *types.JsonRpcRequest) (string, error) {
	list, err := req.ParamList()
	if err != nil {
		return "", err
	}
	if len(list) < 2 {
		return "", fmt.Errorf("%s requires an address and a message", MethodSign)
	}
	var from, message string
	if err := json.Unmarshal(list[0], &from); err != nil {
		return "", fmt.Errorf("invalid %s address: %w", MethodSign, err)
	}
	if err := json.Unmarshal(list[1], &message); err != nil {
		return "", fmt.Errorf("invalid %s message: %w", MethodSign, err)
	}

	relayerAddress, err := p.resolver.Address(ctx)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(from, relayerAddress.Hex()) {
		return "", fmt.Errorf("%w: cannot sign message as %s", types.ErrAuthorizationMismatch, from)
	}

	signed, err := p.relayer.Sign(ctx, &types.SignMessagePayload{Message: message})
	if err != nil {
		return "", err
	}
	return signed.Sig, nil
}
