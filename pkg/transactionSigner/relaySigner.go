package transactionSigner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/relayerIdentity"
	relayerTypes "github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

const defaultReceiptPollInterval = 2 * time.Second

// Relayer is the subset of relayer operations the signer submits through
type Relayer interface {
	relayerIdentity.RelayerGetter
	SendTransaction(ctx context.Context, payload *relayerTypes.RelayerTransactionPayload) (*relayerTypes.RelayerTransaction, error)
	Sign(ctx context.Context, payload *relayerTypes.SignMessagePayload) (*relayerTypes.SignedMessagePayload, error)
	SignTypedData(ctx context.Context, payload *relayerTypes.SignTypedDataPayload) (*relayerTypes.SignedMessagePayload, error)
}

// ReceiptBackend is satisfied by *ethclient.Client
type ReceiptBackend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type RelayTransactionSignerConfig struct {
	Relayer  Relayer
	Options  *SignerOptions
	Resolver *relayerIdentity.Resolver

	// Receipts is required by SignAndSendTransaction only
	Receipts     ReceiptBackend
	PollInterval time.Duration
	Logger       *zap.Logger
}

// RelayTransactionSigner implements ITransactionSigner by submitting transactions to a relayer.
// The relayer assigns nonce and signature; only to, value, data, gas and fees are taken from
// the transactions it is given.
type RelayTransactionSigner struct {
	relayer      Relayer
	options      SignerOptions
	resolver     *relayerIdentity.Resolver
	receipts     ReceiptBackend
	pollInterval time.Duration
	logger       *zap.Logger
}

var _ ITransactionSigner = (*RelayTransactionSigner)(nil)

func NewRelayTransactionSigner(cfg *RelayTransactionSignerConfig) (*RelayTransactionSigner, error) {
	if cfg == nil || cfg.Relayer == nil {
		return nil, fmt.Errorf("relayer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var options SignerOptions
	if cfg.Options != nil {
		options = *cfg.Options
	}
	if options.Speed != "" && !options.Speed.IsValid() {
		return nil, fmt.Errorf("invalid speed %q", options.Speed)
	}
	if options.ValidForSeconds < 0 {
		return nil, fmt.Errorf("validForSeconds must not be negative")
	}
	if options.PrivateMode != "" && !options.PrivateMode.IsValid() {
		return nil, fmt.Errorf("invalid private mode %q", options.PrivateMode)
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = relayerIdentity.NewResolver(cfg.Relayer, logger)
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultReceiptPollInterval
	}

	return &RelayTransactionSigner{
		relayer:      cfg.Relayer,
		options:      options,
		resolver:     resolver,
		receipts:     cfg.Receipts,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// GetTransactOpts returns options that build transactions without signing or sending them,
// so contract bindings can hand the result to SendTransaction
func (s *RelayTransactionSigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	from, err := s.resolver.Address(ctx)
	if err != nil {
		return nil, err
	}
	return &bind.TransactOpts{
		From:    from,
		Context: ctx,
		NoSend:  true,
		Signer: func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if address != from {
				return nil, fmt.Errorf("%w: cannot send transaction from %s", relayerTypes.ErrAuthorizationMismatch, address.Hex())
			}
			return tx, nil
		},
	}, nil
}

func (s *RelayTransactionSigner) GetFromAddress(ctx context.Context) (common.Address, error) {
	return s.resolver.Address(ctx)
}

// TransactionPayload converts tx into a relayer payload. The nonce and signature of tx are ignored.
func (s *RelayTransactionSigner) TransactionPayload(tx *types.Transaction) *relayerTypes.RelayerTransactionPayload {
	payload := &relayerTypes.RelayerTransactionPayload{
		Data:        hexutil.Encode(tx.Data()),
		Speed:       s.options.Speed,
		IsPrivate:   s.options.IsPrivate,
		PrivateMode: s.options.PrivateMode,
	}
	if tx.To() != nil {
		payload.To = tx.To().Hex()
	}
	if tx.Value().Sign() > 0 {
		payload.Value = relayerTypes.NewBigUInt(tx.Value())
	}
	if tx.Gas() > 0 {
		payload.GasLimit = relayerTypes.NewBigUIntFromUint64(tx.Gas())
	}

	if payload.Speed == "" {
		switch tx.Type() {
		case types.LegacyTxType, types.AccessListTxType:
			if tx.GasPrice() != nil && tx.GasPrice().Sign() > 0 {
				payload.GasPrice = relayerTypes.NewBigUInt(tx.GasPrice())
			}
		default:
			if tx.GasFeeCap() != nil && tx.GasFeeCap().Sign() > 0 {
				payload.MaxFeePerGas = relayerTypes.NewBigUInt(tx.GasFeeCap())
				payload.MaxPriorityFeePerGas = relayerTypes.NewBigUInt(tx.GasTipCap())
			}
		}
	}

	if s.options.ValidForSeconds > 0 {
		validUntil := time.Now().UTC().Add(time.Duration(s.options.ValidForSeconds) * time.Second)
		payload.ValidUntil = &validUntil
	}
	return payload
}

// SendTransaction submits tx to the relayer without waiting for it to be mined
func (s *RelayTransactionSigner) SendTransaction(ctx context.Context, tx *types.Transaction) (*relayerTypes.RelayerTransaction, error) {
	payload := s.TransactionPayload(tx)
	if err := relayerTypes.ValidatePayload(payload); err != nil {
		return nil, err
	}

	sent, err := s.relayer.SendTransaction(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction to relayer: %w", err)
	}
	s.logger.Sugar().Infow("SendTransaction: transaction relayed",
		"to", payload.To,
		"transaction_id", sent.TransactionId,
		"hash", sent.Hash,
		"nonce", sent.Nonce,
	)
	return sent, nil
}

// SignAndSendTransaction submits tx and waits until it is mined successfully
func (s *RelayTransactionSigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if s.receipts == nil {
		return nil, fmt.Errorf("a receipt backend is required to wait for transactions")
	}
	sent, err := s.SendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	receipt, err := s.WaitMined(ctx, common.HexToHash(sent.Hash))
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		s.logger.Sugar().Errorw("SignAndSendTransaction: transaction failed",
			"hash", receipt.TxHash.Hex(),
			"status", receipt.Status,
			"gas_used", receipt.GasUsed,
		)
		return nil, fmt.Errorf("transaction failed with status %d", receipt.Status)
	}

	s.logger.Sugar().Infow("SignAndSendTransaction: transaction succeeded",
		"hash", receipt.TxHash.Hex(),
		"gas_used", receipt.GasUsed,
		"block_number", receipt.BlockNumber,
	)
	return receipt, nil
}

// WaitMined polls for the receipt of hash until it exists or ctx is done
func (s *RelayTransactionSigner) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if s.receipts == nil {
		return nil, fmt.Errorf("a receipt backend is required to wait for transactions")
	}
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.receipts.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			s.logger.Sugar().Debugw("Receipt retrieval failed", "hash", hash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *RelayTransactionSigner) SignMessage(ctx context.Context, message []byte) (*relayerTypes.SignedMessagePayload, error) {
	return s.relayer.Sign(ctx, &relayerTypes.SignMessagePayload{Message: hexutil.Encode(message)})
}

// SignTypedData hashes the EIP-712 domain and message locally and has the relayer sign them
func (s *RelayTransactionSigner) SignTypedData(ctx context.Context, typedData *apitypes.TypedData) (*relayerTypes.SignedMessagePayload, error) {
	payload, err := TypedDataPayload(typedData)
	if err != nil {
		return nil, err
	}
	return s.relayer.SignTypedData(ctx, payload)
}

// TypedDataPayload computes the domain separator and message struct hash of typedData
func TypedDataPayload(typedData *apitypes.TypedData) (*relayerTypes.SignTypedDataPayload, error) {
	if typedData == nil {
		return nil, fmt.Errorf("typed data is required")
	}
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data domain: %w", err)
	}
	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data message: %w", err)
	}
	return &relayerTypes.SignTypedDataPayload{
		DomainSeparator:   strings.ToLower(domainSeparator.String()),
		HashStructMessage: strings.ToLower(messageHash.String()),
	}, nil
}
