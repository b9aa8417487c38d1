package transactionSigner

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	relayerTypes "github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// ITransactionSigner provides methods for signing and submitting Ethereum transactions
type ITransactionSigner interface {
	// GetTransactOpts returns transaction options for building unsigned transactions
	// with contract bindings
	GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error)

	// SendTransaction submits tx without waiting for it to be mined
	SendTransaction(ctx context.Context, tx *types.Transaction) (*relayerTypes.RelayerTransaction, error)

	// SignAndSendTransaction submits tx and waits for its receipt
	SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

	// GetFromAddress returns the address transactions are sent from
	GetFromAddress(ctx context.Context) (common.Address, error)

	SignMessage(ctx context.Context, message []byte) (*relayerTypes.SignedMessagePayload, error)

	SignTypedData(ctx context.Context, typedData *apitypes.TypedData) (*relayerTypes.SignedMessagePayload, error)
}

// SignerOptions are fee defaults applied to transactions that carry none
type SignerOptions struct {
	// Speed, when set, replaces the fee fields of every transaction
	Speed relayerTypes.Speed

	// ValidForSeconds sets validUntil on every submitted transaction
	ValidForSeconds int64

	// IsPrivate submits transactions through a private mempool
	IsPrivate   bool
	PrivateMode relayerTypes.PrivateTransactionMode
}
