package relayProvider

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// BaseProvider executes JSON-RPC requests against a node
type BaseProvider interface {
	// Request executes req. Node-level failures are returned in the response's Error
	// field; the error return is reserved for transport and local failures.
	Request(ctx context.Context, req *types.JsonRpcRequest) (*types.JsonRpcResponse, error)
}

// SubscriptionProvider is implemented by base providers on a transport with
// server push (websocket, ipc)
type SubscriptionProvider interface {
	Subscribe(ctx context.Context, namespace string, channel any, args ...any) (*rpc.ClientSubscription, error)
	SupportsSubscriptions() bool
}

// Closer is implemented by base providers that hold a connection
type Closer interface {
	Close() error
}

// Relayer is the part of a relayer client the adapter needs
type Relayer interface {
	GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error)
	SendTransaction(ctx context.Context, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error)
	ReplaceTransactionByNonce(ctx context.Context, nonce uint64, payload *types.RelayerTransactionPayload) (*types.RelayerTransaction, error)
	Sign(ctx context.Context, payload *types.SignMessagePayload) (*types.SignedMessagePayload, error)
	Call(ctx context.Context, method string, params []any) (*types.JsonRpcResponse, error)
}

// paramsAsArgs turns raw positional params into call arguments that re-encode unchanged
func paramsAsArgs(req *types.JsonRpcRequest) ([]any, error) {
	list, err := req.ParamList()
	if err != nil {
		return nil, err
	}
	args := make([]any, len(list))
	for i, p := range list {
		args[i] = p
	}
	return args, nil
}
