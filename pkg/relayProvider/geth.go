package relayProvider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// GethProvider is a BaseProvider backed by a go-ethereum rpc.Client over http, websocket or ipc
type GethProvider struct {
	client        *rpc.Client
	subscriptions bool
}

var (
	_ BaseProvider         = (*GethProvider)(nil)
	_ SubscriptionProvider = (*GethProvider)(nil)
	_ Closer               = (*GethProvider)(nil)
)

// DialGethProvider connects to rawurl. Websocket and ipc endpoints support subscriptions.
func DialGethProvider(ctx context.Context, rawurl string) (*GethProvider, error) {
	client, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rawurl, err)
	}
	return NewGethProvider(client, supportsPush(rawurl)), nil
}

func NewGethProvider(client *rpc.Client, subscriptions bool) *GethProvider {
	return &GethProvider{client: client, subscriptions: subscriptions}
}

func supportsPush(rawurl string) bool {
	u, err := url.Parse(rawurl)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "ws", "wss", "":
		return true
	}
	return false
}

// Client exposes the underlying rpc client
func (g *GethProvider) Client() *rpc.Client {
	return g.client
}

func (g *GethProvider) Request(ctx context.Context, req *types.JsonRpcRequest) (*types.JsonRpcResponse, error) {
	args, err := paramsAsArgs(req)
	if err != nil {
		return nil, err
	}

	var result json.RawMessage
	err = g.client.CallContext(ctx, &result, req.Method, args...)
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			jsonErr := &types.JsonRpcError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
			var dataErr rpc.DataError
			if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
				jsonErr.Data, _ = json.Marshal(dataErr.ErrorData())
			}
			return types.NewJsonRpcErrorResponse(req.ID, jsonErr), nil
		}
		return nil, err
	}
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return &types.JsonRpcResponse{JsonRpc: types.JsonRpcVersion, ID: req.ID, Result: result}, nil
}

func (g *GethProvider) Subscribe(ctx context.Context, namespace string, channel any, args ...any) (*rpc.ClientSubscription, error) {
	return g.client.Subscribe(ctx, namespace, channel, args...)
}

func (g *GethProvider) SupportsSubscriptions() bool {
	return g.subscriptions
}

func (g *GethProvider) Close() error {
	g.client.Close()
	return nil
}
