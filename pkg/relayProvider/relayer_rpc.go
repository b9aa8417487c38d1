package relayProvider

import (
	"context"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// RelayerRpcProvider is a BaseProvider that sends every request through the relayer's
// own JSON-RPC endpoint
type RelayerRpcProvider struct {
	relayer Relayer
}

var _ BaseProvider = (*RelayerRpcProvider)(nil)

func NewRelayerRpcProvider(relayer Relayer) *RelayerRpcProvider {
	return &RelayerRpcProvider{relayer: relayer}
}

func (p *RelayerRpcProvider) Request(ctx context.Context, req *types.JsonRpcRequest) (*types.JsonRpcResponse, error) {
	args, err := paramsAsArgs(req)
	if err != nil {
		return nil, err
	}
	resp, err := p.relayer.Call(ctx, req.Method, args)
	if err != nil {
		return nil, err
	}
	// the relayer assigns its own ids
	out := *resp
	out.ID = req.ID
	return &out, nil
}
