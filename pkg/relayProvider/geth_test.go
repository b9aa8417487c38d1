package relayProvider

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// testEthService is registered under the "eth" namespace of an in-process rpc server
type testEthService struct{}

func (s *testEthService) BlockNumber() hexutil.Uint64 {
	return 0x2a
}

func (s *testEthService) EstimateGas(_ map[string]any) (hexutil.Uint64, error) {
	return 0, errors.New("execution reverted")
}

func (s *testEthService) NewHeads(ctx context.Context) (*rpc.Subscription, error) {
	notifier, ok := rpc.NotifierFromContext(ctx)
	if !ok {
		return nil, rpc.ErrNotificationsUnsupported
	}
	sub := notifier.CreateSubscription()
	go func() {
		_ = notifier.Notify(sub.ID, hexutil.Uint64(1))
	}()
	return sub, nil
}

func newInProcGethProvider(t *testing.T) *GethProvider {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &testEthService{}))
	t.Cleanup(server.Stop)
	return NewGethProvider(rpc.DialInProc(server), true)
}

func TestGethProvider_Request(t *testing.T) {
	p := newInProcGethProvider(t)
	defer func() { _ = p.Close() }()

	req, err := types.NewJsonRpcRequest(json.RawMessage(`11`), "eth_blockNumber")
	require.NoError(t, err)
	resp, err := p.Request(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`11`), resp.ID)
	assert.JSONEq(t, `"0x2a"`, string(resp.Result))
}

func TestGethProvider_NodeErrorsBecomeResponses(t *testing.T) {
	p := newInProcGethProvider(t)
	defer func() { _ = p.Close() }()

	req, err := types.NewJsonRpcRequest(json.RawMessage(`1`), "eth_estimateGas", map[string]any{"to": "0x01"})
	require.NoError(t, err)
	resp, err := p.Request(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "execution reverted")

	req, err = types.NewJsonRpcRequest(json.RawMessage(`2`), "eth_unknownMethod")
	require.NoError(t, err)
	resp, err = p.Request(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, types.JsonRpcMethodNotFound, resp.Error.Code)
}

func TestRelaySenderProvider_DelegatesSubscriptions(t *testing.T) {
	base := newInProcGethProvider(t)
	p := newProvider(t, base, newFakeRelayer(), nil)
	defer func() { _ = p.Close() }()

	require.True(t, p.SupportsSubscriptions())

	heads := make(chan hexutil.Uint64, 1)
	sub, err := p.Subscribe(context.Background(), "eth", heads, "newHeads")
	require.NoError(t, err)
	defer sub.Unsubscribe()

	select {
	case head := <-heads:
		assert.Equal(t, hexutil.Uint64(1), head)
	case err := <-sub.Err():
		t.Fatalf("subscription failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestSupportsPush(t *testing.T) {
	assert.True(t, supportsPush("ws://localhost:8546"))
	assert.True(t, supportsPush("wss://node.example"))
	assert.True(t, supportsPush("/tmp/geth.ipc"))
	assert.False(t, supportsPush("http://localhost:8545"))
	assert.False(t, supportsPush("https://node.example"))
}
