package relayer

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/clients/actionRelayer"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/clients/relaySignerClient"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/testutil"
	relayerTypes "github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

type unknownParams struct{}

func (unknownParams) validate() error { return nil }

type staticInvoker struct {
	payload []byte
	calls   int
}

func (s *staticInvoker) Invoke(_ context.Context, _ *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	s.calls++
	return &lambda.InvokeOutput{StatusCode: 200, Payload: s.payload}, nil
}

func newApiRelayer(t *testing.T, platform *testutil.FakePlatform) *Relayer {
	t.Helper()
	relayerCfg := config.NewRelayerClientConfigFromEnv()
	relayerCfg.ApiUrl = platform.URL()
	r, err := NewRelayer(context.Background(), &Config{
		Params:        &ApiRelayerParams{ApiKey: "api-key", ApiSecret: "api-secret"},
		Relayer:       relayerCfg,
		Authenticator: testutil.NewStaticAuthenticator("api-key"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRelayer_SelectsBackendFromParams(t *testing.T) {
	platform := testutil.NewFakePlatform()
	defer platform.Close()

	apiRelayer := newApiRelayer(t, platform)
	assert.IsType(t, &relaySignerClient.Client{}, apiRelayer.Backend())

	invoker := &staticInvoker{payload: []byte(`{"relayerId":"r-1","address":"` + testutil.DefaultRelayerAddress + `"}`)}
	actionRelayerInstance, err := NewRelayer(context.Background(), &Config{
		Params: &ActionRelayerParams{
			Credentials: `{"AccessKeyId":"a","SecretAccessKey":"b","SessionToken":"c"}`,
			RelayerARN:  "arn:aws:lambda:us-west-2:123456789012:function:relayer",
		},
		LambdaInvoker: invoker,
	})
	require.NoError(t, err)
	assert.IsType(t, &actionRelayer.Client{}, actionRelayerInstance.Backend())

	for _, r := range []*Relayer{apiRelayer, actionRelayerInstance} {
		relayer, err := r.GetRelayer(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testutil.DefaultRelayerAddress, relayer.Address)
	}
	assert.Equal(t, 1, invoker.calls)
}

func TestNewRelayer_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config", cfg: nil},
		{name: "nil params", cfg: &Config{}},
		{name: "missing api secret", cfg: &Config{Params: &ApiRelayerParams{ApiKey: "key"}}},
		{name: "missing relayer ARN", cfg: &Config{Params: &ActionRelayerParams{Credentials: "{}"}}},
		{name: "unknown params", cfg: &Config{Params: unknownParams{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRelayer(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, relayerTypes.ErrInvalidCredentials)
			assert.Nil(t, r)
		})
	}

	_, err := NewRelayer(context.Background(), &Config{
		Params: &ActionRelayerParams{Credentials: "not json", RelayerARN: "arn"},
	})
	assert.ErrorIs(t, err, relayerTypes.ErrInvalidCredentials)
}

func TestRelayer_ValidatesPayloadsBeforeBackend(t *testing.T) {
	backend := NewMockIRelayerBackend(t)
	r := NewRelayerWithBackend(backend, nil, nil)
	ctx := context.Background()

	invalid := &relayerTypes.RelayerTransactionPayload{
		GasPrice:     relayerTypes.MustParseBigUInt("1"),
		MaxFeePerGas: relayerTypes.MustParseBigUInt("2"),
	}
	_, err := r.SendTransaction(ctx, invalid)
	assert.ErrorIs(t, err, relayerTypes.ErrInvalidPayload)
	_, err = r.ReplaceTransactionById(ctx, "tx-1", invalid)
	assert.ErrorIs(t, err, relayerTypes.ErrInvalidPayload)
	_, err = r.ReplaceTransactionByNonce(ctx, 3, invalid)
	assert.ErrorIs(t, err, relayerTypes.ErrInvalidPayload)

	valid := &relayerTypes.RelayerTransactionPayload{
		To:                   "0x0000000000000000000000000000000000000002",
		MaxFeePerGas:         relayerTypes.MustParseBigUInt("10"),
		MaxPriorityFeePerGas: relayerTypes.MustParseBigUInt("5"),
	}
	backend.EXPECT().SendTransaction(mock.Anything, valid).
		Return(&relayerTypes.RelayerTransaction{TransactionId: "tx-1", Hash: "0xabc"}, nil).Once()
	backend.EXPECT().ReplaceTransactionByNonce(mock.Anything, uint64(3), valid).
		Return(&relayerTypes.RelayerTransaction{TransactionId: "tx-2", Nonce: 3}, nil).Once()

	sent, err := r.SendTransaction(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", sent.TransactionId)

	replaced, err := r.ReplaceTransactionByNonce(ctx, 3, valid)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), replaced.Nonce)

	_, err = r.GetTransaction(ctx, "")
	require.Error(t, err)
}

func TestRelayer_DelegatesReadOperations(t *testing.T) {
	backend := NewMockIRelayerBackend(t)
	r := NewRelayerWithBackend(backend, nil, nil)
	ctx := context.Background()

	backend.EXPECT().GetRelayerStatus(mock.Anything).
		Return(&relayerTypes.RelayerStatus{RelayerId: "r-1", Nonce: 4}, nil).Once()
	backend.EXPECT().ListTransactions(mock.Anything, mock.AnythingOfType("*types.ListTransactionsRequest")).
		Return(&relayerTypes.ListTransactionsResponse{Items: []relayerTypes.RelayerTransaction{{TransactionId: "tx-1"}}}, nil).Once()
	backend.EXPECT().Call(mock.Anything, "eth_blockNumber", []any{}).
		Return(&relayerTypes.JsonRpcResponse{Result: json.RawMessage(`"0x1"`)}, nil).Once()

	status, err := r.GetRelayerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), status.Nonce)

	list, err := r.ListTransactions(ctx, &relayerTypes.ListTransactionsRequest{Status: relayerTypes.TransactionStatusPending})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	resp, err := r.Call(ctx, "eth_blockNumber", []any{})
	require.NoError(t, err)
	assert.JSONEq(t, `"0x1"`, string(resp.Result))
}

func TestRelayer_ProviderAndSignerShareAddressAndStore(t *testing.T) {
	platform := testutil.NewFakePlatform()
	defer platform.Close()
	r := newApiRelayer(t, platform)
	ctx := context.Background()

	provider, err := r.NewProvider(nil, nil)
	require.NoError(t, err)
	signer, err := r.NewSigner(nil, nil)
	require.NoError(t, err)

	req, err := relayerTypes.NewJsonRpcRequest(json.RawMessage(`1`), "eth_sendTransaction", map[string]string{
		"from": testutil.DefaultRelayerAddress,
		"to":   "0x0000000000000000000000000000000000000002",
		"gas":  "21000",
	})
	require.NoError(t, err)
	resp, err := provider.Request(ctx, req)
	require.NoError(t, err)
	require.Nil(t, resp.Error)

	var hash string
	require.NoError(t, json.Unmarshal(resp.Result, &hash))
	id, ok, err := r.GetTransactionIdByHash(hash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, platform.Transaction(id))

	from, err := signer.GetFromAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testutil.DefaultRelayerAddress), from)

	to := common.HexToAddress("0x0000000000000000000000000000000000000003")
	sent, err := signer.SendTransaction(ctx, types.NewTx(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)}))
	require.NoError(t, err)
	assert.NotEmpty(t, sent.TransactionId)

	assert.Equal(t, 1, platform.Count("GET", "/relayer"))
	assert.Equal(t, 2, platform.Count("POST", "/txs"))
}
