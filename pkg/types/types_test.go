package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigUInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "number", input: `21000`, expected: "21000"},
		{name: "exponent number", input: `1e6`, expected: "1000000"},
		{name: "decimal string", input: `"100000000000"`, expected: "100000000000"},
		{name: "hex string", input: `"0x5208"`, expected: "21000"},
		{name: "negative", input: `"-1"`, wantErr: true},
		{name: "fraction", input: `1.5`, wantErr: true},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BigUInt
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestRelayerTransactionPayload_MarshalOmitsUnsetFields(t *testing.T) {
	payload := &RelayerTransactionPayload{
		To:       "0x179810822f56b0e79469189741a3fa5f2f9a7631",
		Value:    MustParseBigUInt("0x1"),
		GasLimit: NewBigUIntFromUint64(21000),
		Speed:    SpeedFast,
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1", decoded["value"])
	assert.Equal(t, "21000", decoded["gasLimit"])
	assert.Equal(t, "fast", decoded["speed"])
	assert.NotContains(t, decoded, "gasPrice")
	assert.NotContains(t, decoded, "maxFeePerGas")
	assert.NotContains(t, decoded, "validUntil")
}

func TestListTransactionsResponse_DecodesBothShapes(t *testing.T) {
	var plain ListTransactionsResponse
	require.NoError(t, json.Unmarshal([]byte(`[{"transactionId":"a","hash":"0x1","nonce":1,"status":"mined"}]`), &plain))
	require.Len(t, plain.Items, 1)
	assert.Equal(t, "a", plain.Items[0].TransactionId)
	assert.Empty(t, plain.Next)

	var page ListTransactionsResponse
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"transactionId":"b","hash":"0x2","nonce":2,"status":"pending"}],"next":"cursor-1"}`), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, TransactionStatusPending, page.Items[0].Status)
	assert.Equal(t, "cursor-1", page.Next)
}

func TestJsonRpcRequest_IDHandling(t *testing.T) {
	req, err := NewJsonRpcRequest(nil, "eth_blockNumber")
	require.NoError(t, err)
	assert.False(t, req.HasID())
	assert.JSONEq(t, `[]`, string(req.Params))

	params, err := req.ParamList()
	require.NoError(t, err)
	assert.Empty(t, params)

	assert.Equal(t, json.RawMessage("7"), NormalizeID(json.RawMessage(`"7"`)))
	assert.Equal(t, json.RawMessage(`"abc"`), NormalizeID(json.RawMessage(`"abc"`)))
	assert.Equal(t, json.RawMessage(`3`), NormalizeID(json.RawMessage(`3`)))
}

func TestJsonRpcResponse_DecodeResult(t *testing.T) {
	resp, err := NewJsonRpcResult(NumericID(1), "0x10")
	require.NoError(t, err)

	var out string
	require.NoError(t, resp.DecodeResult(&out))
	assert.Equal(t, "0x10", out)

	errResp := NewJsonRpcErrorResponse(NumericID(2), &JsonRpcError{Code: -32000, Message: "execution reverted"})
	err = errResp.DecodeResult(&out)
	require.Error(t, err)
	var rpcErr *JsonRpcError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32000, rpcErr.Code)
}
