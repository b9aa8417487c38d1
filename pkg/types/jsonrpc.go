package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const JsonRpcVersion = "2.0"

// JsonRpcRequest is a JSON-RPC 2.0 request. ID and Params are kept raw so that requests
// can be forwarded without being re-encoded.
type JsonRpcRequest struct {
	JsonRpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewJsonRpcRequest builds a request with positional params. A nil id is left unset.
func NewJsonRpcRequest(id json.RawMessage, method string, params ...any) (*JsonRpcRequest, error) {
	if params == nil {
		params = []any{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params for %s: %w", method, err)
	}
	return &JsonRpcRequest{
		JsonRpc: JsonRpcVersion,
		ID:      id,
		Method:  method,
		Params:  raw,
	}, nil
}

// ParamList splits the positional params. Missing or null params yield an empty list.
func (r *JsonRpcRequest) ParamList() ([]json.RawMessage, error) {
	p := bytes.TrimSpace(r.Params)
	if len(p) == 0 || bytes.Equal(p, []byte("null")) {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(p, &list); err != nil {
		return nil, fmt.Errorf("params of %s must be an array: %w", r.Method, err)
	}
	return list, nil
}

// HasID reports whether the caller supplied an id.
func (r *JsonRpcRequest) HasID() bool {
	id := bytes.TrimSpace(r.ID)
	return len(id) > 0 && !bytes.Equal(id, []byte("null"))
}

// NumericID renders n as a JSON-RPC id.
func NumericID(n uint64) json.RawMessage {
	return json.RawMessage(strconv.FormatUint(n, 10))
}

// NormalizeID converts a quoted decimal id such as "7" to the number 7. Other ids are returned unchanged.
func NormalizeID(id json.RawMessage) json.RawMessage {
	var s string
	if err := json.Unmarshal(id, &s); err != nil {
		return id
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return id
	}
	return NumericID(n)
}

type JsonRpcResponse struct {
	JsonRpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JsonRpcError   `json:"error,omitempty"`
}

// NewJsonRpcResult wraps result in a success envelope
func NewJsonRpcResult(id json.RawMessage, result any) (*JsonRpcResponse, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &JsonRpcResponse{
		JsonRpc: JsonRpcVersion,
		ID:      id,
		Result:  raw,
	}, nil
}

func NewJsonRpcErrorResponse(id json.RawMessage, rpcErr *JsonRpcError) *JsonRpcResponse {
	return &JsonRpcResponse{
		JsonRpc: JsonRpcVersion,
		ID:      id,
		Error:   rpcErr,
	}
}

// DecodeResult unmarshals the result into out, or returns the response error.
func (r *JsonRpcResponse) DecodeResult(out any) error {
	if r.Error != nil {
		return r.Error
	}
	if len(r.Result) == 0 {
		return fmt.Errorf("json-rpc response has neither result nor error")
	}
	return json.Unmarshal(r.Result, out)
}

// Standard JSON-RPC error codes
const (
	JsonRpcParseError     = -32700
	JsonRpcInvalidRequest = -32600
	JsonRpcMethodNotFound = -32601
	JsonRpcInvalidParams  = -32602
	JsonRpcInternalError  = -32603
	JsonRpcServerError    = -32000
)

type JsonRpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *JsonRpcError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("json-rpc error %d: %s (%s)", e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}
