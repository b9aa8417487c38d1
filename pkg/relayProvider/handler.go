package relayProvider

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

const maxRequestBodySize = 5 * 1024 * 1024

// Handler serves JSON-RPC over HTTP through a BaseProvider, so that any JSON-RPC
// client can use a relayer as if it were a node
type Handler struct {
	provider BaseProvider
	logger   *zap.Logger
}

func NewHandler(provider BaseProvider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{provider: provider, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeResponse(w, types.NewJsonRpcErrorResponse(nil, &types.JsonRpcError{
			Code:    types.JsonRpcParseError,
			Message: "failed to read request body",
		}))
		return
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(body, &batch); err != nil || len(batch) == 0 {
			writeResponse(w, types.NewJsonRpcErrorResponse(nil, &types.JsonRpcError{
				Code:    types.JsonRpcInvalidRequest,
				Message: "invalid batch",
			}))
			return
		}
		responses := make([]*types.JsonRpcResponse, 0, len(batch))
		for _, raw := range batch {
			responses = append(responses, h.handleOne(r, raw))
		}
		writeResponse(w, responses)
		return
	}

	writeResponse(w, h.handleOne(r, body))
}

func (h *Handler) handleOne(r *http.Request, raw json.RawMessage) *types.JsonRpcResponse {
	var req types.JsonRpcRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return types.NewJsonRpcErrorResponse(nil, &types.JsonRpcError{
			Code:    types.JsonRpcParseError,
			Message: err.Error(),
		})
	}
	if req.Method == "" {
		return types.NewJsonRpcErrorResponse(req.ID, &types.JsonRpcError{
			Code:    types.JsonRpcInvalidRequest,
			Message: "missing method",
		})
	}

	resp, err := h.provider.Request(r.Context(), &req)
	if err != nil {
		h.logger.Sugar().Debugw("JSON-RPC request failed", "method", req.Method, "error", err)
		return types.NewJsonRpcErrorResponse(req.ID, errorToJsonRpc(err))
	}
	return resp
}

// errorToJsonRpc maps local failures onto JSON-RPC error codes
func errorToJsonRpc(err error) *types.JsonRpcError {
	var rpcErr *types.JsonRpcError
	if errors.As(err, &rpcErr) && !errors.Is(err, types.ErrEstimation) {
		return rpcErr
	}

	code := types.JsonRpcServerError
	switch {
	case errors.Is(err, types.ErrMethodNotSupported):
		code = types.JsonRpcMethodNotFound
	case errors.Is(err, types.ErrInvalidPayload):
		code = types.JsonRpcInvalidParams
	case errors.Is(err, types.ErrAuthorizationMismatch):
		code = types.JsonRpcInvalidParams
	}
	return &types.JsonRpcError{Code: code, Message: err.Error()}
}

func writeResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
