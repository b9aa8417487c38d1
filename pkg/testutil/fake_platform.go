package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// DefaultRelayerAddress is the address reported by a FakePlatform unless overridden
const DefaultRelayerAddress = "0x6b175474e89094C44Da98b954EedeAC495271d0F"

// RecordedRequest is one request received by a FakePlatform
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// FakePlatform is an in-process stand-in for the relay signer API. It keeps transactions in
// memory, mints ids with uuid and records every request it receives.
type FakePlatform struct {
	Server *httptest.Server

	mu             sync.Mutex
	address        string
	relayerGroup   bool
	requests       []RecordedRequest
	transactions   map[string]*types.RelayerTransaction
	order          []string
	nextNonce      uint64
	rejectedTokens map[string]bool
	jsonRpcHandler func(req *types.JsonRpcRequest) *types.JsonRpcResponse
}

func NewFakePlatform() *FakePlatform {
	p := &FakePlatform{
		address:        DefaultRelayerAddress,
		transactions:   make(map[string]*types.RelayerTransaction),
		rejectedTokens: make(map[string]bool),
	}
	p.Server = httptest.NewServer(http.HandlerFunc(p.handle))
	return p
}

func (p *FakePlatform) URL() string {
	return p.Server.URL
}

func (p *FakePlatform) Close() {
	p.Server.Close()
}

func (p *FakePlatform) SetAddress(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.address = address
}

// SetRelayerGroup makes GET /relayer describe a relayer group
func (p *FakePlatform) SetRelayerGroup(group bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.relayerGroup = group
}

// RejectToken answers every request bearing token with a 401
func (p *FakePlatform) RejectToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejectedTokens[token] = true
}

func (p *FakePlatform) SetJsonRpcHandler(h func(req *types.JsonRpcRequest) *types.JsonRpcResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jsonRpcHandler = h
}

// Requests returns a copy of every recorded request
func (p *FakePlatform) Requests() []RecordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]RecordedRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// Count returns how many requests matched method and path
func (p *FakePlatform) Count(method, path string) int {
	n := 0
	for _, r := range p.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (p *FakePlatform) Transaction(id string) *types.RelayerTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.transactions[id]
	if !ok {
		return nil
	}
	cp := *tx
	return &cp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (p *FakePlatform) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	p.mu.Lock()
	p.requests = append(p.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	rejected := p.rejectedTokens[token]
	p.mu.Unlock()

	if rejected {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && path == "/relayer":
		p.handleGetRelayer(w)
	case r.Method == http.MethodGet && path == "/relayer/status":
		p.handleGetStatus(w)
	case r.Method == http.MethodPost && path == "/relayer/jsonrpc":
		p.handleJsonRpc(w, body)
	case r.Method == http.MethodPost && path == "/txs":
		p.handleSend(w, body)
	case r.Method == http.MethodGet && path == "/txs":
		p.handleList(w, r)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/txs/"):
		p.handleReplace(w, strings.TrimPrefix(path, "/txs/"), body)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/txs/"):
		p.handleGetTx(w, strings.TrimPrefix(path, "/txs/"))
	case r.Method == http.MethodPost && path == "/sign":
		p.handleSign(w, body, "message")
	case r.Method == http.MethodPost && path == "/sign-typed-data":
		p.handleSign(w, body, "hashStructMessage")
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
}

func (p *FakePlatform) handleGetRelayer(w http.ResponseWriter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.relayerGroup {
		writeJSON(w, http.StatusOK, types.RelayerGetResponse{
			RelayerGroupId: "group-1",
			Name:           "fake group",
			NetworkName:    "sepolia",
			Relayers:       []types.RelayerSummary{{RelayerId: "relayer-1", Address: p.address}},
		})
		return
	}
	writeJSON(w, http.StatusOK, types.RelayerGetResponse{
		RelayerId:   "relayer-1",
		Name:        "fake relayer",
		Address:     p.address,
		NetworkName: "sepolia",
	})
}

func (p *FakePlatform) handleGetStatus(w http.ResponseWriter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending := 0
	for _, tx := range p.transactions {
		if tx.Status == types.TransactionStatusPending {
			pending++
		}
	}
	writeJSON(w, http.StatusOK, types.RelayerStatus{
		RelayerId:                   "relayer-1",
		Name:                        "fake relayer",
		Address:                     p.address,
		Nonce:                       p.nextNonce,
		NumberOfPendingTransactions: pending,
	})
}

func fakeHash(seed string) string {
	return crypto.Keccak256Hash([]byte(seed)).Hex()
}

func (p *FakePlatform) handleSend(w http.ResponseWriter, body []byte) {
	var payload types.RelayerTransactionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	tx := p.newTransaction(&payload, p.nextNonce)
	p.nextNonce++
	writeJSON(w, http.StatusOK, tx)
}

// newTransaction must be called with mu held
func (p *FakePlatform) newTransaction(payload *types.RelayerTransactionPayload, nonce uint64) *types.RelayerTransaction {
	id := uuid.New().String()
	tx := &types.RelayerTransaction{
		TransactionId:        id,
		Hash:                 fakeHash(id),
		To:                   payload.To,
		From:                 p.address,
		Value:                payload.Value,
		Data:                 payload.Data,
		Speed:                payload.Speed,
		GasPrice:             payload.GasPrice,
		MaxFeePerGas:         payload.MaxFeePerGas,
		MaxPriorityFeePerGas: payload.MaxPriorityFeePerGas,
		GasLimit:             payload.GasLimit,
		Nonce:                nonce,
		Status:               types.TransactionStatusPending,
		ChainId:              11155111,
		IsPrivate:            payload.IsPrivate,
	}
	p.transactions[id] = tx
	p.order = append(p.order, id)
	return tx
}

func (p *FakePlatform) handleReplace(w http.ResponseWriter, idOrNonce string, body []byte) {
	var payload types.RelayerTransactionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	existing, ok := p.transactions[idOrNonce]
	if !ok {
		nonce, err := strconv.ParseUint(idOrNonce, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "transaction not found"})
			return
		}
		for _, tx := range p.transactions {
			if tx.Nonce == nonce {
				existing = tx
				break
			}
		}
		if existing == nil {
			writeJSON(w, http.StatusOK, p.newTransaction(&payload, nonce))
			return
		}
	}

	replaced := *p.newTransaction(&payload, existing.Nonce)
	delete(p.transactions, replaced.TransactionId)
	p.order = p.order[:len(p.order)-1]
	replaced.TransactionId = existing.TransactionId
	p.transactions[existing.TransactionId] = &replaced
	writeJSON(w, http.StatusOK, replaced)
}

func (p *FakePlatform) handleGetTx(w http.ResponseWriter, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.transactions[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "transaction not found"})
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (p *FakePlatform) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	paginate := r.URL.Query().Get("usePagination") == "true"

	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]types.RelayerTransaction, 0, len(p.order))
	for _, id := range p.order {
		tx := p.transactions[id]
		if status != "" && string(tx.Status) != status {
			continue
		}
		items = append(items, *tx)
	}
	if paginate {
		writeJSON(w, http.StatusOK, types.ListTransactionsResponse{Items: items})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (p *FakePlatform) handleSign(w http.ResponseWriter, body []byte, field string) {
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, types.SignedMessagePayload{Sig: fakeHash(payload[field]), V: 27})
}

func (p *FakePlatform) handleJsonRpc(w http.ResponseWriter, body []byte) {
	var req types.JsonRpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	p.mu.Lock()
	h := p.jsonRpcHandler
	p.mu.Unlock()

	if h != nil {
		writeJSON(w, http.StatusOK, h(&req))
		return
	}
	resp, _ := types.NewJsonRpcResult(req.ID, "0x1")
	writeJSON(w, http.StatusOK, resp)
}
