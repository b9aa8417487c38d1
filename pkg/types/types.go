package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Speed is a fee-aggressiveness tier resolved server side into concrete fee fields
type Speed string

const (
	SpeedSafeLow Speed = "safeLow"
	SpeedAverage Speed = "average"
	SpeedFast    Speed = "fast"
	SpeedFastest Speed = "fastest"
)

func (s Speed) String() string {
	return string(s)
}

func (s Speed) IsValid() bool {
	switch s {
	case SpeedSafeLow, SpeedAverage, SpeedFast, SpeedFastest:
		return true
	}
	return false
}

type PrivateTransactionMode string

const (
	PrivateModeFlashbotsNormal PrivateTransactionMode = "flashbots-normal"
	PrivateModeFlashbotsFast   PrivateTransactionMode = "flashbots-fast"
)

func (m PrivateTransactionMode) IsValid() bool {
	return m == PrivateModeFlashbotsNormal || m == PrivateModeFlashbotsFast
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSent      TransactionStatus = "sent"
	TransactionStatusSubmitted TransactionStatus = "submitted"
	TransactionStatusInMempool TransactionStatus = "inmempool"
	TransactionStatusMined     TransactionStatus = "mined"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCanceled  TransactionStatus = "canceled"
)

// RelayerTransactionPayload is the body submitted to create or replace a relayed transaction
type RelayerTransactionPayload struct {
	To                   string                 `json:"to,omitempty"`
	Value                *BigUInt               `json:"value,omitempty"`
	Data                 string                 `json:"data,omitempty"`
	Speed                Speed                  `json:"speed,omitempty"`
	GasPrice             *BigUInt               `json:"gasPrice,omitempty"`
	MaxFeePerGas         *BigUInt               `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *BigUInt               `json:"maxPriorityFeePerGas,omitempty"`
	GasLimit             *BigUInt               `json:"gasLimit,omitempty"`
	ValidUntil           *time.Time             `json:"validUntil,omitempty"`
	IsPrivate            bool                   `json:"isPrivate,omitempty"`
	PrivateMode          PrivateTransactionMode `json:"privateMode,omitempty"`
}

// HasFeeFields reports whether any explicit fee field is set
func (p *RelayerTransactionPayload) HasFeeFields() bool {
	return p.GasPrice != nil || p.MaxFeePerGas != nil || p.MaxPriorityFeePerGas != nil
}

// RelayerTransaction is the platform record of a relayed transaction
type RelayerTransaction struct {
	TransactionId        string            `json:"transactionId"`
	Hash                 string            `json:"hash"`
	To                   string            `json:"to,omitempty"`
	From                 string            `json:"from,omitempty"`
	Value                *BigUInt          `json:"value,omitempty"`
	Data                 string            `json:"data,omitempty"`
	Speed                Speed             `json:"speed,omitempty"`
	GasPrice             *BigUInt          `json:"gasPrice,omitempty"`
	MaxFeePerGas         *BigUInt          `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *BigUInt          `json:"maxPriorityFeePerGas,omitempty"`
	GasLimit             *BigUInt          `json:"gasLimit,omitempty"`
	Nonce                uint64            `json:"nonce"`
	Status               TransactionStatus `json:"status"`
	ChainId              uint64            `json:"chainId,omitempty"`
	ValidUntil           string            `json:"validUntil,omitempty"`
	CreatedAt            string            `json:"createdAt,omitempty"`
	SentAt               string            `json:"sentAt,omitempty"`
	PricedAt             string            `json:"pricedAt,omitempty"`
	IsPrivate            bool              `json:"isPrivate,omitempty"`
}

// ListTransactionsRequest filters the relayer's transaction list
type ListTransactionsRequest struct {
	Since         *time.Time        `json:"since,omitempty"`
	Status        TransactionStatus `json:"status,omitempty"`
	Limit         int               `json:"limit,omitempty"`
	Next          string            `json:"next,omitempty"`
	Sort          string            `json:"sort,omitempty"`
	UsePagination bool              `json:"usePagination,omitempty"`
}

// ListTransactionsResponse holds either a plain list or one page of a paginated list.
// Next is empty for unpaginated responses and for the last page.
type ListTransactionsResponse struct {
	Items []RelayerTransaction `json:"items"`
	Next  string               `json:"next,omitempty"`
}

func (r *ListTransactionsResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []RelayerTransaction
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		r.Items = items
		r.Next = ""
		return nil
	}

	type paginated ListTransactionsResponse
	var page paginated
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*r = ListTransactionsResponse(page)
	return nil
}

type RelayerPolicies struct {
	GasPriceCap         *BigUInt `json:"gasPriceCap,omitempty"`
	WhitelistReceivers  []string `json:"whitelistReceivers,omitempty"`
	EIP1559Pricing      bool     `json:"EIP1559Pricing,omitempty"`
	PrivateTransactions any      `json:"privateTransactions,omitempty"`
}

// RelayerGetResponse describes a relayer, or a relayer group when RelayerGroupId is set
type RelayerGetResponse struct {
	RelayerId      string           `json:"relayerId,omitempty"`
	RelayerGroupId string           `json:"relayerGroupId,omitempty"`
	Name           string           `json:"name"`
	Address        string           `json:"address,omitempty"`
	NetworkName    string           `json:"network"`
	Paused         bool             `json:"paused"`
	CreatedAt      string           `json:"createdAt,omitempty"`
	PendingTxCost  string           `json:"pendingTxCost,omitempty"`
	MinBalance     *BigUInt         `json:"minBalance,omitempty"`
	Policies       *RelayerPolicies `json:"policies,omitempty"`
	Relayers       []RelayerSummary `json:"relayers,omitempty"`
}

type RelayerSummary struct {
	RelayerId string `json:"relayerId"`
	Address   string `json:"address"`
}

func (r *RelayerGetResponse) IsRelayerGroup() bool {
	return r.RelayerGroupId != ""
}

// RelayerStatus is the live status snapshot of a relayer
type RelayerStatus struct {
	RelayerId                   string              `json:"relayerId"`
	Name                        string              `json:"name"`
	Nonce                       uint64              `json:"nonce"`
	Address                     string              `json:"address"`
	NumberOfPendingTransactions int                 `json:"numberOfPendingTransactions"`
	Paused                      bool                `json:"paused"`
	PendingTxCost               string              `json:"pendingTxCost,omitempty"`
	TxsQuotaUsage               int                 `json:"txsQuotaUsage,omitempty"`
	RpcQuotaUsage               int                 `json:"rpcQuotaUsage,omitempty"`
	LastConfirmedTransaction    *RelayerTransaction `json:"lastConfirmedTransaction,omitempty"`
}

type SignMessagePayload struct {
	Message string `json:"message"`
}

type SignTypedDataPayload struct {
	DomainSeparator   string `json:"domainSeparator"`
	HashStructMessage string `json:"hashStructMessage"`
}

type SignedMessagePayload struct {
	Sig string `json:"sig"`
	R   string `json:"r,omitempty"`
	S   string `json:"s,omitempty"`
	V   int    `json:"v,omitempty"`
}
