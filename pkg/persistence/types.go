package persistence

import (
	"encoding/json"
	"fmt"
)

// TransactionRecord is the value persisted for a hash by the durable stores
type TransactionRecord struct {
	TransactionId string `json:"transactionId"`

	// SavedAt is the Unix timestamp of the last save.
	SavedAt int64 `json:"savedAt"`
}

// MarshalTransactionRecord serializes a TransactionRecord to JSON bytes.
func MarshalTransactionRecord(r *TransactionRecord) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot marshal nil TransactionRecord")
	}
	return json.Marshal(r)
}

// UnmarshalTransactionRecord deserializes a TransactionRecord from JSON bytes.
func UnmarshalTransactionRecord(data []byte) (*TransactionRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var r TransactionRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to TransactionRecord: %w", err)
	}
	if r.TransactionId == "" {
		return nil, fmt.Errorf("transaction record has no transactionId")
	}
	return &r, nil
}
