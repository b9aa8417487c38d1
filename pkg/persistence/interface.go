package persistence

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ITransactionStore maps transaction hashes returned to callers back to the relayer
// transactionId that produced them. Implementations must be safe for concurrent use.
type ITransactionStore interface {
	// SaveTransactionId records that hash was produced by transactionId.
	// Saving the same hash again overwrites the previous id.
	SaveTransactionId(hash string, transactionId string) error

	// GetTransactionId returns the id recorded for hash. The boolean is false when the
	// hash is unknown; the error is reserved for storage failures.
	GetTransactionId(hash string) (string, bool, error)

	// Close releases the store. Idempotent.
	Close() error

	// HealthCheck verifies the store is operational.
	HealthCheck() error
}

// NormalizeHash returns the canonical lowercase 0x form of a transaction hash so that
// lookups are insensitive to the caller's hex casing.
func NormalizeHash(hash string) (string, error) {
	h := strings.TrimSpace(hash)
	if !strings.HasPrefix(h, "0x") && !strings.HasPrefix(h, "0X") {
		h = "0x" + h
	}
	if len(h) != 2+2*common.HashLength {
		return "", fmt.Errorf("invalid transaction hash %q", hash)
	}
	for _, c := range h[2:] {
		if !isHexChar(c) {
			return "", fmt.Errorf("invalid transaction hash %q", hash)
		}
	}
	return strings.ToLower(h), nil
}

// LookupKey is NormalizeHash for well-formed hashes and the trimmed lowercase input
// otherwise, so relayers that report non-standard hashes can still be recorded.
// Only an empty hash is rejected.
func LookupKey(hash string) (string, error) {
	if key, err := NormalizeHash(hash); err == nil {
		return key, nil
	}
	h := strings.ToLower(strings.TrimSpace(hash))
	if h == "" || h == "0x" {
		return "", fmt.Errorf("transaction hash cannot be empty")
	}
	return h, nil
}

func isHexChar(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
