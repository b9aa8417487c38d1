package memory

import (
	"fmt"
	"sync"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence"
)

// MemoryStore is the default in-process ITransactionStore.
//
// Entries are never pruned; the map grows with every relayed transaction for the
// lifetime of the store.
type MemoryStore struct {
	mu     sync.RWMutex
	ids    map[string]string
	closed bool
}

var _ persistence.ITransactionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ids: make(map[string]string),
	}
}

func (m *MemoryStore) SaveTransactionId(hash string, transactionId string) error {
	key, err := persistence.LookupKey(hash)
	if err != nil {
		return err
	}
	if transactionId == "" {
		return fmt.Errorf("transaction id cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}
	m.ids[key] = transactionId
	return nil
}

func (m *MemoryStore) GetTransactionId(hash string) (string, bool, error) {
	key, err := persistence.LookupKey(hash)
	if err != nil {
		return "", false, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, fmt.Errorf("persistence layer is closed")
	}
	id, ok := m.ids[key]
	return id, ok, nil
}

// Len returns the number of recorded hashes
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}
	return nil
}
