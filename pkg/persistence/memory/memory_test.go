package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

func TestMemoryStore_SaveAndGet(t *testing.T) {
	ms := NewMemoryStore()
	defer func() { _ = ms.Close() }()

	require.NoError(t, ms.SaveTransactionId(testHash, "tx-1"))

	id, ok, err := ms.GetTransactionId(testHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-1", id)

	// lookups ignore hex casing
	id, ok, err = ms.GetTransactionId(strings.ToUpper(testHash[2:]))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-1", id)
}

func TestMemoryStore_UnknownHash(t *testing.T) {
	ms := NewMemoryStore()

	id, ok, err := ms.GetTransactionId(testHash)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)

	_, ok, err = ms.GetTransactionId("not-a-hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.SaveTransactionId(testHash, "tx-1"))
	require.NoError(t, ms.SaveTransactionId(testHash, "tx-2"))

	id, _, err := ms.GetTransactionId(testHash)
	require.NoError(t, err)
	assert.Equal(t, "tx-2", id)
	assert.Equal(t, 1, ms.Len())
}

func TestMemoryStore_RejectsInvalidInput(t *testing.T) {
	ms := NewMemoryStore()
	require.Error(t, ms.SaveTransactionId("", "tx-1"))
	require.Error(t, ms.SaveTransactionId("  ", "tx-1"))
	require.Error(t, ms.SaveTransactionId(testHash, ""))
}

func TestMemoryStore_RecordsNonStandardHash(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.SaveTransactionId("0xABCD", "tx-short"))
	require.NoError(t, ms.SaveTransactionId("relayer-hash-1", "tx-opaque"))

	id, ok, err := ms.GetTransactionId("0xabcd")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-short", id)

	id, ok, err = ms.GetTransactionId("relayer-hash-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-opaque", id)
	assert.Equal(t, 2, ms.Len())
}

func TestMemoryStore_Closed(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.HealthCheck())
	require.NoError(t, ms.Close())
	require.NoError(t, ms.Close())

	require.Error(t, ms.HealthCheck())
	require.Error(t, ms.SaveTransactionId(testHash, "tx-1"))
	_, _, err := ms.GetTransactionId(testHash)
	require.Error(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ms := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hash := fmt.Sprintf("0x%064x", i)
			assert.NoError(t, ms.SaveTransactionId(hash, fmt.Sprintf("tx-%d", i)))
			id, ok, err := ms.GetTransactionId(hash)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, fmt.Sprintf("tx-%d", i), id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, ms.Len())
}
