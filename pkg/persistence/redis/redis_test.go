package redis

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/logger"
)

// requireRedis skips the test unless REDIS_TEST_ADDRESS points at a reachable server.
// Every store gets its own key prefix so tests never see each other's keys.
func requireRedis(t *testing.T, ttl time.Duration) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}

	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	rs, err := NewRedisStore(&RedisConfig{
		Address:   addr,
		DB:        15,
		KeyPrefix: "test-" + uuid.NewString() + ":",
		TTL:       ttl,
	}, testLogger)
	if err != nil {
		t.Fatalf("Redis not available at %s: %v", addr, err)
	}
	return rs
}

func testHash(i int) string {
	return fmt.Sprintf("0x%064x", i)
}

func TestNewRedisStore_Validation(t *testing.T) {
	_, err := NewRedisStore(nil, nil)
	require.Error(t, err)

	_, err = NewRedisStore(&RedisConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address cannot be empty")
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	rs := requireRedis(t, 0)
	defer func() { _ = rs.Close() }()

	require.NoError(t, rs.SaveTransactionId(testHash(1), "tx-1"))

	id, ok, err := rs.GetTransactionId(testHash(1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-1", id)

	_, ok, err = rs.GetTransactionId(testHash(2))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_TTL(t *testing.T) {
	rs := requireRedis(t, time.Second)
	defer func() { _ = rs.Close() }()

	require.NoError(t, rs.SaveTransactionId(testHash(3), "tx-3"))
	time.Sleep(1500 * time.Millisecond)

	_, ok, err := rs.GetTransactionId(testHash(3))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_SharedBetweenStores(t *testing.T) {
	first := requireRedis(t, 0)
	defer func() { _ = first.Close() }()

	second, err := NewRedisStore(&RedisConfig{
		Address:   os.Getenv("REDIS_TEST_ADDRESS"),
		DB:        15,
		KeyPrefix: first.keyPrefix,
	}, nil)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	require.NoError(t, first.SaveTransactionId(testHash(4), "tx-4"))
	id, ok, err := second.GetTransactionId(testHash(4))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tx-4", id)
}

func TestRedisStore_CloseAndHealth(t *testing.T) {
	rs := requireRedis(t, 0)
	require.NoError(t, rs.HealthCheck())
	require.NoError(t, rs.Close())
	require.NoError(t, rs.Close())
	require.Error(t, rs.HealthCheck())
	require.Error(t, rs.SaveTransactionId(testHash(5), "tx-5"))
}

func TestRedisStore_Concurrent(t *testing.T) {
	rs := requireRedis(t, 0)
	defer func() { _ = rs.Close() }()

	var wg sync.WaitGroup
	for i := 10; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, rs.SaveTransactionId(testHash(i), fmt.Sprintf("tx-%d", i)))
		}(i)
	}
	wg.Wait()

	for i := 10; i < 30; i++ {
		id, ok, err := rs.GetTransactionId(testHash(i))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("tx-%d", i), id)
	}
}
