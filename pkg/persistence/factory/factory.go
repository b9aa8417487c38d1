package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/badger"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/memory"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/persistence/redis"
)

// NewTransactionStore builds the store selected by cfg. A nil cfg or empty type yields
// the in-memory store.
func NewTransactionStore(cfg *config.TransactionStoreConfig, logger *zap.Logger) (persistence.ITransactionStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		return memory.NewMemoryStore(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction store config: %w", err)
	}

	switch cfg.Type {
	case "", config.StoreType_Memory:
		return memory.NewMemoryStore(), nil
	case config.StoreType_Redis:
		return redis.NewRedisStore(&redis.RedisConfig{
			Address:   cfg.RedisAddress,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		}, logger)
	case config.StoreType_Badger:
		return badger.NewBadgerStore(cfg.BadgerPath, logger)
	}
	return nil, fmt.Errorf("unsupported transaction store type: %s", cfg.Type)
}
