package relayerIdentity

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// RelayerGetter fetches the relayer description
type RelayerGetter interface {
	GetRelayer(ctx context.Context) (*types.RelayerGetResponse, error)
}

// Resolver lazily resolves the relayer address and caches it for its lifetime.
// Concurrent callers share one fetch; a failed fetch leaves the cache untouched.
type Resolver struct {
	relayer RelayerGetter
	logger  *zap.Logger

	mu      sync.RWMutex
	address *common.Address

	group singleflight.Group
}

func NewResolver(relayer RelayerGetter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{relayer: relayer, logger: logger}
}

// NewResolverWithAddress returns a resolver that already knows the address
func NewResolverWithAddress(relayer RelayerGetter, address common.Address, logger *zap.Logger) *Resolver {
	r := NewResolver(relayer, logger)
	r.address = &address
	return r
}

func (r *Resolver) cached() (common.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.address == nil {
		return common.Address{}, false
	}
	return *r.address, true
}

// Address returns the relayer address, fetching it on first use
func (r *Resolver) Address(ctx context.Context) (common.Address, error) {
	if addr, ok := r.cached(); ok {
		return addr, nil
	}

	// the shared fetch outlives any single caller; each caller waits on its own ctx
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan("address", func() (interface{}, error) {
		if addr, ok := r.cached(); ok {
			return addr, nil
		}

		relayer, err := r.relayer.GetRelayer(fetchCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch relayer: %w", err)
		}
		if relayer.IsRelayerGroup() {
			return nil, fmt.Errorf("%w: relayer group %s has no single address", types.ErrRelayerGroupNotSupported, relayer.RelayerGroupId)
		}
		if !common.IsHexAddress(relayer.Address) {
			return nil, fmt.Errorf("relayer returned an invalid address %q", relayer.Address)
		}

		addr := common.HexToAddress(relayer.Address)
		r.mu.Lock()
		r.address = &addr
		r.mu.Unlock()

		r.logger.Sugar().Debugw("Resolved relayer address", "relayer_id", relayer.RelayerId, "address", addr.Hex())
		return addr, nil
	})

	select {
	case <-ctx.Done():
		return common.Address{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return common.Address{}, res.Err
		}
		return res.Val.(common.Address), nil
	}
}

// Invalidate drops the cached address so the next Address call fetches it again
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.address = nil
}
