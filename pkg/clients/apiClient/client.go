package apiClient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/auth"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// ClientConfig holds the configuration for the authenticated API client
type ClientConfig struct {
	ApiUrl        string
	Authenticator auth.IAuthenticator
	HttpClient    *http.Client

	// RateLimit is requests per second; zero disables client side limiting
	RateLimit float64
	RateBurst int

	Logger *zap.Logger
}

// Client wraps platform HTTP calls with a lazily obtained bearer session.
//
// The session is created on first use. Callers arriving while an exchange is in flight
// wait for and share that exchange. A 401 invalidates the session, triggers one renewal
// and one retry of the call; concurrent 401s on the same session collapse into a single
// renewal because the renewal only runs if the rejected session is still current.
type Client struct {
	apiURL        string
	authenticator auth.IAuthenticator
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
	now           func() time.Time

	mu      sync.RWMutex
	session *auth.Session
	api     *Api

	exchangeGroup singleflight.Group
}

func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ApiUrl == "" {
		return nil, fmt.Errorf("api url is required")
	}
	if cfg.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}

	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}
	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		apiURL:        cfg.ApiUrl,
		authenticator: cfg.Authenticator,
		httpClient:    httpClient,
		limiter:       limiter,
		logger:        l,
		now:           time.Now,
	}, nil
}

// Call runs fn with an authenticated Api, renewing the session once if fn hits a 401.
func (c *Client) Call(ctx context.Context, fn func(ctx context.Context, api *Api) error) error {
	api, err := c.getApi(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, api)
	if !IsUnauthorized(err) {
		return err
	}

	c.logger.Sugar().Infow("Platform rejected session, renewing", "api_key", c.authenticator.Username())
	api, err = c.exchange(ctx, api)
	if err != nil {
		return err
	}

	err = fn(ctx, api)
	if IsUnauthorized(err) {
		return fmt.Errorf("%w: %w", types.ErrAuthentication, err)
	}
	return err
}

// Initialized reports whether a session is currently held
func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.api != nil
}

func (c *Client) current() (*Api, *auth.Session) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.api, c.session
}

func (c *Client) getApi(ctx context.Context) (*Api, error) {
	api, session := c.current()
	if api != nil && !session.Expired(c.now()) {
		return api, nil
	}
	return c.exchange(ctx, api)
}

// exchange replaces stale (nil on first use) with a fresh session. Only one exchange
// runs at a time; if stale has already been replaced the replacement is returned as is.
func (c *Client) exchange(ctx context.Context, stale *Api) (*Api, error) {
	// the exchange outlives any single caller; each caller waits on its own ctx
	exchangeCtx := context.WithoutCancel(ctx)
	ch := c.exchangeGroup.DoChan("session", func() (any, error) {
		api, session := c.current()
		if api != nil && api != stale && !session.Expired(c.now()) {
			return api, nil
		}

		var next *auth.Session
		var err error
		if session != nil {
			next, err = c.authenticator.Refresh(exchangeCtx, session)
		} else {
			next, err = c.authenticator.Authenticate(exchangeCtx)
		}
		if err != nil {
			c.mu.Lock()
			if c.api == api {
				c.api = nil
				c.session = nil
			}
			c.mu.Unlock()
			return nil, fmt.Errorf("%w: %w", types.ErrInitialization, err)
		}

		fresh := newApi(c.apiURL, c.authenticator.Username(), next.AccessToken, c.httpClient, c.limiter, c.logger)
		c.mu.Lock()
		c.api = fresh
		c.session = next
		c.mu.Unlock()

		c.logger.Sugar().Debugw("Platform session established", "api_key", c.authenticator.Username(), "expires_at", next.ExpiresAt)
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Api), nil
	}
}
