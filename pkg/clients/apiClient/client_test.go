package apiClient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/auth"
	"github.com/OpenZeppelin/defender-sdk-go/pkg/types"
)

// countingAuthenticator hands out tokens "t1", "t2", ... and counts exchanges
type countingAuthenticator struct {
	authenticates atomic.Int32
	refreshes     atomic.Int32
	issued        atomic.Int32

	// gate, when set, blocks every exchange until closed
	gate chan struct{}
	// failNext makes the next exchange fail
	failNext atomic.Bool
	expiresAt time.Time
}

func (a *countingAuthenticator) next() (*auth.Session, error) {
	if a.gate != nil {
		<-a.gate
	}
	if a.failNext.CompareAndSwap(true, false) {
		return nil, errors.New("cognito unavailable")
	}
	n := a.issued.Add(1)
	return &auth.Session{
		AccessToken:  fmt.Sprintf("t%d", n),
		RefreshToken: "refresh",
		ExpiresAt:    a.expiresAt,
	}, nil
}

func (a *countingAuthenticator) Authenticate(_ context.Context) (*auth.Session, error) {
	a.authenticates.Add(1)
	return a.next()
}

func (a *countingAuthenticator) Refresh(_ context.Context, _ *auth.Session) (*auth.Session, error) {
	a.refreshes.Add(1)
	return a.next()
}

func (a *countingAuthenticator) Username() string {
	return "api-key"
}

func (a *countingAuthenticator) exchanges() int32 {
	return a.authenticates.Load() + a.refreshes.Load()
}

func newTestClient(t *testing.T, authenticator auth.IAuthenticator, url string) *Client {
	c, err := NewClient(&ClientConfig{ApiUrl: url, Authenticator: authenticator})
	require.NoError(t, err)
	return c
}

func unauthorized() error {
	return &HTTPError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}
}

func TestClient_ConcurrentFirstCallsShareOneExchange(t *testing.T) {
	authenticator := &countingAuthenticator{gate: make(chan struct{})}
	c := newTestClient(t, authenticator, "http://platform.local")

	const callers = 20
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Call(context.Background(), func(_ context.Context, api *Api) error {
				tokens[i] = api.accessToken
				return nil
			})
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(authenticator.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "t1", tokens[i])
	}
	assert.Equal(t, int32(1), authenticator.authenticates.Load())
	assert.Equal(t, int32(0), authenticator.refreshes.Load())
}

// ctxAuthenticator blocks until release is closed and fails if its ctx is cancelled first
type ctxAuthenticator struct {
	countingAuthenticator
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (a *ctxAuthenticator) Authenticate(ctx context.Context) (*auth.Session, error) {
	a.authenticates.Add(1)
	a.once.Do(func() { close(a.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.release:
		return a.next()
	}
}

func TestClient_CancelledCallerDoesNotFailSharedExchange(t *testing.T) {
	authenticator := &ctxAuthenticator{started: make(chan struct{}), release: make(chan struct{})}
	c := newTestClient(t, authenticator, "http://platform.local")

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		firstErr <- c.Call(firstCtx, func(_ context.Context, _ *Api) error { return nil })
	}()
	<-authenticator.started

	secondToken := make(chan string, 1)
	secondErr := make(chan error, 1)
	go func() {
		secondErr <- c.Call(context.Background(), func(_ context.Context, api *Api) error {
			secondToken <- api.accessToken
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(authenticator.release)
	select {
	case err := <-secondErr:
		require.NoError(t, err)
		assert.Equal(t, "t1", <-secondToken)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int32(1), authenticator.authenticates.Load())
	assert.True(t, c.Initialized())
}

func TestClient_UnauthorizedTriggersOneRenewalAndRetry(t *testing.T) {
	authenticator := &countingAuthenticator{}
	c := newTestClient(t, authenticator, "http://platform.local")

	var seen []string
	err := c.Call(context.Background(), func(_ context.Context, api *Api) error {
		seen = append(seen, api.accessToken)
		if api.accessToken == "t1" {
			return unauthorized()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, seen)
	assert.Equal(t, int32(1), authenticator.authenticates.Load())
	assert.Equal(t, int32(1), authenticator.refreshes.Load())
}

func TestClient_SecondUnauthorizedIsFatal(t *testing.T) {
	authenticator := &countingAuthenticator{}
	c := newTestClient(t, authenticator, "http://platform.local")

	calls := 0
	err := c.Call(context.Background(), func(_ context.Context, _ *Api) error {
		calls++
		return unauthorized()
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrAuthentication))
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 2, calls)
	assert.Equal(t, int32(2), authenticator.exchanges())

	// the client heals once the platform accepts credentials again
	err = c.Call(context.Background(), func(_ context.Context, _ *Api) error { return nil })
	require.NoError(t, err)
}

func TestClient_InitializationFailureIsRecoverable(t *testing.T) {
	authenticator := &countingAuthenticator{}
	authenticator.failNext.Store(true)
	c := newTestClient(t, authenticator, "http://platform.local")

	called := false
	err := c.Call(context.Background(), func(_ context.Context, _ *Api) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInitialization))
	assert.False(t, called)
	assert.False(t, c.Initialized())

	err = c.Call(context.Background(), func(_ context.Context, api *Api) error {
		called = true
		assert.Equal(t, "t1", api.accessToken)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, c.Initialized())
	assert.Equal(t, int32(2), authenticator.authenticates.Load())
}

func TestClient_ConcurrentUnauthorizedCollapseToOneRenewal(t *testing.T) {
	authenticator := &countingAuthenticator{}
	c := newTestClient(t, authenticator, "http://platform.local")

	// establish t1 first so that every caller starts from the same session
	require.NoError(t, c.Call(context.Background(), func(_ context.Context, _ *Api) error { return nil }))

	const callers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = c.Call(context.Background(), func(_ context.Context, api *Api) error {
				if api.accessToken == "t1" {
					return unauthorized()
				}
				return nil
			})
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), authenticator.authenticates.Load())
	assert.Equal(t, int32(1), authenticator.refreshes.Load())
}

func TestClient_ExpiredSessionIsRenewedBeforeCall(t *testing.T) {
	authenticator := &countingAuthenticator{expiresAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestClient(t, authenticator, "http://platform.local")
	c.now = func() time.Time { return time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC) }

	var token string
	record := func(_ context.Context, api *Api) error {
		token = api.accessToken
		return nil
	}
	require.NoError(t, c.Call(context.Background(), record))
	assert.Equal(t, "t1", token)

	c.now = func() time.Time { return time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC) }
	require.NoError(t, c.Call(context.Background(), record))
	assert.Equal(t, "t2", token)
	assert.Equal(t, int32(1), authenticator.refreshes.Load())
}

func TestClient_OtherErrorsAreNotRetried(t *testing.T) {
	authenticator := &countingAuthenticator{}
	c := newTestClient(t, authenticator, "http://platform.local")

	calls := 0
	err := c.Call(context.Background(), func(_ context.Context, _ *Api) error {
		calls++
		return &HTTPError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int32(1), authenticator.exchanges())
}

func TestApi_SendsHeadersAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/txs":
			assert.Equal(t, "pending", r.URL.Query().Get("status"))
			_ = json.NewEncoder(w).Encode([]map[string]string{{"transactionId": "a"}})
		case r.Method == http.MethodPost && r.URL.Path == "/sign":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(map[string]string{"sig": "0x" + body["message"]})
		case r.URL.Path == "/forbidden":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"relayer paused"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(t, &countingAuthenticator{}, server.URL+"/")

	err := c.Call(context.Background(), func(ctx context.Context, api *Api) error {
		var list []map[string]string
		if err := api.Get(ctx, "txs", url.Values{"status": []string{"pending"}}, &list); err != nil {
			return err
		}
		assert.Equal(t, "a", list[0]["transactionId"])

		var signed map[string]string
		if err := api.Post(ctx, "/sign", map[string]string{"message": "beef"}, &signed); err != nil {
			return err
		}
		assert.Equal(t, "0xbeef", signed["sig"])
		return nil
	})
	require.NoError(t, err)

	err = c.Call(context.Background(), func(ctx context.Context, api *Api) error {
		return api.Get(ctx, "/forbidden", nil, nil)
	})
	require.Error(t, err)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Contains(t, err.Error(), "relayer paused")
}

func TestNewClient_ValidationErrors(t *testing.T) {
	_, err := NewClient(nil)
	require.Error(t, err)

	_, err = NewClient(&ClientConfig{Authenticator: &countingAuthenticator{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api url is required")

	_, err = NewClient(&ClientConfig{ApiUrl: "http://x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authenticator is required")
}
