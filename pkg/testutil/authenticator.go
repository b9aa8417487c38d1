package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/auth"
)

// StaticAuthenticator issues the bearer tokens "token-1", "token-2", ... without contacting Cognito
type StaticAuthenticator struct {
	ApiKey string

	issued        atomic.Int32
	authenticates atomic.Int32
	refreshes     atomic.Int32
}

func NewStaticAuthenticator(apiKey string) *StaticAuthenticator {
	return &StaticAuthenticator{ApiKey: apiKey}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context) (*auth.Session, error) {
	a.authenticates.Add(1)
	return a.next(), nil
}

func (a *StaticAuthenticator) Refresh(_ context.Context, _ *auth.Session) (*auth.Session, error) {
	a.refreshes.Add(1)
	return a.next(), nil
}

func (a *StaticAuthenticator) Username() string {
	return a.ApiKey
}

// Exchanges is the total number of Authenticate and Refresh calls
func (a *StaticAuthenticator) Exchanges() int {
	return int(a.authenticates.Load() + a.refreshes.Load())
}

// Token returns the n-th token this authenticator hands out
func Token(n int) string {
	return fmt.Sprintf("token-%d", n)
}

func (a *StaticAuthenticator) next() *auth.Session {
	n := a.issued.Add(1)
	return &auth.Session{
		AccessToken:  Token(int(n)),
		RefreshToken: "refresh-token",
	}
}
