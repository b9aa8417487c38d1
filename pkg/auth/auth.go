package auth

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// expirySkew renews sessions slightly before the token actually expires
const expirySkew = 60 * time.Second

// Session is the result of a credential exchange
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token should no longer be used at now.
// Sessions without a known expiry never expire locally; the platform's 401 drives renewal.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt.Add(-expirySkew))
}

// IAuthenticator exchanges long-lived credentials for short-lived bearer sessions
type IAuthenticator interface {
	// Authenticate performs a full credential exchange.
	Authenticate(ctx context.Context) (*Session, error)

	// Refresh renews an existing session. Implementations fall back to a full
	// exchange when the session cannot be refreshed.
	Refresh(ctx context.Context, session *Session) (*Session, error)

	// Username identifies the principal; it is sent as the X-Api-Key header.
	Username() string
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The second return value is false when the token carries no readable expiry.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return time.Time{}, false
	}
	return parsed.Expiration()
}
