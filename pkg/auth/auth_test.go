package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsignedJWT builds a compact token with the given exp; signatures are not checked when reading expiry.
func unsignedJWT(exp time.Time) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := enc.EncodeToString([]byte(fmt.Sprintf(`{"sub":"relayer","exp":%d}`, exp.Unix())))
	return header + "." + payload + "." + enc.EncodeToString([]byte("signature"))
}

type fakeCognito struct {
	inputs  []*cip.InitiateAuthInput
	outputs []*cip.InitiateAuthOutput
	errs    []error
}

func (f *fakeCognito) InitiateAuth(_ context.Context, params *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	i := len(f.inputs)
	f.inputs = append(f.inputs, params)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return f.outputs[i], nil
}

func authOutput(access, refresh string, expiresIn int32) *cip.InitiateAuthOutput {
	res := &ciptypes.AuthenticationResultType{
		AccessToken: aws.String(access),
		ExpiresIn:   expiresIn,
	}
	if refresh != "" {
		res.RefreshToken = aws.String(refresh)
	}
	return &cip.InitiateAuthOutput{AuthenticationResult: res}
}

func newTestAuthenticator(t *testing.T, client CognitoAPI) *CognitoAuthenticator {
	a, err := NewCognitoAuthenticatorWithClient(&CognitoAuthenticatorConfig{
		ApiKey:       "key",
		ApiSecret:    "secret",
		PoolClientId: "client",
	}, client)
	require.NoError(t, err)
	return a
}

func TestCognitoAuthenticator_Authenticate(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	fake := &fakeCognito{outputs: []*cip.InitiateAuthOutput{authOutput(unsignedJWT(exp), "refresh-1", 3600)}}
	a := newTestAuthenticator(t, fake)

	session, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", session.RefreshToken)
	assert.True(t, session.ExpiresAt.Equal(exp))
	assert.Equal(t, "key", a.Username())

	require.Len(t, fake.inputs, 1)
	assert.Equal(t, ciptypes.AuthFlowTypeUserPasswordAuth, fake.inputs[0].AuthFlow)
	assert.Equal(t, "client", aws.ToString(fake.inputs[0].ClientId))
	assert.Equal(t, "key", fake.inputs[0].AuthParameters["USERNAME"])
	assert.Equal(t, "secret", fake.inputs[0].AuthParameters["PASSWORD"])
}

func TestCognitoAuthenticator_OpaqueTokenUsesExpiresIn(t *testing.T) {
	fake := &fakeCognito{outputs: []*cip.InitiateAuthOutput{authOutput("opaque", "", 600)}}
	a := newTestAuthenticator(t, fake)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	session, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), session.ExpiresAt)
}

func TestCognitoAuthenticator_RefreshKeepsRefreshToken(t *testing.T) {
	fake := &fakeCognito{outputs: []*cip.InitiateAuthOutput{authOutput("access-2", "", 3600)}}
	a := newTestAuthenticator(t, fake)

	session, err := a.Refresh(context.Background(), &Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "refresh-1", session.RefreshToken)
	assert.Equal(t, ciptypes.AuthFlowTypeRefreshTokenAuth, fake.inputs[0].AuthFlow)
	assert.Equal(t, "refresh-1", fake.inputs[0].AuthParameters["REFRESH_TOKEN"])
}

func TestCognitoAuthenticator_RefreshFallsBackToAuthenticate(t *testing.T) {
	fake := &fakeCognito{
		errs:    []error{errors.New("refresh token revoked"), nil},
		outputs: []*cip.InitiateAuthOutput{nil, authOutput("access-3", "refresh-3", 3600)},
	}
	a := newTestAuthenticator(t, fake)

	session, err := a.Refresh(context.Background(), &Session{AccessToken: "a", RefreshToken: "revoked"})
	require.NoError(t, err)
	assert.Equal(t, "access-3", session.AccessToken)
	require.Len(t, fake.inputs, 2)
	assert.Equal(t, ciptypes.AuthFlowTypeUserPasswordAuth, fake.inputs[1].AuthFlow)
}

func TestCognitoAuthenticator_ChallengeIsAnError(t *testing.T) {
	fake := &fakeCognito{outputs: []*cip.InitiateAuthOutput{{ChallengeName: ciptypes.ChallengeNameTypeNewPasswordRequired}}}
	a := newTestAuthenticator(t, fake)

	_, err := a.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEW_PASSWORD_REQUIRED")
}

func TestNewCognitoAuthenticatorWithClient_ValidationErrors(t *testing.T) {
	_, err := NewCognitoAuthenticatorWithClient(nil, &fakeCognito{})
	require.Error(t, err)

	_, err = NewCognitoAuthenticatorWithClient(&CognitoAuthenticatorConfig{ApiKey: "k", PoolClientId: "c"}, &fakeCognito{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key and secret are required")

	_, err = NewCognitoAuthenticatorWithClient(&CognitoAuthenticatorConfig{ApiKey: "k", ApiSecret: "s", PoolClientId: "c"}, nil)
	require.Error(t, err)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	assert.True(t, (*Session)(nil).Expired(now))
	assert.True(t, (&Session{}).Expired(now))
	assert.False(t, (&Session{AccessToken: "t"}).Expired(now))
	assert.False(t, (&Session{AccessToken: "t", ExpiresAt: now.Add(time.Hour)}).Expired(now))
	assert.True(t, (&Session{AccessToken: "t", ExpiresAt: now.Add(30 * time.Second)}).Expired(now))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(unsignedJWT(exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}
