package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
)

// CognitoAPI is the subset of the Cognito identity provider client used for the exchange
type CognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

type CognitoAuthenticatorConfig struct {
	ApiKey       string
	ApiSecret    string
	PoolId       string
	PoolClientId string
	HttpClient   *http.Client
	Logger       *zap.Logger
}

// CognitoAuthenticator exchanges a relayer API key/secret for Cognito user pool tokens
type CognitoAuthenticator struct {
	apiKey       string
	apiSecret    string
	poolClientId string
	client       CognitoAPI
	logger       *zap.Logger
	now          func() time.Time
}

// NewCognitoAuthenticator builds an authenticator talking to the pool's region.
// InitiateAuth is an unauthenticated call, so no AWS credentials are attached.
func NewCognitoAuthenticator(cfg *CognitoAuthenticatorConfig) (*CognitoAuthenticator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	region, err := config.RegionFromPoolId(cfg.PoolId)
	if err != nil {
		return nil, err
	}

	opts := cip.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	}
	if cfg.HttpClient != nil {
		opts.HTTPClient = cfg.HttpClient
	}

	return NewCognitoAuthenticatorWithClient(cfg, cip.New(opts))
}

// NewCognitoAuthenticatorWithClient is NewCognitoAuthenticator with an injected Cognito client
func NewCognitoAuthenticatorWithClient(cfg *CognitoAuthenticatorConfig, client CognitoAPI) (*CognitoAuthenticator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ApiKey == "" || cfg.ApiSecret == "" {
		return nil, fmt.Errorf("api key and secret are required")
	}
	if cfg.PoolClientId == "" {
		return nil, fmt.Errorf("pool client id is required")
	}
	if client == nil {
		return nil, fmt.Errorf("cognito client is required")
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return &CognitoAuthenticator{
		apiKey:       cfg.ApiKey,
		apiSecret:    cfg.ApiSecret,
		poolClientId: cfg.PoolClientId,
		client:       client,
		logger:       l,
		now:          time.Now,
	}, nil
}

func (a *CognitoAuthenticator) Username() string {
	return a.apiKey
}

func (a *CognitoAuthenticator) Authenticate(ctx context.Context) (*Session, error) {
	a.logger.Sugar().Debugw("Authenticating relayer api key", "api_key", a.apiKey)

	out, err := a.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: ciptypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.poolClientId),
		AuthParameters: map[string]string{
			"USERNAME": a.apiKey,
			"PASSWORD": a.apiSecret,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate api key %s: %w", a.apiKey, err)
	}
	return a.sessionFromResult(out, "")
}

func (a *CognitoAuthenticator) Refresh(ctx context.Context, session *Session) (*Session, error) {
	if session == nil || session.RefreshToken == "" {
		return a.Authenticate(ctx)
	}

	a.logger.Sugar().Debugw("Refreshing relayer session", "api_key", a.apiKey)

	out, err := a.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: ciptypes.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(a.poolClientId),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": session.RefreshToken,
		},
	})
	if err != nil {
		a.logger.Sugar().Warnw("Session refresh failed, falling back to full authentication", "error", err)
		return a.Authenticate(ctx)
	}
	return a.sessionFromResult(out, session.RefreshToken)
}

func (a *CognitoAuthenticator) sessionFromResult(out *cip.InitiateAuthOutput, previousRefreshToken string) (*Session, error) {
	if out == nil || out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		if out != nil && out.ChallengeName != "" {
			return nil, fmt.Errorf("unexpected authentication challenge %s", out.ChallengeName)
		}
		return nil, fmt.Errorf("authentication result is missing an access token")
	}
	res := out.AuthenticationResult

	session := &Session{
		AccessToken:  aws.ToString(res.AccessToken),
		RefreshToken: previousRefreshToken,
	}
	// refresh flows do not return a new refresh token
	if res.RefreshToken != nil {
		session.RefreshToken = aws.ToString(res.RefreshToken)
	}

	if exp, ok := TokenExpiry(session.AccessToken); ok {
		session.ExpiresAt = exp
	} else if res.ExpiresIn > 0 {
		session.ExpiresAt = a.now().Add(time.Duration(res.ExpiresIn) * time.Second)
	}
	return session, nil
}
