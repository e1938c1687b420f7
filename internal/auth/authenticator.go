package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Credentials identify one API client. They are supplied once at
// construction and never mutated.
type Credentials struct {
	ClientID string
	Secret   string
	BaseURL  string
}

// Authenticator turns a Credentials into a stream of valid bearer tokens.
// Each Authenticator owns its cache, so multiple credential contexts can
// coexist in one process.
//
// Token lifecycle per AccessToken call:
//
//  1. cached token still usable        -> return it, no network
//  2. expired but refresh token cached -> try the refresh grant; any
//     failure falls through silently (refresh tokens get revoked or expire
//     server-side, and re-acquiring via client credentials is always the
//     correct recovery)
//  3. otherwise                        -> client-credentials grant; failure
//     here is fatal and surfaces as *AuthenticationError
type Authenticator struct {
	creds    Credentials
	cache    *TokenCache
	endpoint *tokenEndpoint
	logger   *logrus.Logger

	// mu serializes the check-then-act sequence so concurrent callers
	// sharing one Authenticator cannot issue duplicate token requests.
	mu sync.Mutex
}

// NewAuthenticator creates an Authenticator with an empty cache; the first
// AccessToken call always acquires a token.
func NewAuthenticator(creds Credentials, logger *logrus.Logger) *Authenticator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Authenticator{
		creds:    creds,
		cache:    NewTokenCache(),
		endpoint: newTokenEndpoint(creds.BaseURL, logger),
		logger:   logger,
	}
}

// AccessToken returns a currently valid bearer token, acquiring or
// refreshing one as needed. It fails only when the client-credentials flow
// fails.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if token := a.cache.AccessToken(); token != "" && !a.cache.IsExpired() {
		return token, nil
	}

	if refresh := a.cache.RefreshToken(); refresh != "" {
		reply, err := a.endpoint.Refresh(ctx, refresh, a.creds.ClientID, a.creds.Secret)
		if err == nil {
			a.cache.SetTokens(reply.AccessToken, reply.RefreshToken, reply.ExpiresIn)
			return reply.AccessToken, nil
		}
		// The refresh error is never propagated; state 3 below is the
		// recovery path for every kind of refresh failure.
		a.logger.WithError(err).Debug("token refresh failed, falling back to client credentials")
	}

	reply, err := a.endpoint.ClientCredentials(ctx, a.creds.ClientID, a.creds.Secret)
	if err != nil {
		var endpointErr *tokenEndpointError
		if errors.As(err, &endpointErr) {
			return "", &AuthenticationError{Status: endpointErr.status, Detail: endpointErr.detail(), Err: err}
		}
		return "", &AuthenticationError{Err: err}
	}

	a.cache.SetTokens(reply.AccessToken, reply.RefreshToken, reply.ExpiresIn)
	return reply.AccessToken, nil
}

// AuthHeader returns the Authorization header value for API requests, with
// the same failure semantics as AccessToken.
func (a *Authenticator) AuthHeader(ctx context.Context) (string, error) {
	token, err := a.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
