package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// tokenPath is the platform's token endpoint, fixed under the base URL.
const tokenPath = "/v2/auth/token"

// tokenReply is the successful response from the token endpoint. All three
// fields are required; a missing field is treated as a malformed response.
type tokenReply struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// tokenEndpoint performs the two OAuth2 flows against the platform's token
// endpoint. It has no cache and no fallback logic of its own; every call is
// a synchronous network request and every failure is returned to the caller.
type tokenEndpoint struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func newTokenEndpoint(baseURL string, logger *logrus.Logger) *tokenEndpoint {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &tokenEndpoint{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ClientCredentials requests a new token pair using the client-credentials
// grant.
func (e *tokenEndpoint) ClientCredentials(ctx context.Context, clientID, secret string) (*tokenReply, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", secret)
	return e.post(ctx, form)
}

// Refresh exchanges a refresh token for a new token pair. The platform
// requires the client credentials alongside the refresh token.
func (e *tokenEndpoint) Refresh(ctx context.Context, refreshToken, clientID, secret string) (*tokenReply, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", clientID)
	form.Set("client_secret", secret)
	return e.post(ctx, form)
}

func (e *tokenEndpoint) post(ctx context.Context, form url.Values) (*tokenReply, error) {
	endpoint := strings.TrimSuffix(e.baseURL, "/") + tokenPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	// The token endpoint rejects HTTP Basic Auth; credentials must travel
	// in the form body.
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		endpointErr := &tokenEndpointError{status: resp.StatusCode, body: string(body)}
		// Severity is the caller's call: a rejected refresh is recoverable,
		// rejected client credentials are fatal and reported there.
		e.logger.WithFields(logrus.Fields{
			"status":     resp.StatusCode,
			"grant_type": form.Get("grant_type"),
		}).Debugf("token endpoint rejected request: %s", endpointErr.detail())
		return nil, endpointErr
	}

	var reply tokenReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if reply.AccessToken == "" || reply.RefreshToken == "" || reply.ExpiresIn == 0 {
		return nil, fmt.Errorf("token response missing access_token, refresh_token, or expires_in")
	}

	return &reply, nil
}
